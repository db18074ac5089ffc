package elevclient

import "fmt"

// NetworkError means the request never reached the simulator or no response came back.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError means a response arrived but it was not a usable snapshot.
type ServerError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *ServerError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: server returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: server (status %d): %v", e.Op, e.StatusCode, e.Err)
}

func (e *ServerError) Unwrap() error { return e.Err }
