package elevclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"elevsim/common"
)

type recordedRequest struct {
	method      string
	path        string
	contentType string
	body        string
}

const sampleSnapshot = `{
	"elevators": [{"id": 1, "currentFloor": 3, "status": 1, "statusInfo": "Moving", "destinationFloors": [5, 2], "timeRemaining": 4, "currentAction": "Going up"}],
	"calls": [{"callId": 7, "fromFloor": 1, "toFloor": 5, "callTime": "2024-01-01T00:00:00", "status": 0, "statusInfo": "Waiting"}],
	"configuration": {"numberOfFloors": 10, "numberOfElevators": 4, "travelTimePerFloor": 10, "loadingTime": 10, "randomElevatorStart": false}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *[]recordedRequest) {
	t.Helper()
	var reqs []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		reqs = append(reqs, recordedRequest{r.Method, r.URL.Path, r.Header.Get("Content-Type"), string(b)})
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	cfg := common.Config{APIBase: srv.URL + "/api"}
	return New(cfg, srv.Client(), zerolog.Nop()), &reqs
}

func okSnapshot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	io.WriteString(w, sampleSnapshot)
}

func TestClientOperations(t *testing.T) {
	cfg := common.Configuration{NumberOfFloors: 12, NumberOfElevators: 3, TravelTimePerFloor: 5, LoadingTime: 2, RandomElevatorStart: true}

	cases := []struct {
		name     string
		call     func(*Client) (*common.SimulationState, error)
		method   string
		path     string
		wantBody any
	}{
		{"getState", func(c *Client) (*common.SimulationState, error) { return c.GetState(context.Background()) },
			http.MethodGet, "/api/elevator/state", nil},
		{"updateConfiguration", func(c *Client) (*common.SimulationState, error) {
			return c.UpdateConfiguration(context.Background(), cfg)
		}, http.MethodPost, "/api/elevator/configuration", cfg},
		{"reset", func(c *Client) (*common.SimulationState, error) { return c.Reset(context.Background()) },
			http.MethodPost, "/api/elevator/reset", nil},
		{"callElevator", func(c *Client) (*common.SimulationState, error) {
			return c.CallElevator(context.Background(), 1, 5)
		}, http.MethodPost, "/api/elevator/call", common.CallRequest{FromFloor: 1, ToFloor: 5}},
		{"generateRandomCalls", func(c *Client) (*common.SimulationState, error) {
			return c.GenerateRandomCalls(context.Background(), 8)
		}, http.MethodPost, "/api/elevator/random-calls", common.RandomCallsRequest{NumberOfCalls: 8}},
		{"processStep", func(c *Client) (*common.SimulationState, error) { return c.ProcessStep(context.Background()) },
			http.MethodPost, "/api/elevator/step", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, reqs := newTestClient(t, okSnapshot)
			st, err := tc.call(c)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(*reqs) != 1 {
				t.Fatalf("sent %d requests, expected 1", len(*reqs))
			}
			got := (*reqs)[0]
			if got.method != tc.method || got.path != tc.path {
				t.Errorf("request = %s %s, expected %s %s", got.method, got.path, tc.method, tc.path)
			}
			if tc.wantBody == nil {
				if got.body != "" {
					t.Errorf("body = %q, expected none", got.body)
				}
			} else {
				want, _ := json.Marshal(tc.wantBody)
				if got.body != string(want) {
					t.Errorf("body = %s, expected %s", got.body, want)
				}
				if got.contentType != "application/json" {
					t.Errorf("Content-Type = %q", got.contentType)
				}
			}
			if len(st.Elevators) != 1 || st.Elevators[0].DestinationFloors[0] != 5 {
				t.Errorf("elevators decoded wrong: %+v", st.Elevators)
			}
			if len(st.Calls) != 1 || st.Calls[0].AssignedElevator != nil || st.Calls[0].StatusInfo != "Waiting" {
				t.Errorf("calls decoded wrong: %+v", st.Calls)
			}
			if st.Configuration.NumberOfFloors != 10 {
				t.Errorf("configuration decoded wrong: %+v", st.Configuration)
			}
		})
	}
}

func TestClientServerErrors(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
		status  int
	}{
		{"non-success status", func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}, http.StatusInternalServerError},
		{"unparsable body", func(w http.ResponseWriter, _ *http.Request) {
			io.WriteString(w, "<html>not json</html>")
		}, http.StatusOK},
		{"null body", func(w http.ResponseWriter, _ *http.Request) {
			io.WriteString(w, "null")
		}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, tc.handler)
			st, err := c.ProcessStep(context.Background())
			if st != nil {
				t.Errorf("got snapshot %+v on failure", st)
			}
			var se *ServerError
			if !errors.As(err, &se) {
				t.Fatalf("error = %v, expected *ServerError", err)
			}
			if se.StatusCode != tc.status || se.Op != "processStep" {
				t.Errorf("ServerError = %+v", se)
			}
		})
	}
}

func TestClientNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(okSnapshot))
	url := srv.URL
	srv.Close()

	c := New(common.Config{APIBase: url}, nil, zerolog.Nop())
	_, err := c.GetState(context.Background())
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("error = %v, expected *NetworkError", err)
	}
	if ne.Op != "getState" {
		t.Errorf("Op = %q", ne.Op)
	}
}

func TestClientRequestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := New(common.Config{APIBase: srv.URL, RequestTimeout: 50 * time.Millisecond}, srv.Client(), zerolog.Nop())
	_, err := c.ProcessStep(context.Background())
	var ne *NetworkError
	if !errors.As(err, &ne) || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("error = %v, expected NetworkError wrapping deadline", err)
	}
}
