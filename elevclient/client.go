// client.go
// Purpose: Gateway to the remote elevator simulator. One method per remote
// command; each returns the full snapshot the server answered with.
package elevclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"elevsim/common"
)

const API_PREFIX = "/elevator"

// maxBodySize bounds how much of a response is read before decoding.
const maxBodySize = 8 << 20

type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     zerolog.Logger
}

// New builds a client rooted at cfg.APIBase + "/elevator". A nil httpClient
// falls back to http.DefaultClient.
func New(cfg common.Config, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: cfg.APIBase + API_PREFIX,
		http:    httpClient,
		timeout: cfg.RequestTimeout,
		log:     log,
	}
}

func (c *Client) GetState(ctx context.Context) (*common.SimulationState, error) {
	return c.do(ctx, "getState", http.MethodGet, "/state", nil)
}

func (c *Client) UpdateConfiguration(ctx context.Context, cfg common.Configuration) (*common.SimulationState, error) {
	return c.do(ctx, "updateConfiguration", http.MethodPost, "/configuration", cfg)
}

func (c *Client) Reset(ctx context.Context) (*common.SimulationState, error) {
	return c.do(ctx, "reset", http.MethodPost, "/reset", nil)
}

func (c *Client) CallElevator(ctx context.Context, fromFloor, toFloor int) (*common.SimulationState, error) {
	return c.do(ctx, "callElevator", http.MethodPost, "/call",
		common.CallRequest{FromFloor: fromFloor, ToFloor: toFloor})
}

func (c *Client) GenerateRandomCalls(ctx context.Context, n int) (*common.SimulationState, error) {
	return c.do(ctx, "generateRandomCalls", http.MethodPost, "/random-calls",
		common.RandomCallsRequest{NumberOfCalls: n})
}

func (c *Client) ProcessStep(ctx context.Context) (*common.SimulationState, error) {
	return c.do(ctx, "processStep", http.MethodPost, "/step", nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, body any) (*common.SimulationState, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode body: %w", op, err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug().Str("op", op).Str("method", method).Str("url", req.URL.String()).Msg("sending")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &NetworkError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServerError{Op: op, StatusCode: resp.StatusCode}
	}

	var st *common.SimulationState
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, &ServerError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode snapshot: %w", err)}
	}
	if st == nil {
		return nil, &ServerError{Op: op, StatusCode: resp.StatusCode, Err: errors.New("empty snapshot")}
	}
	c.log.Debug().Str("op", op).Int("elevators", len(st.Elevators)).Int("calls", len(st.Calls)).Msg("snapshot received")
	return st, nil
}
