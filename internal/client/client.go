package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	mathrand "math/rand"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"
)

var entropy = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)

func newRequestID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// Client talks to a gramofond HTTP endpoint.
type Client struct {
	endpoint string
	http     *http.Client
}

// New creates a client for the given endpoint URL.
func New(endpoint string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 2 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	Protocol string          `json:"jsonrpc"`
	ID       json.RawMessage `json:"id"`
	Result   json.RawMessage `json:"result"`
	Reason   *string         `json:"error"`
}

// Call invokes one method and returns the raw result. A reply carrying an
// error field becomes a plain Go error with the daemon's reason string.
func (c *Client) Call(ctx context.Context, method string, params map[string]any) (json.RawMessage, error) {
	id := newRequestID()
	request := map[string]any{"method": method, "id": id}
	if params != nil {
		request["params"] = params
	}
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json;charset=utf-8")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}

	var reply envelope
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, fmt.Errorf("malformed reply: %w", err)
	}
	if reply.Reason != nil {
		return nil, fmt.Errorf("%s: %s", method, *reply.Reason)
	}

	var echoed string
	if err := json.Unmarshal(reply.ID, &echoed); err != nil || echoed != id {
		return nil, fmt.Errorf("reply id mismatch: sent %q, got %s", id, reply.ID)
	}
	return reply.Result, nil
}

// CallInto invokes one method and decodes the result into out.
func (c *Client) CallInto(ctx context.Context, method string, params map[string]any, out any) error {
	result, err := c.Call(ctx, method, params)
	if err != nil {
		return err
	}
	return json.Unmarshal(result, out)
}
