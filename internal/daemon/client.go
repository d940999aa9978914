// Package daemon is a minimal JSON-RPC client for a monerod-compatible
// daemon.
package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
)

// Default daemon address.
const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 18081
)

// ErrMissingField is returned when a successful response lacks a field the
// caller needs.
var ErrMissingField = errors.New("missing field in response")

// Client issues single request/response JSON-RPC calls.
type Client struct {
	endpoint string
	http     *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// WithEndpoint overrides the full JSON-RPC URL.
func WithEndpoint(url string) ClientOption {
	return func(c *Client) {
		c.endpoint = url
	}
}

// NewClient creates a client for the daemon at host:port.
func NewClient(host string, port int, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: "http://" + net.JoinHostPort(host, strconv.Itoa(port)) + rpcPath,
		http:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the JSON-RPC URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Call invokes method with params and decodes the result member into result.
// params may be nil.
func (c *Client) Call(ctx context.Context, method string, params, result any) error {
	body, err := json.Marshal(Request{
		JSONRPC: jsonRPCVersion,
		ID:      requestID,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("daemon: %s: encode request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("daemon: %s: build request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("daemon: %s: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("daemon: %s: read response: %w", method, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("daemon: %s: unexpected status %s", method, resp.Status)
	}

	var env Response
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("daemon: %s: decode response: %w", method, err)
	}
	if env.Error != nil {
		return fmt.Errorf("daemon: %s: %w", method, env.Error)
	}
	if len(env.Result) == 0 || string(env.Result) == "null" {
		return fmt.Errorf("daemon: %s: %w: result", method, ErrMissingField)
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(env.Result, result); err != nil {
		return fmt.Errorf("daemon: %s: decode result: %w", method, err)
	}
	return nil
}

// GetBlockCount returns the daemon's current chain height.
func (c *Client) GetBlockCount(ctx context.Context) (uint64, error) {
	var res blockCountResult
	if err := c.Call(ctx, "get_block_count", nil, &res); err != nil {
		return 0, err
	}
	if res.Count == nil {
		return 0, fmt.Errorf("daemon: get_block_count: %w: count", ErrMissingField)
	}
	return *res.Count, nil
}

// GetBlockHeaderByHeight returns the header of the block at height.
func (c *Client) GetBlockHeaderByHeight(ctx context.Context, height uint64) (*BlockHeader, error) {
	var res blockHeaderResult
	if err := c.Call(ctx, "get_block_header_by_height", heightParams{Height: height}, &res); err != nil {
		return nil, err
	}
	if res.BlockHeader == nil {
		return nil, fmt.Errorf("daemon: get_block_header_by_height: %w: block_header", ErrMissingField)
	}
	if res.BlockHeader.Timestamp == nil {
		return nil, fmt.Errorf("daemon: get_block_header_by_height: %w: timestamp", ErrMissingField)
	}
	return res.BlockHeader, nil
}
