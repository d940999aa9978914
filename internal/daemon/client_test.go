package daemon

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/feather-contrib/internal/testutil"
)

func fakeClient(t *testing.T, height uint64) (*Client, *testutil.FakeDaemon) {
	t.Helper()
	d := testutil.NewFakeDaemon(t, height)
	host, port := d.HostPort(t)
	return NewClient(host, port), d
}

func TestNewClient_Endpoint(t *testing.T) {
	assert.Equal(t, "http://127.0.0.1:18081/json_rpc", NewClient(DefaultHost, DefaultPort).Endpoint())
	assert.Equal(t, "http://[::1]:28081/json_rpc", NewClient("::1", 28081).Endpoint())
	assert.Equal(t, "http://node:1/json_rpc", NewClient("x", 0, WithEndpoint("http://node:1/json_rpc")).Endpoint())
}

func TestGetBlockCount(t *testing.T) {
	c, d := fakeClient(t, 3200)

	count, err := c.GetBlockCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(3200), count)
	assert.Equal(t, []string{"get_block_count"}, d.Calls())
}

func TestGetBlockHeaderByHeight(t *testing.T) {
	c, d := fakeClient(t, 3200)

	hdr, err := c.GetBlockHeaderByHeight(context.Background(), 1500)
	require.NoError(t, err)
	require.NotNil(t, hdr.Timestamp)
	assert.Equal(t, d.Timestamp(1500), *hdr.Timestamp)
	assert.Equal(t, uint64(1500), hdr.Height)
}

func TestGetBlockHeaderByHeight_RPCError(t *testing.T) {
	c, _ := fakeClient(t, 10)

	_, err := c.GetBlockHeaderByHeight(context.Background(), 99)
	require.Error(t, err)
	var rpcErr *RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, -2, rpcErr.Code)
}

func TestCall_RequestEnvelope(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/json_rpc", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":"0","result":{"count":5}}`))
	}))
	defer srv.Close()

	c := NewClient("", 0, WithEndpoint(srv.URL+"/json_rpc"))
	_, err := c.GetBlockCount(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2.0", got["jsonrpc"])
	assert.Equal(t, "0", got["id"])
	assert.Equal(t, "get_block_count", got["method"])
	_, hasParams := got["params"]
	assert.False(t, hasParams, "get_block_count carries no params")
}

func TestCall_Failures(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
	}{
		"http error":    {status: http.StatusInternalServerError, body: `{}`},
		"not json":      {status: http.StatusOK, body: `<html>`},
		"no result":     {status: http.StatusOK, body: `{"jsonrpc":"2.0","id":"0"}`},
		"null result":   {status: http.StatusOK, body: `{"jsonrpc":"2.0","id":"0","result":null}`},
		"missing count": {status: http.StatusOK, body: `{"jsonrpc":"2.0","id":"0","result":{"status":"OK"}}`},
		"wrong type":    {status: http.StatusOK, body: `{"jsonrpc":"2.0","id":"0","result":{"count":"many"}}`},
		"rpc error":     {status: http.StatusOK, body: `{"jsonrpc":"2.0","id":"0","error":{"code":-1,"message":"busy"}}`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewClient("", 0, WithEndpoint(srv.URL+"/json_rpc"))
			_, err := c.GetBlockCount(context.Background())
			require.Error(t, err)
		})
	}
}

func TestGetBlockHeader_MissingTimestamp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":"0","result":{"block_header":{"height":1}}}`))
	}))
	defer srv.Close()

	c := NewClient("", 0, WithEndpoint(srv.URL+"/json_rpc"))
	_, err := c.GetBlockHeaderByHeight(context.Background(), 1)
	require.ErrorIs(t, err, ErrMissingField)
}

func TestCall_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient("", 0, WithEndpoint(url+"/json_rpc"))
	_, err := c.GetBlockCount(context.Background())
	require.Error(t, err)
}
