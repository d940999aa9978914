package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// FakeDaemon is an in-process JSON-RPC daemon serving a synthetic chain
// where block h has timestamp Genesis + h*120.
type FakeDaemon struct {
	Server  *httptest.Server
	Height  uint64
	Genesis int64

	mu    sync.Mutex
	calls []string
}

// NewFakeDaemon starts a fake daemon at the given chain height. It is shut
// down when the test ends.
func NewFakeDaemon(t *testing.T, height uint64) *FakeDaemon {
	t.Helper()
	d := &FakeDaemon{Height: height, Genesis: 1397818193}

	r := chi.NewRouter()
	r.Post("/json_rpc", d.serveRPC)

	d.Server = httptest.NewServer(r)
	t.Cleanup(d.Server.Close)
	return d
}

// Timestamp returns the synthetic timestamp of block h.
func (d *FakeDaemon) Timestamp(h uint64) int64 {
	return d.Genesis + int64(h)*120
}

// HostPort splits the server address.
func (d *FakeDaemon) HostPort(t *testing.T) (string, int) {
	t.Helper()
	u, err := url.Parse(d.Server.URL)
	if err != nil {
		t.Fatal(err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatal(err)
	}
	return u.Hostname(), port
}

// Calls returns the methods received so far, with the height for header
// lookups ("get_block_header_by_height:1500").
func (d *FakeDaemon) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.calls...)
}

func (d *FakeDaemon) record(call string) {
	d.mu.Lock()
	d.calls = append(d.calls, call)
	d.mu.Unlock()
}

type fakeRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  struct {
		Height *uint64 `json:"height"`
	} `json:"params"`
}

func (d *FakeDaemon) serveRPC(w http.ResponseWriter, r *http.Request) {
	var req fakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.JSONRPC != "2.0" || req.ID != "0" {
		writeRPC(w, map[string]any{"code": -32700, "message": "Parse error"}, nil)
		return
	}

	switch req.Method {
	case "get_block_count":
		d.record(req.Method)
		writeRPC(w, nil, map[string]any{"count": d.Height, "status": "OK"})
	case "get_block_header_by_height":
		if req.Params.Height == nil || *req.Params.Height >= d.Height {
			d.record(req.Method)
			writeRPC(w, map[string]any{"code": -2, "message": "Requested block height is greater than current top block height"}, nil)
			return
		}
		h := *req.Params.Height
		d.record(req.Method + ":" + strconv.FormatUint(h, 10))
		writeRPC(w, nil, map[string]any{
			"block_header": map[string]any{"height": h, "timestamp": d.Timestamp(h)},
			"status":       "OK",
		})
	default:
		d.record(req.Method)
		writeRPC(w, map[string]any{"code": -32601, "message": "Method not found"}, nil)
	}
}

func writeRPC(w http.ResponseWriter, rpcErr, result any) {
	body := map[string]any{"jsonrpc": "2.0", "id": "0"}
	if rpcErr != nil {
		body["error"] = rpcErr
	} else {
		body["result"] = result
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}
