package daemon

import (
	"encoding/json"
	"fmt"
)

const (
	jsonRPCVersion = "2.0"
	requestID      = "0"
	rpcPath        = "/json_rpc"
)

// Request is a JSON-RPC 2.0 request envelope.
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// Response is a JSON-RPC 2.0 response envelope. Exactly one of Result and
// Error is expected to be set.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

// RPCError is an error object returned by the daemon.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// BlockHeader carries the fields of get_block_header_by_height this module
// reads. Timestamp is Unix seconds.
type BlockHeader struct {
	Height    uint64 `json:"height"`
	Hash      string `json:"hash"`
	Timestamp *int64 `json:"timestamp"`
}

type blockCountResult struct {
	Count  *uint64 `json:"count"`
	Status string  `json:"status"`
}

type blockHeaderResult struct {
	BlockHeader *BlockHeader `json:"block_header"`
	Status      string       `json:"status"`
}

type heightParams struct {
	Height uint64 `json:"height"`
}
