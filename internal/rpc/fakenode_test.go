package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/goran-ethernal/ChainFirehose/pkg/config"
	"github.com/stretchr/testify/require"
)

const (
	transferTopic = "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"
	tokenAddress  = "0x00000000000000000000000000000000000000aa"
	senderAddress = "0x00000000000000000000000000000000000000bb"
)

type fakeBlock struct {
	number uint64
	hash   string
	parent string
	txs    int
}

// fakeNode is a minimal JSON-RPC node serving one chain. Tests mutate the chain between polls.
type fakeNode struct {
	mu        sync.Mutex
	chain     map[uint64]fakeBlock
	latest    uint64
	finalized uint64
	safe      uint64
	branch    int
	txs       int
	traces    bool
	failures  int
	calls     map[string]int
	requests  int
}

func newFakeNode(t *testing.T, height uint64, txsPerBlock int) (*fakeNode, *Client) {
	t.Helper()

	node := &fakeNode{
		chain:  make(map[uint64]fakeBlock),
		txs:    txsPerBlock,
		traces: true,
		calls:  make(map[string]int),
	}
	node.chain[0] = fakeBlock{number: 0, hash: blockHash(0, 0), parent: zeroHash}
	node.grow(height)
	node.finalized = height
	node.safe = height

	srv := httptest.NewServer(node)
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return node, client
}

func newRetryingClient(t *testing.T, node *fakeNode, retry *config.RetryConfig) *Client {
	t.Helper()

	srv := httptest.NewServer(node)
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), srv.URL, retry)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return client
}

func blockHash(branch int, n uint64) string {
	return fmt.Sprintf("0x%02x%062x", branch, n)
}

// grow appends count blocks to the current branch.
func (n *fakeNode) grow(count uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i := uint64(0); i < count; i++ {
		parent := n.chain[n.latest]
		next := n.latest + 1
		n.chain[next] = fakeBlock{number: next, hash: blockHash(n.branch, next), parent: parent.hash, txs: n.txs}
		n.latest = next
	}
}

// fork drops every block from height at upwards and rebuilds the same number of blocks on a new branch.
func (n *fakeNode) fork(at uint64) {
	n.mu.Lock()
	count := n.latest - at + 1
	for h := at; h <= n.latest; h++ {
		delete(n.chain, h)
	}
	n.latest = at - 1
	n.branch++
	n.mu.Unlock()

	n.grow(count)
}

func (n *fakeNode) update(fn func(*fakeNode)) {
	n.mu.Lock()
	defer n.mu.Unlock()

	fn(n)
}

func (n *fakeNode) callCount(method string) int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.calls[method]
}

type jsonrpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

type jsonrpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type jsonrpcResponse struct {
	Version string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *jsonrpcError   `json:"error,omitempty"`
}

func (n *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.requests++
	if n.failures > 0 {
		n.failures--
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var reqs []jsonrpcRequest
		if err := json.Unmarshal(body, &reqs); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		resps := make([]jsonrpcResponse, 0, len(reqs))
		for _, req := range reqs {
			resps = append(resps, n.handle(req))
		}
		_ = json.NewEncoder(w).Encode(resps)
		return
	}

	var req jsonrpcRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(n.handle(req))
}

func (n *fakeNode) handle(req jsonrpcRequest) jsonrpcResponse {
	n.calls[req.Method]++

	resp := jsonrpcResponse{Version: "2.0", ID: req.ID, Result: json.RawMessage("null")}

	var result any
	switch req.Method {
	case "eth_blockNumber":
		result = hexutil.Uint64(n.latest)
	case "eth_getBlockByNumber":
		var full bool
		_ = json.Unmarshal(req.Params[1], &full)
		if b, ok := n.lookup(req.Params[0]); ok {
			result = n.blockJSON(b, full)
		}
	case "eth_getBlockReceipts":
		if b, ok := n.lookup(req.Params[0]); ok {
			result = n.receiptsJSON(b)
		}
	case "trace_block":
		if !n.traces {
			resp.Error = &jsonrpcError{Code: codeMethodNotFound, Message: "the method trace_block does not exist/is not available"}
			return resp
		}
		if b, ok := n.lookup(req.Params[0]); ok {
			result = n.tracesJSON(b)
		}
	default:
		resp.Error = &jsonrpcError{Code: codeMethodNotFound, Message: "method not found"}
		return resp
	}

	if result != nil {
		raw, err := json.Marshal(result)
		if err != nil {
			resp.Error = &jsonrpcError{Code: -32603, Message: err.Error()}
			return resp
		}
		resp.Result = raw
	}

	return resp
}

func (n *fakeNode) lookup(param json.RawMessage) (fakeBlock, bool) {
	var tag string
	if err := json.Unmarshal(param, &tag); err != nil {
		return fakeBlock{}, false
	}

	var height uint64
	switch tag {
	case "latest":
		height = n.latest
	case "finalized":
		height = n.finalized
	case "safe":
		height = n.safe
	default:
		h, err := strconv.ParseUint(strings.TrimPrefix(tag, "0x"), 16, 64)
		if err != nil {
			return fakeBlock{}, false
		}
		height = h
	}

	b, ok := n.chain[height]
	return b, ok
}

func txHash(b fakeBlock, i int) string {
	return fmt.Sprintf("0x%s%04x", b.hash[2:62], i)
}

func (n *fakeNode) blockJSON(b fakeBlock, full bool) map[string]any {
	out := map[string]any{
		"number":           hexutil.Uint64(b.number),
		"hash":             b.hash,
		"parentHash":       b.parent,
		"nonce":            "0x0000000000000000",
		"sha3Uncles":       zeroHash,
		"logsBloom":        "0x" + strings.Repeat("00", 256),
		"transactionsRoot": zeroHash,
		"stateRoot":        zeroHash,
		"receiptsRoot":     zeroHash,
		"miner":            senderAddress,
		"mixHash":          zeroHash,
		"difficulty":       "0x0",
		"extraData":        "0x",
		"size":             "0x220",
		"gasLimit":         "0x1c9c380",
		"gasUsed":          hexutil.Uint64(21000 * b.txs),
		"timestamp":        hexutil.Uint64(1_700_000_000 + 12*b.number),
		"baseFeePerGas":    "0x7",
	}

	txs := make([]any, 0, b.txs)
	for i := range b.txs {
		if !full {
			txs = append(txs, txHash(b, i))
			continue
		}
		txs = append(txs, map[string]any{
			"hash":                 txHash(b, i),
			"transactionIndex":     hexutil.Uint64(i),
			"from":                 senderAddress,
			"to":                   tokenAddress,
			"nonce":                hexutil.Uint64(b.number),
			"gasPrice":             "0x3b9aca00",
			"gas":                  "0x5208",
			"maxFeePerGas":         "0x3b9aca00",
			"maxPriorityFeePerGas": "0x1",
			"value":                "0x0",
			"input":                "0xa9059cbb00",
			"v":                    "0x1",
			"r":                    "0x2",
			"s":                    "0x3",
			"type":                 "0x2",
		})
	}
	out["transactions"] = txs

	return out
}

func (n *fakeNode) receiptsJSON(b fakeBlock) []any {
	out := make([]any, 0, b.txs)
	for i := range b.txs {
		out = append(out, map[string]any{
			"transactionHash":   txHash(b, i),
			"transactionIndex":  hexutil.Uint64(i),
			"gasUsed":           "0x5208",
			"cumulativeGasUsed": hexutil.Uint64(21000 * (i + 1)),
			"status":            "0x1",
			"logs": []any{
				map[string]any{
					"address":          tokenAddress,
					"topics":           []string{transferTopic},
					"data":             "0x",
					"logIndex":         hexutil.Uint64(i),
					"transactionIndex": hexutil.Uint64(i),
				},
			},
		})
	}

	return out
}

func (n *fakeNode) tracesJSON(b fakeBlock) []any {
	out := make([]any, 0, b.txs+1)
	for i := range b.txs {
		out = append(out, map[string]any{
			"type":                "call",
			"transactionPosition": i,
			"action": map[string]any{
				"from":     senderAddress,
				"to":       tokenAddress,
				"value":    "0x0",
				"gas":      "0x5208",
				"input":    "0xa9059cbb00",
				"callType": "call",
			},
			"result": map[string]any{
				"gasUsed": "0x5208",
				"output":  "0x",
			},
		})
	}

	out = append(out, map[string]any{
		"type":                "reward",
		"transactionPosition": nil,
		"action": map[string]any{
			"author":     senderAddress,
			"value":      "0x1bc16d674ec80000",
			"rewardType": "block",
		},
	})

	return out
}
