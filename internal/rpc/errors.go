package rpc

import (
	"context"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/rpc"
)

// ErrBlockNotFound is returned when the node has no block at a requested height.
var ErrBlockNotFound = errors.New("block not found")

// JSON-RPC error codes the client distinguishes.
const (
	codeMethodNotFound = -32601
	codeLimitExceeded  = -32005
)

// errorType classifies an error for the error_type metrics label.
func errorType(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}

	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.StatusCode == 429:
			return "rate_limited"
		case httpErr.StatusCode >= 500:
			return "server_error"
		default:
			return "http_error"
		}
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		switch rpcErr.ErrorCode() {
		case codeMethodNotFound:
			return "method_not_found"
		case codeLimitExceeded:
			return "rate_limited"
		default:
			return "rpc_error"
		}
	}

	if strings.Contains(strings.ToLower(err.Error()), "timeout") {
		return "timeout"
	}

	return "other"
}

// IsMethodNotFound reports whether the node rejected a call because it does not serve the method,
// which is how nodes without the trace namespace answer trace_block.
func IsMethodNotFound(err error) bool {
	var rpcErr rpc.Error
	return errors.As(err, &rpcErr) && rpcErr.ErrorCode() == codeMethodNotFound
}
