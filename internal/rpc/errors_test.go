package rpc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/require"
)

type mockRPCError struct {
	code int
	msg  string
}

func (m *mockRPCError) Error() string  { return m.msg }
func (m *mockRPCError) ErrorCode() int { return m.code }

func TestErrorType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil error",
			err:  nil,
			want: "",
		},
		{
			name: "canceled",
			err:  fmt.Errorf("call: %w", context.Canceled),
			want: "canceled",
		},
		{
			name: "deadline",
			err:  context.DeadlineExceeded,
			want: "timeout",
		},
		{
			name: "rate limited over http",
			err:  rpc.HTTPError{StatusCode: 429, Status: "429 Too Many Requests"},
			want: "rate_limited",
		},
		{
			name: "bad gateway",
			err:  fmt.Errorf("batch: %w", rpc.HTTPError{StatusCode: 502, Status: "502 Bad Gateway"}),
			want: "server_error",
		},
		{
			name: "forbidden",
			err:  rpc.HTTPError{StatusCode: 403, Status: "403 Forbidden"},
			want: "http_error",
		},
		{
			name: "method not found",
			err:  &mockRPCError{code: -32601, msg: "the method trace_block does not exist"},
			want: "method_not_found",
		},
		{
			name: "limit exceeded",
			err:  &mockRPCError{code: -32005, msg: "limit exceeded"},
			want: "rate_limited",
		},
		{
			name: "execution error",
			err:  &mockRPCError{code: -32000, msg: "header not found"},
			want: "rpc_error",
		},
		{
			name: "read timeout",
			err:  errors.New("read tcp: i/o timeout"),
			want: "timeout",
		},
		{
			name: "anything else",
			err:  errors.New("unexpected EOF"),
			want: "other",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, errorType(tt.err))
		})
	}
}

func TestIsMethodNotFound(t *testing.T) {
	t.Parallel()

	require.True(t, IsMethodNotFound(fmt.Errorf("trace_block(0x1): %w", &mockRPCError{code: -32601, msg: "not found"})))
	require.False(t, IsMethodNotFound(&mockRPCError{code: -32000, msg: "header not found"}))
	require.False(t, IsMethodNotFound(errors.New("plain")))
	require.False(t, IsMethodNotFound(nil))
}
