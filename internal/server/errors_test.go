package server

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/goran-ethernal/ChainFirehose/internal/firehose"
	"github.com/goran-ethernal/ChainFirehose/internal/reorg"
	"github.com/goran-ethernal/ChainFirehose/internal/transform"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestToStatus(t *testing.T) {
	tests := []struct {
		err  error
		code codes.Code
	}{
		{err: context.Canceled, code: codes.Canceled},
		{err: fmt.Errorf("hot phase: %w", context.DeadlineExceeded), code: codes.DeadlineExceeded},
		{err: firehose.ErrInvalidRange, code: codes.InvalidArgument},
		{err: firehose.ErrInvalidCursor, code: codes.InvalidArgument},
		{err: firehose.ErrNoReference, code: codes.InvalidArgument},
		{err: transform.ErrInvalidTransform, code: codes.InvalidArgument},
		{err: firehose.ErrNotFound, code: codes.NotFound},
		{err: &reorg.ReorgTooDeepError{Tip: 5, Oldest: 1}, code: codes.Aborted},
		{err: firehose.ErrInvariantViolation, code: codes.Internal},
		{err: errors.New("boom"), code: codes.Internal},
		{err: status.Error(codes.Unavailable, "draining"), code: codes.Unavailable},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			require.Equal(t, tt.code, status.Code(toStatus(tt.err)))
		})
	}

	require.NoError(t, toStatus(nil))
}
