package server

import (
	"context"
	"errors"

	"github.com/goran-ethernal/ChainFirehose/internal/firehose"
	"github.com/goran-ethernal/ChainFirehose/internal/reorg"
	"github.com/goran-ethernal/ChainFirehose/internal/transform"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps a firehose error onto a gRPC status error. Errors that already carry a
// status are returned unchanged.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	return status.Error(codeOf(err), err.Error())
}

func codeOf(err error) codes.Code {
	switch {
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	case errors.Is(err, firehose.ErrInvalidRange),
		errors.Is(err, firehose.ErrInvalidCursor),
		errors.Is(err, transform.ErrInvalidTransform),
		errors.Is(err, firehose.ErrNoReference):
		return codes.InvalidArgument
	case errors.Is(err, firehose.ErrNotFound):
		return codes.NotFound
	case errors.Is(err, reorg.ErrReorgTooDeep):
		// the client resumes from its last final block
		return codes.Aborted
	default:
		return codes.Internal
	}
}
