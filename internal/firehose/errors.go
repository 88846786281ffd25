package firehose

import "errors"

var (
	// ErrInvalidRange is returned when the requested start or stop block cannot be served.
	ErrInvalidRange = errors.New("invalid block range")
	// ErrInvalidCursor is returned when a cursor does not parse as a block height.
	ErrInvalidCursor = errors.New("invalid cursor")
	// ErrNoReference is returned when a single block request names no block.
	ErrNoReference = errors.New("single block request has no reference")
	// ErrNotFound is returned when a single block lookup finds nothing in the archive.
	ErrNotFound = errors.New("block not found")
	// ErrInvariantViolation is returned when the hot phase starts without a known chain head.
	ErrInvariantViolation = errors.New("invariant violation")

	// errConsumerStopped unwinds the phases once the consumer stops pulling. It never reaches callers.
	errConsumerStopped = errors.New("consumer stopped")
)
