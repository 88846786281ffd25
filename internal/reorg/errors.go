package reorg

import (
	"errors"
	"fmt"
)

var (
	// ErrReorgTooDeep is returned when no tracked block is still canonical.
	ErrReorgTooDeep = errors.New("reorg deeper than the tracked window")

	// ErrChainDiscontinuity is returned when headers do not link to the tracked tip.
	ErrChainDiscontinuity = errors.New("chain discontinuity")
)

// ReorgTooDeepError describes a reorganization that reached past the tracked window.
type ReorgTooDeepError struct {
	// Tip is the height of the tracked tip when the reorg was detected
	Tip uint64
	// Oldest is the lowest tracked height, which was found replaced as well
	Oldest uint64
}

func (e *ReorgTooDeepError) Error() string {
	return fmt.Sprintf("reorg detected at block %d reaches below block %d: %s", e.Tip, e.Oldest, ErrReorgTooDeep)
}

func (e *ReorgTooDeepError) Is(target error) bool {
	return target == ErrReorgTooDeep
}
