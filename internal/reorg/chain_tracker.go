package reorg

import (
	"context"
	"fmt"
	"strings"

	"github.com/goran-ethernal/ChainFirehose/internal/logger"
	"github.com/goran-ethernal/ChainFirehose/pkg/datasource"
	"github.com/goran-ethernal/ChainFirehose/pkg/reorg"
)

var _ reorg.Tracker = (*ChainTracker)(nil)

// ChainTracker keeps the hashes of the most recent blocks of one followed chain in memory.
// The oldest entry is the block the tail was seeded with. A ChainTracker is owned by a single
// stream and is not safe for concurrent use.
type ChainTracker struct {
	window []datasource.HashAndHeight
	size   uint64
	log    *logger.Logger
}

// NewChainTracker creates a tracker seeded with base that keeps at most size blocks.
func NewChainTracker(base datasource.HashAndHeight, size uint64, log *logger.Logger) *ChainTracker {
	if size == 0 {
		size = 1
	}

	return &ChainTracker{
		window: []datasource.HashAndHeight{base},
		size:   size,
		log:    log,
	}
}

// Head returns the tip of the tracked chain.
func (c *ChainTracker) Head() datasource.HashAndHeight {
	return c.window[len(c.window)-1]
}

// Len returns the number of tracked blocks.
func (c *ChainTracker) Len() int {
	return len(c.window)
}

// Verify walks the tracked blocks from the tip down until the node agrees on a hash,
// drops everything above that block and returns it as the new tip.
func (c *ChainTracker) Verify(ctx context.Context, src reorg.HashSource) (datasource.HashAndHeight, error) {
	tip := c.Head()

	for i := len(c.window) - 1; i >= 0; i-- {
		tracked := c.window[i]

		canonical, err := src.GetBlockHash(ctx, tracked.Height)
		if err != nil {
			return datasource.HashAndHeight{}, fmt.Errorf("failed to get canonical hash of block %d: %w", tracked.Height, err)
		}

		if !strings.EqualFold(canonical, tracked.Hash) {
			continue
		}

		if i < len(c.window)-1 {
			depth := uint64(len(c.window) - 1 - i)
			c.log.Warnf("reorg detected in hot tail: tip=%d tip_hash=%s fork_point=%d depth=%d",
				tip.Height, tip.Hash, tracked.Height, depth)
			c.window = c.window[:i+1]
			rewound(depth, tracked.Height+1, len(c.window))
		}

		return tracked, nil
	}

	reorgsTooDeep.Inc()

	return datasource.HashAndHeight{}, &ReorgTooDeepError{Tip: tip.Height, Oldest: c.window[0].Height}
}

// Extend appends headers that build on the tip. Nothing is appended unless every header
// links to its predecessor.
func (c *ChainTracker) Extend(headers []datasource.BlockHeader) error {
	prev := c.Head()
	for _, h := range headers {
		if h.Number != prev.Height+1 || !strings.EqualFold(h.ParentHash, prev.Hash) {
			return fmt.Errorf("%w: block %d (parent %s) does not follow block %d (%s)",
				ErrChainDiscontinuity, h.Number, h.ParentHash, prev.Height, prev.Hash)
		}
		prev = datasource.HashAndHeight{Hash: h.Hash, Height: h.Number}
	}

	for _, h := range headers {
		c.window = append(c.window, datasource.HashAndHeight{Hash: h.Hash, Height: h.Number})
	}

	if excess := len(c.window) - int(c.size); excess > 0 {
		c.window = append(c.window[:0:0], c.window[excess:]...)
	}

	trackedBlocks.Set(float64(len(c.window)))

	return nil
}
