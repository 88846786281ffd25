package reorg

import (
	"context"

	"github.com/goran-ethernal/ChainFirehose/pkg/datasource"
)

// HashSource resolves the canonical hash of a block height.
type HashSource interface {
	GetBlockHash(ctx context.Context, height uint64) (string, error)
}

// Tracker follows the unfinalized tail of the chain and locates fork points.
type Tracker interface {
	// Head returns the tip of the tracked chain.
	Head() datasource.HashAndHeight

	// Verify compares the tracked tail with the node's canonical chain and rewinds to the
	// most recent block both agree on. It returns the resulting tip.
	Verify(ctx context.Context, src HashSource) (datasource.HashAndHeight, error)

	// Extend appends headers that build on the tracked tip.
	Extend(headers []datasource.BlockHeader) error
}
