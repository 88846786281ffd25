// Package datasource defines the contract between the stream orchestrator and the
// upstream block sources, together with the loosely typed block records they return.
package datasource

import (
	"context"
	"errors"
	"iter"
)

// ErrPrunedRange is returned when a range starts below the oldest block a source still holds.
var ErrPrunedRange = errors.New("range starts below the oldest retained block")

// DataSource serves finalized blocks.
type DataSource interface {
	// GetFinalizedHeight returns the current finalized tip height.
	GetFinalizedHeight(ctx context.Context) (uint64, error)

	// GetFinalizedBlocks returns the finalized blocks in [req.From, req.To], ascending, in batches.
	// The sequence stops early when the consumer stops ranging over it. A source that no
	// longer holds req.From yields ErrPrunedRange instead of skipping ahead.
	GetFinalizedBlocks(ctx context.Context, req DataRequest) iter.Seq2[[]Block, error]

	// GetBlockHash returns the hash of the block at the given height.
	GetBlockHash(ctx context.Context, height uint64) (string, error)
}

// HotDataSource is a DataSource that can also follow the unfinalized, reorg-prone tip.
type HotDataSource interface {
	DataSource

	// GetHotBlocks follows the chain tip starting after head. Every update is anchored on
	// a base head; a base head different from the last tip seen by the consumer signals a reorg.
	GetHotBlocks(ctx context.Context, req DataRequest, head HashAndHeight) iter.Seq2[*HotUpdate, error]
}

// HashAndHeight identifies an accepted chain tip.
type HashAndHeight struct {
	Hash   string `json:"hash"`
	Height uint64 `json:"height"`
}

// HotUpdate is one step of the hot tail: the blocks built on top of BaseHead.
type HotUpdate struct {
	BaseHead HashAndHeight
	Blocks   []Block
}

// Head returns the tip after applying the update.
func (u *HotUpdate) Head() HashAndHeight {
	if len(u.Blocks) == 0 {
		return u.BaseHead
	}

	last := u.Blocks[len(u.Blocks)-1].Header

	return HashAndHeight{Hash: last.Hash, Height: last.Number}
}
