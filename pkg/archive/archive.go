package archive

import (
	"context"

	"github.com/goran-ethernal/ChainFirehose/pkg/datasource"
)

// Store is the archive of finalized blocks: readable as a datasource.DataSource and
// appendable by the ingester.
type Store interface {
	datasource.DataSource

	// StoreBlocks appends contiguous blocks atomically. The first block must build on the
	// last stored one.
	StoreBlocks(ctx context.Context, blocks []datasource.Block) error

	// LastBlock returns the newest stored block. ok is false when the archive is empty.
	LastBlock(ctx context.Context) (head datasource.HashAndHeight, ok bool, err error)

	// GetBlockNumber returns the height of the stored block with the given hash.
	GetBlockNumber(ctx context.Context, hash string) (uint64, error)

	// Prune deletes every block below keepFrom and returns how many were removed.
	Prune(ctx context.Context, keepFrom uint64) (int64, error)

	// Stats reports the stored range and the on-disk size.
	Stats(ctx context.Context) (Stats, error)
}

// Stats describes the archive contents.
type Stats struct {
	Oldest    uint64 `json:"oldest"`
	Newest    uint64 `json:"newest"`
	Count     uint64 `json:"count"`
	SizeBytes int64  `json:"size_bytes"`
}
