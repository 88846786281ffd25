package rpc

import (
	"context"

	"github.com/goran-ethernal/ChainFirehose/pkg/datasource"
)

// EthClient defines the node calls the live source is built on.
// This abstraction allows for easier testing and alternative implementations.
type EthClient interface {
	// Close closes the RPC client connection.
	Close()

	// BlockNumber returns the height of the latest block.
	BlockNumber(ctx context.Context) (uint64, error)

	// GetBlockHeader retrieves the header for a specific block number, nil if the node has no such block.
	GetBlockHeader(ctx context.Context, blockNum uint64) (*Header, error)

	// GetBlockHeaderByTag retrieves the header of a tagged block ("latest", "safe", "finalized").
	GetBlockHeaderByTag(ctx context.Context, tag string) (*Header, error)

	// BatchGetBlocks retrieves blocks with their transactions in a single batch call.
	BatchGetBlocks(ctx context.Context, blockNums []uint64) ([]*Block, error)

	// BatchGetBlockReceipts retrieves the receipts of every transaction of each block.
	BatchGetBlockReceipts(ctx context.Context, blockNums []uint64) ([][]*Receipt, error)

	// BatchTraceBlocks retrieves the parity-style traces of each block.
	BatchTraceBlocks(ctx context.Context, blockNums []uint64) ([][]datasource.Trace, error)
}
