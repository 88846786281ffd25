package rpc

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goran-ethernal/ChainFirehose/pkg/config"
	"github.com/goran-ethernal/ChainFirehose/pkg/datasource"
	pkgrpc "github.com/goran-ethernal/ChainFirehose/pkg/rpc"
)

// Compile-time check to ensure Client implements pkgrpc.EthClient interface.
var _ pkgrpc.EthClient = (*Client)(nil)

const maxBatch = 100

// Client wraps the Ethereum RPC client with the batch calls the live source needs.
// Every call is retried according to the retry configuration and recorded in metrics.
type Client struct {
	rpc   *rpc.Client
	retry *config.RetryConfig
}

// NewClient creates a new RPC client connected to the given endpoint.
// A nil retry configuration executes every call once.
func NewClient(ctx context.Context, endpoint string, retry *config.RetryConfig) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	return &Client{
		rpc:   rpcClient,
		retry: retry,
	}, nil
}

// Close closes the RPC client connection.
func (c *Client) Close() {
	c.rpc.Close()
}

// BlockNumber returns the height of the latest block.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	var result hexutil.Uint64
	if err := c.call(ctx, "eth_blockNumber", &result); err != nil {
		return 0, err
	}

	return uint64(result), nil
}

// GetBlockHeader retrieves the header for a specific block number.
func (c *Client) GetBlockHeader(ctx context.Context, blockNum uint64) (*pkgrpc.Header, error) {
	return c.GetBlockHeaderByTag(ctx, toBlockNumArg(blockNum))
}

// GetBlockHeaderByTag retrieves the header of a tagged block.
func (c *Client) GetBlockHeaderByTag(ctx context.Context, tag string) (*pkgrpc.Header, error) {
	var header *pkgrpc.Header
	if err := c.call(ctx, "eth_getBlockByNumber", &header, tag, false); err != nil {
		return nil, err
	}

	return header, nil
}

// BatchGetBlocks retrieves blocks with full transactions in batch calls.
func (c *Client) BatchGetBlocks(ctx context.Context, blockNums []uint64) ([]*pkgrpc.Block, error) {
	return batchByNumber[*pkgrpc.Block](ctx, c, "eth_getBlockByNumber", blockNums, true)
}

// BatchGetBlockReceipts retrieves the receipts of each block in batch calls.
func (c *Client) BatchGetBlockReceipts(ctx context.Context, blockNums []uint64) ([][]*pkgrpc.Receipt, error) {
	return batchByNumber[[]*pkgrpc.Receipt](ctx, c, "eth_getBlockReceipts", blockNums)
}

// BatchTraceBlocks retrieves the traces of each block in batch calls.
func (c *Client) BatchTraceBlocks(ctx context.Context, blockNums []uint64) ([][]datasource.Trace, error) {
	return batchByNumber[[]datasource.Trace](ctx, c, "trace_block", blockNums)
}

// batchByNumber issues one call per block number, at most maxBatch per batch request.
func batchByNumber[T any](ctx context.Context, c *Client, method string, blockNums []uint64, extra ...any) ([]T, error) {
	allResults := make([]T, 0, len(blockNums))

	for i := 0; i < len(blockNums); i += maxBatch {
		end := min(i+maxBatch, len(blockNums))
		chunk := blockNums[i:end]

		results := make([]T, len(chunk))
		batch := make([]rpc.BatchElem, len(chunk))

		for j, blockNum := range chunk {
			batch[j] = rpc.BatchElem{
				Method: method,
				Args:   append([]any{toBlockNumArg(blockNum)}, extra...),
				Result: &results[j],
			}
		}

		if err := c.batch(ctx, method, batch); err != nil {
			return nil, err
		}

		allResults = append(allResults, results...)
	}

	return allResults, nil
}

func (c *Client) call(ctx context.Context, method string, result any, args ...any) error {
	return withRetry(ctx, c.retry, method, func() error {
		start := time.Now()
		err := c.rpc.CallContext(ctx, result, method, args...)
		observeCall(method, 1, start, err)
		if err != nil {
			return fmt.Errorf("%s: %w", method, err)
		}

		return nil
	})
}

func (c *Client) batch(ctx context.Context, method string, batch []rpc.BatchElem) error {
	return withRetry(ctx, c.retry, method, func() error {
		start := time.Now()
		err := c.rpc.BatchCallContext(ctx, batch)
		observeCall(method, len(batch), start, err)
		if err != nil {
			return fmt.Errorf("%s batch: %w", method, err)
		}

		for _, elem := range batch {
			if elem.Error != nil {
				observeError(method, elem.Error)
				return fmt.Errorf("%s(%v): %w", method, elem.Args[0], elem.Error)
			}
		}

		return nil
	})
}

// toBlockNumArg converts a block number to hex format.
func toBlockNumArg(blockNum uint64) string {
	return fmt.Sprintf("0x%x", blockNum)
}
