package rpc

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	internalcommon "github.com/goran-ethernal/ChainFirehose/internal/common"
	"github.com/goran-ethernal/ChainFirehose/internal/logger"
	"github.com/goran-ethernal/ChainFirehose/internal/metrics"
	"github.com/goran-ethernal/ChainFirehose/internal/reorg"
	"github.com/goran-ethernal/ChainFirehose/internal/types"
	"github.com/goran-ethernal/ChainFirehose/pkg/config"
	"github.com/goran-ethernal/ChainFirehose/pkg/datasource"
	pkgrpc "github.com/goran-ethernal/ChainFirehose/pkg/rpc"
	"golang.org/x/sync/errgroup"
)

var _ datasource.HotDataSource = (*Source)(nil)

// Source serves blocks straight from a node: the finalized range in batches and the
// unfinalized tail by polling.
type Source struct {
	client pkgrpc.EthClient
	cfg    config.RPCConfig
	log    *logger.Logger
}

// NewSource creates a live source over client. cfg must have its defaults applied.
func NewSource(client pkgrpc.EthClient, cfg config.RPCConfig, log *logger.Logger) *Source {
	metrics.ComponentHealthSet(internalcommon.ComponentRPCSource, true)

	return &Source{
		client: client,
		cfg:    cfg,
		log:    log,
	}
}

// GetFinalizedHeight returns the height of the newest block considered final under the
// configured finality mode.
func (s *Source) GetFinalizedHeight(ctx context.Context) (uint64, error) {
	finality, err := types.ParseBlockFinality(s.cfg.Finality)
	if err != nil {
		return 0, err
	}

	tag, ok := finality.Tag()
	if !ok {
		latest, err := s.client.BlockNumber(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to get latest block number: %w", err)
		}

		return types.HeadBehind(latest, s.cfg.FinalizedLag), nil
	}

	header, err := s.client.GetBlockHeaderByTag(ctx, tag)
	if err != nil {
		return 0, fmt.Errorf("failed to get %s block header: %w", tag, err)
	}
	if header == nil {
		return 0, fmt.Errorf("%w: no %s block", ErrBlockNotFound, tag)
	}

	return uint64(header.Number), nil
}

// GetBlockHash returns the canonical hash of the block at height.
func (s *Source) GetBlockHash(ctx context.Context, height uint64) (string, error) {
	header, err := s.client.GetBlockHeader(ctx, height)
	if err != nil {
		return "", fmt.Errorf("failed to get header of block %d: %w", height, err)
	}
	if header == nil {
		return "", fmt.Errorf("%w: %d", ErrBlockNotFound, height)
	}

	return header.Hash, nil
}

// GetFinalizedBlocks fetches [req.From, req.To] in batches of the configured size. Without an
// upper bound the range ends at the finalized height read when iteration starts.
func (s *Source) GetFinalizedBlocks(ctx context.Context, req datasource.DataRequest) iter.Seq2[[]datasource.Block, error] {
	return func(yield func([]datasource.Block, error) bool) {
		var to uint64
		if req.To != nil {
			to = *req.To
		} else {
			height, err := s.GetFinalizedHeight(ctx)
			if err != nil {
				yield(nil, err)
				return
			}
			to = height
		}

		for from := req.From; from <= to; {
			end := min(to, from+s.cfg.BatchSize-1)

			blocks, err := s.fetchRange(ctx, from, end)
			if err != nil {
				yield(nil, err)
				return
			}

			for i := range blocks {
				blocks[i] = req.Apply(blocks[i])
			}

			if !yield(blocks, nil) {
				return
			}

			if end == to {
				return
			}
			from = end + 1
		}
	}
}

// GetHotBlocks follows the chain tip starting from head. Each poll re-validates the tracked
// tail, rewinds to the fork point on a reorg and fetches the blocks above it. An update is
// yielded whenever the base moved or new blocks arrived. The upper bound of req is ignored.
func (s *Source) GetHotBlocks(
	ctx context.Context,
	req datasource.DataRequest,
	head datasource.HashAndHeight,
) iter.Seq2[*datasource.HotUpdate, error] {
	return func(yield func(*datasource.HotUpdate, error) bool) {
		tracker := reorg.NewChainTracker(head, s.cfg.HotWindow, s.log.WithComponent(internalcommon.ComponentChainTracker))
		sent := head

		timer := time.NewTimer(0)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				yield(nil, ctx.Err())
				return
			case <-timer.C:
			}

			hotPolls.Inc()

			update, caughtUp, err := s.poll(ctx, tracker, req)
			if err != nil {
				yield(nil, err)
				return
			}

			if update.BaseHead != sent || len(update.Blocks) > 0 {
				if !yield(update, nil) {
					return
				}
				sent = update.Head()
			}

			if caughtUp {
				timer.Reset(s.cfg.PollInterval.Duration)
			} else {
				timer.Reset(0)
			}
		}
	}
}

// poll runs one tip iteration. caughtUp reports whether the node has nothing beyond the
// fetched range.
func (s *Source) poll(
	ctx context.Context,
	tracker *reorg.ChainTracker,
	req datasource.DataRequest,
) (update *datasource.HotUpdate, caughtUp bool, err error) {
	base, err := tracker.Verify(ctx, s)
	if err != nil {
		return nil, false, err
	}

	update = &datasource.HotUpdate{BaseHead: base}

	latest, err := s.client.BlockNumber(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get latest block number: %w", err)
	}

	if latest <= base.Height {
		return update, true, nil
	}

	end := min(latest, base.Height+s.cfg.BatchSize)

	blocks, err := s.fetchRange(ctx, base.Height+1, end)
	if err != nil {
		return nil, false, err
	}

	headers := make([]datasource.BlockHeader, 0, len(blocks))
	for i := range blocks {
		headers = append(headers, blocks[i].Header)
	}

	if err := tracker.Extend(headers); err != nil {
		if !errors.Is(err, reorg.ErrChainDiscontinuity) {
			return nil, false, err
		}

		// the tip moved while the range was fetched; the next poll re-validates it
		discardedPolls.Inc()
		s.log.Debugf("discarding poll of blocks %d-%d: %v", base.Height+1, end, err)

		return update, true, nil
	}

	for i := range blocks {
		update.Blocks = append(update.Blocks, req.Apply(blocks[i]))
	}

	return update, end == latest, nil
}

// fetchRange fetches blocks, receipts and, when enabled, traces of [from, to] concurrently and
// assembles them.
func (s *Source) fetchRange(ctx context.Context, from, to uint64) ([]datasource.Block, error) {
	nums := make([]uint64, 0, to-from+1)
	for n := from; n <= to; n++ {
		nums = append(nums, n)
	}

	var (
		blocks   []*pkgrpc.Block
		receipts [][]*pkgrpc.Receipt
		traces   [][]datasource.Trace
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		blocks, err = s.client.BatchGetBlocks(gctx, nums)
		return err
	})

	g.Go(func() error {
		var err error
		receipts, err = s.client.BatchGetBlockReceipts(gctx, nums)
		return err
	})

	if s.cfg.Traces {
		g.Go(func() error {
			var err error
			traces, err = s.client.BatchTraceBlocks(gctx, nums)
			if IsMethodNotFound(err) {
				return fmt.Errorf("node does not serve traces, disable rpc.traces: %w", err)
			}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch blocks %d-%d: %w", from, to, err)
	}

	out := make([]datasource.Block, 0, len(nums))
	for i, n := range nums {
		if blocks[i] == nil || receipts[i] == nil {
			return nil, fmt.Errorf("%w: %d", ErrBlockNotFound, n)
		}

		var blockTraces []datasource.Trace
		if traces != nil {
			blockTraces = traces[i]
		}

		block, err := assembleBlock(blocks[i], receipts[i], blockTraces)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", n, err)
		}

		out = append(out, block)
	}

	return out, nil
}
