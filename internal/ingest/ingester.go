// Package ingest copies finalized blocks from the live node into the archive.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	internalcommon "github.com/goran-ethernal/ChainFirehose/internal/common"
	"github.com/goran-ethernal/ChainFirehose/internal/logger"
	"github.com/goran-ethernal/ChainFirehose/internal/metrics"
	"github.com/goran-ethernal/ChainFirehose/pkg/archive"
	"github.com/goran-ethernal/ChainFirehose/pkg/config"
	"github.com/goran-ethernal/ChainFirehose/pkg/datasource"
)

// pruneFraction is the share of archived blocks dropped per pass while the archive is
// above its size limit.
const pruneFraction = 10

// Ingester keeps the archive in step with the node's finalized head.
type Ingester struct {
	source    datasource.DataSource
	store     archive.Store
	cfg       config.IngestConfig
	retention *config.RetentionPolicyConfig
	log       *logger.Logger
}

// New creates an ingester. cfg must have its defaults applied; retention may be nil.
func New(
	source datasource.DataSource,
	store archive.Store,
	cfg config.IngestConfig,
	retention *config.RetentionPolicyConfig,
	log *logger.Logger,
) (*Ingester, error) {
	if source == nil {
		return nil, errors.New("finalized source is required")
	}
	if store == nil {
		return nil, errors.New("archive store is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}

	return &Ingester{
		source:    source,
		store:     store,
		cfg:       cfg,
		retention: retention,
		log:       log.WithComponent(internalcommon.ComponentIngester),
	}, nil
}

// Run ingests until ctx is cancelled or a batch cannot be archived. Once caught up it
// waits the configured poll interval before checking the finalized head again.
func (i *Ingester) Run(ctx context.Context) error {
	i.log.Infow("starting ingester",
		"start_block", i.cfg.StartBlock,
		"batch_size", i.cfg.BatchSize,
		"poll_interval", i.cfg.PollInterval.Duration,
	)
	metrics.ComponentHealthSet(internalcommon.ComponentIngester, true)
	defer metrics.ComponentHealthSet(internalcommon.ComponentIngester, false)

	for {
		caughtUp, err := i.Step(ctx)
		if err != nil {
			if ctx.Err() != nil {
				i.log.Info("ingester stopped")
				return ctx.Err()
			}

			metrics.ErrorsInc(internalcommon.ComponentIngester, "fatal")
			return err
		}

		if !caughtUp {
			continue
		}

		select {
		case <-ctx.Done():
			i.log.Info("ingester stopped")
			return ctx.Err()
		case <-time.After(i.cfg.PollInterval.Duration):
		}
	}
}

// Step archives at most one batch past the archived head and applies the retention
// policy. caughtUp reports whether the archive reached the finalized head.
func (i *Ingester) Step(ctx context.Context) (caughtUp bool, err error) {
	head, ok, err := i.store.LastBlock(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read archive head: %w", err)
	}

	next := i.cfg.StartBlock
	if ok {
		next = head.Height + 1
	}

	finalized, err := i.source.GetFinalizedHeight(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get finalized height: %w", err)
	}

	if next > finalized {
		return true, nil
	}

	to := min(finalized, next+i.cfg.BatchSize-1)
	start := time.Now()

	for blocks, err := range i.source.GetFinalizedBlocks(ctx, datasource.DataRequest{From: next, To: &to}) {
		if err != nil {
			return false, fmt.Errorf("failed to fetch blocks %d-%d: %w", next, to, err)
		}
		if len(blocks) == 0 {
			continue
		}

		if err := i.store.StoreBlocks(ctx, blocks); err != nil {
			return false, fmt.Errorf("failed to archive blocks %d-%d: %w",
				blocks[0].Header.Number, blocks[len(blocks)-1].Header.Number, err)
		}

		metrics.BlocksIngestedInc(len(blocks))
	}

	metrics.IngestBatchTimeLog(time.Since(start))
	i.log.Debugf("archived blocks %d-%d, finalized head %d", next, to, finalized)

	if err := i.applyRetention(ctx); err != nil {
		return false, err
	}

	return to == finalized, nil
}

// applyRetention prunes the oldest blocks once the archive exceeds max_blocks, and a
// tenth of the archive per pass while it exceeds max_db_size_mb. The newest block is
// always kept.
func (i *Ingester) applyRetention(ctx context.Context) error {
	if !i.retention.IsEnabled() {
		return nil
	}

	stats, err := i.store.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to read archive stats: %w", err)
	}
	if stats.Count == 0 {
		return nil
	}

	keepFrom := stats.Oldest

	if limit := i.retention.MaxBlocks; limit > 0 && stats.Count > limit {
		keepFrom = max(keepFrom, stats.Newest-limit+1)
	}

	if limit := i.retention.MaxDBSizeMB; limit > 0 && uint64(stats.SizeBytes) > internalcommon.MBToBytes(limit) {
		remaining := stats.Newest - keepFrom + 1
		keepFrom += max(1, remaining/pruneFraction)
		i.log.Warnf("archive size %d MB exceeds limit %d MB",
			internalcommon.BytesToMB(uint64(stats.SizeBytes)), limit)
	}

	keepFrom = min(keepFrom, stats.Newest)
	if keepFrom <= stats.Oldest {
		return nil
	}

	if _, err := i.store.Prune(ctx, keepFrom); err != nil {
		return fmt.Errorf("failed to apply retention policy: %w", err)
	}

	return nil
}
