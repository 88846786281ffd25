// Package archive stores finalized raw blocks in SQLite and serves them back as a
// finalized data source.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	internalcommon "github.com/goran-ethernal/ChainFirehose/internal/common"
	"github.com/goran-ethernal/ChainFirehose/internal/db"
	"github.com/goran-ethernal/ChainFirehose/internal/logger"
	"github.com/goran-ethernal/ChainFirehose/internal/metrics"
	"github.com/goran-ethernal/ChainFirehose/internal/migrations"
	"github.com/goran-ethernal/ChainFirehose/pkg/archive"
	"github.com/goran-ethernal/ChainFirehose/pkg/config"
	"github.com/goran-ethernal/ChainFirehose/pkg/datasource"
	"github.com/russross/meddler"
)

// Compile-time check to ensure Archive implements archive.Store interface.
var _ archive.Store = (*Archive)(nil)

const (
	metricsDB = "archive"
	table     = "archive_blocks"
)

// archiveBlock is a row of the archive_blocks table.
type archiveBlock struct {
	BlockNumber uint64           `meddler:"block_number"`
	BlockHash   string           `meddler:"block_hash"`
	ParentHash  string           `meddler:"parent_hash"`
	Payload     datasource.Block `meddler:"payload,json"`
	ArchivedAt  int64            `meddler:"archived_at"`
}

// Archive is a SQLite table of finalized blocks keyed by number. Payloads are the raw
// blocks as JSON.
type Archive struct {
	db          *sql.DB
	pageSize    uint64
	maintenance db.Maintenance
	log         *logger.Logger
}

// Open opens the archive database described by cfg and migrates its schema.
// cfg must have its defaults applied.
func Open(cfg config.ArchiveConfig, log *logger.Logger) (*Archive, error) {
	log = log.WithComponent(internalcommon.ComponentArchive)

	database, err := db.NewSQLiteDBFromConfig(cfg.DB)
	if err != nil {
		return nil, err
	}

	if err := migrations.RunMigrations(log, database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate archive database: %w", err)
	}

	maintenance := db.NewMaintenanceCoordinator(cfg.DB.Path, database, cfg.Maintenance, log)

	return New(database, cfg.PageSize, maintenance, log), nil
}

// New wraps an already migrated database.
func New(database *sql.DB, pageSize uint64, maintenance db.Maintenance, log *logger.Logger) *Archive {
	if maintenance == nil {
		maintenance = &db.NoOpMaintenance{}
	}
	if pageSize == 0 {
		pageSize = 1
	}

	metrics.ComponentHealthSet(internalcommon.ComponentArchive, true)

	return &Archive{
		db:          database,
		pageSize:    pageSize,
		maintenance: maintenance,
		log:         log,
	}
}

// Start launches background maintenance.
func (a *Archive) Start(ctx context.Context) error {
	return a.maintenance.Start(ctx)
}

// Close stops maintenance and closes the database.
func (a *Archive) Close() error {
	if err := a.maintenance.Stop(); err != nil {
		a.log.Warnf("failed to stop maintenance: %v", err)
	}

	metrics.ComponentHealthSet(internalcommon.ComponentArchive, false)

	return a.db.Close()
}

// GetFinalizedHeight returns the highest archived block number, or 0 for an empty archive.
func (a *Archive) GetFinalizedHeight(ctx context.Context) (uint64, error) {
	_, newest, _, err := a.bounds(ctx)
	return newest, err
}

// GetFinalizedBlocks pages through the archived part of [req.From, req.To]. Pages without
// any stored block are skipped. A start below the oldest archived block yields
// datasource.ErrPrunedRange.
func (a *Archive) GetFinalizedBlocks(ctx context.Context, req datasource.DataRequest) iter.Seq2[[]datasource.Block, error] {
	return func(yield func([]datasource.Block, error) bool) {
		oldest, newest, ok, err := a.bounds(ctx)
		if err != nil {
			yield(nil, err)
			return
		}
		if !ok {
			return
		}

		if req.From < oldest {
			yield(nil, fmt.Errorf("%w: block %d, oldest archived is %d", datasource.ErrPrunedRange, req.From, oldest))
			return
		}

		from := req.From
		to := newest
		if req.To != nil {
			to = min(to, *req.To)
		}

		for from <= to {
			end := min(to, from+a.pageSize-1)

			blocks, err := a.readRange(ctx, from, end)
			if err != nil {
				yield(nil, err)
				return
			}

			if len(blocks) > 0 {
				for i := range blocks {
					blocks[i] = req.Apply(blocks[i])
				}
				if !yield(blocks, nil) {
					return
				}
			}

			if end == to {
				return
			}
			from = end + 1
		}
	}
}

// GetBlockHash returns the hash of the archived block at height.
func (a *Archive) GetBlockHash(ctx context.Context, height uint64) (string, error) {
	var hash string
	err := a.queryRow(ctx, "get_hash",
		`SELECT block_hash FROM archive_blocks WHERE block_number = ?`, []any{height}, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %d", ErrBlockNotFound, height)
	}

	return hash, err
}

// GetBlockNumber returns the height of the archived block with the given hash.
func (a *Archive) GetBlockNumber(ctx context.Context, hash string) (uint64, error) {
	var number uint64
	err := a.queryRow(ctx, "get_number",
		`SELECT block_number FROM archive_blocks WHERE block_hash = ?`, []any{strings.ToLower(hash)}, &number)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", ErrBlockNotFound, hash)
	}

	return number, err
}

// LastBlock returns the newest archived block.
func (a *Archive) LastBlock(ctx context.Context) (datasource.HashAndHeight, bool, error) {
	var head datasource.HashAndHeight
	err := a.queryRow(ctx, "last_block",
		`SELECT block_number, block_hash FROM archive_blocks ORDER BY block_number DESC LIMIT 1`,
		nil, &head.Height, &head.Hash)
	if errors.Is(err, sql.ErrNoRows) {
		return datasource.HashAndHeight{}, false, nil
	}
	if err != nil {
		return datasource.HashAndHeight{}, false, err
	}

	return head, true, nil
}

// StoreBlocks appends blocks in one transaction. blocks must be ascending and linked by
// parent hash, and the first must build on the newest archived block.
func (a *Archive) StoreBlocks(ctx context.Context, blocks []datasource.Block) error {
	if len(blocks) == 0 {
		return nil
	}

	unlock := a.maintenance.AcquireOperationLock()
	defer unlock()

	start := time.Now()
	metrics.DBQueryInc(metricsDB, "store")
	defer func() { metrics.DBQueryDuration(metricsDB, "store", time.Since(start)) }()

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			a.log.Errorf("failed to rollback transaction: %v", err)
		}
	}()

	var (
		prev    datasource.HashAndHeight
		hasPrev bool
	)
	err = tx.QueryRowContext(ctx,
		`SELECT block_number, block_hash FROM archive_blocks ORDER BY block_number DESC LIMIT 1`,
	).Scan(&prev.Height, &prev.Hash)
	switch {
	case err == nil:
		hasPrev = true
	case !errors.Is(err, sql.ErrNoRows):
		metrics.DBErrorsInc(metricsDB, "query")
		return fmt.Errorf("failed to read archive head: %w", err)
	}

	now := time.Now().Unix()
	for i := range blocks {
		h := blocks[i].Header

		if hasPrev && (h.Number != prev.Height+1 || !strings.EqualFold(h.ParentHash, prev.Hash)) {
			return fmt.Errorf("%w: block %d (parent %s) does not follow block %d (%s)",
				ErrChainDiscontinuity, h.Number, h.ParentHash, prev.Height, prev.Hash)
		}

		row := &archiveBlock{
			BlockNumber: h.Number,
			BlockHash:   strings.ToLower(h.Hash),
			ParentHash:  strings.ToLower(h.ParentHash),
			Payload:     blocks[i],
			ArchivedAt:  now,
		}
		if err := meddler.Insert(tx, table, row); err != nil {
			metrics.DBErrorsInc(metricsDB, "insert")
			return fmt.Errorf("failed to insert block %d: %w", h.Number, err)
		}

		prev = datasource.HashAndHeight{Hash: h.Hash, Height: h.Number}
		hasPrev = true
	}

	if err := tx.Commit(); err != nil {
		metrics.DBErrorsInc(metricsDB, "commit")
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.ArchivedHeightSet(prev.Height)
	a.log.Debugf("archived blocks %d-%d", blocks[0].Header.Number, prev.Height)

	return nil
}

// Prune deletes every block below keepFrom.
func (a *Archive) Prune(ctx context.Context, keepFrom uint64) (int64, error) {
	unlock := a.maintenance.AcquireOperationLock()
	defer unlock()

	metrics.DBQueryInc(metricsDB, "prune")

	res, err := a.db.ExecContext(ctx, `DELETE FROM archive_blocks WHERE block_number < ?`, keepFrom)
	if err != nil {
		metrics.DBErrorsInc(metricsDB, "delete")
		return 0, fmt.Errorf("failed to prune blocks below %d: %w", keepFrom, err)
	}

	pruned, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned blocks: %w", err)
	}

	if pruned > 0 {
		metrics.BlocksPrunedInc(pruned)
		a.log.Infof("pruned %d blocks below %d", pruned, keepFrom)
	}

	return pruned, nil
}

// Stats reports the archived range and the bytes held by live database pages. Pages
// released by Prune are not counted even before they are vacuumed.
func (a *Archive) Stats(ctx context.Context) (archive.Stats, error) {
	oldest, newest, ok, err := a.bounds(ctx)
	if err != nil {
		return archive.Stats{}, err
	}

	var stats archive.Stats
	if ok {
		stats.Oldest = oldest
		stats.Newest = newest
		if err := a.queryRow(ctx, "count", `SELECT COUNT(*) FROM archive_blocks`, nil, &stats.Count); err != nil {
			return archive.Stats{}, err
		}
	}

	var pageCount, freePages, pageSize int64
	if err := a.queryRow(ctx, "page_count", `PRAGMA page_count`, nil, &pageCount); err != nil {
		return archive.Stats{}, err
	}
	if err := a.queryRow(ctx, "freelist_count", `PRAGMA freelist_count`, nil, &freePages); err != nil {
		return archive.Stats{}, err
	}
	if err := a.queryRow(ctx, "page_size", `PRAGMA page_size`, nil, &pageSize); err != nil {
		return archive.Stats{}, err
	}
	stats.SizeBytes = (pageCount - freePages) * pageSize

	return stats, nil
}

// bounds returns the oldest and newest archived numbers. ok is false when empty.
func (a *Archive) bounds(ctx context.Context) (oldest, newest uint64, ok bool, err error) {
	var lo, hi sql.NullInt64
	if err := a.queryRow(ctx, "bounds",
		`SELECT MIN(block_number), MAX(block_number) FROM archive_blocks`, nil, &lo, &hi); err != nil {
		return 0, 0, false, err
	}
	if !hi.Valid {
		return 0, 0, false, nil
	}

	return uint64(lo.Int64), uint64(hi.Int64), true, nil
}

func (a *Archive) readRange(ctx context.Context, from, to uint64) ([]datasource.Block, error) {
	unlock := a.maintenance.AcquireOperationLock()
	defer unlock()

	start := time.Now()
	metrics.DBQueryInc(metricsDB, "read_range")
	defer func() { metrics.DBQueryDuration(metricsDB, "read_range", time.Since(start)) }()

	var rows []*archiveBlock
	err := meddler.QueryAll(a.db, &rows, `
		SELECT * FROM archive_blocks
		WHERE block_number >= ? AND block_number <= ?
		ORDER BY block_number ASC
	`, from, to)
	if err != nil {
		metrics.DBErrorsInc(metricsDB, "query")
		return nil, fmt.Errorf("failed to query blocks %d-%d: %w", from, to, err)
	}

	blocks := make([]datasource.Block, 0, len(rows))
	for _, row := range rows {
		blocks = append(blocks, row.Payload)
	}

	return blocks, nil
}

func (a *Archive) queryRow(ctx context.Context, operation, query string, args []any, dest ...any) error {
	unlock := a.maintenance.AcquireOperationLock()
	defer unlock()

	metrics.DBQueryInc(metricsDB, operation)

	err := a.db.QueryRowContext(ctx, query, args...).Scan(dest...)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		metrics.DBErrorsInc(metricsDB, "query")
		return fmt.Errorf("archive %s query failed: %w", operation, err)
	}

	return err
}
