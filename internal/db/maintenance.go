package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goran-ethernal/ChainFirehose/internal/common"
	"github.com/goran-ethernal/ChainFirehose/internal/logger"
	"github.com/goran-ethernal/ChainFirehose/pkg/config"
)

// Maintenance serializes storage housekeeping against normal reads and writes.
type Maintenance interface {
	// Start begins periodic maintenance when enabled.
	Start(ctx context.Context) error
	// Stop ends periodic maintenance and waits for a running pass.
	Stop() error
	// AcquireOperationLock blocks while maintenance runs and returns the release func.
	AcquireOperationLock() func()
	// RunMaintenance runs one pass immediately.
	RunMaintenance(ctx context.Context) error
	// GetMetrics reports the outcome of past passes.
	GetMetrics() MaintenanceMetrics
}

// MaintenanceMetrics summarizes maintenance passes.
type MaintenanceMetrics struct {
	LastMaintenanceTime  time.Time
	MaintenanceCount     uint64
	LastMaintenanceError error
	LastSizeBytes        int64
}

// NoOpMaintenance is used when maintenance is not configured.
type NoOpMaintenance struct{}

func (*NoOpMaintenance) Start(context.Context) error          { return nil }
func (*NoOpMaintenance) Stop() error                          { return nil }
func (*NoOpMaintenance) AcquireOperationLock() func()         { return func() {} }
func (*NoOpMaintenance) RunMaintenance(context.Context) error { return nil }
func (*NoOpMaintenance) GetMetrics() MaintenanceMetrics       { return MaintenanceMetrics{} }

// MaintenanceCoordinator checkpoints the WAL and vacuums the archive database.
// Operations hold the read side of opLock; a maintenance pass holds the write side.
type MaintenanceCoordinator struct {
	db     *sql.DB
	config config.MaintenanceConfig
	dbPath string
	log    *logger.Logger

	opLock sync.RWMutex

	cancel context.CancelFunc
	wg     sync.WaitGroup

	metricsLock sync.Mutex
	metrics     MaintenanceMetrics
}

// NewMaintenanceCoordinator returns a coordinator for db, or a no-op when cfg is nil.
func NewMaintenanceCoordinator(
	dbPath string,
	db *sql.DB,
	cfg *config.MaintenanceConfig,
	log *logger.Logger,
) Maintenance {
	if cfg == nil {
		return &NoOpMaintenance{}
	}

	return newMaintenanceCoordinator(dbPath, db, *cfg, log)
}

func newMaintenanceCoordinator(
	dbPath string,
	db *sql.DB,
	cfg config.MaintenanceConfig,
	log *logger.Logger,
) *MaintenanceCoordinator {
	return &MaintenanceCoordinator{
		db:     db,
		config: cfg,
		dbPath: dbPath,
		log:    log.WithComponent(common.ComponentMaintenance),
	}
}

// Start runs the optional startup pass and launches the periodic worker.
func (m *MaintenanceCoordinator) Start(ctx context.Context) error {
	if !m.config.Enabled {
		m.log.Info("background maintenance is disabled")
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	if m.config.VacuumOnStartup {
		if err := m.RunMaintenance(workerCtx); err != nil {
			m.log.Warnf("startup maintenance failed: %v", err)
		}
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.maintenanceWorker(workerCtx, m.config.CheckInterval.Duration)
	}()

	m.log.Infof("background maintenance started: interval=%v checkpoint_mode=%s",
		m.config.CheckInterval.Duration, m.config.WALCheckpointMode)

	return nil
}

// Stop cancels the worker and waits for it to exit.
func (m *MaintenanceCoordinator) Stop() error {
	if m.cancel == nil {
		return nil
	}

	m.cancel()
	m.wg.Wait()
	m.log.Info("background maintenance stopped")

	return nil
}

func (m *MaintenanceCoordinator) maintenanceWorker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.RunMaintenance(ctx); err != nil {
				m.log.Warnf("periodic maintenance failed: %v", err)
			}
		}
	}
}

// RunMaintenance waits for in-flight operations, then checkpoints the WAL and vacuums.
func (m *MaintenanceCoordinator) RunMaintenance(ctx context.Context) error {
	start := time.Now()

	m.opLock.Lock()
	defer m.opLock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	before, err := DBTotalSize(m.dbPath)
	if err != nil {
		m.log.Warnf("failed to measure database size: %v", err)
	}

	var errs []error
	if err := m.walCheckpoint(); err != nil {
		errs = append(errs, fmt.Errorf("WAL checkpoint failed: %w", err))
	}
	if err := m.vacuum(); err != nil {
		errs = append(errs, err)
	}
	passErr := errors.Join(errs...)

	after, err := DBTotalSize(m.dbPath)
	if err != nil {
		m.log.Warnf("failed to measure database size: %v", err)
	}

	duration := time.Since(start)
	recordPass(passErr, duration, before, after)

	m.metricsLock.Lock()
	m.metrics.LastMaintenanceTime = time.Now().UTC()
	m.metrics.MaintenanceCount++
	m.metrics.LastMaintenanceError = passErr
	m.metrics.LastSizeBytes = after
	m.metricsLock.Unlock()

	if passErr != nil {
		m.log.Warnf("maintenance finished with errors in %v: %v", duration, passErr)
		return passErr
	}

	if before > after {
		reclaimed := uint64(before - after)
		m.log.Infof("maintenance finished in %v, reclaimed %d MB", duration, common.BytesToMB(reclaimed))
	} else {
		m.log.Debugf("maintenance finished in %v", duration)
	}

	return nil
}

func (m *MaintenanceCoordinator) walCheckpoint() error {
	var mode string
	if err := m.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		return fmt.Errorf("failed to read journal mode: %w", err)
	}
	if !strings.EqualFold(mode, "wal") {
		return nil
	}

	var busy, logFrames, checkpointed int
	query := fmt.Sprintf("PRAGMA wal_checkpoint(%s)", m.config.WALCheckpointMode)
	if err := m.db.QueryRow(query).Scan(&busy, &logFrames, &checkpointed); err != nil {
		return err
	}

	walCheckpointed(strings.ToLower(m.config.WALCheckpointMode), checkpointed)

	if busy > 0 {
		m.log.Warnf("WAL checkpoint left %d busy pages", busy)
	}
	m.log.Debugf("WAL checkpoint: mode=%s log_frames=%d checkpointed=%d",
		m.config.WALCheckpointMode, logFrames, checkpointed)

	return nil
}

func (m *MaintenanceCoordinator) vacuum() error {
	err := Vacuum(m.db)
	if err != nil && strings.Contains(err.Error(), "database is locked") {
		return fmt.Errorf("cannot vacuum: database is locked (retry later)")
	}

	return err
}

// AcquireOperationLock takes the shared side of the maintenance lock.
func (m *MaintenanceCoordinator) AcquireOperationLock() func() {
	m.opLock.RLock()
	return m.opLock.RUnlock
}

// GetMetrics returns a snapshot of the maintenance counters.
func (m *MaintenanceCoordinator) GetMetrics() MaintenanceMetrics {
	m.metricsLock.Lock()
	defer m.metricsLock.Unlock()

	return m.metrics
}
