package db

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goran-ethernal/ChainFirehose/internal/common"
	"github.com/goran-ethernal/ChainFirehose/internal/logger"
	"github.com/goran-ethernal/ChainFirehose/pkg/config"
	"github.com/stretchr/testify/require"
)

func setupMaintenanceTestDB(t *testing.T) (*sql.DB, string) {
	t.Helper()

	dbConfig := config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "archive.db"), JournalMode: "WAL"}
	dbConfig.ApplyDefaults()

	db, err := NewSQLiteDBFromConfig(dbConfig)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS payloads (id INTEGER PRIMARY KEY, data TEXT)`)
	require.NoError(t, err)

	return db, dbConfig.Path
}

func insertPayloads(t *testing.T, db *sql.DB, n int) {
	t.Helper()

	for range n {
		_, err := db.Exec("INSERT INTO payloads (data) VALUES (?)", "block payload with some content")
		require.NoError(t, err)
	}
}

func newTestCoordinator(db *sql.DB, dbPath string, cfg config.MaintenanceConfig) *MaintenanceCoordinator {
	return newMaintenanceCoordinator(dbPath, db, cfg, logger.NewNopLogger())
}

func TestNewMaintenanceCoordinator(t *testing.T) {
	db, dbPath := setupMaintenanceTestDB(t)

	require.IsType(t, &NoOpMaintenance{}, NewMaintenanceCoordinator(dbPath, db, nil, logger.NewNopLogger()))

	cfg := &config.MaintenanceConfig{Enabled: true, WALCheckpointMode: "TRUNCATE"}
	m := NewMaintenanceCoordinator(dbPath, db, cfg, logger.NewNopLogger())
	require.IsType(t, &MaintenanceCoordinator{}, m)
}

func TestNoOpMaintenance(t *testing.T) {
	m := &NoOpMaintenance{}

	require.NoError(t, m.Start(context.Background()))
	require.NoError(t, m.RunMaintenance(context.Background()))
	m.AcquireOperationLock()()
	require.NoError(t, m.Stop())
	require.Zero(t, m.GetMetrics().MaintenanceCount)
}

func TestMaintenanceCoordinator_RunMaintenance(t *testing.T) {
	db, dbPath := setupMaintenanceTestDB(t)
	insertPayloads(t, db, 1000)

	walInfo, err := os.Stat(dbPath + "-wal")
	require.NoError(t, err)
	require.Positive(t, walInfo.Size())

	coordinator := newTestCoordinator(db, dbPath, config.MaintenanceConfig{WALCheckpointMode: "TRUNCATE"})
	require.NoError(t, coordinator.RunMaintenance(context.Background()))

	metrics := coordinator.GetMetrics()
	require.Equal(t, uint64(1), metrics.MaintenanceCount)
	require.False(t, metrics.LastMaintenanceTime.IsZero())
	require.NoError(t, metrics.LastMaintenanceError)
	require.Positive(t, metrics.LastSizeBytes)

	walInfo, err = os.Stat(dbPath + "-wal")
	if err == nil {
		require.Zero(t, walInfo.Size())
	}
}

func TestMaintenanceCoordinator_ContextCancellation(t *testing.T) {
	db, dbPath := setupMaintenanceTestDB(t)
	coordinator := newTestCoordinator(db, dbPath, config.MaintenanceConfig{WALCheckpointMode: "TRUNCATE"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, coordinator.RunMaintenance(ctx), context.Canceled)
	require.Zero(t, coordinator.GetMetrics().MaintenanceCount)
}

func TestMaintenanceCoordinator_MaintenanceWaitsForOperations(t *testing.T) {
	db, dbPath := setupMaintenanceTestDB(t)
	coordinator := newTestCoordinator(db, dbPath, config.MaintenanceConfig{WALCheckpointMode: "PASSIVE"})

	unlock := coordinator.AcquireOperationLock()

	var finished atomic.Bool
	done := make(chan struct{})
	go func() {
		defer close(done)
		require.NoError(t, coordinator.RunMaintenance(context.Background()))
		finished.Store(true)
	}()

	time.Sleep(50 * time.Millisecond)
	require.False(t, finished.Load(), "maintenance must wait for the operation lock")

	unlock()
	<-done
	require.True(t, finished.Load())
}

func TestMaintenanceCoordinator_BackgroundMaintenance(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.MaintenanceConfig
		wait     time.Duration
		expected func(t *testing.T, count uint64)
	}{
		{
			name: "periodic",
			cfg: config.MaintenanceConfig{
				Enabled:           true,
				CheckInterval:     common.NewDuration(50 * time.Millisecond),
				WALCheckpointMode: "PASSIVE",
			},
			wait:     250 * time.Millisecond,
			expected: func(t *testing.T, count uint64) { require.Positive(t, count) },
		},
		{
			name: "startup only",
			cfg: config.MaintenanceConfig{
				Enabled:           true,
				CheckInterval:     common.NewDuration(time.Hour),
				VacuumOnStartup:   true,
				WALCheckpointMode: "TRUNCATE",
			},
			expected: func(t *testing.T, count uint64) { require.Equal(t, uint64(1), count) },
		},
		{
			name: "disabled",
			cfg: config.MaintenanceConfig{
				CheckInterval:     common.NewDuration(50 * time.Millisecond),
				WALCheckpointMode: "TRUNCATE",
			},
			wait:     150 * time.Millisecond,
			expected: func(t *testing.T, count uint64) { require.Zero(t, count) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, dbPath := setupMaintenanceTestDB(t)
			insertPayloads(t, db, 100)

			coordinator := newTestCoordinator(db, dbPath, tt.cfg)
			require.NoError(t, coordinator.Start(t.Context()))

			time.Sleep(tt.wait)
			require.NoError(t, coordinator.Stop())

			tt.expected(t, coordinator.GetMetrics().MaintenanceCount)
		})
	}
}

func TestMaintenanceCoordinator_ZeroIntervalPanics(t *testing.T) {
	db, dbPath := setupMaintenanceTestDB(t)
	coordinator := newTestCoordinator(db, dbPath, config.MaintenanceConfig{Enabled: true})

	require.Panics(t, func() {
		coordinator.maintenanceWorker(context.Background(), 0)
	})
}

func TestMaintenanceCoordinator_ConcurrentOperationsDuringMaintenance(t *testing.T) {
	db, dbPath := setupMaintenanceTestDB(t)
	coordinator := newTestCoordinator(db, dbPath, config.MaintenanceConfig{WALCheckpointMode: "PASSIVE"})

	const (
		workers   = 20
		perWorker = 5
	)

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
	)

	for range workers {
		wg.Go(func() {
			for range perWorker {
				unlock := coordinator.AcquireOperationLock()
				_, err := db.Exec("INSERT INTO payloads (data) VALUES (?)", "payload")
				unlock()

				if err == nil {
					succeeded.Add(1)
				}
				time.Sleep(time.Millisecond)
			}
		})
	}

	wg.Go(func() {
		for range 3 {
			require.NoError(t, coordinator.RunMaintenance(context.Background()))
		}
	})

	wg.Wait()

	require.Equal(t, int32(workers*perWorker), succeeded.Load())
	require.Equal(t, uint64(3), coordinator.GetMetrics().MaintenanceCount)
}
