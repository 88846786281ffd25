package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/goran-ethernal/ChainFirehose/internal/common"
	"github.com/goran-ethernal/ChainFirehose/internal/logger"
	"github.com/goran-ethernal/ChainFirehose/internal/types"
)

// Config represents the complete configuration for ChainFirehose.
type Config struct {
	// RPC contains the live node configuration
	RPC RPCConfig `yaml:"rpc" json:"rpc" toml:"rpc"`

	// Archive contains the block archive configuration
	Archive ArchiveConfig `yaml:"archive" json:"archive" toml:"archive"`

	// GRPC contains the firehose gRPC server configuration
	GRPC GRPCConfig `yaml:"grpc" json:"grpc" toml:"grpc"`

	// API contains optional HTTP API configuration
	API *APIConfig `yaml:"api,omitempty" json:"api,omitempty" toml:"api,omitempty"`

	// Logging contains logging configuration
	Logging *LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty" toml:"logging,omitempty"`

	// Metrics contains Prometheus metrics configuration
	Metrics *MetricsConfig `yaml:"metrics,omitempty" json:"metrics,omitempty" toml:"metrics,omitempty"`
}

// RPCConfig represents the configuration of the live node source.
type RPCConfig struct {
	// URL is the Ethereum RPC endpoint URL
	URL string `yaml:"url" json:"url" toml:"url"`

	// Finality specifies the finality mode: "finalized", "safe", or "latest"
	Finality string `yaml:"finality" json:"finality" toml:"finality"`

	// FinalizedLag is the number of blocks behind head to consider finalized
	// Only used when Finality is set to "latest"
	FinalizedLag uint64 `yaml:"finalized_lag" json:"finalized_lag" toml:"finalized_lag"`

	// Traces enables trace_block calls for call traces
	Traces bool `yaml:"traces" json:"traces" toml:"traces"`

	// BatchSize is the number of blocks fetched per batch call
	BatchSize uint64 `yaml:"batch_size" json:"batch_size" toml:"batch_size"`

	// PollInterval is how often the chain tip is polled
	PollInterval common.Duration `yaml:"poll_interval" json:"poll_interval" toml:"poll_interval"`

	// HotWindow is the number of unfinalized blocks tracked for reorg detection
	HotWindow uint64 `yaml:"hot_window" json:"hot_window" toml:"hot_window"`

	// Retry contains RPC retry configuration with exponential backoff
	Retry *RetryConfig `yaml:"retry,omitempty" json:"retry,omitempty" toml:"retry,omitempty"`
}

// ApplyDefaults sets default values for optional RPC configuration fields.
func (r *RPCConfig) ApplyDefaults() {
	if r.Finality == "" {
		r.Finality = types.FinalityFinalized.String()
	}
	if r.BatchSize == 0 {
		r.BatchSize = 50
	}
	if r.PollInterval.Duration == 0 {
		r.PollInterval = common.NewDuration(2 * time.Second) //nolint:mnd
	}
	if r.HotWindow == 0 {
		r.HotWindow = 128
	}
	if r.Retry != nil {
		r.Retry.ApplyDefaults()
	}
}

// Validate checks if the RPC configuration is valid.
func (r *RPCConfig) Validate() error {
	if r.URL == "" {
		return fmt.Errorf("rpc.url is required")
	}

	if _, err := types.ParseBlockFinality(r.Finality); err != nil {
		return fmt.Errorf("rpc.finality: %w", err)
	}

	if r.BatchSize == 0 {
		return fmt.Errorf("rpc.batch_size must be greater than zero")
	}

	if r.HotWindow == 0 {
		return fmt.Errorf("rpc.hot_window must be greater than zero")
	}

	if r.Retry != nil && r.Retry.MaxAttempts < 1 {
		return fmt.Errorf("rpc.retry.max_attempts must be at least 1")
	}

	return nil
}

// RetryConfig represents RPC retry configuration with exponential backoff.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial request)
	MaxAttempts int `yaml:"max_attempts" json:"max_attempts" toml:"max_attempts"`

	// InitialBackoff is the initial backoff duration before first retry
	InitialBackoff common.Duration `yaml:"initial_backoff" json:"initial_backoff" toml:"initial_backoff"`

	// MaxBackoff is the maximum backoff duration
	MaxBackoff common.Duration `yaml:"max_backoff" json:"max_backoff" toml:"max_backoff"`

	// BackoffMultiplier is the multiplier for exponential backoff
	BackoffMultiplier float64 `yaml:"backoff_multiplier" json:"backoff_multiplier" toml:"backoff_multiplier"`
}

// ApplyDefaults sets default values for retry configuration.
func (r *RetryConfig) ApplyDefaults() {
	if r.MaxAttempts == 0 {
		r.MaxAttempts = 5
	}
	if r.InitialBackoff.Duration == 0 {
		r.InitialBackoff = common.NewDuration(1 * time.Second)
	}
	if r.MaxBackoff.Duration == 0 {
		r.MaxBackoff = common.NewDuration(30 * time.Second) //nolint:mnd
	}
	if r.BackoffMultiplier == 0 {
		r.BackoffMultiplier = 2.0
	}
}

// ArchiveConfig represents the configuration of the finalized block archive.
type ArchiveConfig struct {
	// DB contains database configuration for the archive
	DB DatabaseConfig `yaml:"db" json:"db" toml:"db"`

	// PageSize is the number of blocks read per archive query
	PageSize uint64 `yaml:"page_size" json:"page_size" toml:"page_size"`

	// Ingest controls copying finalized blocks from the node into the archive
	Ingest IngestConfig `yaml:"ingest" json:"ingest" toml:"ingest"`

	// RetentionPolicy contains optional database retention policy settings
	RetentionPolicy *RetentionPolicyConfig `yaml:"retention_policy,omitempty" json:"retention_policy,omitempty" toml:"retention_policy,omitempty"` //nolint:lll

	// Maintenance contains optional database maintenance settings
	Maintenance *MaintenanceConfig `yaml:"maintenance,omitempty" json:"maintenance,omitempty" toml:"maintenance,omitempty"`
}

// ApplyDefaults sets default values for optional archive configuration fields.
func (a *ArchiveConfig) ApplyDefaults() {
	a.DB.ApplyDefaults()
	a.Ingest.ApplyDefaults()

	if a.PageSize == 0 {
		a.PageSize = 100
	}

	if a.Maintenance != nil {
		a.Maintenance.ApplyDefaults()
	}
}

// Validate checks if the archive configuration is valid.
func (a *ArchiveConfig) Validate() error {
	if err := a.DB.Validate(); err != nil {
		return fmt.Errorf("archive.db: %w", err)
	}

	if a.PageSize == 0 {
		return fmt.Errorf("archive.page_size must be greater than zero")
	}

	if a.Ingest.Enabled && a.Ingest.BatchSize == 0 {
		return fmt.Errorf("archive.ingest.batch_size must be greater than zero")
	}

	if a.Maintenance != nil {
		if err := a.Maintenance.Validate(); err != nil {
			return fmt.Errorf("archive.maintenance: %w", err)
		}
	}

	return nil
}

// IngestConfig configures the archive ingester.
type IngestConfig struct {
	// Enabled controls whether the ingester runs alongside the server
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// StartBlock is the first block archived when the archive is empty
	StartBlock uint64 `yaml:"start_block" json:"start_block" toml:"start_block"`

	// BatchSize is the number of blocks stored per transaction
	BatchSize uint64 `yaml:"batch_size" json:"batch_size" toml:"batch_size"`

	// PollInterval is how long the ingester waits once it caught up with the finalized head
	PollInterval common.Duration `yaml:"poll_interval" json:"poll_interval" toml:"poll_interval"`
}

// ApplyDefaults sets default values for optional ingest configuration fields.
func (i *IngestConfig) ApplyDefaults() {
	if i.BatchSize == 0 {
		i.BatchSize = 100
	}
	if i.PollInterval.Duration == 0 {
		i.PollInterval = common.NewDuration(12 * time.Second) //nolint:mnd
	}
}

// DatabaseConfig represents database configuration.
type DatabaseConfig struct {
	// Path is the file path to the SQLite database
	Path string `yaml:"path" json:"path" toml:"path"`

	// JournalMode sets the SQLite journal mode (e.g., "WAL", "DELETE")
	// WAL mode is recommended for better concurrency
	JournalMode string `yaml:"journal_mode" json:"journal_mode" toml:"journal_mode"`

	// Synchronous sets the synchronization level ("FULL", "NORMAL", "OFF")
	// NORMAL provides a good balance between safety and performance
	Synchronous string `yaml:"synchronous" json:"synchronous" toml:"synchronous"`

	// BusyTimeout is the time in milliseconds to wait when the database is locked
	BusyTimeout int `yaml:"busy_timeout" json:"busy_timeout" toml:"busy_timeout"`

	// CacheSize is the size of the page cache (negative = KB, positive = pages)
	CacheSize int `yaml:"cache_size" json:"cache_size" toml:"cache_size"`

	// MaxOpenConnections is the maximum number of open database connections
	MaxOpenConnections int `yaml:"max_open_connections" json:"max_open_connections" toml:"max_open_connections"`

	// MaxIdleConnections is the maximum number of idle connections in the pool
	MaxIdleConnections int `yaml:"max_idle_connections" json:"max_idle_connections" toml:"max_idle_connections"`

	// EnableForeignKeys enables foreign key constraint enforcement
	EnableForeignKeys bool `yaml:"enable_foreign_keys" json:"enable_foreign_keys" toml:"enable_foreign_keys"`
}

// ApplyDefaults sets default values for optional database configuration fields.
func (d *DatabaseConfig) ApplyDefaults() {
	if d.JournalMode == "" {
		d.JournalMode = "WAL"
	}
	if d.Synchronous == "" {
		d.Synchronous = "NORMAL"
	}
	if d.BusyTimeout == 0 {
		d.BusyTimeout = 5000
	}
	if d.CacheSize == 0 {
		d.CacheSize = 10000
	}
	if d.MaxOpenConnections == 0 {
		d.MaxOpenConnections = 25
	}
	if d.MaxIdleConnections == 0 {
		d.MaxIdleConnections = 5
	}
}

// Validate checks if the database configuration is valid.
func (d *DatabaseConfig) Validate() error {
	if d.Path == "" {
		return fmt.Errorf("path is required")
	}

	if d.JournalMode != "" &&
		!slices.Contains([]string{"WAL", "DELETE", "TRUNCATE", "PERSIST", "MEMORY"}, d.JournalMode) {
		return fmt.Errorf("journal_mode must be one of: WAL, DELETE, TRUNCATE, PERSIST, MEMORY")
	}

	if d.Synchronous != "" && !slices.Contains([]string{"FULL", "NORMAL", "OFF"}, d.Synchronous) {
		return fmt.Errorf("synchronous must be one of: FULL, NORMAL, OFF")
	}

	return nil
}

// RetentionPolicyConfig represents database retention policy settings.
type RetentionPolicyConfig struct {
	// MaxDBSizeMB is the maximum database size in megabytes (0 = unlimited)
	MaxDBSizeMB uint64 `yaml:"max_db_size_mb" json:"max_db_size_mb" toml:"max_db_size_mb"`

	// MaxBlocks is the maximum number of blocks to retain (0 = unlimited)
	MaxBlocks uint64 `yaml:"max_blocks" json:"max_blocks" toml:"max_blocks"`
}

// IsEnabled returns true if retention policy should be applied
func (r *RetentionPolicyConfig) IsEnabled() bool {
	return r != nil && (r.MaxDBSizeMB > 0 || r.MaxBlocks > 0)
}

// MaintenanceConfig configures database maintenance behavior.
type MaintenanceConfig struct {
	// Enabled controls whether background maintenance runs
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// CheckInterval is how often to run maintenance (e.g., "30m", "1h")
	CheckInterval common.Duration `yaml:"check_interval" json:"check_interval" toml:"check_interval"`

	// VacuumOnStartup runs maintenance immediately on startup
	VacuumOnStartup bool `yaml:"vacuum_on_startup" json:"vacuum_on_startup" toml:"vacuum_on_startup"`

	// WALCheckpointMode controls the WAL checkpoint aggressiveness
	// Options: PASSIVE, FULL, RESTART, TRUNCATE
	WALCheckpointMode string `yaml:"wal_checkpoint_mode" json:"wal_checkpoint_mode" toml:"wal_checkpoint_mode"`
}

// ApplyDefaults sets default values for optional maintenance configuration fields.
func (m *MaintenanceConfig) ApplyDefaults() {
	if m.CheckInterval.Duration == 0 {
		m.CheckInterval = common.NewDuration(30 * time.Minute) //nolint:mnd
	}
	if m.WALCheckpointMode == "" {
		m.WALCheckpointMode = "TRUNCATE"
	}
}

// Validate checks if the maintenance configuration is valid.
func (m *MaintenanceConfig) Validate() error {
	if m.WALCheckpointMode != "" {
		validModes := []string{"PASSIVE", "FULL", "RESTART", "TRUNCATE"}
		if !slices.Contains(validModes, m.WALCheckpointMode) {
			return fmt.Errorf("wal_checkpoint_mode: must be one of: PASSIVE, FULL, RESTART, TRUNCATE")
		}
	}

	return nil
}

// GRPCConfig configures the firehose gRPC server.
type GRPCConfig struct {
	// ListenAddress is the address the gRPC server binds to
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`

	// MaxSendMsgSizeMB caps the size of a single response message
	MaxSendMsgSizeMB uint64 `yaml:"max_send_msg_size_mb" json:"max_send_msg_size_mb" toml:"max_send_msg_size_mb"`

	// HealthCheck registers the standard gRPC health service
	HealthCheck bool `yaml:"health_check" json:"health_check" toml:"health_check"`
}

// ApplyDefaults sets default values for optional gRPC configuration fields.
func (g *GRPCConfig) ApplyDefaults() {
	if g.ListenAddress == "" {
		g.ListenAddress = ":10015"
	}
	if g.MaxSendMsgSizeMB == 0 {
		g.MaxSendMsgSizeMB = 32
	}
}

// Validate checks if the gRPC configuration is valid.
func (g *GRPCConfig) Validate() error {
	if g.ListenAddress == "" {
		return fmt.Errorf("grpc.listen_address is required")
	}

	return nil
}

// MaxSendMsgSize returns the message size cap in bytes.
func (g *GRPCConfig) MaxSendMsgSize() int {
	return int(common.MBToBytes(g.MaxSendMsgSizeMB))
}

// APIConfig configures the optional HTTP API.
type APIConfig struct {
	// Enabled controls whether the HTTP API is served
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// ListenAddress is the address the HTTP API binds to
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`

	ReadTimeout  common.Duration `yaml:"read_timeout" json:"read_timeout" toml:"read_timeout"`
	WriteTimeout common.Duration `yaml:"write_timeout" json:"write_timeout" toml:"write_timeout"`
	IdleTimeout  common.Duration `yaml:"idle_timeout" json:"idle_timeout" toml:"idle_timeout"`

	// CORS contains cross-origin settings
	CORS CORSConfig `yaml:"cors" json:"cors" toml:"cors"`
}

// CORSConfig configures cross-origin resource sharing.
type CORSConfig struct {
	Enabled        bool     `yaml:"enabled" json:"enabled" toml:"enabled"`
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins" toml:"allowed_origins"`
}

// ApplyDefaults sets default values for optional API configuration fields.
func (a *APIConfig) ApplyDefaults() {
	if a.ListenAddress == "" {
		a.ListenAddress = ":8080"
	}
	if a.ReadTimeout.Duration == 0 {
		a.ReadTimeout = common.NewDuration(15 * time.Second) //nolint:mnd
	}
	if a.WriteTimeout.Duration == 0 {
		a.WriteTimeout = common.NewDuration(15 * time.Second) //nolint:mnd
	}
	if a.IdleTimeout.Duration == 0 {
		a.IdleTimeout = common.NewDuration(60 * time.Second) //nolint:mnd
	}
	if a.CORS.Enabled && len(a.CORS.AllowedOrigins) == 0 {
		a.CORS.AllowedOrigins = []string{"*"}
	}
}

// Validate checks if the API configuration is valid.
func (a *APIConfig) Validate() error {
	if a.Enabled && a.ListenAddress == "" {
		return fmt.Errorf("listen_address is required when the API is enabled")
	}

	return nil
}

// LoggingConfig configures logging behavior with per-component log levels.
type LoggingConfig struct {
	// DefaultLevel is the default log level for all components
	// Options: "debug", "info", "warn", "error"
	DefaultLevel string `yaml:"default_level" json:"default_level" toml:"default_level"`

	// Development enables development mode (stack traces, console encoder)
	Development bool `yaml:"development" json:"development" toml:"development"`

	// ComponentLevels sets log levels for specific components
	// Available components:
	//   - firehose: Block stream orchestration
	//   - fetcher: Single block lookups
	//   - rpc-source: Live node access
	//   - chain-tracker: Hot tail reorg tracking
	//   - archive: Archive storage
	//   - ingester: Archive ingestion
	//   - grpc-server: Firehose gRPC transport
	//   - api: HTTP API
	//   - maintenance: Database maintenance
	ComponentLevels map[string]string `yaml:"component_levels,omitempty" json:"component_levels,omitempty" toml:"component_levels,omitempty"` //nolint:lll
}

// ApplyDefaults sets default values for optional logging configuration fields.
func (l *LoggingConfig) ApplyDefaults() {
	if l.DefaultLevel == "" {
		l.DefaultLevel = "info"
	}
	if l.ComponentLevels == nil {
		l.ComponentLevels = make(map[string]string)
	}
}

// Validate checks if the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	if l.DefaultLevel != "" {
		if _, valid := logger.ValidLogLevels[common.ToLowerWithTrim(l.DefaultLevel)]; !valid {
			return fmt.Errorf("logging.default_level: must be one of: debug, info, warn, error")
		}
	}

	for component, level := range l.ComponentLevels {
		if _, validComponent := common.AllComponents[common.ToLowerWithTrim(component)]; !validComponent {
			return fmt.Errorf("logging.component_levels: unknown component '%s'", component)
		}

		if _, valid := logger.ValidLogLevels[common.ToLowerWithTrim(level)]; !valid {
			return fmt.Errorf("logging.component_levels[%s]: must be one of: debug, info, warn, error", component)
		}
	}

	return nil
}

// GetComponentLevel returns the log level for a specific component.
// Falls back to DefaultLevel if no component-specific level is set.
func (l *LoggingConfig) GetComponentLevel(component string) string {
	for name, level := range l.ComponentLevels {
		if strings.EqualFold(name, component) {
			return common.ToLowerWithTrim(level)
		}
	}
	return common.ToLowerWithTrim(l.DefaultLevel)
}

// GetDefaultLevel returns the default log level.
func (l *LoggingConfig) GetDefaultLevel() string {
	return common.ToLowerWithTrim(l.DefaultLevel)
}

// IsDevelopment returns whether development mode is enabled.
func (l *LoggingConfig) IsDevelopment() bool {
	return l.Development
}

// MetricsConfig configures Prometheus metrics exposition.
type MetricsConfig struct {
	// Enabled controls whether metrics collection and HTTP endpoint are active
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// ListenAddress is the address to bind the metrics HTTP server to
	// Format: "host:port" or ":port"
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`

	// Path is the HTTP path where metrics are exposed
	Path string `yaml:"path" json:"path" toml:"path"`
}

// ApplyDefaults sets default values for optional metrics configuration fields.
func (m *MetricsConfig) ApplyDefaults() {
	if m.ListenAddress == "" {
		m.ListenAddress = ":9090"
	}
	if m.Path == "" {
		m.Path = "/metrics"
	}
}

// Validate checks if the metrics configuration is valid.
func (m *MetricsConfig) Validate() error {
	if m.Enabled {
		if m.ListenAddress == "" {
			return fmt.Errorf("listen_address is required when metrics are enabled")
		}
		if m.Path == "" {
			return fmt.Errorf("path is required when metrics are enabled")
		}
		if m.Path[0] != '/' {
			return fmt.Errorf("path must start with '/'")
		}
	}
	return nil
}

// ApplyDefaults sets default values for optional configuration fields.
func (c *Config) ApplyDefaults() {
	c.RPC.ApplyDefaults()
	c.Archive.ApplyDefaults()
	c.GRPC.ApplyDefaults()

	if c.API != nil {
		c.API.ApplyDefaults()
	}

	if c.Logging != nil {
		c.Logging.ApplyDefaults()
	}

	if c.Metrics != nil {
		c.Metrics.ApplyDefaults()
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.RPC.Validate(); err != nil {
		return err
	}

	if err := c.Archive.Validate(); err != nil {
		return err
	}

	if err := c.GRPC.Validate(); err != nil {
		return err
	}

	if c.API != nil {
		if err := c.API.Validate(); err != nil {
			return fmt.Errorf("api: %w", err)
		}
	}

	if c.Logging != nil {
		if err := c.Logging.Validate(); err != nil {
			return err
		}
	}

	if c.Metrics != nil {
		if err := c.Metrics.Validate(); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}

	return nil
}
