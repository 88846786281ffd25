package main

import (
	"fmt"
	"os"

	"github.com/goran-ethernal/ChainFirehose/internal/logger"
	"github.com/goran-ethernal/ChainFirehose/pkg/config"
	"github.com/spf13/cobra"
)

const (
	version = "1.0.0"
	banner  = `
╔═══════════════════════════════════════════╗
║         ChainFirehose v%s              ║
║   Ethereum Block Streaming Firehose       ║
╚═══════════════════════════════════════════╝
`
)

var (
	configPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chainfirehose",
	Short: "ChainFirehose - Ethereum block streaming firehose",
	Long: `ChainFirehose serves Ethereum blocks as a single ordered stream over gRPC.
History is read from a local archive of finalized blocks, followed by the live node's
finalized range and its unfinalized tail, with undo steps emitted on reorgs.`,
	Version: version,
	RunE:    runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the firehose server",
	Long:  `Run the gRPC firehose, the archive ingester and the optional HTTP API and metrics servers.`,
	RunE:  runServe,
}

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fill the archive without serving",
	Long:  `Copy finalized blocks from the node into the archive until interrupted.`,
	RunE:  runIngest,
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the configuration JSON schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.SchemaJSON()
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to configuration file")

	blockCmd.Flags().StringVar(&blockRemote, "remote", "", "fetch from a running firehose at this address instead of the local archive")
	streamCmd.Flags().StringVar(&streamRemote, "remote", "localhost:10015", "address of the firehose server")
	streamCmd.Flags().Int64Var(&streamStart, "start", -1, "start block; negative values are relative to the finalized head")
	streamCmd.Flags().Uint64Var(&streamStop, "stop", 0, "stop block (0 streams forever)")
	streamCmd.Flags().StringVar(&streamCursor, "cursor", "", "cursor to resume from")

	rootCmd.AddCommand(serveCmd, ingestCmd, blockCmd, streamCmd, schemaCmd)
}

// componentLogger returns a logger at the level configured for component. The component
// field is left to the constructors that tag their own logs.
func componentLogger(cfg *config.Config, component string) *logger.Logger {
	level, development := "info", false
	if cfg.Logging != nil {
		level = cfg.Logging.GetComponentLevel(component)
		development = cfg.Logging.IsDevelopment()
	}

	log, err := logger.NewLogger(level, development)
	if err != nil {
		// levels are validated on load
		panic(fmt.Sprintf("failed to create logger for %s: %v", component, err))
	}

	return log
}

// taggedLogger returns a component logger for components that do not tag their own logs.
func taggedLogger(cfg *config.Config, component string) *logger.Logger {
	return componentLogger(cfg, component).WithComponent(component)
}
