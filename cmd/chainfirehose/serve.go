package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goran-ethernal/ChainFirehose/internal/archive"
	"github.com/goran-ethernal/ChainFirehose/internal/common"
	configloader "github.com/goran-ethernal/ChainFirehose/internal/config"
	"github.com/goran-ethernal/ChainFirehose/internal/firehose"
	"github.com/goran-ethernal/ChainFirehose/internal/ingest"
	"github.com/goran-ethernal/ChainFirehose/internal/logger"
	"github.com/goran-ethernal/ChainFirehose/internal/metrics"
	"github.com/goran-ethernal/ChainFirehose/internal/rpc"
	"github.com/goran-ethernal/ChainFirehose/internal/server"
	"github.com/goran-ethernal/ChainFirehose/pkg/api"
	"github.com/goran-ethernal/ChainFirehose/pkg/config"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// node holds the components shared by the serve and ingest commands.
type node struct {
	cfg     *config.Config
	log     *logger.Logger
	client  *rpc.Client
	live    *rpc.Source
	archive *archive.Archive
	metrics *metrics.Server
}

func openNode(ctx context.Context) (*node, error) {
	cfg, err := configloader.LoadFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	n := &node{
		cfg: cfg,
		log: taggedLogger(cfg, common.ComponentFirehose),
	}

	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		n.metrics = metrics.NewServer(cfg.Metrics, n.log)
		if err := n.metrics.Start(ctx); err != nil {
			return nil, fmt.Errorf("failed to start metrics server: %w", err)
		}
	}

	n.log.Info("connecting to Ethereum node...")
	n.client, err = rpc.NewClient(ctx, cfg.RPC.URL, cfg.RPC.Retry)
	if err != nil {
		n.close()
		return nil, fmt.Errorf("failed to create RPC client: %w", err)
	}
	n.log.Infof("connected to Ethereum node: %s", cfg.RPC.URL)

	n.live = rpc.NewSource(n.client, cfg.RPC, taggedLogger(cfg, common.ComponentRPCSource))

	n.archive, err = archive.Open(cfg.Archive, componentLogger(cfg, common.ComponentArchive))
	if err != nil {
		n.close()
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	if err := n.archive.Start(ctx); err != nil {
		n.close()
		return nil, fmt.Errorf("failed to start archive maintenance: %w", err)
	}

	return n, nil
}

func (n *node) ingester() (*ingest.Ingester, error) {
	return ingest.New(
		n.live,
		n.archive,
		n.cfg.Archive.Ingest,
		n.cfg.Archive.RetentionPolicy,
		componentLogger(n.cfg, common.ComponentIngester),
	)
}

func (n *node) close() {
	if n.archive != nil {
		if err := n.archive.Close(); err != nil {
			n.log.Warnf("failed to close archive: %v", err)
		}
	}

	if n.client != nil {
		n.client.Close()
	}

	if n.metrics != nil {
		if err := n.metrics.Stop(context.Background()); err != nil {
			n.log.Warnf("failed to stop metrics server: %v", err)
		}
	}
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}

	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Printf(banner, version)

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	n, err := openNode(ctx)
	if err != nil {
		return err
	}
	defer n.close()

	fh := firehose.New(n.archive, n.live, n.log)

	g, ctx := errgroup.WithContext(ctx)

	if n.cfg.Archive.Ingest.Enabled {
		ing, err := n.ingester()
		if err != nil {
			return fmt.Errorf("failed to create ingester: %w", err)
		}

		g.Go(func() error { return ignoreCancel(ing.Run(ctx)) })
	}

	grpcServer := server.New(n.cfg.GRPC, fh, componentLogger(n.cfg, common.ComponentGRPCServer))
	g.Go(func() error { return grpcServer.Run(ctx) })

	if n.cfg.API != nil && n.cfg.API.Enabled {
		apiServer := api.NewServer(n.cfg.API, n.archive, n.live, fh, componentLogger(n.cfg, common.ComponentAPI))
		g.Go(func() error { return apiServer.Start(ctx) })
	}

	n.log.Info("ChainFirehose started")

	if err := g.Wait(); err != nil {
		return err
	}

	n.log.Info("ChainFirehose stopped successfully")
	return nil
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd.Context())
	defer stop()

	n, err := openNode(ctx)
	if err != nil {
		return err
	}
	defer n.close()

	ing, err := n.ingester()
	if err != nil {
		return fmt.Errorf("failed to create ingester: %w", err)
	}

	return ignoreCancel(ing.Run(ctx))
}

func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}
