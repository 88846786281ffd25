package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/goran-ethernal/ChainFirehose/internal/archive"
	"github.com/goran-ethernal/ChainFirehose/internal/common"
	configloader "github.com/goran-ethernal/ChainFirehose/internal/config"
	"github.com/goran-ethernal/ChainFirehose/internal/firehose"
	"github.com/goran-ethernal/ChainFirehose/internal/server"
	"github.com/spf13/cobra"
	pbeth "github.com/streamingfast/firehose-ethereum/types/pb/sf/ethereum/type/v2"
	pbfirehose "github.com/streamingfast/pbgo/sf/firehose/v2"
	"google.golang.org/protobuf/encoding/protojson"
)

var blockRemote string

var blockCmd = &cobra.Command{
	Use:   "block <ref>",
	Short: "Print one archived block",
	Long: `Print an archived block as canonical JSON. The reference is a height (decimal or
0x hex) or a cursor; block hashes are resolved against the local archive only.`,
	Args: cobra.ExactArgs(1),
	RunE: runBlock,
}

// blockFetcher is satisfied by both the local firehose and the gRPC client.
type blockFetcher interface {
	Block(ctx context.Context, req *pbfirehose.SingleBlockRequest) (*pbfirehose.SingleBlockResponse, error)
}

func runBlock(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd.Context())
	defer stop()

	ref := strings.TrimSpace(args[0])

	var (
		fetcher blockFetcher
		hashOf  func(ctx context.Context, hash string) (uint64, error)
	)

	if blockRemote != "" {
		client, err := server.Dial(blockRemote)
		if err != nil {
			return err
		}
		defer client.Close()

		fetcher = client
	} else {
		cfg, err := configloader.LoadFromFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		arch, err := archive.Open(cfg.Archive, componentLogger(cfg, common.ComponentArchive))
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer arch.Close()

		fetcher = firehose.New(arch, nil, taggedLogger(cfg, common.ComponentFetcher))
		hashOf = arch.GetBlockNumber
	}

	req, err := blockRequest(ctx, ref, hashOf)
	if err != nil {
		return err
	}

	resp, err := fetcher.Block(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to fetch block %s: %w", ref, err)
	}

	block := &pbeth.Block{}
	if err := resp.GetBlock().UnmarshalTo(block); err != nil {
		return fmt.Errorf("failed to decode block %s: %w", ref, err)
	}

	out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(block)
	if err != nil {
		return fmt.Errorf("failed to encode block %s: %w", ref, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// blockRequest builds the lookup for ref. hashOf may be nil when hashes cannot be resolved.
func blockRequest(
	ctx context.Context,
	ref string,
	hashOf func(ctx context.Context, hash string) (uint64, error),
) (*pbfirehose.SingleBlockRequest, error) {
	if common.IsBlockHash(ref) {
		if hashOf == nil {
			return nil, fmt.Errorf("block hashes can only be resolved against the local archive")
		}

		height, err := hashOf(ctx, ref)
		if err != nil {
			return nil, err
		}

		return firehose.HashAndNumberRequest(height, ref), nil
	}

	height, err := common.ParseBlockNumber(ref)
	if err != nil {
		return nil, fmt.Errorf("invalid block reference %q: %w", ref, err)
	}

	return firehose.NumberRequest(height), nil
}
