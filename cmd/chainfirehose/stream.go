package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/goran-ethernal/ChainFirehose/internal/server"
	"github.com/spf13/cobra"
	pbeth "github.com/streamingfast/firehose-ethereum/types/pb/sf/ethereum/type/v2"
	pbfirehose "github.com/streamingfast/pbgo/sf/firehose/v2"
)

var (
	streamStart  int64
	streamStop   uint64
	streamCursor string
	streamRemote string
)

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Tail the block stream of a running firehose",
	Long:  `Open a block stream against a firehose server and print one line per response.`,
	Args:  cobra.NoArgs,
	RunE:  runStream,
}

func runStream(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd.Context())
	defer stop()

	client, err := server.Dial(streamRemote)
	if err != nil {
		return err
	}
	defer client.Close()

	req := &pbfirehose.Request{
		StartBlockNum: streamStart,
		StopBlockNum:  streamStop,
		Cursor:        streamCursor,
	}

	out := cmd.OutOrStdout()
	for resp, err := range client.Blocks(ctx, req) {
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("stream failed: %w", err)
		}

		block := &pbeth.Block{}
		if err := resp.GetBlock().UnmarshalTo(block); err != nil {
			return fmt.Errorf("failed to decode block at cursor %s: %w", resp.Cursor, err)
		}

		fmt.Fprintf(out, "%-10s #%d %s cursor=%s txs=%d\n",
			resp.Step, block.Number, hexutil.Encode(block.Hash), resp.Cursor, len(block.TransactionTraces))
	}

	return nil
}
