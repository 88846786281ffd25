package firehose

import (
	"errors"
	"fmt"
	"iter"
	"testing"

	"github.com/goran-ethernal/ChainFirehose/internal/logger"
	"github.com/goran-ethernal/ChainFirehose/pkg/datasource"
	"github.com/goran-ethernal/ChainFirehose/pkg/datasource/mocks"
	pbeth "github.com/streamingfast/firehose-ethereum/types/pb/sf/ethereum/type/v2"
	pbfirehose "github.com/streamingfast/pbgo/sf/firehose/v2"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/anypb"
)

const blockTypeURL = "type.googleapis.com/sf.ethereum.type.v2.Block"

var errUpstream = errors.New("upstream unavailable")

func hashOf(n uint64) string {
	return fmt.Sprintf("0x%064x", n)
}

// forkHashOf is the hash of block n on an alternative branch.
func forkHashOf(n uint64) string {
	return fmt.Sprintf("0x%064x", n+0xf00000)
}

func rawBlock(n uint64, hash string) datasource.Block {
	return datasource.Block{
		Header: datasource.BlockHeader{
			Number:           n,
			Hash:             hash,
			ParentHash:       hashOf(n - 1),
			Nonce:            "0x0",
			Sha3Uncles:       hashOf(0),
			LogsBloom:        "0x00",
			TransactionsRoot: hashOf(0),
			StateRoot:        hashOf(0),
			ReceiptsRoot:     hashOf(0),
			Miner:            "0x0000000000000000000000000000000000000001",
			MixHash:          hashOf(0),
			Difficulty:       "0x0",
			TotalDifficulty:  "0x0",
			ExtraData:        "0x",
			GasLimit:         "0x1c9c380",
			GasUsed:          "0x0",
			Timestamp:        1_700_000_000 + n*12,
		},
	}
}

func rawBlocks(from, to uint64) []datasource.Block {
	out := make([]datasource.Block, 0, to-from+1)
	for n := from; n <= to; n++ {
		out = append(out, rawBlock(n, hashOf(n)))
	}

	return out
}

func batches(bs ...[]datasource.Block) iter.Seq2[[]datasource.Block, error] {
	return func(yield func([]datasource.Block, error) bool) {
		for _, b := range bs {
			if !yield(b, nil) {
				return
			}
		}
	}
}

func updates(us ...*datasource.HotUpdate) iter.Seq2[*datasource.HotUpdate, error] {
	return func(yield func(*datasource.HotUpdate, error) bool) {
		for _, u := range us {
			if !yield(u, nil) {
				return
			}
		}
	}
}

func u64(v uint64) *uint64 { return &v }

func newTestFirehose(t *testing.T) (*Firehose, *mocks.DataSource, *mocks.HotDataSource) {
	t.Helper()

	archive := mocks.NewDataSource(t)
	live := mocks.NewHotDataSource(t)

	return New(archive, live, logger.NewNopLogger()), archive, live
}

type emitted struct {
	step   pbfirehose.ForkStep
	cursor string
	block  *pbeth.Block
}

// collect drains the stream and returns every response and the terminating error.
func collect(t *testing.T, seq iter.Seq2[*pbfirehose.Response, error]) ([]emitted, error) {
	t.Helper()

	var out []emitted
	for resp, err := range seq {
		if err != nil {
			return out, err
		}

		block := decodeBlock(t, resp.Block)

		out = append(out, emitted{step: resp.Step, cursor: resp.Cursor, block: block})
	}

	return out, nil
}

func decodeBlock(t *testing.T, payload *anypb.Any) *pbeth.Block {
	t.Helper()

	require.Equal(t, blockTypeURL, payload.GetTypeUrl())

	block := &pbeth.Block{}
	require.NoError(t, payload.UnmarshalTo(block))

	return block
}

func cursors(es []emitted) []string {
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, e.cursor)
	}

	return out
}

func cursorRange(from, to uint64) []string {
	out := make([]string, 0, to-from+1)
	for n := from; n <= to; n++ {
		out = append(out, fmt.Sprintf("%d", n))
	}

	return out
}
