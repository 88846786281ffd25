package firehose

import (
	"context"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/goran-ethernal/ChainFirehose/pkg/datasource"
	pbfirehose "github.com/streamingfast/pbgo/sf/firehose/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBlock_References(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		req  *pbfirehose.SingleBlockRequest
	}{
		{
			name: "number",
			req:  NumberRequest(7),
		},
		{
			name: "hash and number",
			req:  HashAndNumberRequest(7, hashOf(7)),
		},
		{
			name: "hash in upper case",
			req:  HashAndNumberRequest(7, "0X"+hashOf(7)[2:]),
		},
		{
			name: "cursor",
			req:  CursorRequest("7"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fh, archive, _ := newTestFirehose(t)
			archive.EXPECT().GetFinalizedBlocks(mock.Anything, datasource.DataRequest{From: 7, To: u64(7)}).
				Return(batches(rawBlocks(7, 7))).Once()

			resp, err := fh.Block(ctx, tt.req)
			require.NoError(t, err)

			block := decodeBlock(t, resp.Block)
			require.Equal(t, uint64(7), block.Number)
			require.Equal(t, hexutil.MustDecode(hashOf(7)), block.Hash)
		})
	}
}

func TestBlock_SkipsEmptyBatches(t *testing.T) {
	fh, archive, _ := newTestFirehose(t)
	archive.EXPECT().GetFinalizedBlocks(mock.Anything, mock.Anything).
		Return(batches(nil, rawBlocks(3, 3))).Once()

	resp, err := fh.Block(context.Background(), NumberRequest(3))
	require.NoError(t, err)
	require.NotNil(t, resp.Block)
}

func TestBlock_NotFound(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing archived", func(t *testing.T) {
		fh, archive, _ := newTestFirehose(t)
		archive.EXPECT().GetFinalizedBlocks(mock.Anything, mock.Anything).Return(batches()).Once()

		_, err := fh.Block(ctx, NumberRequest(1000))
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("pruned", func(t *testing.T) {
		fh, archive, _ := newTestFirehose(t)
		archive.EXPECT().GetFinalizedBlocks(mock.Anything, mock.Anything).
			Return(func(yield func([]datasource.Block, error) bool) {
				yield(nil, fmt.Errorf("%w: block 3", datasource.ErrPrunedRange))
			}).Once()

		_, err := fh.Block(ctx, NumberRequest(3))
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("hash mismatch", func(t *testing.T) {
		fh, archive, _ := newTestFirehose(t)
		archive.EXPECT().GetFinalizedBlocks(mock.Anything, mock.Anything).Return(batches(rawBlocks(7, 7))).Once()

		_, err := fh.Block(ctx, HashAndNumberRequest(7, forkHashOf(7)))
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestBlock_InvalidRequests(t *testing.T) {
	ctx := context.Background()
	fh, _, _ := newTestFirehose(t)

	_, err := fh.Block(ctx, &pbfirehose.SingleBlockRequest{})
	require.ErrorIs(t, err, ErrNoReference)

	_, err = fh.Block(ctx, CursorRequest("abc"))
	require.ErrorIs(t, err, ErrInvalidCursor)

	_, err = fh.Block(ctx, CursorRequest("-1"))
	require.ErrorIs(t, err, ErrInvalidCursor)
}

func TestBlock_ArchiveError(t *testing.T) {
	fh, archive, _ := newTestFirehose(t)
	archive.EXPECT().GetFinalizedBlocks(mock.Anything, mock.Anything).
		Return(func(yield func([]datasource.Block, error) bool) {
			yield(nil, errUpstream)
		}).Once()

	_, err := fh.Block(context.Background(), NumberRequest(1))
	require.ErrorIs(t, err, errUpstream)
}

func TestParseCursor(t *testing.T) {
	height, err := ParseCursor("123")
	require.NoError(t, err)
	require.Equal(t, uint64(123), height)

	_, err = ParseCursor("")
	require.ErrorIs(t, err, ErrInvalidCursor)
}

