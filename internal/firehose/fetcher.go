package firehose

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goran-ethernal/ChainFirehose/internal/codec"
	"github.com/goran-ethernal/ChainFirehose/internal/metrics"
	"github.com/goran-ethernal/ChainFirehose/internal/transform"
	"github.com/goran-ethernal/ChainFirehose/pkg/datasource"
	pbfirehose "github.com/streamingfast/pbgo/sf/firehose/v2"
	"google.golang.org/protobuf/types/known/anypb"
)

// Block fetches one block from the archive. A hash given alongside the number must match
// the archived block.
func (f *Firehose) Block(ctx context.Context, req *pbfirehose.SingleBlockRequest) (*pbfirehose.SingleBlockResponse, error) {
	kind, height, hash, err := resolveReference(req)
	if err != nil {
		metrics.SingleBlockLookupInc(kind, "invalid")
		return nil, err
	}

	filters, err := transform.Translate(req.Transforms)
	if err != nil {
		metrics.SingleBlockLookupInc(kind, "invalid")
		return nil, err
	}

	raw, err := f.fetchOne(ctx, filters.Apply(datasource.DataRequest{}).WithRange(height, &height))
	if err != nil {
		metrics.SingleBlockLookupInc(kind, "error")
		return nil, err
	}

	if raw == nil || (hash != "" && !strings.EqualFold(raw.Header.Hash, hash)) {
		metrics.SingleBlockLookupInc(kind, "not_found")
		return nil, fmt.Errorf("%w: %s reference to block %d", ErrNotFound, kind, height)
	}

	block, err := codec.ConvertBlock(raw)
	if err != nil {
		metrics.ConversionFailures.Inc()
		metrics.SingleBlockLookupInc(kind, "error")
		return nil, err
	}

	payload, err := anypb.New(block)
	if err != nil {
		metrics.SingleBlockLookupInc(kind, "error")
		return nil, fmt.Errorf("failed to encode block %d: %w", height, err)
	}

	metrics.SingleBlockLookupInc(kind, "found")

	return &pbfirehose.SingleBlockResponse{Block: payload}, nil
}

// fetchOne returns the first block of the range, or nil when the archive has none.
func (f *Firehose) fetchOne(ctx context.Context, req datasource.DataRequest) (*datasource.Block, error) {
	for blocks, err := range f.archive.GetFinalizedBlocks(ctx, req) {
		if errors.Is(err, datasource.ErrPrunedRange) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("archive fetch failed: %w", err)
		}

		if len(blocks) > 0 {
			return &blocks[0], nil
		}
	}

	return nil, nil
}

func resolveReference(req *pbfirehose.SingleBlockRequest) (kind string, height uint64, hash string, err error) {
	if ref := req.GetBlockNumber(); ref != nil {
		return "number", ref.GetNum(), "", nil
	}
	if ref := req.GetBlockHashAndNumber(); ref != nil {
		return "hash_and_number", ref.GetNum(), ref.GetHash(), nil
	}
	if ref := req.GetCursor(); ref != nil {
		height, err := ParseCursor(ref.GetCursor())
		return "cursor", height, "", err
	}

	return "none", 0, "", ErrNoReference
}

// NumberRequest looks a block up by height.
func NumberRequest(num uint64) *pbfirehose.SingleBlockRequest {
	return &pbfirehose.SingleBlockRequest{
		Reference: &pbfirehose.SingleBlockRequest_BlockNumber_{
			BlockNumber: &pbfirehose.SingleBlockRequest_BlockNumber{Num: num},
		},
	}
}

// HashAndNumberRequest looks a block up by height and requires its hash to match.
func HashAndNumberRequest(num uint64, hash string) *pbfirehose.SingleBlockRequest {
	return &pbfirehose.SingleBlockRequest{
		Reference: &pbfirehose.SingleBlockRequest_BlockHashAndNumber_{
			BlockHashAndNumber: &pbfirehose.SingleBlockRequest_BlockHashAndNumber{Num: num, Hash: hash},
		},
	}
}

// CursorRequest looks up the block a cursor was issued for.
func CursorRequest(cursor string) *pbfirehose.SingleBlockRequest {
	return &pbfirehose.SingleBlockRequest{
		Reference: &pbfirehose.SingleBlockRequest_Cursor_{
			Cursor: &pbfirehose.SingleBlockRequest_Cursor{Cursor: cursor},
		},
	}
}

// ParseCursor parses a cursor back into the block height it was issued for.
func ParseCursor(cursor string) (uint64, error) {
	height, err := strconv.ParseUint(cursor, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCursor, cursor)
	}

	return height, nil
}
