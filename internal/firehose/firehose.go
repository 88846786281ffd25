// Package firehose merges the archive and the live node into a single ordered block stream
// annotated with fork steps, and serves single block lookups from the archive.
package firehose

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math"
	"strconv"
	"strings"

	"github.com/goran-ethernal/ChainFirehose/internal/codec"
	"github.com/goran-ethernal/ChainFirehose/internal/common"
	"github.com/goran-ethernal/ChainFirehose/internal/logger"
	"github.com/goran-ethernal/ChainFirehose/internal/metrics"
	"github.com/goran-ethernal/ChainFirehose/internal/transform"
	"github.com/goran-ethernal/ChainFirehose/pkg/datasource"
	pbeth "github.com/streamingfast/firehose-ethereum/types/pb/sf/ethereum/type/v2"
	pbfirehose "github.com/streamingfast/pbgo/sf/firehose/v2"
	"google.golang.org/protobuf/types/known/anypb"
)

const (
	phaseArchive      = "archive"
	phaseRPCFinalized = "rpc-finalized"
	phaseRPCHot       = "rpc-hot"
)

// Firehose serves block streams and single block lookups.
// It holds no per-request state and is safe for concurrent use.
type Firehose struct {
	archive datasource.DataSource
	live    datasource.HotDataSource
	log     *logger.Logger
}

// New creates a Firehose reading finalized history from archive and the chain tip from live.
func New(archive datasource.DataSource, live datasource.HotDataSource, log *logger.Logger) *Firehose {
	return &Firehose{
		archive: archive,
		live:    live,
		log:     log,
	}
}

// Blocks validates the request and returns the lazy response stream.
//
// Blocks are served from the archive first, then from the live node's finalized range and
// finally from the live node's hot tail, which emits an undo step whenever the tip it builds
// on differs from the last head sent. A stop block bounds only the first two phases.
// The stream stops at the first error and releases upstream resources as soon as the
// consumer stops ranging over it.
func (f *Firehose) Blocks(ctx context.Context, req *pbfirehose.Request) (iter.Seq2[*pbfirehose.Response, error], error) {
	filters, err := transform.Translate(req.Transforms)
	if err != nil {
		return nil, err
	}

	from, err := f.resolveFrom(ctx, req)
	if err != nil {
		return nil, err
	}

	var to *uint64
	if req.StopBlockNum != 0 {
		if req.StopBlockNum < from {
			return nil, fmt.Errorf("%w: stop block %d is below start block %d", ErrInvalidRange, req.StopBlockNum, from)
		}
		stop := req.StopBlockNum
		to = &stop
	}

	base := filters.Apply(datasource.DataRequest{})

	return func(yield func(*pbfirehose.Response, error) bool) {
		s := &stream{
			firehose: f,
			base:     base,
			from:     from,
			to:       to,
		}

		metrics.ActiveStreams.Inc()
		defer metrics.ActiveStreams.Dec()

		err := s.run(ctx, yield)
		if err == nil || errors.Is(err, errConsumerStopped) {
			return
		}

		metrics.StreamErrorInc(s.phase)
		f.log.Warnf("stream from block %d stopped in %s phase: %v", from, s.phase, err)
		yield(nil, err)
	}, nil
}

// resolveFrom returns the first height to stream. A cursor names the last block the client
// received and takes precedence over the start block.
func (f *Firehose) resolveFrom(ctx context.Context, req *pbfirehose.Request) (uint64, error) {
	if req.Cursor == "" {
		return f.resolveStart(ctx, req.StartBlockNum)
	}

	last, err := ParseCursor(req.Cursor)
	if err != nil {
		return 0, err
	}
	if last == math.MaxUint64 {
		return 0, fmt.Errorf("%w: nothing follows cursor %s", ErrInvalidRange, req.Cursor)
	}

	return last + 1, nil
}

// resolveStart turns a negative start into an offset below the live finalized head, saturating at zero.
func (f *Firehose) resolveStart(ctx context.Context, start int64) (uint64, error) {
	if start >= 0 {
		return uint64(start), nil
	}

	if start == math.MinInt64 {
		return 0, fmt.Errorf("%w: start block %d", ErrInvalidRange, start)
	}

	head, err := f.live.GetFinalizedHeight(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve relative start block: %w", err)
	}

	delta := uint64(-start)
	if delta > head {
		return 0, nil
	}

	return head - delta, nil
}

// stream is the state of one block stream.
type stream struct {
	firehose *Firehose
	base     datasource.DataRequest
	from     uint64
	to       *uint64
	head     *datasource.HashAndHeight
	phase    string
}

func (s *stream) run(ctx context.Context, yield func(*pbfirehose.Response, error) bool) error {
	done, err := s.archivePhase(ctx, yield)
	if err != nil || done {
		return err
	}

	done, err = s.finalizedPhase(ctx, yield)
	if err != nil || done {
		return err
	}

	return s.hotPhase(ctx, yield)
}

func (s *stream) archivePhase(ctx context.Context, yield func(*pbfirehose.Response, error) bool) (bool, error) {
	s.phase = phaseArchive
	log := s.firehose.log

	height, err := s.firehose.archive.GetFinalizedHeight(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get archive height: %w", err)
	}

	if s.from >= height {
		return false, nil
	}

	to := height
	if s.to != nil && *s.to < to {
		to = *s.to
	}

	log.Debugf("serving blocks %d-%d from the archive", s.from, to)

	for blocks, err := range s.firehose.archive.GetFinalizedBlocks(ctx, s.base.WithRange(s.from, &to)) {
		if errors.Is(err, datasource.ErrPrunedRange) && s.head == nil {
			log.Debugf("block %d is no longer archived, serving from the live node", s.from)
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("archive fetch failed: %w", err)
		}

		for i := range blocks {
			header := &blocks[i].Header
			s.head = &datasource.HashAndHeight{Hash: header.Hash, Height: header.Number}
			s.from = header.Number + 1

			if err := s.emitNew(&blocks[i], yield); err != nil {
				return false, err
			}
		}
	}

	return s.to != nil && s.head != nil && s.head.Height == *s.to, nil
}

func (s *stream) finalizedPhase(ctx context.Context, yield func(*pbfirehose.Response, error) bool) (bool, error) {
	s.phase = phaseRPCFinalized

	height, err := s.firehose.live.GetFinalizedHeight(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get live finalized height: %w", err)
	}

	if s.from >= height {
		return s.anchor(ctx, yield)
	}

	to := height
	if s.to != nil && *s.to < to {
		to = *s.to
	}

	if err := s.serveFinalized(ctx, to, yield); err != nil {
		return false, err
	}

	return s.to != nil && to == *s.to, nil
}

// serveFinalized streams the live finalized blocks in [s.from, to] and moves the head to to.
func (s *stream) serveFinalized(ctx context.Context, to uint64, yield func(*pbfirehose.Response, error) bool) error {
	live := s.firehose.live

	s.firehose.log.Debugf("serving blocks %d-%d from the live finalized range", s.from, to)

	for blocks, err := range live.GetFinalizedBlocks(ctx, s.base.WithRange(s.from, &to)) {
		if err != nil {
			return fmt.Errorf("live finalized fetch failed: %w", err)
		}

		for i := range blocks {
			if err := s.emitNew(&blocks[i], yield); err != nil {
				return err
			}
		}
	}

	hash, err := live.GetBlockHash(ctx, to)
	if err != nil {
		return fmt.Errorf("failed to get hash of block %d: %w", to, err)
	}

	s.head = &datasource.HashAndHeight{Hash: hash, Height: to}
	s.from = to + 1

	return nil
}

// anchor seeds the head the hot tail builds on when no finalized block was sent.
// The block below the start is the head. Genesis has no parent, so it is sent as a
// finalized block first.
func (s *stream) anchor(ctx context.Context, yield func(*pbfirehose.Response, error) bool) (bool, error) {
	if s.head != nil {
		return false, nil
	}

	if s.from == 0 {
		return false, s.serveFinalized(ctx, 0, yield)
	}

	hash, err := s.firehose.live.GetBlockHash(ctx, s.from-1)
	if err != nil {
		return false, fmt.Errorf("failed to get hash of block %d: %w", s.from-1, err)
	}

	s.head = &datasource.HashAndHeight{Hash: hash, Height: s.from - 1}

	return false, nil
}

func (s *stream) hotPhase(ctx context.Context, yield func(*pbfirehose.Response, error) bool) error {
	s.phase = phaseRPCHot

	if s.head == nil {
		return fmt.Errorf("%w: no chain head known before following the tip from block %d", ErrInvariantViolation, s.from)
	}

	s.firehose.log.Debugf("following the chain tip from block %d (head %d %s)", s.from, s.head.Height, s.head.Hash)

	last := *s.head
	for update, err := range s.firehose.live.GetHotBlocks(ctx, s.base.WithRange(s.from, s.to), last) {
		if err != nil {
			return fmt.Errorf("hot fetch failed: %w", err)
		}

		if !sameHead(update.BaseHead, last) {
			if err := s.emitUndo(last, update.BaseHead, yield); err != nil {
				return err
			}
		}

		for i := range update.Blocks {
			if err := s.emitNew(&update.Blocks[i], yield); err != nil {
				return err
			}
		}

		last = update.Head()
	}

	return nil
}

func (s *stream) emitNew(b *datasource.Block, yield func(*pbfirehose.Response, error) bool) error {
	block, err := codec.ConvertBlock(b)
	if err != nil {
		metrics.ConversionFailures.Inc()
		return err
	}

	return s.emit(block, pbfirehose.ForkStep_STEP_NEW, b.Header.Number, yield)
}

// emitUndo reverts the block at last. The undo block carries only the reverted
// height and the hash of the block the new branch builds on.
func (s *stream) emitUndo(last, base datasource.HashAndHeight, yield func(*pbfirehose.Response, error) bool) error {
	parentHash, err := common.DecodeHex(base.Hash)
	if err != nil {
		return fmt.Errorf("undo of block %d: %w", last.Height, err)
	}

	s.firehose.log.Infow("chain reorganization",
		"undone_height", last.Height,
		"undone_hash", last.Hash,
		"new_base_height", base.Height,
		"new_base_hash", base.Hash,
	)

	block := &pbeth.Block{
		Header: &pbeth.BlockHeader{
			Number:     last.Height,
			ParentHash: parentHash,
		},
	}

	return s.emit(block, pbfirehose.ForkStep_STEP_UNDO, last.Height, yield)
}

func (s *stream) emit(block *pbeth.Block, step pbfirehose.ForkStep, height uint64, yield func(*pbfirehose.Response, error) bool) error {
	payload, err := anypb.New(block)
	if err != nil {
		return fmt.Errorf("failed to encode block %d: %w", height, err)
	}

	metrics.StreamResponseInc(s.phase, step.String())

	if !yield(&pbfirehose.Response{
		Block:  payload,
		Step:   step,
		Cursor: strconv.FormatUint(height, 10),
	}, nil) {
		return errConsumerStopped
	}

	return nil
}

func sameHead(a, b datasource.HashAndHeight) bool {
	return a.Height == b.Height && strings.EqualFold(a.Hash, b.Hash)
}
