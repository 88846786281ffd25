package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	internalarchive "github.com/goran-ethernal/ChainFirehose/internal/archive"
	"github.com/goran-ethernal/ChainFirehose/internal/common"
	"github.com/goran-ethernal/ChainFirehose/internal/firehose"
	"github.com/goran-ethernal/ChainFirehose/internal/logger"
	"github.com/goran-ethernal/ChainFirehose/pkg/archive"
	pbeth "github.com/streamingfast/firehose-ethereum/types/pb/sf/ethereum/type/v2"
	pbfirehose "github.com/streamingfast/pbgo/sf/firehose/v2"
	"google.golang.org/protobuf/encoding/protojson"
)

// ArchiveReader is the part of the archive the API reads.
type ArchiveReader interface {
	Stats(ctx context.Context) (archive.Stats, error)
	GetBlockNumber(ctx context.Context, hash string) (uint64, error)
}

// HeadSource reports the live node's finalized height.
type HeadSource interface {
	GetFinalizedHeight(ctx context.Context) (uint64, error)
}

// BlockFetcher resolves single block requests.
type BlockFetcher interface {
	Block(ctx context.Context, req *pbfirehose.SingleBlockRequest) (*pbfirehose.SingleBlockResponse, error)
}

// Handler handles HTTP requests for the API.
type Handler struct {
	archive ArchiveReader
	live    HeadSource
	fetcher BlockFetcher
	log     *logger.Logger
}

// NewHandler creates a new API handler.
func NewHandler(archive ArchiveReader, live HeadSource, fetcher BlockFetcher, log *logger.Logger) *Handler {
	return &Handler{
		archive: archive,
		live:    live,
		fetcher: fetcher,
		log:     log,
	}
}

// Health returns the health of the archive and the live node.
// @Summary Health check
// @Description Check that the archive can be read and the live node answers
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse "All components healthy"
// @Failure 503 {object} HealthResponse "At least one component is unhealthy"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	archiveStatus := ComponentStatus{Name: common.ComponentArchive, Healthy: true}
	if _, err := h.archive.Stats(r.Context()); err != nil {
		archiveStatus.Healthy = false
		archiveStatus.Error = err.Error()
	}

	liveStatus := ComponentStatus{Name: common.ComponentRPCSource, Healthy: true}
	if _, err := h.live.GetFinalizedHeight(r.Context()); err != nil {
		liveStatus.Healthy = false
		liveStatus.Error = err.Error()
	}

	response := HealthResponse{
		Status:     "ok",
		Timestamp:  time.Now(),
		Components: []ComponentStatus{archiveStatus, liveStatus},
	}

	status := http.StatusOK
	if !archiveStatus.Healthy || !liveStatus.Healthy {
		response.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	respondJSON(w, status, response)
}

// GetHead reports the archived range and the live finalized height.
// @Summary Chain heads
// @Description Get the archived block range and the live node's finalized height
// @Tags Blocks
// @Produce json
// @Success 200 {object} HeadResponse "Archive and live heads"
// @Failure 500 {object} ErrorResponse "Archive unavailable"
// @Failure 502 {object} ErrorResponse "Live node unavailable"
// @Router /head [get]
func (h *Handler) GetHead(w http.ResponseWriter, r *http.Request) {
	stats, err := h.archive.Stats(r.Context())
	if err != nil {
		h.log.Errorf("failed to read archive stats: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to read archive stats")
		return
	}

	finalized, err := h.live.GetFinalizedHeight(r.Context())
	if err != nil {
		h.log.Warnf("failed to get live finalized height: %v", err)
		respondError(w, http.StatusBadGateway, "failed to get live finalized height")
		return
	}

	response := HeadResponse{
		Archive: ArchiveStatus{
			Oldest:    stats.Oldest,
			Newest:    stats.Newest,
			Count:     stats.Count,
			SizeBytes: stats.SizeBytes,
		},
		LiveFinalized: finalized,
	}
	if finalized > stats.Newest {
		response.Lag = finalized - stats.Newest
	}

	respondJSON(w, http.StatusOK, response)
}

// GetBlock returns one archived block in its canonical form.
// @Summary Get a block
// @Description Fetch an archived block by height (decimal or 0x hex), cursor or 0x-prefixed hash
// @Tags Blocks
// @Produce json
// @Param ref path string true "Block height, cursor or hash"
// @Success 200 {object} pbeth.Block "Canonical block in protobuf JSON"
// @Failure 400 {object} ErrorResponse "Invalid reference"
// @Failure 404 {object} ErrorResponse "Block not archived"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /blocks/{ref} [get]
func (h *Handler) GetBlock(w http.ResponseWriter, r *http.Request) {
	ref := strings.TrimSpace(r.PathValue("ref"))
	if ref == "" {
		respondError(w, http.StatusBadRequest, "block reference is required")
		return
	}

	req, err := h.resolveReference(r.Context(), ref)
	if err != nil {
		h.respondLookupError(w, ref, err)
		return
	}

	resp, err := h.fetcher.Block(r.Context(), req)
	if err != nil {
		h.respondLookupError(w, ref, err)
		return
	}

	block := &pbeth.Block{}
	if err := resp.GetBlock().UnmarshalTo(block); err != nil {
		h.log.Errorf("failed to decode block %s: %v", ref, err)
		respondError(w, http.StatusInternalServerError, "failed to decode block")
		return
	}

	encoded, err := protojson.Marshal(block)
	if err != nil {
		h.log.Errorf("failed to encode block %s: %v", ref, err)
		respondError(w, http.StatusInternalServerError, "failed to encode block")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(encoded)
}

// resolveReference turns a path reference into a single block request. Hashes are looked
// up in the archive; anything else must parse as a height, which is also what cursors encode.
func (h *Handler) resolveReference(ctx context.Context, ref string) (*pbfirehose.SingleBlockRequest, error) {
	if common.IsBlockHash(ref) {
		height, err := h.archive.GetBlockNumber(ctx, ref)
		if err != nil {
			return nil, err
		}

		return firehose.HashAndNumberRequest(height, ref), nil
	}

	height, err := common.ParseBlockNumber(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is neither a height, a cursor nor a block hash", firehose.ErrInvalidCursor, ref)
	}

	return firehose.NumberRequest(height), nil
}

func (h *Handler) respondLookupError(w http.ResponseWriter, ref string, err error) {
	switch {
	case errors.Is(err, firehose.ErrInvalidCursor), errors.Is(err, firehose.ErrNoReference):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, firehose.ErrNotFound), errors.Is(err, internalarchive.ErrBlockNotFound):
		respondError(w, http.StatusNotFound, fmt.Sprintf("block %s is not archived", ref))
	default:
		h.log.Errorf("failed to fetch block %s: %v", ref, err)
		respondError(w, http.StatusInternalServerError, "failed to fetch block")
	}
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")

	// Encode first so a failure can still be reported with a proper status
	encoded, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)

	// Headers are already sent, nothing left to report on a failed write
	_, _ = w.Write(encoded)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	response := ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}
	respondJSON(w, status, response)
}
