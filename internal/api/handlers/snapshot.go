package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/perfhelf/FXview/internal/contracts"
	"github.com/perfhelf/FXview/internal/snapshot"
	"github.com/perfhelf/FXview/pkg/logger"
)

// SnapshotHandler serves stored snapshots
// ⭐ SSOT: 스냅샷 조회 API 는 이 핸들러에서만
type SnapshotHandler struct {
	reader contracts.SnapshotReader
	logger *logger.Logger
}

// NewSnapshotHandler creates a new snapshot handler
func NewSnapshotHandler(reader contracts.SnapshotReader, log *logger.Logger) *SnapshotHandler {
	return &SnapshotHandler{reader: reader, logger: log}
}

// List returns the flat listing {symbol: payload}
// GET /api/snapshots
func (h *SnapshotHandler) List(w http.ResponseWriter, r *http.Request) {
	snaps, err := h.reader.List(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list snapshots")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve snapshots")
		return
	}

	respondJSON(w, http.StatusOK, snapshot.Listing(snaps))
}

// Get returns one symbol's snapshot
// GET /api/snapshots/{symbol}
func (h *SnapshotHandler) Get(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(mux.Vars(r)["symbol"])

	snap, err := h.reader.Get(r.Context(), symbol)
	if errors.Is(err, contracts.ErrSnapshotNotFound) {
		respondError(w, http.StatusNotFound, "No snapshot for "+symbol)
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("symbol", symbol).Error("Failed to get snapshot")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve snapshot")
		return
	}

	respondJSON(w, http.StatusOK, snap)
}
