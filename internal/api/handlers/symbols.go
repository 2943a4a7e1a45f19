package handlers

import (
	"net/http"

	"github.com/perfhelf/FXview/internal/engineconfig"
)

// SymbolHandler describes the configured symbol universe
type SymbolHandler struct {
	cfg *engineconfig.Config
}

// NewSymbolHandler creates a new symbol handler
func NewSymbolHandler(cfg *engineconfig.Config) *SymbolHandler {
	return &SymbolHandler{cfg: cfg}
}

// SymbolInfo is one entry of the symbol listing
type SymbolInfo struct {
	Name    string                   `json:"name"`
	Class   engineconfig.SymbolClass `json:"class"`
	MinBars int                      `json:"min_bars"`
	Formula string                   `json:"formula"`
}

// List returns the configured symbols in order
// GET /api/symbols
func (h *SymbolHandler) List(w http.ResponseWriter, r *http.Request) {
	out := make([]SymbolInfo, 0, len(h.cfg.Symbols))
	for _, s := range h.cfg.Symbols {
		out = append(out, SymbolInfo{
			Name:    s.Name,
			Class:   s.Class,
			MinBars: h.cfg.MinBars.For(s.Class),
			Formula: s.Formula,
		})
	}
	respondJSON(w, http.StatusOK, out)
}
