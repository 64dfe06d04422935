package api

import (
	"context"
	"net/http"

	"github.com/hireloop/evalboard/internal/app"
	"github.com/hireloop/evalboard/internal/auth"
)

// HistoryDependencies defines the interface for attempt history reads.
type HistoryDependencies interface {
	History(ctx context.Context, ident auth.Identity) ([]app.HistoryEntry, error)
}

// HistoryHandler handles attempt history requests.
type HistoryHandler struct {
	deps HistoryDependencies
	auth auth.Resolver
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(deps HistoryDependencies, resolver auth.Resolver) *HistoryHandler {
	return &HistoryHandler{deps: deps, auth: resolver}
}

// HandleGetHistory handles GET /history requests for the current user.
func (h *HistoryHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ident, err := h.auth.Resolve(r)
	if err != nil {
		writeUnauthenticated(w, err)
		return
	}
	entries, err := h.deps.History(r.Context(), ident)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
