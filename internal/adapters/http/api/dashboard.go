package api

import (
	"context"
	"net/http"

	"github.com/hireloop/evalboard/internal/app"
	"github.com/hireloop/evalboard/internal/auth"
)

// DashboardDependencies defines the interface for dashboard reads.
type DashboardDependencies interface {
	Dashboard(ctx context.Context, ident auth.Identity, search string) (app.DashboardView, error)
}

// DashboardHandler handles dashboard requests.
type DashboardHandler struct {
	deps DashboardDependencies
	auth auth.Resolver
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(deps DashboardDependencies, resolver auth.Resolver) *DashboardHandler {
	return &DashboardHandler{deps: deps, auth: resolver}
}

// HandleGetDashboard handles GET /dashboard?search=term requests.
func (h *DashboardHandler) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ident, err := h.auth.Resolve(r)
	if err != nil {
		writeUnauthenticated(w, err)
		return
	}
	view, err := h.deps.Dashboard(r.Context(), ident, r.URL.Query().Get("search"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
