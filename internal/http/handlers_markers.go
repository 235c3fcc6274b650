package httpx

import (
	"log/slog"
	"net/http"

	"github.com/grensregio/directory-ui/internal/mapview"
)

// Markers returns the plottable subset of the current listing as map
// markers, honoring the same query filters as the listing pages.
// GET /api/markers.
func (h *UIHandlers) Markers(w http.ResponseWriter, r *http.Request) {
	if err := h.Listing.Refresh(r.Context()); err != nil {
		h.logger().WarnContext(r.Context(), "marker refresh failed", slog.Any("error", err))
	}

	category, city := selectionFromQuery(r)
	markers := mapview.Markers(h.Listing.VisibleWith(category, city))

	WriteJSON(w, http.StatusOK, map[string]any{
		"markers": markers,
		"count":   len(markers),
	})
}
