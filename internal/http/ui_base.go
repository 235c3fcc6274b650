package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/grensregio/directory-ui/internal/directory"
	"github.com/grensregio/directory-ui/internal/listing"
)

// DirectoryService is the slice of the directory API client the UI
// handlers need beyond what the listing view already covers.
type DirectoryService interface {
	listing.Lister
	CreateBusiness(ctx context.Context, nb directory.NewBusiness) (directory.Business, error)
	Profile(ctx context.Context, token string) (directory.User, error)
}

// UIHandlers serves the HTML pages.
type UIHandlers struct {
	T         *TemplateRenderer
	Listing   *listing.View
	Directory DirectoryService
	Logger    *slog.Logger
	IsDev     bool
}

func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// renderPage executes the page template, falling back to a plain 500
// when rendering itself fails. The renderer buffers output, so no
// partial page ever reaches the client.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, page string, data map[string]any) {
	if err := h.T.RenderPage(w, PageTemplateFor(page), data); err != nil {
		h.logger().ErrorContext(r.Context(), "render page failed",
			slog.String("page", page),
			slog.Any("error", err),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// listingData refreshes the shared collection and assembles the list,
// facet, and selection fields every listing page shares. A refresh
// failure degrades to the previously held collection with an error
// banner instead of a dead page.
func (h *UIHandlers) listingData(r *http.Request, b *TemplateDataBuilder) *TemplateDataBuilder {
	ctx := r.Context()
	if err := h.Listing.Refresh(ctx); err != nil {
		h.logger().WarnContext(ctx, "business refresh failed", slog.Any("error", err))
		b.WithError("Unable to load the latest businesses")
	}

	category, city := selectionFromQuery(r)
	visible := h.Listing.VisibleWith(category, city)

	return b.
		With("Businesses", visible).
		With("BusinessCount", len(visible)).
		With("Categories", h.Listing.Categories()).
		With("Cities", h.Listing.Cities()).
		With("SelectedCategory", category).
		With("SelectedCity", city)
}
