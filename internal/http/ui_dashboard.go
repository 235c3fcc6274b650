package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/grensregio/directory-ui/internal/directory"
)

// Dashboard serves the student landing page. The business collection
// and the fresh profile snapshot are fetched concurrently; either one
// failing degrades its own section rather than the whole page.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())

	builder := NewTemplateData(r, PageMeta{
		Title:       "Grensregio Bedrijvengids - Dashboard",
		PageTitle:   "Dashboard",
		CurrentPage: PageDashboard,
	})

	var profile directory.User
	var profileErr error

	g, gctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		return h.Listing.Refresh(gctx)
	})
	g.Go(func() error {
		if session == nil {
			return nil
		}
		profile, profileErr = h.Directory.Profile(gctx, session.Token)
		return nil
	})

	if err := g.Wait(); err != nil {
		h.logger().WarnContext(r.Context(), "dashboard refresh failed", slog.Any("error", err))
		builder.WithError("Unable to load the latest businesses")
	}

	category, city := selectionFromQuery(r)
	visible := h.Listing.VisibleWith(category, city)

	builder.
		With("Businesses", visible).
		With("BusinessCount", len(visible)).
		With("Categories", h.Listing.Categories()).
		With("Cities", h.Listing.Cities()).
		With("SelectedCategory", category).
		With("SelectedCity", city)

	h.addProfileSection(r.Context(), builder, profile, profileErr)

	h.renderPage(w, r, PageDashboard, builder.Build())
}

// addProfileSection attaches the profile card fields when the fetch
// succeeded and logs quietly when it did not. The page still renders
// from the session snapshot in that case.
func (h *UIHandlers) addProfileSection(ctx context.Context, b *TemplateDataBuilder, profile directory.User, err error) {
	if err != nil {
		h.logger().WarnContext(ctx, "profile refresh failed", slog.Any("error", err))
		return
	}
	if profile.ID == 0 {
		return
	}
	b.
		With("Profile", profile).
		With("StudentID", profile.StudentID).
		With("University", profile.University)
}
