package httpx

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/grensregio/directory-ui/internal/directory"
	apperrors "github.com/grensregio/directory-ui/internal/errors"
)

// Admin serves the management page: the full listing plus the creation
// form. Reached only through the admin role gate.
func (h *UIHandlers) Admin(w http.ResponseWriter, r *http.Request) {
	builder := h.listingData(r, NewTemplateData(r, PageMeta{
		Title:       "Grensregio Bedrijvengids - Beheer",
		PageTitle:   "Beheer",
		CurrentPage: PageAdmin,
	})).
		With("Form", map[string]string{}).
		With("Errors", map[string]string{}).
		With("CategoryStats", categoryStats(h.Listing.All()))

	if created := strings.TrimSpace(r.URL.Query().Get("created")); created != "" {
		builder.With("Created", created)
	}

	h.renderPage(w, r, PageAdmin, builder.Build())
}

// AdminCreateBusiness handles the create form post. After a successful
// create the listing is refetched rather than patched locally, so the
// page always shows the server's authoritative state.
// POST /admin/businesses.
func (h *UIHandlers) AdminCreateBusiness(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderAdminWithError(w, r, "Invalid form submission", nil)
		return
	}

	nb, fieldErrs := parseBusinessForm(r)
	if len(fieldErrs) > 0 {
		h.renderAdminWithError(w, r, "Please correct the highlighted fields", fieldErrs)
		return
	}

	created, err := h.Directory.CreateBusiness(r.Context(), nb)
	if err != nil {
		h.logger().WarnContext(r.Context(), "business create failed",
			slog.String("name", nb.Name),
			slog.Any("error", err),
		)
		h.renderAdminWithError(w, r, createErrorMessage(err), nil)
		return
	}

	if err := h.Listing.Refresh(r.Context()); err != nil {
		h.logger().WarnContext(r.Context(), "refetch after create failed", slog.Any("error", err))
	}

	http.Redirect(w, r, "/admin?created="+url.QueryEscape(created.Name), http.StatusSeeOther)
}

func (h *UIHandlers) renderAdminWithError(w http.ResponseWriter, r *http.Request, msg string, fieldErrs map[string]string) {
	builder := h.listingData(r, NewTemplateData(r, PageMeta{
		Title:       "Grensregio Bedrijvengids - Beheer",
		PageTitle:   "Beheer",
		CurrentPage: PageAdmin,
	})).
		WithError(msg).
		With("Form", formValues(r)).
		With("Errors", nonNilFieldErrors(fieldErrs)).
		With("CategoryStats", categoryStats(h.Listing.All()))

	w.WriteHeader(http.StatusUnprocessableEntity)
	h.renderPage(w, r, PageAdmin, builder.Build())
}

// parseBusinessForm validates the creation form. Name, category, and
// city are required; coordinates are optional but must parse when
// present.
func parseBusinessForm(r *http.Request) (directory.NewBusiness, map[string]string) {
	fieldErrs := make(map[string]string)

	nb := directory.NewBusiness{
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Category:    strings.TrimSpace(r.PostFormValue("category")),
		SubCategory: strings.TrimSpace(r.PostFormValue("sub_category")),
		Address:     strings.TrimSpace(r.PostFormValue("address")),
		City:        strings.TrimSpace(r.PostFormValue("city")),
		PostalCode:  strings.TrimSpace(r.PostFormValue("postal_code")),
		Phone:       strings.TrimSpace(r.PostFormValue("phone")),
		Website:     strings.TrimSpace(r.PostFormValue("website")),
		Email:       strings.TrimSpace(r.PostFormValue("email")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
	}

	if nb.Name == "" {
		fieldErrs["name"] = "Name is required"
	}
	if nb.Category == "" {
		fieldErrs["category"] = "Category is required"
	}
	if nb.City == "" {
		fieldErrs["city"] = "City is required"
	}

	nb.Latitude = parseCoordinate(r.PostFormValue("latitude"), "latitude", fieldErrs)
	nb.Longitude = parseCoordinate(r.PostFormValue("longitude"), "longitude", fieldErrs)

	if len(fieldErrs) > 0 {
		return directory.NewBusiness{}, fieldErrs
	}
	return nb, nil
}

func parseCoordinate(raw, field string, fieldErrs map[string]string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fieldErrs[field] = "Must be a number"
		return 0
	}
	return v
}

func formValues(r *http.Request) map[string]string {
	fields := []string{
		"name", "category", "sub_category", "address", "city",
		"postal_code", "latitude", "longitude", "phone", "website",
		"email", "description",
	}
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f] = r.PostFormValue(f)
	}
	return out
}

type categoryStat struct {
	Name  string
	Count int
}

// categoryStats counts businesses per category, keeping the order
// categories first appeared in the collection.
func categoryStats(businesses []directory.Business) []categoryStat {
	counts := make(map[string]int, len(businesses))
	order := make([]string, 0, len(businesses))
	for _, b := range businesses {
		if b.Category == "" {
			continue
		}
		if _, seen := counts[b.Category]; !seen {
			order = append(order, b.Category)
		}
		counts[b.Category]++
	}

	out := make([]categoryStat, 0, len(order))
	for _, name := range order {
		out = append(out, categoryStat{Name: name, Count: counts[name]})
	}
	return out
}

// nonNilFieldErrors keeps the template's index lookups safe when no
// field failed.
func nonNilFieldErrors(errs map[string]string) map[string]string {
	if errs == nil {
		return map[string]string{}
	}
	return errs
}

func createErrorMessage(err error) string {
	if apperrors.IsBusinessCreate(err) {
		return err.Error()
	}
	return "Unable to create the business, please try again"
}
