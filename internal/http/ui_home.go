package httpx

import "net/http"

// Index serves the public home page: the full business listing with
// filter controls and the map. No session is required.
func (h *UIHandlers) Index(w http.ResponseWriter, r *http.Request) {
	data := h.listingData(r, NewTemplateData(r, PageMeta{
		Title:       "Grensregio Bedrijvengids",
		PageTitle:   "Bedrijven",
		CurrentPage: PageHome,
	})).Build()

	h.renderPage(w, r, PageHome, data)
}
