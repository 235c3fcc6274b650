package httpx

import (
	"net/http"
)

// NotFound renders the HTML 404 page. API paths never reach here; the
// router answers those with JSON before falling back to this handler.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, PageMeta{
		Title:     "Pagina niet gevonden - Grensregio Bedrijvengids",
		PageTitle: "Pagina niet gevonden",
	}).
		With("Code", "404").
		With("Message", "De pagina die u zoekt bestaat niet.").
		With("RedirectURI", safeRedirectPath(r.URL.RequestURI())).
		Build()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if h.T != nil {
		if err := h.T.RenderError(w, r, data); err != nil {
			http.Error(w, "Page not found", http.StatusNotFound)
		}
	} else {
		http.Error(w, "Page not found", http.StatusNotFound)
	}
}
