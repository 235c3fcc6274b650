package httpx

import (
	"net/http"
	"strings"
)

// selectionFromQuery reads the filter selection from the query string.
// Absent and blank parameters both mean "no constraint".
func selectionFromQuery(r *http.Request) (category, city string) {
	q := r.URL.Query()
	return strings.TrimSpace(q.Get("category")), strings.TrimSpace(q.Get("city"))
}
