package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/grensregio/directory-ui/internal/domain/auth"
	"github.com/grensregio/directory-ui/internal/directory"
	"github.com/grensregio/directory-ui/internal/listing"
)

// newTestRouter builds the full router on embedded templates with a
// fake API behind it.
func newTestRouter(t *testing.T, auth AuthServiceInterface, dir *fakeDirectory) http.Handler {
	t.Helper()
	if dir == nil {
		dir = &fakeDirectory{
			listFunc: func(ctx context.Context, filters directory.Filters) ([]directory.Business, error) {
				return testBusinesses(), nil
			},
		}
	}
	return NewRouter(RouterServices{
		Auth:      auth,
		Directory: dir,
		Listing:   listing.NewView(dir),
	})
}

func TestRouter_HomeIsPublic(t *testing.T) {
	router := newTestRouter(t, &fakeAuthService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Brauhaus am Rhein")
}

func TestRouter_DashboardRequiresSession(t *testing.T) {
	router := newTestRouter(t, &fakeAuthService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/login?redirect_uri=%2Fdashboard")
}

func TestRouter_AdminGateSendsStudentToDashboard(t *testing.T) {
	auth := &fakeAuthService{
		resolveFunc: func(ctx context.Context, sessionID string) (*domainauth.Session, error) {
			return activeTestSession(domainauth.RoleStudent), nil
		},
	}
	router := newTestRouter(t, auth, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-test"})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestRouter_AdminPageForAdmin(t *testing.T) {
	auth := &fakeAuthService{
		resolveFunc: func(ctx context.Context, sessionID string) (*domainauth.Session, error) {
			s := activeTestSession(domainauth.RoleAdmin)
			return s, nil
		},
	}
	router := newTestRouter(t, auth, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-test"})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Nieuw bedrijf")
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t, &fakeAuthService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouter_UnknownPageRenders404(t *testing.T) {
	router := newTestRouter(t, &fakeAuthService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "404")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestRouter_UnknownAPIPathReturnsJSON404(t *testing.T) {
	router := newTestRouter(t, &fakeAuthService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestRouter_StaticAssetFromEmbeddedFS(t *testing.T) {
	router := newTestRouter(t, &fakeAuthService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/static/css/style.css", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Cache-Control"), "max-age")
	assert.Contains(t, w.Body.String(), "business-card")
}

func TestRouter_SessionStatusEndpoint(t *testing.T) {
	router := newTestRouter(t, &fakeAuthService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())
}

func TestRouter_MarkersEndpointIsPublic(t *testing.T) {
	router := newTestRouter(t, &fakeAuthService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/markers", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"maps_url"`)
}
