package httpx

import (
	"compress/gzip"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/grensregio/directory-ui/internal/domain/auth"
	apperrors "github.com/grensregio/directory-ui/internal/errors"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireSession_NoCookie_RedirectsToLogin(t *testing.T) {
	svc := &fakeAuthService{}
	handler := RequireSession(svc)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/dashboard?city=K%C3%B6ln", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	location := w.Header().Get("Location")
	assert.Contains(t, location, "/login")
	assert.Contains(t, location, "redirect_uri=%2Fdashboard")
}

func TestRequireSession_ResolveFails_RedirectsToLogin(t *testing.T) {
	svc := &fakeAuthService{
		resolveFunc: func(ctx context.Context, sessionID string) (*domainauth.Session, error) {
			return nil, apperrors.ProfileFetch("api unreachable")
		},
	}
	handler := RequireSession(svc)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-stale"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	// Any resolution failure means login, not an error page.
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/login")
}

func TestRequireSession_APIRequest_JSON401(t *testing.T) {
	svc := &fakeAuthService{}
	handler := RequireSession(svc)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/markers", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, w.Body.String(), "authentication_required")
}

func TestRequireSession_ValidSession_SetsContext(t *testing.T) {
	session := activeTestSession(domainauth.RoleStudent)
	svc := &fakeAuthService{
		resolveFunc: func(ctx context.Context, sessionID string) (*domainauth.Session, error) {
			assert.Equal(t, "sess-test", sessionID)
			return session, nil
		},
	}

	var seen *domainauth.Session
	handler := RequireSession(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetSessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-test"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, seen)
	assert.Equal(t, session.Email, seen.Email)
}

func TestRequireRole_StudentAtAdminPage_RedirectsToOwnLanding(t *testing.T) {
	svc := &fakeAuthService{
		resolveFunc: func(ctx context.Context, sessionID string) (*domainauth.Session, error) {
			return activeTestSession(domainauth.RoleStudent), nil
		},
	}
	handler := RequireRole(svc, domainauth.RoleAdmin)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-test"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestRequireRole_AdminPasses(t *testing.T) {
	svc := &fakeAuthService{
		resolveFunc: func(ctx context.Context, sessionID string) (*domainauth.Session, error) {
			s := activeTestSession(domainauth.RoleAdmin)
			return s, nil
		},
	}
	handler := RequireRole(svc, domainauth.RoleAdmin)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-test"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalSession_AnonymousPassesThrough(t *testing.T) {
	svc := &fakeAuthService{}

	var seen *domainauth.Session
	handler := OptionalSession(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetSessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, seen)
}

func TestSafeRedirectPath(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		want      string
	}{
		{"empty", "", "/"},
		{"relative path", "/dashboard", "/dashboard"},
		{"relative with query", "/dashboard?city=K%C3%B6ln", "/dashboard?city=K%C3%B6ln"},
		{"absolute url", "https://evil.example/phish", "/"},
		{"protocol relative", "//evil.example/phish", "/"},
		{"no leading slash", "dashboard", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, safeRedirectPath(tt.candidate))
		})
	}
}

func TestCompression_GzipsWhenAccepted(t *testing.T) {
	body := strings.Repeat("grensregio ", 200)
	handler := Compression(CompressionConfig{Level: gzip.DefaultCompression})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = io.WriteString(w, body)
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	decoded, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, body, string(decoded))
}

func TestCompression_SkippedWithoutAcceptHeader(t *testing.T) {
	handler := Compression(CompressionConfig{})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "plain")
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, "plain", w.Body.String())
}

func TestRecover_PanicBecomes500(t *testing.T) {
	handler := Recover(slog.Default())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
