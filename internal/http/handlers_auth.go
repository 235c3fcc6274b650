package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/grensregio/directory-ui/internal/domain/auth"
	apperrors "github.com/grensregio/directory-ui/internal/errors"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	Login(ctx context.Context, email, password string) (*domainauth.Session, error)
	Resolve(ctx context.Context, sessionID string) (*domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	T            *TemplateRenderer
	CookieDomain string
	CookieSecure bool
	DemoAccounts bool // Show quick-fill demo credentials on the login form (dev only).
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// LoginPage serves the login form.
// GET /login?redirect_uri=<optional_redirect>.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	// Already signed in? Skip the form.
	if cookie, err := r.Cookie("session_id"); err == nil {
		if session, resolveErr := h.Svc.Resolve(r.Context(), cookie.Value); resolveErr == nil {
			http.Redirect(w, r, session.LandingPath(), http.StatusSeeOther)
			return
		}
	}

	h.renderLoginForm(w, r, loginFormState{
		RedirectURI: safeRedirectPath(r.URL.Query().Get("redirect_uri")),
	})
}

// LoginSubmit handles the login form post.
// POST /login with email, password and an optional redirect_uri field.
func (h *AuthHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginForm(w, r, loginFormState{ErrorMessage: "Invalid form submission"})
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	redirectURI := safeRedirectPath(r.PostFormValue("redirect_uri"))

	session, err := h.Svc.Login(r.Context(), email, r.PostFormValue("password"))
	if err != nil {
		h.logger().WarnContext(r.Context(), "login failed",
			slog.String("email", email),
			slog.Any("error", err),
		)
		h.renderLoginForm(w, r, loginFormState{
			Email:        email,
			RedirectURI:  redirectURI,
			ErrorMessage: loginErrorMessage(err),
		})
		return
	}

	h.setSessionCookie(w, r, *session)

	// An explicit destination wins over the role-based landing page.
	if redirectURI == "/" {
		redirectURI = session.LandingPath()
	}
	http.Redirect(w, r, redirectURI, http.StatusSeeOther)
}

// Logout handles the logout endpoint. The server-side session is
// removed and the cookie cleared; the API token is never revoked
// upstream, it simply ages out.
// POST /logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sessionCookie, err := r.Cookie("session_id"); err == nil {
		if logoutErr := h.Svc.Logout(r.Context(), sessionCookie.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", slog.Any("error", logoutErr))
		}
	}

	h.clearCookie(w, r, "session_id")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Status reports the current session as JSON.
// GET /api/session.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	sessionCookie, err := r.Cookie("session_id")
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	session, err := h.Svc.Resolve(r.Context(), sessionCookie.Value)
	if err != nil {
		// Session is invalid or expired, clear the cookie
		h.clearCookie(w, r, "session_id")
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"id":         session.UserID,
			"email":      session.Email,
			"first_name": session.FirstName,
			"last_name":  session.LastName,
			"role":       string(session.Role),
		},
		"expires_at": session.ExpiresAt,
	})
}

type loginFormState struct {
	Email        string
	RedirectURI  string
	ErrorMessage string
}

func (h *AuthHandlers) renderLoginForm(w http.ResponseWriter, r *http.Request, state loginFormState) {
	builder := NewTemplateData(r, PageMeta{
		Title:       "Grensregio Bedrijvengids - Inloggen",
		PageTitle:   "Inloggen",
		CurrentPage: PageLogin,
	}).
		With("Email", state.Email).
		With("RedirectURI", state.RedirectURI).
		With("DemoAccounts", h.DemoAccounts)

	if state.ErrorMessage != "" {
		builder.WithError(state.ErrorMessage)
		w.WriteHeader(http.StatusUnauthorized)
	}

	if err := h.T.RenderPage(w, PageTemplateFor(PageLogin), builder.Build()); err != nil {
		h.logger().ErrorContext(r.Context(), "render login failed", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// loginErrorMessage maps an error to user-facing form feedback without
// leaking transport details.
func loginErrorMessage(err error) string {
	switch {
	case apperrors.IsValidation(err):
		return err.Error()
	case apperrors.IsAuthentication(err):
		return "Invalid email or password"
	default:
		return "Login is temporarily unavailable, please try again"
	}
}

// clearCookie clears a cookie by setting it to expire immediately.
// It mirrors key attributes (Secure, Path, Domain, SameSite) used when setting cookies
// to maximize compatibility across browsers during deletion.
func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   h.cookieSecure(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// setSessionCookie writes the session cookie based on the session's expiry.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    s.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   h.cookieSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
	})
}

func (h *AuthHandlers) cookieSecure(r *http.Request) bool {
	return h.CookieSecure || r.TLS != nil ||
		strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
