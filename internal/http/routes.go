package httpx

import (
	"bytes"
	"errors"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"

	directoryui "github.com/grensregio/directory-ui"
	domainauth "github.com/grensregio/directory-ui/internal/domain/auth"
	"github.com/grensregio/directory-ui/internal/listing"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth         AuthServiceInterface
	Directory    DirectoryService
	Listing      *listing.View
	CookieDomain string
	CookieSecure bool
	IsDev        bool         // Development mode flag for template hot reloading.
	Logger       *slog.Logger // Logger for template and HTTP errors (optional).
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	uiHandlers := setupUIHandlers(services)
	var authHandlers *AuthHandlers
	if services.Auth != nil && uiHandlers != nil {
		authHandlers = &AuthHandlers{
			Svc:          services.Auth,
			T:            uiHandlers.T,
			CookieDomain: services.CookieDomain,
			CookieSecure: services.CookieSecure,
			DemoAccounts: services.IsDev,
			Logger:       services.Logger,
		}
	}

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	// Static assets at /static
	// Dev mode: serve from disk for hot reloading
	// Prod mode: serve from embedded FS
	mux.Handle("GET /static/", staticHandler(services.IsDev))

	if authHandlers != nil {
		registerAuthRoutes(mux, authHandlers)
	}
	if uiHandlers != nil {
		registerUIRoutes(mux, uiHandlers, services)
	}

	// Wrap with NotFound handler for friendly 404 pages.
	return &notFoundHandler{
		mux:        mux,
		uiHandlers: uiHandlers,
	}
}

// setupUIHandlers creates UI handlers with template renderer.
// In dev mode templates are loaded from disk for hot reloading; in
// production they come from the embedded FS.
func setupUIHandlers(services RouterServices) *UIHandlers {
	var templateFS fs.FS
	if services.IsDev {
		templateFS = os.DirFS(TemplatePathFromRoot)
	} else {
		sub, err := fs.Sub(directoryui.TemplateFS, "frontend/templates")
		if err != nil {
			log.Printf("failed to create sub-filesystem for templates: %v; falling back to disk", err)
			sub = os.DirFS(TemplatePathFromRoot)
		}
		templateFS = sub
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		Logger:     services.Logger,
	})
	if err != nil {
		if services.Logger != nil {
			services.Logger.Error("failed to create template renderer", slog.Any("error", err))
		} else {
			log.Printf("ERROR: failed to create template renderer: %v", err)
		}
		return nil
	}

	return &UIHandlers{
		T:         tr,
		Listing:   services.Listing,
		Directory: services.Directory,
		IsDev:     services.IsDev,
		Logger:    services.Logger,
	}
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /login", h.LoginPage)
	mux.HandleFunc("POST /login", h.LoginSubmit)
	mux.HandleFunc("POST /logout", h.Logout)
	mux.HandleFunc("GET /api/session", h.Status)
}

func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, services RouterServices) {
	wrap := sessionWrap(services.Auth)
	wrapAdmin := adminWrap(services.Auth)
	wrapOptional := optionalWrap(services.Auth)

	// Public listing and marker feed. The session is resolved when
	// present so the nav can show who is signed in.
	mux.Handle("GET /{$}", wrapOptional(http.HandlerFunc(h.Index)))
	mux.Handle("GET /api/markers", wrapOptional(http.HandlerFunc(h.Markers)))

	mux.Handle("GET /dashboard", wrap(http.HandlerFunc(h.Dashboard)))

	mux.Handle("GET /admin", wrapAdmin(http.HandlerFunc(h.Admin)))
	mux.Handle("POST /admin/businesses", wrapAdmin(http.HandlerFunc(h.AdminCreateBusiness)))
}

// sessionWrap returns a no-op wrapper when auth is nil, otherwise applies RequireSession.
func sessionWrap(auth AuthServiceInterface) func(http.Handler) http.Handler {
	if auth == nil {
		return func(h http.Handler) http.Handler { return h }
	}
	return RequireSession(auth)
}

// adminWrap returns a no-op wrapper when auth is nil, otherwise applies RequireRole.
func adminWrap(auth AuthServiceInterface) func(http.Handler) http.Handler {
	if auth == nil {
		return func(h http.Handler) http.Handler { return h }
	}
	return RequireRole(auth, domainauth.RoleAdmin)
}

func optionalWrap(auth AuthServiceInterface) func(http.Handler) http.Handler {
	if auth == nil {
		return func(h http.Handler) http.Handler { return h }
	}
	return OptionalSession(auth)
}

// staticHandler serves /static/* assets.
// In dev mode (isDev=true), serves from disk for hot reloading.
// In production mode (isDev=false), serves from embedded FS.
func staticHandler(isDev bool) http.Handler {
	if isDev {
		return staticWithCacheHeaders(
			http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))),
			false,
		)
	}

	staticSub, err := fs.Sub(directoryui.StaticFS, "frontend/static")
	if err != nil {
		log.Printf("failed to create sub-filesystem for static assets: %v", err)
		// Fallback to disk serving if embed fails
		return staticWithCacheHeaders(
			http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))),
			false,
		)
	}
	return staticWithCacheHeaders(
		http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))),
		true,
	)
}

// staticWithCacheHeaders wraps a static file handler to add appropriate cache headers.
func staticWithCacheHeaders(handler http.Handler, cacheable bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cacheable {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		} else {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")
		}
		handler.ServeHTTP(w, r)
	})
}

// notFoundHandler wraps a ServeMux and provides custom 404 handling.
type notFoundHandler struct {
	mux        *http.ServeMux
	uiHandlers *UIHandlers
}

// ServeHTTP implements http.Handler and provides custom 404 handling.
func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cw := newCaptureWriter(w)
	h.mux.ServeHTTP(cw, r)

	if cw.status == http.StatusNotFound {
		// For missing static assets, preserve the default file server response
		if strings.HasPrefix(r.URL.Path, "/static/") {
			cw.flushTo(w)
			return
		}
		if isAPIRequest(r) {
			WriteError(w, ErrorParams{
				Code:    http.StatusNotFound,
				ErrCode: "not_found",
				Err:     errors.New("not found"),
			})
			return
		}
		if h.uiHandlers != nil {
			h.uiHandlers.NotFound(w, r)
			return
		}
		http.NotFound(w, r)
		return
	}

	cw.flushTo(w)
}

// captureWriter buffers headers, status and body so we can decide post-dispatch.
type captureWriter struct {
	rw     http.ResponseWriter
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter(w http.ResponseWriter) *captureWriter {
	return &captureWriter{rw: w, header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter) {
	for k, vs := range c.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	if _, err := w.Write(c.buf.Bytes()); err != nil {
		log.Printf("failed to write captured response: %v", err)
	}
}
