package httpx

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	domainauth "github.com/grensregio/directory-ui/internal/domain/auth"
	"github.com/grensregio/directory-ui/internal/directory"
	apperrors "github.com/grensregio/directory-ui/internal/errors"
	"github.com/grensregio/directory-ui/internal/listing"
)

// RequireTemplateRenderer creates a TemplateRenderer for tests, skipping the test if templates are not available.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
	})
	if err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
		return nil
	}
	return tr
}

// fakeAuthService is a func-field double for AuthServiceInterface.
type fakeAuthService struct {
	loginFunc   func(ctx context.Context, email, password string) (*domainauth.Session, error)
	resolveFunc func(ctx context.Context, sessionID string) (*domainauth.Session, error)
	logoutFunc  func(ctx context.Context, sessionID string) error
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (*domainauth.Session, error) {
	if f.loginFunc != nil {
		return f.loginFunc(ctx, email, password)
	}
	return nil, apperrors.Authentication("login not configured")
}

func (f *fakeAuthService) Resolve(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if f.resolveFunc != nil {
		return f.resolveFunc(ctx, sessionID)
	}
	return nil, apperrors.NotAuthenticated("no session")
}

func (f *fakeAuthService) Logout(ctx context.Context, sessionID string) error {
	if f.logoutFunc != nil {
		return f.logoutFunc(ctx, sessionID)
	}
	return nil
}

// fakeDirectory is a func-field double for DirectoryService.
type fakeDirectory struct {
	listFunc    func(ctx context.Context, filters directory.Filters) ([]directory.Business, error)
	createFunc  func(ctx context.Context, nb directory.NewBusiness) (directory.Business, error)
	profileFunc func(ctx context.Context, token string) (directory.User, error)
}

func (f *fakeDirectory) ListBusinesses(ctx context.Context, filters directory.Filters) ([]directory.Business, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx, filters)
	}
	return nil, nil
}

func (f *fakeDirectory) CreateBusiness(ctx context.Context, nb directory.NewBusiness) (directory.Business, error) {
	if f.createFunc != nil {
		return f.createFunc(ctx, nb)
	}
	return directory.Business{}, errors.New("create not configured")
}

func (f *fakeDirectory) Profile(ctx context.Context, token string) (directory.User, error) {
	if f.profileFunc != nil {
		return f.profileFunc(ctx, token)
	}
	return directory.User{}, nil
}

// newTestUIHandlers wires UIHandlers around a fake directory with a
// fresh listing view. Skips when templates are missing.
func newTestUIHandlers(t *testing.T, dir *fakeDirectory) *UIHandlers {
	t.Helper()
	tr := RequireTemplateRenderer(t)
	if tr == nil {
		return nil
	}
	return &UIHandlers{
		T:         tr,
		Listing:   listing.NewView(dir),
		Directory: dir,
	}
}

func testBusinesses() []directory.Business {
	return []directory.Business{
		{ID: 1, Name: "Brauhaus am Rhein", Category: "restaurant", City: "Düsseldorf", Latitude: 51.2277, Longitude: 6.7735, Address: "Rheinstraße 12"},
		{ID: 2, Name: "Tank & Rast Köln", Category: "tankstation", City: "Köln", Latitude: 50.9375, Longitude: 6.9603},
		{ID: 3, Name: "Altstadt Supermarkt", Category: "supermarkt", City: "Düsseldorf"},
	}
}

func activeTestSession(role domainauth.Role) *domainauth.Session {
	return &domainauth.Session{
		ID:        "sess-test",
		Token:     "tok-test",
		UserID:    7,
		Email:     "student@deutschebedrijven.nl",
		FirstName: "Sanne",
		LastName:  "Visser",
		Role:      role,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}
