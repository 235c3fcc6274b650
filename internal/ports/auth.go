package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	"github.com/grensregio/directory-ui/internal/directory"
	domainauth "github.com/grensregio/directory-ui/internal/domain/auth"
)

// Authenticator exchanges credentials for a bearer token and resolves
// the account behind a token. The directory API client implements it.
type Authenticator interface {
	// Login authenticates against the directory API and returns the
	// issued bearer token with the account it belongs to.
	Login(ctx context.Context, email, password string) (string, directory.User, error)

	// Profile resolves the account behind a bearer token.
	Profile(ctx context.Context, token string) (directory.User, error)
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}
