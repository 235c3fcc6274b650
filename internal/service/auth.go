package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/grensregio/directory-ui/internal/directory"
	domainauth "github.com/grensregio/directory-ui/internal/domain/auth"
	apperrors "github.com/grensregio/directory-ui/internal/errors"
	"github.com/grensregio/directory-ui/internal/ports"
	"github.com/grensregio/directory-ui/internal/token"
)

// DefaultSessionTTL bounds a session when the bearer token carries no
// readable expiry of its own.
const DefaultSessionTTL = 24 * time.Hour

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Auth       ports.Authenticator
	Sessions   ports.SessionStore
	SessionTTL time.Duration
}

// AuthService orchestrates login against the directory API and session
// persistence. The browser only ever sees an opaque session ID; the
// bearer token stays server-side.
type AuthService struct {
	auth       ports.Authenticator
	sessions   ports.SessionStore
	sessionTTL time.Duration
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &AuthService{
		auth:       opts.Auth,
		sessions:   opts.Sessions,
		sessionTTL: ttl,
	}
}

// Login exchanges credentials for a bearer token and persists a new
// session around it. The session expires when the token does, or after
// the fallback TTL when the token has no readable expiry.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domainauth.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.ValidationField("email", "email is required")
	}
	if password == "" {
		return nil, apperrors.ValidationField("password", "password is required")
	}

	bearer, user, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(s.sessionTTL)
	if exp, ok := token.Expiry(bearer); ok && exp.Before(expiresAt) {
		expiresAt = exp
	}

	session := sessionFromUser(uuid.New().String(), bearer, user, expiresAt)
	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}
	return &session, nil
}

// Resolve looks up a session and re-validates it: the token must still
// decode as unexpired and the directory API must still accept it. Any
// failure comes back as a session failure so callers can fall through
// to the login page.
func (s *AuthService) Resolve(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, apperrors.NotAuthenticated("no session")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeNotAuthenticated, "session not found")
	}

	if !token.IsValid(session.Token) {
		s.discard(ctx, sessionID)
		return nil, apperrors.NotAuthenticated("token expired")
	}

	user, err := s.auth.Profile(ctx, session.Token)
	if err != nil {
		if apperrors.IsSessionFailure(err) {
			s.discard(ctx, sessionID)
		}
		return nil, err
	}

	// Refresh the snapshot; the account may have changed since login.
	refreshed := sessionFromUser(session.ID, session.Token, user, session.ExpiresAt)
	return &refreshed, nil
}

// Logout removes the session. It is purely local: the bearer token is
// not revoked at the API, it simply ages out.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *AuthService) discard(ctx context.Context, sessionID string) {
	// Best effort: a failed delete just leaves an entry Redis will
	// expire on its own.
	_ = s.sessions.Delete(ctx, sessionID)
}

func sessionFromUser(id, bearer string, user directory.User, expiresAt time.Time) domainauth.Session {
	return domainauth.Session{
		ID:         id,
		Token:      bearer,
		UserID:     user.ID,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Role:       mapRole(user.Role),
		StudentID:  user.StudentID,
		University: user.University,
		ExpiresAt:  expiresAt,
	}
}

func mapRole(raw string) domainauth.Role {
	switch domainauth.Role(raw) {
	case domainauth.RoleAdmin:
		return domainauth.RoleAdmin
	case domainauth.RoleStudent:
		return domainauth.RoleStudent
	default:
		return domainauth.RoleGuest
	}
}
