package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
	RoleGuest   Role = "guest"
)

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier (e.g., random URL-safe string). Token
// is the bearer token issued by the directory API; it is kept server-side
// only and never exposed to the browser.
type Session struct {
	ID         string    `json:"id"`
	Token      string    `json:"token"`
	UserID     int64     `json:"user_id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Role       Role      `json:"role"`
	StudentID  string    `json:"student_id,omitempty"`
	University string    `json:"university,omitempty"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// IsAdmin returns true if the session role is admin.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// IsGuest returns true if the session role is guest.
func (s Session) IsGuest() bool { return s.Role == RoleGuest }

// DisplayName returns a human-friendly name for page headers.
func (s Session) DisplayName() string {
	switch {
	case s.FirstName != "" && s.LastName != "":
		return s.FirstName + " " + s.LastName
	case s.FirstName != "":
		return s.FirstName
	default:
		return s.Email
	}
}

// LandingPath returns the page a session should land on after login.
func (s Session) LandingPath() string {
	if s.Role == RoleAdmin {
		return "/admin"
	}
	return "/dashboard"
}
