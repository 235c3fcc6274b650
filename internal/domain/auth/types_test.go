package auth

import (
	"testing"
	"time"
)

func TestSession_RoleChecks(t *testing.T) {
	if !(Session{Role: RoleAdmin}).IsAdmin() {
		t.Fatalf("expected admin")
	}
	if (Session{Role: RoleStudent}).IsAdmin() {
		t.Fatalf("did not expect admin")
	}
	if !(Session{Role: RoleGuest}).IsGuest() {
		t.Fatalf("expected guest")
	}
}

func TestSession_DisplayName(t *testing.T) {
	s := Session{FirstName: "Anna", LastName: "Schmidt", Email: "anna@example.com"}
	if got := s.DisplayName(); got != "Anna Schmidt" {
		t.Fatalf("unexpected display name: %q", got)
	}
	s.LastName = ""
	if got := s.DisplayName(); got != "Anna" {
		t.Fatalf("unexpected display name: %q", got)
	}
	s.FirstName = ""
	if got := s.DisplayName(); got != "anna@example.com" {
		t.Fatalf("unexpected display name: %q", got)
	}
}

func TestSession_LandingPath(t *testing.T) {
	if got := (Session{Role: RoleAdmin}).LandingPath(); got != "/admin" {
		t.Fatalf("unexpected landing path: %q", got)
	}
	if got := (Session{Role: RoleStudent}).LandingPath(); got != "/dashboard" {
		t.Fatalf("unexpected landing path: %q", got)
	}
	s := Session{Role: RoleStudent, ExpiresAt: time.Now().Add(time.Hour)}
	if s.LandingPath() != "/dashboard" {
		t.Fatalf("unexpected landing path for student")
	}
}
