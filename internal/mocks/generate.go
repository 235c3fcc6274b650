// Package mocks provides generated mock implementations for testing.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the ports interfaces. To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	store := mocks.NewMockSessionStore(ctrl)
//	store.EXPECT().Get(gomock.Any(), "id").Return(sess, nil)
package mocks

// Generate mock for SessionStore interface from internal/ports.
// This creates MockSessionStore with Save, Get and Delete.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=session_store_mock.go github.com/grensregio/directory-ui/internal/ports SessionStore

// Generate mock for Authenticator interface from internal/ports.
// This creates MockAuthenticator with Login and Profile.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=authenticator_mock.go github.com/grensregio/directory-ui/internal/ports Authenticator
