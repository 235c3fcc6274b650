package ports_test

import (
	"testing"

	"github.com/grensregio/directory-ui/internal/adapters/memory"
	"github.com/grensregio/directory-ui/internal/adapters/redis"
	"github.com/grensregio/directory-ui/internal/directory"
	"github.com/grensregio/directory-ui/internal/mocks"
	"github.com/grensregio/directory-ui/internal/ports"
)

// This test only verifies that implementations conform to the ports at compile time.
func TestImplementationsConformToPorts(t *testing.T) {
	t.Helper()

	var _ ports.Authenticator = (*directory.Client)(nil)
	var _ ports.Authenticator = (*mocks.MockAuthenticator)(nil)
	var _ ports.SessionStore = (*redis.SessionStore)(nil)
	var _ ports.SessionStore = (*memory.SessionStore)(nil)
	var _ ports.SessionStore = (*mocks.MockSessionStore)(nil)
}
