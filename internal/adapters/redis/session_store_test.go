package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/grensregio/directory-ui/internal/domain/auth"
	"github.com/grensregio/directory-ui/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func testSession(id string) domainauth.Session {
	return domainauth.Session{
		ID:        id,
		Token:     "bearer-token-xyz",
		UserID:    42,
		Email:     "student@deutschebedrijven.nl",
		FirstName: "Lena",
		LastName:  "Bakker",
		Role:      domainauth.RoleStudent,
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	client := setupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	session := testSession("test-session-1")
	require.NoError(t, store.Save(ctx, session))

	retrieved, err := store.Get(ctx, "test-session-1")
	require.NoError(t, err)
	assert.Equal(t, session.ID, retrieved.ID)
	assert.Equal(t, session.Token, retrieved.Token)
	assert.Equal(t, session.UserID, retrieved.UserID)
	assert.Equal(t, session.Role, retrieved.Role)
	assert.WithinDuration(t, session.ExpiresAt, retrieved.ExpiresAt, time.Second)
}

func TestSessionStore_GetNonExistent(t *testing.T) {
	client := setupTestRedis(t)
	store := NewSessionStore(client)

	_, err := store.Get(context.Background(), "non-existent")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_SaveRejectsExpired(t *testing.T) {
	client := setupTestRedis(t)
	store := NewSessionStore(client)

	session := testSession("expired")
	session.ExpiresAt = time.Now().Add(-time.Minute)
	assert.Error(t, store.Save(context.Background(), session))
}

func TestSessionStore_SaveRejectsEmptyID(t *testing.T) {
	client := setupTestRedis(t)
	store := NewSessionStore(client)

	assert.Error(t, store.Save(context.Background(), testSession("")))
}

func TestSessionStore_Delete(t *testing.T) {
	client := setupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("to-delete")))
	require.NoError(t, store.Delete(ctx, "to-delete"))

	_, err := store.Get(ctx, "to-delete")
	assert.Equal(t, ErrNotFound, err)

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete(ctx, "to-delete"))
}

func TestSessionStore_CustomPrefix(t *testing.T) {
	client := setupTestRedis(t)
	store := NewSessionStoreWithPrefix(client, "dirui:sess:")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("prefixed")))

	exists, err := client.Exists(ctx, "dirui:sess:prefixed").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)
}
