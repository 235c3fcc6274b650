package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/grensregio/directory-ui/internal/errors"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return client, srv
}

func strPtr(s string) *string { return &s }

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

func TestLogin_Success(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "admin@deutschebedrijven.nl", req["email"])
		assert.Equal(t, "admin123", req["password"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"token":   "tok-123",
			"user": map[string]any{
				"id": 1, "email": "admin@deutschebedrijven.nl", "role": "admin",
			},
		})
	}))

	token, user, err := client.Login(context.Background(), "admin@deutschebedrijven.nl", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "admin", user.Role)
}

func TestLogin_BadCredentials(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid email or password"})
	}))

	_, _, err := client.Login(context.Background(), "admin@deutschebedrijven.nl", "wrong")
	require.Error(t, err)
	assert.True(t, apperrors.IsAuthentication(err))
	assert.Contains(t, err.Error(), "invalid email or password")
}

func TestLogin_MissingToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))

	_, _, err := client.Login(context.Background(), "a@b.c", "pw")
	assert.True(t, apperrors.IsAuthentication(err))
}

func TestProfile_NoTokenSkipsNetwork(t *testing.T) {
	called := false
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := client.Profile(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotAuthenticated(err))
	assert.False(t, called, "no request should be sent without a token")
}

func TestProfile_Success(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/profile", r.URL.Path)
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{
				"id": 2, "email": "student@deutschebedrijven.nl", "role": "student",
				"student_id": "S1001", "university": "RWTH Aachen",
			},
		})
	}))

	user, err := client.Profile(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "student", user.Role)
	assert.Equal(t, "S1001", user.StudentID)
}

func TestProfile_ExpiredToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "token expired"})
	}))

	_, err := client.Profile(context.Background(), "stale")
	assert.True(t, apperrors.IsProfileFetch(err))
	assert.Contains(t, err.Error(), "token expired")
}

func TestListBusinesses_NoFilters(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/businesses", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery, "unset filters must not appear in the query")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"count":   2,
			"businesses": []map[string]any{
				{"id": 1, "name": "Bäckerei Müller", "category": "Food", "city": "Aachen"},
				{"id": 2, "name": "TechHub", "category": "IT", "city": "Köln"},
			},
		})
	}))

	businesses, err := client.ListBusinesses(context.Background(), Filters{})
	require.NoError(t, err)
	require.Len(t, businesses, 2)
	assert.Equal(t, "Bäckerei Müller", businesses[0].Name)
}

func TestListBusinesses_FilterQuery(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Food", q.Get("category"))
		assert.Equal(t, "Aachen", q.Get("city"))
		assert.False(t, q.Has("subcategory"))
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "businesses": []any{}})
	}))

	_, err := client.ListBusinesses(context.Background(), Filters{
		Category: strPtr("Food"),
		City:     strPtr("Aachen"),
	})
	require.NoError(t, err)
}

func TestListBusinesses_ServerError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.ListBusinesses(context.Background(), Filters{})
	assert.True(t, apperrors.IsBusinessFetch(err))
}

func TestGetBusiness(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/businesses/7", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 7, "name": "Studio Nord"})
	}))

	b, err := client.GetBusiness(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Studio Nord", b.Name)
}

func TestGetBusiness_NotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "business not found"})
	}))

	_, err := client.GetBusiness(context.Background(), 99)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCreateBusiness(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/businesses", r.URL.Path)

		var nb NewBusiness
		require.NoError(t, json.NewDecoder(r.Body).Decode(&nb))
		assert.Equal(t, "Café Eins", nb.Name)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"business": map[string]any{
				"id": 10, "name": nb.Name, "category": nb.Category,
				"city": nb.City, "country": "Germany", "is_active": true,
			},
			"message": "business created",
		})
	}))

	created, err := client.CreateBusiness(context.Background(), NewBusiness{
		Name: "Café Eins", Category: "Food", City: "Aachen",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), created.ID)
	assert.Equal(t, "Germany", created.Country)
	assert.True(t, created.IsActive)
}

func TestCreateBusiness_ValidationError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "name is required"})
	}))

	_, err := client.CreateBusiness(context.Background(), NewBusiness{})
	require.Error(t, err)
	assert.True(t, apperrors.IsBusinessCreate(err))
	assert.Contains(t, err.Error(), "name is required")
}

func TestBusiness_HasCoordinates(t *testing.T) {
	assert.True(t, Business{Latitude: 50.77, Longitude: 6.08}.HasCoordinates())
	assert.False(t, Business{}.HasCoordinates())
	assert.True(t, Business{Longitude: 6.08}.HasCoordinates())
}
