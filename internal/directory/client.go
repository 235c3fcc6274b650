package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/grensregio/directory-ui/internal/errors"
)

// Config captures how the client reaches the directory API.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
}

// Client talks to the directory API. All methods are safe for
// concurrent use.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient builds a directory API client. Callers should pass a
// validated config.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("directory api base url is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid directory api base url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{baseURL: base, client: hc}, nil
}

// Login exchanges credentials for a bearer token and the account it
// belongs to.
func (c *Client) Login(ctx context.Context, email, password string) (string, User, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return "", User{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode login request")
	}

	var out loginResponse
	err = c.do(ctx, http.MethodPost, "/login", "", bytes.NewReader(body), &out)
	if err != nil {
		return "", User{}, c.loginError(err)
	}
	if out.Token == "" {
		return "", User{}, apperrors.Authentication("login response carried no token")
	}
	return out.Token, out.User, nil
}

func (c *Client) loginError(err error) error {
	var se *statusError
	if errors.As(err, &se) {
		msg := se.apiMessage
		if msg == "" {
			msg = "invalid credentials"
		}
		return apperrors.Authentication(msg)
	}
	return apperrors.Wrap(err, apperrors.ErrCodeAuthentication, "login request failed")
}

// Profile fetches the account behind the token. An empty token fails
// locally without touching the network.
func (c *Client) Profile(ctx context.Context, token string) (User, error) {
	if strings.TrimSpace(token) == "" {
		return User{}, apperrors.NotAuthenticated("no authentication token")
	}

	var out profileResponse
	if err := c.do(ctx, http.MethodGet, "/profile", token, nil, &out); err != nil {
		var se *statusError
		if errors.As(err, &se) {
			return User{}, apperrors.ProfileFetch(se.message("failed to get profile"))
		}
		return User{}, apperrors.Wrap(err, apperrors.ErrCodeProfileFetch, "profile request failed")
	}
	return out.User, nil
}

// ListBusinesses fetches directory entries, optionally narrowed by
// filters. Unset filters are omitted from the query string.
func (c *Client) ListBusinesses(ctx context.Context, filters Filters) ([]Business, error) {
	path := "/businesses"
	if q := filters.query(); q != "" {
		path += "?" + q
	}

	var out listResponse
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		var se *statusError
		if errors.As(err, &se) {
			return nil, apperrors.BusinessFetch(se.message("failed to fetch businesses"))
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeBusinessFetch, "business list request failed")
	}
	return out.Businesses, nil
}

// GetBusiness fetches a single entry by id.
func (c *Client) GetBusiness(ctx context.Context, id int64) (Business, error) {
	var out Business
	err := c.do(ctx, http.MethodGet, "/businesses/"+strconv.FormatInt(id, 10), "", nil, &out)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) {
			if se.status == http.StatusNotFound {
				return Business{}, apperrors.NotFoundf("business %d not found", id)
			}
			return Business{}, apperrors.BusinessFetch(se.message("failed to fetch business"))
		}
		return Business{}, apperrors.Wrap(err, apperrors.ErrCodeBusinessFetch, "business request failed")
	}
	return out, nil
}

// CreateBusiness adds a directory entry and returns it as stored,
// defaults filled in.
func (c *Client) CreateBusiness(ctx context.Context, nb NewBusiness) (Business, error) {
	body, err := json.Marshal(nb)
	if err != nil {
		return Business{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode business")
	}

	var out createResponse
	err = c.do(ctx, http.MethodPost, "/businesses", "", bytes.NewReader(body), &out)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) {
			return Business{}, apperrors.BusinessCreate(se.message("failed to create business"))
		}
		return Business{}, apperrors.Wrap(err, apperrors.ErrCodeBusinessCreate, "business create request failed")
	}
	return out.Business, nil
}

func (f Filters) query() string {
	q := url.Values{}
	if f.Category != nil {
		q.Set("category", *f.Category)
	}
	if f.City != nil {
		q.Set("city", *f.City)
	}
	if f.SubCategory != nil {
		q.Set("subcategory", *f.SubCategory)
	}
	return q.Encode()
}

// statusError carries a non-2xx API response. apiMessage is the error
// field from the body when the API sent one.
type statusError struct {
	status     int
	apiMessage string
}

func (e *statusError) Error() string {
	if e.apiMessage != "" {
		return fmt.Sprintf("api responded %d: %s", e.status, e.apiMessage)
	}
	return fmt.Sprintf("api responded %d", e.status)
}

func (e *statusError) message(fallback string) string {
	if e.apiMessage != "" {
		return e.apiMessage
	}
	return fallback
}

func (c *Client) do(ctx context.Context, method, path, token string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		se := &statusError{status: resp.StatusCode}
		var apiErr errorResponse
		if json.Unmarshal(raw, &apiErr) == nil {
			se.apiMessage = apiErr.Error
		}
		return se
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
