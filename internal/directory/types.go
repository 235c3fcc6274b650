// Package directory is the HTTP client for the business directory API.
// It wraps the wire envelopes in Go types and maps failures onto the
// application's error taxonomy.
package directory

import "time"

// User is the account shape returned by login and profile calls.
type User struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Role       string `json:"role"`
	StudentID  string `json:"student_id,omitempty"`
	University string `json:"university,omitempty"`
}

// Business is a single directory entry. Latitude/Longitude of zero mean
// the entry has no usable coordinates.
type Business struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	SubCategory string    `json:"sub_category"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	PostalCode  string    `json:"postal_code"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Phone       string    `json:"phone"`
	Website     string    `json:"website"`
	Email       string    `json:"email"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasCoordinates reports whether the business can be placed on a map.
func (b Business) HasCoordinates() bool {
	return b.Latitude != 0 || b.Longitude != 0
}

// Filters narrows a business listing. Nil fields are left out of the
// query entirely; an empty string would over-match on the server side.
type Filters struct {
	Category    *string
	City        *string
	SubCategory *string
}

// IsZero reports whether no filter is set.
func (f Filters) IsZero() bool {
	return f.Category == nil && f.City == nil && f.SubCategory == nil
}

// NewBusiness carries the fields an admin supplies when creating an
// entry. The API fills in the rest (country default, active flag,
// timestamps).
type NewBusiness struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	SubCategory string  `json:"sub_category,omitempty"`
	Address     string  `json:"address,omitempty"`
	City        string  `json:"city"`
	PostalCode  string  `json:"postal_code,omitempty"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Website     string  `json:"website,omitempty"`
	Email       string  `json:"email,omitempty"`
	Description string  `json:"description,omitempty"`
}

// Wire envelopes. The API wraps most payloads in a success flag plus a
// named field; errors come back as {"error": "..."}.

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

type profileResponse struct {
	User User `json:"user"`
}

type listResponse struct {
	Success    bool       `json:"success"`
	Count      int        `json:"count"`
	Businesses []Business `json:"businesses"`
}

type createResponse struct {
	Success  bool     `json:"success"`
	Business Business `json:"business"`
	Message  string   `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}
