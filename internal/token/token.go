// Package token handles bearer tokens issued by the directory API: local
// persistence for the CLI and an unverified expiry check used to decide
// whether a stored token is still worth presenting.
package token

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expiry returns the expiry time encoded in the token's exp claim.
// The signature is NOT verified; the API is the sole authority on token
// validity and this value is only used to avoid round trips with tokens
// that are already known to be dead. ok is false when the token cannot
// be decoded or carries no expiry.
func Expiry(token string) (exp time.Time, ok bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return time.Time{}, false
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	numeric, err := parsed.Claims.GetExpirationTime()
	if err != nil || numeric == nil {
		return time.Time{}, false
	}
	return numeric.Time, true
}

// IsValid reports whether the token decodes and has not yet expired.
// Malformed tokens and tokens without an exp claim are treated as
// invalid rather than returning an error.
func IsValid(token string) bool {
	exp, ok := Expiry(token)
	if !ok {
		return false
	}
	return exp.After(time.Now())
}
