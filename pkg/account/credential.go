package account

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrOpaqueCredential indicates a credential is not a JWT and carries no inspectable claims.
var ErrOpaqueCredential = errors.New("credential is not a JWT")

// Credential is a bearer token. Most API keys are opaque strings, but the service also accepts
// OAuth access tokens, which are JWTs with an expiration claim.
//
// Credential never verifies signatures. The claims are only used to warn users about
// credentials that are certain to be rejected.
type Credential string

// Claims returns the registered claims of c without verifying its signature.
func (c Credential) Claims() (*jwt.RegisteredClaims, error) {
	token := strings.TrimSpace(string(c))
	if strings.Count(token, ".") != 2 {
		return nil, ErrOpaqueCredential
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

// Expiry returns the expiration time encoded in c. The boolean is false if c is opaque or has no
// expiration claim.
func (c Credential) Expiry() (time.Time, bool) {
	claims, err := c.Claims()
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Expired returns true if c carries an expiration claim that is before now.
func (c Credential) Expired(now time.Time) bool {
	expiry, ok := c.Expiry()
	return ok && expiry.Before(now)
}

// String masks the credential so it can be logged.
func (c Credential) String() string {
	if len(c) <= 4 {
		return strings.Repeat("*", len(c))
	}
	return strings.Repeat("*", len(c)-4) + string(c[len(c)-4:])
}
