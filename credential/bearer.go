package credential

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// BearerToken is a bearer token credential. When the raw token is a JWT its
// expiry claim is parsed (without signature verification) so callers can
// detect a stale token before spending a round-trip on it. Opaque tokens
// carry no expiry and never report expired.
type BearerToken struct {
	token     string
	expiresAt time.Time
}

// NewBearerToken creates a bearer token credential from a raw token string.
func NewBearerToken(token string) *BearerToken {
	b := &BearerToken{token: token}

	// Best-effort expiry extraction. The token is validated by the remote
	// service; here we only read the exp claim.
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return b
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return b
	}
	b.expiresAt = exp.Time
	return b
}

// Name returns "bearer".
func (b *BearerToken) Name() string {
	return "bearer"
}

// Apply sets the Authorization header on the request.
func (b *BearerToken) Apply(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+b.token)
}

// Redacted returns a masked representation of the token.
func (b *BearerToken) Redacted() string {
	return "Authorization: Bearer " + redact(b.token)
}

// ExpiresAt returns the token expiry, or the zero time when unknown.
func (b *BearerToken) ExpiresAt() time.Time {
	return b.expiresAt
}

// Expired reports whether the token expiry is known and has passed.
func (b *BearerToken) Expired(now time.Time) bool {
	return !b.expiresAt.IsZero() && now.After(b.expiresAt)
}

var _ Credential = (*BearerToken)(nil)
