// Package auth verifies bearer tokens issued by the identity service and
// decides which workout operations a caller may perform.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingToken is returned when the request carries no bearer token.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken wraps signature, issuer, expiry and payload failures.
	ErrInvalidToken = errors.New("invalid bearer token")
)

// Config holds signer verification parameters.
type Config struct {
	Secret string
	Issuer string
}

// Claims identifies the caller of the workout API.
type Claims struct {
	Subject   string
	TenantID  string
	Scopes    []string
	ExpiresAt time.Time
}

// HasScope reports whether the caller was granted scope.
func (c *Claims) HasScope(scope string) bool {
	return c != nil && slices.Contains(c.Scopes, scope)
}

// tokenClaims is the JWT payload minted by the identity service.
type tokenClaims struct {
	TenantID string    `json:"tenant_id"`
	Scopes   scopeList `json:"scopes"`
	jwt.RegisteredClaims
}

// scopeList accepts scopes as a JSON array or as one space separated string.
type scopeList []string

func (s *scopeList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = slices.DeleteFunc(list, func(v string) bool { return strings.TrimSpace(v) == "" })
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return fmt.Errorf("scopes must be a list or a string: %w", err)
	}
	*s = strings.Fields(joined)
	return nil
}

// Verifier checks HS256 tokens signed with the shared secret.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewVerifier builds a Verifier that requires the configured issuer and an expiry.
func NewVerifier(cfg Config) *Verifier {
	return &Verifier{
		secret: []byte(cfg.Secret),
		parser: jwt.NewParser(
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
			jwt.WithExpirationRequired(),
		),
	}
}

// Verify validates the raw token and returns the caller claims.
func (v *Verifier) Verify(token string) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingToken
	}

	var tc tokenClaims
	_, err := v.parser.ParseWithClaims(token, &tc, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if tc.Subject == "" || tc.TenantID == "" {
		return nil, fmt.Errorf("%w: sub and tenant_id are required", ErrInvalidToken)
	}

	return &Claims{
		Subject:   tc.Subject,
		TenantID:  tc.TenantID,
		Scopes:    []string(tc.Scopes),
		ExpiresAt: tc.ExpiresAt.Time,
	}, nil
}
