// internal/pkg/auth/jwt.go
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/pkg/types"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid bearer token")
	ErrTokenExpired = errors.New("bearer token expired")
)

// Claims represents the JWT claims issued by the bookkeeping API
type Claims struct {
	Name    string   `json:"name,omitempty"`
	Email   string   `json:"email,omitempty"`
	Role    string   `json:"role,omitempty"`
	StoreID types.ID `json:"store_id,omitempty"`
	jwt.RegisteredClaims
}

// Identity is the caller behind a request. Claims is nil for opaque tokens,
// in which case authorization is left to the bookkeeping API.
type Identity struct {
	Token  string
	Claims *Claims
}

// UserID returns the subject of the token, if known
func (i *Identity) UserID() types.ID {
	if i == nil || i.Claims == nil {
		return ""
	}
	return types.ID(i.Claims.Subject)
}

// Role returns the role claim, if known
func (i *Identity) Role() string {
	if i == nil || i.Claims == nil {
		return ""
	}
	return strings.ToLower(i.Claims.Role)
}

// TokenInspector reads bearer tokens. With a secret configured tokens must be
// HMAC signed with it; without one they are decoded unverified and only the
// expiry is enforced.
type TokenInspector struct {
	secret []byte
	leeway time.Duration
	now    func() time.Time
}

// NewTokenInspector creates a new token inspector
func NewTokenInspector(cfg *config.Config) *TokenInspector {
	var secret []byte
	if cfg.JWT.Secret != "" {
		secret = []byte(cfg.JWT.Secret)
	}
	return &TokenInspector{
		secret: secret,
		leeway: cfg.JWT.Leeway,
		now:    time.Now,
	}
}

// Inspect parses a raw bearer token
func (t *TokenInspector) Inspect(token string) (*Identity, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	if t.secret != nil {
		return t.verify(token)
	}

	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// Not a JWT, e.g. a personal access token
		return &Identity{Token: token}, nil
	}

	if claims.ExpiresAt != nil && t.now().After(claims.ExpiresAt.Add(t.leeway)) {
		return nil, ErrTokenExpired
	}
	return &Identity{Token: token, Claims: claims}, nil
}

func (t *TokenInspector) verify(token string) (*Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithLeeway(t.leeway), jwt.WithTimeFunc(t.now))

	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, ErrTokenExpired
	}
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return &Identity{Token: token, Claims: claims}, nil
}

// ExtractTokenFromHeader extracts the token from an Authorization header
func ExtractTokenFromHeader(authHeader string) string {
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
