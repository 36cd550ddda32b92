package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/pkg/types"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func sign(t *testing.T, secret string, claims *Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func claimsFor(role string, expires time.Time) *Claims {
	return &Claims{
		Name:    "Ada",
		Role:    role,
		StoreID: "3",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "12",
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
}

func inspector(secret string) *TokenInspector {
	return NewTokenInspector(&config.Config{JWT: config.JWTConfig{Secret: secret, Leeway: time.Second}})
}

func TestInspectVerifiedToken(t *testing.T) {
	token := sign(t, testSecret, claimsFor("Manager", time.Now().Add(time.Hour)))

	id, err := inspector(testSecret).Inspect(token)
	require.NoError(t, err)
	assert.Equal(t, types.ID("12"), id.UserID())
	assert.Equal(t, "manager", id.Role())
	assert.Equal(t, types.ID("3"), id.Claims.StoreID)
}

func TestInspectRejectsBadSignatureAndExpiry(t *testing.T) {
	forged := sign(t, strings.Repeat("x", 32), claimsFor("admin", time.Now().Add(time.Hour)))
	_, err := inspector(testSecret).Inspect(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := sign(t, testSecret, claimsFor("admin", time.Now().Add(-time.Hour)))
	_, err = inspector(testSecret).Inspect(expired)
	assert.ErrorIs(t, err, ErrTokenExpired)

	_, err = inspector(testSecret).Inspect("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = inspector(testSecret).Inspect("")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestInspectWithoutSecret(t *testing.T) {
	insp := inspector("")

	token := sign(t, "whatever-the-api-uses-to-sign-it", claimsFor("cashier", time.Now().Add(time.Hour)))
	id, err := insp.Inspect(token)
	require.NoError(t, err)
	assert.Equal(t, "cashier", id.Role())

	expired := sign(t, "whatever-the-api-uses-to-sign-it", claimsFor("cashier", time.Now().Add(-time.Hour)))
	_, err = insp.Inspect(expired)
	assert.ErrorIs(t, err, ErrTokenExpired)

	opaque, err := insp.Inspect("1|aBcDeFgHiJkLmNoP")
	require.NoError(t, err)
	assert.Nil(t, opaque.Claims)
	assert.Equal(t, "", opaque.Role())
	assert.Equal(t, "1|aBcDeFgHiJkLmNoP", opaque.Token)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc", ExtractTokenFromHeader("Bearer abc"))
	assert.Equal(t, "abc", ExtractTokenFromHeader("bearer abc"))
	assert.Equal(t, "", ExtractTokenFromHeader("Basic abc"))
	assert.Equal(t, "", ExtractTokenFromHeader("Bearer"))
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", TokenFrom(ctx))
	_, ok := IdentityFrom(ctx)
	assert.False(t, ok)

	ctx = WithIdentity(ctx, &Identity{Token: "tok"})
	assert.Equal(t, "tok", TokenFrom(ctx))
	id, ok := IdentityFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok", id.Token)
}
