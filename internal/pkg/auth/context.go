// internal/pkg/auth/context.go
package auth

import "context"

type contextKey int

const (
	tokenKey contextKey = iota
	identityKey
)

// WithToken returns a context carrying the bearer token to forward upstream
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFrom returns the bearer token stored in ctx
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// WithIdentity stores the caller identity and its token in ctx
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	ctx = context.WithValue(ctx, identityKey, id)
	return WithToken(ctx, id.Token)
}

// IdentityFrom returns the caller identity stored in ctx
func IdentityFrom(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok && id != nil
}
