package http

import (
	"context"

	"rentmart-backend/internal/security"
)

type contextKey string

const claimsContextKey contextKey = "user_claims"

func withClaims(ctx context.Context, claims *security.UserClaims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// claimsFrom returns the authenticated principal. The auth middleware always
// sets it on protected routes, so the bool guard is for programming errors.
func claimsFrom(ctx context.Context) (*security.UserClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*security.UserClaims)
	return claims, ok
}
