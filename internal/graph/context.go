package graph

import (
	"context"
	"strings"
)

type contextKey int

const tokenKey contextKey = iota

// WithToken stores the request's bearer token (possibly empty) for resolvers.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func tokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// BearerToken strips the "Bearer " prefix from an Authorization header.
func BearerToken(header string) string {
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
