package middleware

import "context"

type contextKey string

const ctxPrincipal contextKey = "principal"

// PrincipalFromContext returns the authenticated basic-auth username.
func PrincipalFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxPrincipal).(string); ok {
		return v
	}
	return ""
}

// WithPrincipal injects the authenticated username into the context.
func WithPrincipal(ctx context.Context, username string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxPrincipal, username)
}
