// Package admin guards the operator endpoints with a shared token.
package admin

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"esbresolver/pkg/platform/middleware/request"
)

const (
	TokenHeader    = "X-Admin-Token"
	OperatorHeader = "X-Operator"
)

type contextKeyOperator struct{}

// WithOperator stores the operator name for log attribution.
func WithOperator(ctx context.Context, operator string) context.Context {
	return context.WithValue(ctx, contextKeyOperator{}, operator)
}

// Operator returns the operator that issued the request, or "" when unknown.
func Operator(ctx context.Context) string {
	if op, ok := ctx.Value(contextKeyOperator{}).(string); ok {
		return op
	}
	return ""
}

// RequireToken rejects requests whose X-Admin-Token does not match expected.
// An empty expected token rejects every request.
func RequireToken(expected string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token := r.Header.Get(TokenHeader)
			if expected == "" || subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
				logger.WarnContext(ctx, "admin token mismatch",
					"request_id", request.GetRequestID(ctx),
					"path", r.URL.Path,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"admin token required"}`))
				return
			}

			if op := r.Header.Get(OperatorHeader); op != "" {
				ctx = WithOperator(ctx, op)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
