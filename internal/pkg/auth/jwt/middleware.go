package jwt

import (
	"context"
	"net/http"
	"strings"

	"alegarazh/internal/pkg/errs"
	"alegarazh/internal/pkg/logx"
	"alegarazh/internal/pkg/resp"
)

// contextKey is private to avoid collisions with other packages.
type contextKey string

// contextPayloadKey stores the parsed identity payload in the request context.
const contextPayloadKey contextKey = "auth_payload"

// RequireAuth rejects requests without a valid "Bearer <token>" Authorization
// header with 401 and a contract-shaped error body. On success the payload is
// injected into the request context.
func RequireAuth(secretKey string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				resp.Error(w, errs.New(errs.ErrUnauthorized))
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				resp.Error(w, errs.New(errs.ErrUnauthorized))
				return
			}

			payload, err := ParseToken(parts[1], secretKey)
			if err != nil {
				logx.Warn("rejected invalid or expired bearer token", "error", err)
				resp.Error(w, errs.New(errs.ErrUnauthorized))
				return
			}

			ctx := context.WithValue(r.Context(), contextPayloadKey, payload)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PayloadFromContext extracts the authenticated payload. It returns nil only
// on routes that skipped RequireAuth.
func PayloadFromContext(r *http.Request) *Payload {
	payload, ok := r.Context().Value(contextPayloadKey).(*Payload)
	if !ok {
		return nil
	}
	return payload
}
