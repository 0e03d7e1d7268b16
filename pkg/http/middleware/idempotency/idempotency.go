package idempotency

import (
	"context"
	"net/http"
)

// Header is the client-supplied idempotency key header. A client retrying
// the same logical request sends the same value so downstream collaborators
// can deduplicate.
const Header = "Idempotency-Key"

type ctxKey struct{}

// Middleware stores the Idempotency-Key header value, if any, in the request
// context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if key := r.Header.Get(Header); key != "" {
			r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, key))
		}

		next.ServeHTTP(w, r)
	})
}

// FromContext returns the idempotency key for the request, or empty when the
// client did not send one.
func FromContext(ctx context.Context) string {
	key, _ := ctx.Value(ctxKey{}).(string)

	return key
}
