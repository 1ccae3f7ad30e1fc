package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/trinhdvt/storefront/pkg/correlationid"
)

// CorrelationID reads the correlation id from the request header, generating
// one when absent, and makes it available through the request context and
// the response header.
func CorrelationID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(correlationid.Header)
			if id == "" {
				id = uuid.NewString()
			}

			w.Header().Set(correlationid.Header, id)

			ctx := correlationid.NewContext(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
