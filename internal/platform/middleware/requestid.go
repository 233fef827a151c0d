package middleware

import (
	"net/http"

	"github.com/Bahjat/phish-verdict/internal/platform/requestid"
	"github.com/google/uuid"
)

// RequestID tags each verdict request with a correlation ID, stores it in the
// context for the service's prediction log, and echoes it in the response.
// A well-formed X-Request-ID from the extension is kept; a missing or
// malformed one is replaced by a fresh UUID so it never reaches the logs.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestid.Header)
		if !requestid.Valid(id) {
			id = uuid.NewString()
		}

		w.Header().Set(requestid.Header, id)
		next.ServeHTTP(w, r.WithContext(requestid.NewContext(r.Context(), id)))
	})
}
