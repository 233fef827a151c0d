package middleware

import (
	"net/http"
	"strings"
)

const extensionScheme = "chrome-extension://"

// CORS returns middleware that allows cross-origin calls. A browser
// extension origin is echoed back; any other caller gets "*". Preflight
// requests are answered with 204 and never reach next.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allow := "*"
		if strings.HasPrefix(origin, extensionScheme) {
			allow = origin
		}

		h := w.Header()
		h.Set("Access-Control-Allow-Origin", allow)
		h.Add("Vary", "Origin")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
