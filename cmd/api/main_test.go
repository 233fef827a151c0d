package main

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Bahjat/phish-verdict/internal/platform/config"
)

func TestNewHandler_Chain(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	log := slog.New(slog.DiscardHandler)

	tests := []struct {
		name      string
		localOnly bool
		method    string
		remote    string
		want      int
	}{
		{name: "local client", localOnly: true, method: http.MethodGet, remote: "127.0.0.1:4000", want: http.StatusOK},
		{name: "remote client gated", localOnly: true, method: http.MethodGet, remote: "203.0.113.7:4000", want: http.StatusForbidden},
		{name: "remote client ungated", localOnly: false, method: http.MethodGet, remote: "203.0.113.7:4000", want: http.StatusOK},
		{name: "preflight", localOnly: true, method: http.MethodOptions, remote: "203.0.113.7:4000", want: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler(mux, config.Config{LocalOnly: tt.localOnly}, log)

			req := httptest.NewRequest(tt.method, "/health", nil)
			req.RemoteAddr = tt.remote
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if rec.Header().Get("X-Request-ID") == "" {
				t.Error("missing X-Request-ID")
			}
			if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
				t.Error("missing CORS headers")
			}
		})
	}
}
