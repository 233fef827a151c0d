package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Bahjat/phish-verdict/internal/model"
	"github.com/Bahjat/phish-verdict/internal/platform/errs"
)

const (
	analyzeTimeout = 30 * time.Second
	maxRequestBody = 1 << 20 // 1 MB
)

const msgNoURL = "No URL provided. Use ?url=… or JSON/form/text."

// Transport handles HTTP requests for URL verdicts.
type Transport struct {
	service *Service
	logger  *slog.Logger
}

// NewTransport creates an HTTP transport backed by the given service.
func NewTransport(service *Service, logger *slog.Logger) *Transport {
	return &Transport{service: service, logger: logger}
}

// RegisterRoutes attaches the transport's handlers to the given mux.
// /scan and /check are aliases kept for older extension builds.
func (t *Transport) RegisterRoutes(mux *http.ServeMux) {
	for _, path := range []string{"/analyze", "/scan", "/check"} {
		mux.HandleFunc("GET "+path, t.handleAnalyze)
		mux.HandleFunc("POST "+path, t.handleAnalyze)
	}
	mux.HandleFunc("GET /health", t.handleHealth)
}

func (t *Transport) handleHealth(w http.ResponseWriter, _ *http.Request) {
	t.renderJSON(w, http.StatusOK, model.HealthResponse{Status: "ok"})
}

func (t *Transport) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	targetURL, ok := ResolveURL(r, maxRequestBody)
	if !ok {
		t.renderError(w, http.StatusBadRequest, msgNoURL)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), analyzeTimeout)
	defer cancel()

	result, err := t.service.Analyze(ctx, targetURL)
	if err != nil {
		t.handleServiceError(w, err)
		return
	}

	t.renderJSON(w, http.StatusOK, result)
}

func (t *Transport) handleServiceError(w http.ResponseWriter, err error) {
	var appErr *errs.AppError
	if errors.As(err, &appErr) {
		t.renderError(w, appErr.Kind.Status(), appErr.Message)
		return
	}

	t.renderError(w, http.StatusInternalServerError, "An unexpected error occurred.")
}

func (t *Transport) renderJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		t.logger.Error("failed to encode response", "error", err)
		http.Error(w, `{"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (t *Transport) renderError(w http.ResponseWriter, status int, message string) {
	t.renderJSON(w, status, model.ErrorResponse{
		Error:      http.StatusText(status),
		StatusCode: status,
		Message:    message,
	})
}
