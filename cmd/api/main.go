package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Bahjat/phish-verdict/internal/analyzer"
	"github.com/Bahjat/phish-verdict/internal/classifier"
	"github.com/Bahjat/phish-verdict/internal/content"
	"github.com/Bahjat/phish-verdict/internal/detector"
	"github.com/Bahjat/phish-verdict/internal/platform/config"
	"github.com/Bahjat/phish-verdict/internal/platform/logger"
	"github.com/Bahjat/phish-verdict/internal/platform/middleware"
	"github.com/Bahjat/phish-verdict/internal/registry"
	"github.com/Bahjat/phish-verdict/internal/reputation"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	model, err := classifier.Load(cfg.ModelPath, cfg.FeaturesPath)
	if err != nil {
		log.Error("failed to load model", "path", cfg.ModelPath, "error", err)
		os.Exit(1)
	}
	log.Info("model loaded", "version", model.Version(), "features", model.Schema().Len())
	if strings.HasPrefix(model.Version(), "placeholder") {
		log.Warn("model is an untrained placeholder, Model votes carry no signal", "path", cfg.ModelPath)
	}

	if cfg.GoogleAPIKey == "" {
		log.Warn("GOOGLE_API_KEY not set, Safe Browsing votes will be Unknown")
	}
	if cfg.VirusTotalAPIKey == "" {
		log.Warn("VIRUSTOTAL_API_KEY not set, VirusTotal votes will be Unknown")
	}

	deps := detector.Deps{
		Fetcher:      content.NewHTTPClient(cfg.FetchTimeout, log),
		Classifier:   model,
		Schema:       model.Schema(),
		SafeBrowsing: reputation.NewSafeBrowsing(cfg.GoogleAPIKey, cfg.ReputationTimeout, log),
		VirusTotal:   reputation.NewVirusTotal(cfg.VirusTotalAPIKey, cfg.ReputationTimeout, log),
		Logger:       log,
	}
	if cfg.WhoisEnabled {
		deps.Age = registry.NewAgeLookup(cfg.WhoisTimeout, log)
	}

	svc := analyzer.NewService(detector.NewEngine(deps), log)
	mux := http.NewServeMux()
	analyzer.NewTransport(svc, log).RegisterRoutes(mux)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newHandler(mux, cfg, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      45 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", "error", err)
		}
	}()

	log.Info("listening", "addr", srv.Addr, "local_only", cfg.LocalOnly)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
	<-shutdownDone
	log.Info("server stopped")
}

// newHandler wraps mux in the middleware chain, outermost first: request ID,
// access log, CORS, then the local-network gate when enabled.
func newHandler(mux http.Handler, cfg config.Config, log *slog.Logger) http.Handler {
	h := mux
	if cfg.LocalOnly {
		h = middleware.LocalOnly(log)(h)
	}
	h = middleware.CORS(h)
	h = middleware.Logging(log)(h)
	return middleware.RequestID(h)
}
