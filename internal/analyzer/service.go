package analyzer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Bahjat/phish-verdict/internal/model"
	"github.com/Bahjat/phish-verdict/internal/platform/errs"
	"github.com/Bahjat/phish-verdict/internal/platform/requestid"
)

// Service orchestrates a VerdictProvider and logs each prediction.
type Service struct {
	provider VerdictProvider
	logger   *slog.Logger
}

// NewService creates a Service backed by the given provider.
func NewService(provider VerdictProvider, logger *slog.Logger) *Service {
	return &Service{provider: provider, logger: logger}
}

// Analyze delegates to the provider and logs the outcome.
func (s *Service) Analyze(ctx context.Context, targetURL string) (*model.Analysis, error) {
	logger := s.logger.With("url", targetURL, "request_id", requestid.FromContext(ctx))

	result, err := s.provider.Analyze(ctx, targetURL)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = &errs.AppError{
				Kind:    errs.Timeout,
				Message: "Analysis timed out. The reputation services or the target URL may be slow to respond.",
				Cause:   err,
			}
		}
		if errs.KindOf(err) == errs.InvalidInput {
			logger.Warn("request rejected", "error", err)
		} else {
			logger.Error("analysis failed", "error", err)
		}
		return nil, err
	}

	logger.Info("prediction",
		"model", result.Details.Model,
		"gsb", result.Details.SafeBrowsing,
		"vt", result.Details.VirusTotal,
		"final", result.FinalVerdict,
	)
	return result, nil
}
