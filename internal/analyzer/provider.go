package analyzer

import (
	"context"

	"github.com/Bahjat/phish-verdict/internal/model"
)

// VerdictProvider defines the contract for any verdict engine.
type VerdictProvider interface {
	Analyze(ctx context.Context, targetURL string) (*model.Analysis, error)
}
