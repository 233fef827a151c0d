// Package detector runs the verdict pipeline for one URL: feature
// extraction, the local model and both reputation services, fused into a
// single decision.
package detector

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/Bahjat/phish-verdict/internal/content"
	"github.com/Bahjat/phish-verdict/internal/etld"
	"github.com/Bahjat/phish-verdict/internal/features"
	"github.com/Bahjat/phish-verdict/internal/model"
	"github.com/Bahjat/phish-verdict/internal/platform/errs"
	"github.com/Bahjat/phish-verdict/internal/reputation"
	"github.com/Bahjat/phish-verdict/internal/verdict"
	"golang.org/x/sync/errgroup"
)

// Fetcher retrieves the page behind a URL. It never fails; an unreachable
// page comes back empty.
type Fetcher interface {
	Fetch(ctx context.Context, targetURL string) content.Page
}

// Classifier is the local model.
type Classifier interface {
	Classify(v features.Vector) (bool, error)
}

// AgeSource supplies registration-age features for a host.
type AgeSource interface {
	Features(ctx context.Context, host string) features.Set
}

// Deps are the collaborators an Engine is built from. Age is optional.
type Deps struct {
	Fetcher      Fetcher
	Classifier   Classifier
	Schema       features.Schema
	SafeBrowsing reputation.Checker
	VirusTotal   reputation.Checker
	Age          AgeSource
	Logger       *slog.Logger
}

// Engine orchestrates the three signal sources for a URL.
type Engine struct {
	fetcher      Fetcher
	classifier   Classifier
	schema       features.Schema
	safeBrowsing reputation.Checker
	virusTotal   reputation.Checker
	age          AgeSource
	logger       *slog.Logger
}

// NewEngine returns an Engine wired to d. The age source is dropped when the
// schema does not name DomainAgeDays.
func NewEngine(d Deps) *Engine {
	e := &Engine{
		fetcher:      d.Fetcher,
		classifier:   d.Classifier,
		schema:       d.Schema,
		safeBrowsing: d.SafeBrowsing,
		virusTotal:   d.VirusTotal,
		logger:       d.Logger,
	}
	if d.Age != nil && slices.Contains(d.Schema.Names(), features.DomainAgeDays) {
		e.age = d.Age
	}
	return e
}

// Analyze produces the fused verdict for targetURL. Only an empty URL or an
// ended context is an error; every collaborator failure becomes an Unknown
// vote.
func (e *Engine) Analyze(ctx context.Context, targetURL string) (*model.Analysis, error) {
	targetURL = strings.TrimSpace(targetURL)
	if targetURL == "" {
		return nil, &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "No URL provided.",
		}
	}

	host := features.Host(targetURL)

	var (
		details model.Details
		age     features.Set
	)

	var g errgroup.Group
	ageDone := make(chan struct{})

	g.Go(func() error {
		defer close(ageDone)
		if e.age != nil {
			age = e.age.Features(ctx, host)
		}
		return ctx.Err()
	})
	g.Go(func() error {
		page := e.fetcher.Fetch(ctx, targetURL)
		lexical := features.Lexical(targetURL)
		markup := features.HTML(targetURL, etld.Registrable(host), page.FinalURL, page.HTML)

		<-ageDone
		details.Model = e.classify(ctx, lexical, markup, age)
		return ctx.Err()
	})
	g.Go(func() error {
		details.SafeBrowsing = e.safeBrowsing.Check(ctx, targetURL)
		return ctx.Err()
	})
	g.Go(func() error {
		details.VirusTotal = e.virusTotal.Check(ctx, targetURL)
		return ctx.Err()
	})
	// Branches degrade instead of failing, so the only error is the request
	// context ending before every vote was in.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	final := verdict.Fuse(details.Model, details.SafeBrowsing, details.VirusTotal)
	return model.NewAnalysis(targetURL, final, details), nil
}

// classify assembles the vector in schema order and asks the model for a
// vote. A model error is an Unknown vote, not a failed request.
func (e *Engine) classify(ctx context.Context, sets ...features.Set) model.Verdict {
	if missing := e.schema.Missing(sets...); len(missing) > 0 {
		e.logger.DebugContext(ctx, "schema features not computed, defaulting to 0", "features", missing)
	}

	phishing, err := e.classifier.Classify(features.Assemble(e.schema, sets...))
	if err != nil {
		e.logger.ErrorContext(ctx, "classifier failed", "error", err)
		return model.Unknown
	}
	return verdict.FromLabel(phishing)
}
