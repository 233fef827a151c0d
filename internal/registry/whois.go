// Package registry derives registration signals for a domain from WHOIS.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Bahjat/phish-verdict/internal/etld"
	"github.com/Bahjat/phish-verdict/internal/features"
	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
)

var (
	errNoCreationDate = errors.New("no creation date in whois record")
	errBadDate        = errors.New("unrecognized creation date")
)

var createdLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02",
}

// lookupFunc returns the raw WHOIS record for a domain.
type lookupFunc func(domain string) (string, error)

// AgeLookup reports how many days ago a URL's registered domain was created.
type AgeLookup struct {
	lookup lookupFunc
	now    func() time.Time
	logger *slog.Logger
}

// NewAgeLookup returns a lookup that gives each WHOIS query timeout.
func NewAgeLookup(timeout time.Duration, logger *slog.Logger) *AgeLookup {
	client := whois.NewClient().SetTimeout(timeout)
	return &AgeLookup{
		lookup: func(domain string) (string, error) { return client.Whois(domain) },
		now:    time.Now,
		logger: logger,
	}
}

// Features returns DomainAgeDays for host, or an empty set when the registry
// gives no usable answer before ctx ends.
func (a *AgeLookup) Features(ctx context.Context, host string) features.Set {
	domain := etld.Registrable(host)
	if domain == "" || etld.IsIP(domain) {
		return features.Set{}
	}

	type result struct {
		created time.Time
		err     error
	}
	done := make(chan result, 1)
	go func() {
		created, err := a.created(domain)
		done <- result{created, err}
	}()

	select {
	case <-ctx.Done():
		a.logger.DebugContext(ctx, "whois lookup abandoned", "domain", domain, "error", ctx.Err())
		return features.Set{}
	case r := <-done:
		if r.err != nil {
			a.logger.DebugContext(ctx, "whois lookup failed", "domain", domain, "error", r.err)
			return features.Set{}
		}
		days := a.now().Sub(r.created).Hours() / 24
		if days < 0 {
			days = 0
		}
		return features.Set{features.DomainAgeDays: float64(int(days))}
	}
}

func (a *AgeLookup) created(domain string) (time.Time, error) {
	raw, err := a.lookup(domain)
	if err != nil {
		return time.Time{}, fmt.Errorf("whois %s: %w", domain, err)
	}

	info, err := whoisparser.Parse(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse whois %s: %w", domain, err)
	}
	if info.Domain == nil {
		return time.Time{}, errNoCreationDate
	}
	return parseCreated(info.Domain.CreatedDate)
}

func parseCreated(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errNoCreationDate
	}
	for _, layout := range createdLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", errBadDate, s)
}
