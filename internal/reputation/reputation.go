// Package reputation adapts third-party URL reputation services to a
// tri-state vote. Adapters never retry and never fail: an unconfigured key,
// a non-200 status, a timeout or an undecodable body are all Unknown.
package reputation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Bahjat/phish-verdict/internal/model"
)

// Checker looks up a URL in a reputation service.
type Checker interface {
	Name() string
	Check(ctx context.Context, targetURL string) model.Verdict
}

const maxResponseBody = 1 << 20

var errUnexpectedStatus = errors.New("unexpected status")

// newHTTPClient returns the client shared by the adapters' constructors.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// doJSON sends req and decodes a 200 response into out.
func doJSON(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s", errUnexpectedStatus, resp.Status)
	}
	return json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(out)
}

// degrade logs why a lookup produced no signal and returns Unknown. Transport
// errors are unwrapped first because their message carries the request URL,
// and with it the API key.
func degrade(ctx context.Context, logger *slog.Logger, service string, err error) model.Verdict {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	logger.WarnContext(ctx, "reputation lookup failed", "service", service, "error", err)
	return model.Unknown
}
