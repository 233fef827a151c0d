// Package content fetches the page behind a submitted URL, best-effort.
package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"
)

// Page is the result of a fetch. HTML is empty when the fetch failed or the
// response was not an HTML document; FinalURL is then the requested URL.
type Page struct {
	FinalURL string
	HTML     string
}

// HTTPClient fetches pages with a single GET.
type HTTPClient struct {
	client *http.Client
	logger *slog.Logger
}

const (
	maxRedirects    = 5
	maxResponseBody = 10 << 20
	userAgent       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

var (
	errTooManyRedirects = errors.New("too many redirects")
	errBlockedRedirect  = errors.New("redirect to non-http(s) scheme blocked")
	errNotHTML          = errors.New("response is not html")
)

// NewHTTPClient returns an HTTPClient whose requests give up after timeout,
// whose transport refuses private and reserved addresses, and whose redirect
// policy stops after five hops or on a non-http(s) target.
func NewHTTPClient(timeout time.Duration, logger *slog.Logger) *HTTPClient {
	return &HTTPClient{
		logger: logger,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext:         safeDialer(timeout).DialContext,
				MaxConnsPerHost:     10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
			CheckRedirect: safeRedirectPolicy,
		},
	}
}

// safeRedirectPolicy validates redirect targets and limits the redirect chain length.
func safeRedirectPolicy(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("%w: stopped after %d", errTooManyRedirects, maxRedirects)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return fmt.Errorf("%w: %s", errBlockedRedirect, req.URL.Scheme)
	}
	return nil
}

// Fetch retrieves targetURL. It never fails: any error degrades to a Page with
// the original URL and no HTML.
func (c *HTTPClient) Fetch(ctx context.Context, targetURL string) Page {
	page, err := c.get(ctx, targetURL)
	if err != nil {
		c.logger.DebugContext(ctx, "page fetch degraded", "url", targetURL, "error", err)
		return Page{FinalURL: targetURL}
	}
	return page
}

func (c *HTTPClient) get(ctx context.Context, targetURL string) (Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return Page{}, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := c.client.Do(req)
	if err != nil {
		return Page{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	contentType := resp.Header.Get("Content-Type")
	if !isHTML(contentType) {
		return Page{}, fmt.Errorf("%w: %q", errNotHTML, contentType)
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, maxResponseBody), contentType)
	if err != nil {
		return Page{}, err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return Page{}, err
	}

	return Page{FinalURL: resp.Request.URL.String(), HTML: string(data)}, nil
}

func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}
