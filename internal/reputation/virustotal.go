package reputation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Bahjat/phish-verdict/internal/model"
)

// VirusTotalEndpoint is the VirusTotal v2 URL report API.
const VirusTotalEndpoint = "https://www.virustotal.com/vtapi/v2/url/report"

var errNotInDataset = errors.New("url not in dataset")

// VirusTotal checks URLs against the VirusTotal URL report.
type VirusTotal struct {
	apiKey   string
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewVirusTotal returns a checker for apiKey. An empty key makes every
// check return Unknown without a request.
func NewVirusTotal(apiKey string, timeout time.Duration, logger *slog.Logger) *VirusTotal {
	return &VirusTotal{
		apiKey:   apiKey,
		endpoint: VirusTotalEndpoint,
		client:   newHTTPClient(timeout),
		logger:   logger,
	}
}

// Name implements Checker.
func (v *VirusTotal) Name() string { return "VirusTotal" }

type urlReport struct {
	ResponseCode int `json:"response_code"`
	Positives    int `json:"positives"`
}

// Check returns Phishing when at least one engine flags the URL. A URL
// VirusTotal has never scanned is Unknown.
func (v *VirusTotal) Check(ctx context.Context, targetURL string) model.Verdict {
	if v.apiKey == "" {
		return model.Unknown
	}

	q := url.Values{}
	q.Set("apikey", v.apiKey)
	q.Set("resource", targetURL)
	q.Set("allinfo", "false")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return degrade(ctx, v.logger, v.Name(), err)
	}

	var report urlReport
	if err := doJSON(v.client, req, &report); err != nil {
		return degrade(ctx, v.logger, v.Name(), err)
	}
	if report.ResponseCode != 1 {
		return degrade(ctx, v.logger, v.Name(), fmt.Errorf("%w: response_code %d", errNotInDataset, report.ResponseCode))
	}

	if report.Positives > 0 {
		return model.Phishing
	}
	return model.Legitimate
}
