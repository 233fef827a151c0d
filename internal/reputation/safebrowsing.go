package reputation

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Bahjat/phish-verdict/internal/model"
)

// SafeBrowsingEndpoint is the Google Safe Browsing v4 lookup API.
const SafeBrowsingEndpoint = "https://safebrowsing.googleapis.com/v4/threatMatches:find"

// SafeBrowsing checks URLs against Google Safe Browsing.
type SafeBrowsing struct {
	apiKey   string
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewSafeBrowsing returns a checker for apiKey. An empty key makes every
// check return Unknown without a request.
func NewSafeBrowsing(apiKey string, timeout time.Duration, logger *slog.Logger) *SafeBrowsing {
	return &SafeBrowsing{
		apiKey:   apiKey,
		endpoint: SafeBrowsingEndpoint,
		client:   newHTTPClient(timeout),
		logger:   logger,
	}
}

// Name implements Checker.
func (s *SafeBrowsing) Name() string { return "Google Safe Browsing" }

type threatEntry struct {
	URL string `json:"url"`
}

type threatMatchesRequest struct {
	Client struct {
		ClientID      string `json:"clientId"`
		ClientVersion string `json:"clientVersion"`
	} `json:"client"`
	ThreatInfo struct {
		ThreatTypes      []string      `json:"threatTypes"`
		PlatformTypes    []string      `json:"platformTypes"`
		ThreatEntryTypes []string      `json:"threatEntryTypes"`
		ThreatEntries    []threatEntry `json:"threatEntries"`
	} `json:"threatInfo"`
}

type threatMatchesResponse struct {
	Matches []json.RawMessage `json:"matches"`
}

func newThreatMatchesRequest(targetURL string) threatMatchesRequest {
	var r threatMatchesRequest
	r.Client.ClientID = "phish-detector"
	r.Client.ClientVersion = "1.0"
	r.ThreatInfo.ThreatTypes = []string{"MALWARE", "SOCIAL_ENGINEERING", "UNWANTED_SOFTWARE", "POTENTIALLY_HARMFUL_APPLICATION"}
	r.ThreatInfo.PlatformTypes = []string{"ANY_PLATFORM"}
	r.ThreatInfo.ThreatEntryTypes = []string{"URL"}
	r.ThreatInfo.ThreatEntries = []threatEntry{{URL: targetURL}}
	return r
}

// Check returns Phishing when Safe Browsing reports any match.
func (s *SafeBrowsing) Check(ctx context.Context, targetURL string) model.Verdict {
	if s.apiKey == "" {
		return model.Unknown
	}

	payload, err := json.Marshal(newThreatMatchesRequest(targetURL))
	if err != nil {
		return degrade(ctx, s.logger, s.Name(), err)
	}

	endpoint := s.endpoint + "?key=" + url.QueryEscape(s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return degrade(ctx, s.logger, s.Name(), err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp threatMatchesResponse
	if err := doJSON(s.client, req, &resp); err != nil {
		return degrade(ctx, s.logger, s.Name(), err)
	}

	if len(resp.Matches) > 0 {
		return model.Phishing
	}
	return model.Legitimate
}
