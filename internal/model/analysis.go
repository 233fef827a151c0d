package model

// Analysis holds the fused result of classifying a single URL.
// Field names are what the browser extension reads, so they stay as-is.
type Analysis struct {
	URL          string       `json:"url"`
	FinalVerdict FinalVerdict `json:"final_verdict"`
	Details      Details      `json:"details"`
	Status       FinalVerdict `json:"status"`
	Verdict      FinalVerdict `json:"verdict"`
	IsPhishing   bool         `json:"is_phishing"`
}

// Details breaks the final verdict down into the three votes.
type Details struct {
	Model        Verdict `json:"Phisher Model"`
	SafeBrowsing Verdict `json:"Google Safe Browsing"`
	VirusTotal   Verdict `json:"VirusTotal"`
}

// NewAnalysis fills the redundant convenience fields from the final verdict.
func NewAnalysis(url string, final FinalVerdict, details Details) *Analysis {
	return &Analysis{
		URL:          url,
		FinalVerdict: final,
		Details:      details,
		Status:       final,
		Verdict:      final,
		IsPhishing:   final == FinalPhishing,
	}
}

// HealthResponse is returned by the readiness endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the JSON shape returned on failure.
type ErrorResponse struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}
