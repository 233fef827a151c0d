// Package features turns a URL and its fetched page into the named numeric
// signals the phishing model was trained on, and assembles them into the
// model's fixed input order.
package features

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Bahjat/phish-verdict/internal/etld"
)

// longURLThreshold is the length above which UrlLengthRT is set.
const longURLThreshold = 75

var schemePrefix = regexp.MustCompile(`(?i)https?://`)

// parsedURL is the subset of a URL the extractors look at. path and query
// are the raw substrings of the input, not re-escaped forms.
type parsedURL struct {
	host  string
	path  string
	query string
}

// parseURL splits raw the lenient way: a bad escape in the path or query
// never costs the host, and a host that cannot be read is empty while the
// other components survive.
func parseURL(raw string) parsedURL {
	authority, path, query := splitURL(raw)
	host := hostFromAuthority(authority)
	if u, err := url.Parse(raw); err == nil {
		host = strings.ToLower(u.Hostname())
	}
	return parsedURL{host: host, path: path, query: query}
}

// Host returns the lowercased host of rawURL without port or userinfo, or ""
// when it has none that can be read.
func Host(rawURL string) string {
	return parseURL(rawURL).host
}

// splitURL cuts raw into authority, path and query without validating any of
// them. The fragment is dropped.
func splitURL(raw string) (authority, path, query string) {
	rest := raw
	if i := strings.IndexByte(rest, ':'); i > 0 && isScheme(rest[:i]) {
		rest = rest[i+1:]
	}
	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
		end := strings.IndexAny(rest, "/?#")
		if end < 0 {
			end = len(rest)
		}
		authority, rest = rest[:end], rest[end:]
	}
	rest, _, _ = strings.Cut(rest, "#")
	path, query, _ = strings.Cut(rest, "?")
	return authority, path, query
}

func isScheme(s string) bool {
	for i, r := range s {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case i > 0 && ('0' <= r && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

func hostFromAuthority(authority string) string {
	if i := strings.LastIndexByte(authority, '@'); i >= 0 {
		authority = authority[i+1:]
	}

	host := authority
	if strings.HasPrefix(host, "[") {
		end := strings.IndexByte(host, ']')
		if end < 0 {
			return ""
		}
		host = host[1:end]
	} else if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}

	if strings.ContainsFunc(host, invalidHostRune) {
		return ""
	}
	return strings.ToLower(host)
}

func invalidHostRune(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsControl(r) || strings.ContainsRune("%<>\"{}|\\^`", r)
}

// Lexical computes the string-level features of rawURL. It performs no I/O and
// returns the same Set for the same input.
func Lexical(rawURL string) Set {
	p := parseURL(rawURL)
	lower := strings.ToLower(rawURL)
	base := etld.Registrable(p.host)
	label, _, _ := strings.Cut(base, ".")
	urlLen := utf8.RuneCountInString(rawURL)

	return Set{
		NumDots:            float64(strings.Count(schemePrefix.ReplaceAllString(rawURL, ""), ".")),
		SubdomainLevel:     float64(etld.SubdomainLevel(p.host)),
		PathLevel:          float64(countNonEmpty(p.path, "/")),
		URLLength:          float64(urlLen),
		NumDash:            float64(strings.Count(rawURL, "-")),
		NumDashInHostname:  float64(strings.Count(p.host, "-")),
		NumUnderscore:      float64(strings.Count(rawURL, "_")),
		NumQueryComponents: float64(countNonEmpty(p.query, "&")),
		NumAmpersand:       float64(strings.Count(rawURL, "&")),
		NumHash:            float64(strings.Count(rawURL, "#")),
		NumNumericChars:    float64(countDigits(rawURL)),
		NoHTTPS:            flag(!strings.HasPrefix(lower, "https://")),
		IPAddress:          flag(p.host != "" && etld.IsIP(p.host)),
		HostnameLength:     float64(utf8.RuneCountInString(p.host)),
		PathLength:         float64(utf8.RuneCountInString(p.path)),
		QueryLength:        float64(utf8.RuneCountInString(p.query)),
		AtSymbol:           flag(strings.Contains(rawURL, "@")),
		TildeSymbol:        flag(strings.Contains(rawURL, "~")),
		DoubleSlashInPath:  flag(strings.Contains(p.path, "//")),
		URLLengthRT:        flag(urlLen > longURLThreshold),
		DomainInPaths:      flag(label != "" && strings.Contains(strings.ToLower(p.path), label)),
		DomainInSubdomains: flag(label != "" && strings.Contains(etld.Subdomain(p.host), label)),
	}
}

func countNonEmpty(s, sep string) int {
	if s == "" {
		return 0
	}
	var n int
	for _, part := range strings.Split(s, sep) {
		if part != "" {
			n++
		}
	}
	return n
}

func countDigits(s string) int {
	var n int
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
