// Package etld resolves the registrable domain (eTLD+1) of a host. Every
// "is this the same site?" comparison in the feature extractors goes through
// Registrable so the subject and its links are judged the same way.
package etld

import (
	"net"
	"net/netip"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// multiLabelSuffixes is consulted when the public suffix list declines a host.
var multiLabelSuffixes = map[string]struct{}{
	"co.uk": {}, "ac.uk": {}, "gov.uk": {}, "co.in": {}, "com.au": {}, "com.br": {},
	"com.mx": {}, "co.jp": {}, "co.kr": {}, "co.za": {}, "com.sg": {}, "com.hk": {},
}

// Registrable returns the eTLD+1 of host, e.g. "a.b.example.co.uk" → "example.co.uk".
// Empty and single-label hosts and IP literals are returned unchanged.
// A host with an empty label yields "".
func Registrable(host string) string {
	host = normalize(host)
	if host == "" {
		return ""
	}
	if IsIP(host) || !strings.Contains(host, ".") {
		return host
	}
	if strings.Contains(host, "..") || strings.HasPrefix(host, ".") {
		return ""
	}

	if d, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return d
	}
	return lastLabels(host)
}

// lastLabels keeps the last two labels, or three when the last two form a
// known multi-label suffix.
func lastLabels(host string) string {
	parts := strings.Split(host, ".")
	if len(parts) < 2 {
		return host
	}

	suffix := strings.Join(parts[len(parts)-2:], ".")
	if _, ok := multiLabelSuffixes[suffix]; ok && len(parts) >= 3 {
		return strings.Join(parts[len(parts)-3:], ".")
	}
	return suffix
}

// Subdomain returns the part of host left of its registrable domain, without
// the joining dot. When host does not end with its registrable domain the
// whole host is returned.
func Subdomain(host string) string {
	host = normalize(host)
	base := Registrable(host)
	if base == "" || !strings.HasSuffix(host, base) {
		return host
	}
	return strings.TrimSuffix(host[:len(host)-len(base)], ".")
}

// SubdomainLevel counts the labels between host and its registrable domain:
// "a.b.example.com" → 2, "example.com" → 0.
func SubdomainLevel(host string) int {
	host = normalize(host)
	base := Registrable(host)

	switch {
	case base == host:
		return 0
	case base == "" || !strings.HasSuffix(host, base):
		return max(countLabels(host)-2, 0)
	default:
		return countLabels(strings.TrimSuffix(host[:len(host)-len(base)], "."))
	}
}

// IsIP reports whether host is a literal IPv4 or IPv6 address.
func IsIP(host string) bool {
	host = strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
	_, err := netip.ParseAddr(host)
	return err == nil
}

func countLabels(s string) int {
	var n int
	for _, p := range strings.Split(s, ".") {
		if p != "" {
			n++
		}
	}
	return n
}

// normalize lowercases host and drops a port and a trailing root dot.
func normalize(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.TrimSuffix(host, ".")
}
