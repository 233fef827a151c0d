package features

import (
	"net/url"
	"strings"

	"github.com/Bahjat/phish-verdict/internal/etld"
)

// majority is the share above which a ratio flag is raised.
const majority = 50.0

// nullSelfTargets are link targets that go nowhere.
var nullSelfTargets = map[string]struct{}{
	"":                    {},
	"#":                   {},
	"javascript:void(0)":  {},
	"javascript:void(0);": {},
	"about:blank":         {},
}

// HTML computes the page-structure features of body, fetched for subjectURL
// and served from finalURL. registrable is the subject's eTLD+1; every target
// is compared against it. An empty body yields all-zero features apart from
// RedirectCount.
func HTML(subjectURL, registrable, finalURL, body string) Set {
	m := scan(body)

	var extLinks, nullLinks int
	for _, h := range m.hrefs {
		if isExternal(h, registrable) {
			extLinks++
		}
		if _, ok := nullSelfTargets[strings.ToLower(strings.TrimSpace(h))]; ok {
			nullLinks++
		}
	}

	var extSrcs int
	for _, s := range m.srcs {
		if isExternal(s, registrable) {
			extSrcs++
		}
	}

	var extFavicon bool
	for _, f := range m.favicons {
		if isExternal(f, registrable) {
			extFavicon = true
			break
		}
	}

	secureSubject := strings.HasPrefix(strings.ToLower(subjectURL), "https://")
	var insecure, abnormal, imagesOnly, toEmail bool
	for _, f := range scanForms(body) {
		action := strings.ToLower(strings.TrimSpace(f.action))
		if secureSubject && (action == "" || strings.HasPrefix(action, "http://")) {
			insecure = true
		}
		if isExternal(action, registrable) {
			abnormal = true
		}
		if f.hasImage && !f.hasInput {
			imagesOnly = true
		}
		if strings.HasPrefix(action, "mailto:") || f.mailto {
			toEmail = true
		}
	}

	pctExtLinks := percent(extLinks, len(m.hrefs))
	pctNullLinks := percent(nullLinks, len(m.hrefs))
	pctExtSrcs := percent(extSrcs, len(m.srcs))
	total := len(m.hrefs) + len(m.srcs)

	return Set{
		RedirectCount:                      flag(finalURL != "" && finalURL != subjectURL),
		PctExtHyperlinks:                   pctExtLinks,
		PctNullSelfRedirectHyperlinks:      pctNullLinks,
		PctExtNullSelfRedirectHyperlinksRT: flag(pctNullLinks > majority),
		PctExtResourceUrls:                 pctExtSrcs,
		PctExtResourceUrlsRT:               flag(pctExtSrcs > majority),
		InsecureForms:                      flag(insecure),
		AbnormalFormAction:                 flag(abnormal),
		AbnormalExtFormActionR:             flag(abnormal),
		ImagesOnlyInForm:                   flag(imagesOnly),
		SubmitInfoToEmail:                  flag(toEmail),
		IframeOrFrame:                      flag(m.hasFrame),
		Favicon:                            flag(len(m.favicons) > 0),
		ExtFavicon:                         flag(extFavicon),
		FrequentDomainNameMismatch:         flag(total > 0 && percent(extLinks+extSrcs, total) > majority),
	}
}

// isExternal reports whether target is an absolute http(s) URL, or a
// protocol-relative one, on a registrable domain other than registrable.
// Anything that does not parse counts as internal.
func isExternal(target, registrable string) bool {
	t := strings.ToLower(strings.TrimSpace(target))
	if strings.HasPrefix(t, "//") {
		t = "http:" + t
	}
	if !strings.HasPrefix(t, "http://") && !strings.HasPrefix(t, "https://") {
		return false
	}

	u, err := url.Parse(t)
	if err != nil {
		return false
	}
	d := etld.Registrable(u.Hostname())
	return d != "" && d != registrable
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
