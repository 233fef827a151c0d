package features

import (
	"strings"

	"golang.org/x/net/html"
)

// markup holds the attribute targets found in a single tokenizer pass.
type markup struct {
	hrefs    []string
	srcs     []string
	favicons []string
	hasFrame bool
}

// scan walks the tokens of body once. It never fails: tokenizer errors other
// than EOF end the scan and whatever was collected so far is returned.
func scan(body string) markup {
	var m markup
	z := html.NewTokenizer(strings.NewReader(body))

	for {
		switch z.Next() {
		case html.ErrorToken:
			return m

		case html.StartTagToken, html.SelfClosingTagToken:
			tn, hasAttr := z.TagName()
			tag := string(tn)

			if tag == "iframe" || tag == "frame" {
				m.hasFrame = true
			}
			if !hasAttr {
				continue
			}

			attrs := tagAttrs(z)
			if href, ok := attrs["href"]; ok {
				m.hrefs = append(m.hrefs, href)
				if tag == "link" && isIconRel(attrs["rel"]) && strings.TrimSpace(href) != "" {
					m.favicons = append(m.favicons, href)
				}
			}
			if src, ok := attrs["src"]; ok {
				m.srcs = append(m.srcs, src)
			}
		}
	}
}

// tagAttrs reads the remaining attributes of the current tag. The first
// occurrence of a repeated attribute wins, as in browsers.
func tagAttrs(z *html.Tokenizer) map[string]string {
	attrs := make(map[string]string)
	for {
		key, val, more := z.TagAttr()
		k := string(key)
		if _, seen := attrs[k]; !seen {
			attrs[k] = string(val)
		}
		if !more {
			return attrs
		}
	}
}

// isIconRel matches rel="icon" and rel="shortcut icon".
func isIconRel(rel string) bool {
	for _, f := range strings.Fields(strings.ToLower(rel)) {
		if f == "icon" {
			return true
		}
	}
	return false
}
