package features

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// form is what the extractor needs from one <form> subtree.
type form struct {
	action   string
	hasInput bool
	hasImage bool
	mailto   bool
}

// scanForms returns every form in body. A document that cannot be built
// yields no forms.
func scanForms(body string) []form {
	if !strings.Contains(strings.ToLower(body), "<form") {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}

	var forms []form
	doc.Find("form").Each(func(_ int, s *goquery.Selection) {
		action, _ := s.Attr("action")
		outer, _ := goquery.OuterHtml(s)

		forms = append(forms, form{
			action:   action,
			hasInput: s.Find("input").Length() > 0,
			hasImage: s.Find("img").Length() > 0,
			mailto:   strings.Contains(strings.ToLower(outer), "mailto:"),
		})
	})
	return forms
}
