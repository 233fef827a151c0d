package analyzer

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

// urlKeys are the parameter names a caller may use for the URL, in order of
// preference.
var urlKeys = []string{"url", "link", "target", "page", "u"}

// ResolveURL extracts the URL to analyze from r. The query string wins over
// a JSON object body, which wins over a form body, which wins over a raw
// text body that is itself an http(s) URL. At most maxBody bytes of the body
// are read.
func ResolveURL(r *http.Request, maxBody int64) (string, bool) {
	if v, ok := firstValue(r.URL.Query().Get); ok {
		return v, true
	}

	if r.Body == nil {
		return "", false
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil || len(body) == 0 {
		return "", false
	}

	if v, ok := fromJSON(body); ok {
		return v, true
	}
	if v, ok := fromForm(r, body, maxBody); ok {
		return v, true
	}

	raw := strings.TrimSpace(string(body))
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw, true
	}
	return "", false
}

func firstValue(get func(key string) string) (string, bool) {
	for _, k := range urlKeys {
		if v := strings.TrimSpace(get(k)); v != "" {
			return v, true
		}
	}
	return "", false
}

// fromJSON accepts only string values; {"url": 5} is no URL.
func fromJSON(body []byte) (string, bool) {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return "", false
	}
	return firstValue(func(k string) string {
		s, _ := obj[k].(string)
		return s
	})
}

func fromForm(r *http.Request, body []byte, maxBody int64) (string, bool) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return "", false
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return "", false
		}
		return firstValue(values.Get)
	case "multipart/form-data":
		r.Body = io.NopCloser(bytes.NewReader(body))
		if err := r.ParseMultipartForm(maxBody); err != nil {
			return "", false
		}
		return firstValue(url.Values(r.MultipartForm.Value).Get)
	}
	return "", false
}
