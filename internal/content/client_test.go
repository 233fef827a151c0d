package content

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func testClient(ts *httptest.Server) *HTTPClient {
	return &HTTPClient{client: ts.Client(), logger: slog.New(slog.DiscardHandler)}
}

func TestHTTPClient_Fetch_HTML(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "Mozilla/5.0") {
			t.Errorf("User-Agent = %q, want a browser-like value", ua)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprint(w, "<html><body>Hello</body></html>")
	}))
	defer ts.Close()

	page := testClient(ts).Fetch(context.Background(), ts.URL)
	if page.HTML != "<html><body>Hello</body></html>" {
		t.Errorf("HTML = %q", page.HTML)
	}
	if page.FinalURL != ts.URL {
		t.Errorf("FinalURL = %q, want %q", page.FinalURL, ts.URL)
	}
}

func TestHTTPClient_Fetch_NonHTML(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = fmt.Fprint(w, "%PDF-1.4")
	}))
	defer ts.Close()

	target := ts.URL + "/doc.pdf"
	page := testClient(ts).Fetch(context.Background(), target)
	if page.HTML != "" {
		t.Errorf("HTML = %q, want empty", page.HTML)
	}
	if page.FinalURL != target {
		t.Errorf("FinalURL = %q, want %q", page.FinalURL, target)
	}
}

func TestHTTPClient_Fetch_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/landing", http.StatusFound)
	})
	mux.HandleFunc("/landing", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, "<p>landed</p>")
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	page := testClient(ts).Fetch(context.Background(), ts.URL+"/start")
	if page.FinalURL != ts.URL+"/landing" {
		t.Errorf("FinalURL = %q, want %q", page.FinalURL, ts.URL+"/landing")
	}
	if page.HTML != "<p>landed</p>" {
		t.Errorf("HTML = %q", page.HTML)
	}
}

func TestHTTPClient_Fetch_DecodesCharset(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		_, _ = w.Write([]byte("<p>caf\xe9</p>"))
	}))
	defer ts.Close()

	page := testClient(ts).Fetch(context.Background(), ts.URL)
	if page.HTML != "<p>café</p>" {
		t.Errorf("HTML = %q, want %q", page.HTML, "<p>café</p>")
	}
}

func TestHTTPClient_Fetch_Degrades(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "blocked loopback", url: "http://127.0.0.1:1/"},
		{name: "invalid url", url: "://bad-url"},
		{name: "unsupported scheme", url: "ftp://example.com/file"},
		{name: "empty", url: ""},
	}

	c := NewHTTPClient(2*time.Second, slog.New(slog.DiscardHandler))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := c.Fetch(context.Background(), tt.url)
			if page.FinalURL != tt.url || page.HTML != "" {
				t.Errorf("Fetch() = %+v, want {FinalURL:%q HTML:\"\"}", page, tt.url)
			}
		})
	}
}

func TestHTTPClient_Fetch_CancelledContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, "<p>late</p>")
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	page := testClient(ts).Fetch(ctx, ts.URL)
	if page.HTML != "" || page.FinalURL != ts.URL {
		t.Errorf("Fetch() = %+v, want degraded page", page)
	}
}

func TestSafeRedirectPolicy(t *testing.T) {
	tests := []struct {
		name    string
		scheme  string
		via     int
		wantErr bool
	}{
		{name: "https within limit", scheme: "https", via: 3, wantErr: false},
		{name: "too many redirects", scheme: "https", via: 5, wantErr: true},
		{name: "javascript scheme", scheme: "javascript", via: 0, wantErr: true},
		{name: "file scheme", scheme: "file", via: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &http.Request{URL: &url.URL{Scheme: tt.scheme, Host: "example.com"}}
			err := safeRedirectPolicy(req, make([]*http.Request, tt.via))
			if (err != nil) != tt.wantErr {
				t.Errorf("safeRedirectPolicy() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsHTML(t *testing.T) {
	tests := []struct {
		contentType string
		expected    bool
	}{
		{contentType: "text/html", expected: true},
		{contentType: "TEXT/HTML; charset=UTF-8", expected: true},
		{contentType: "application/xhtml+xml", expected: true},
		{contentType: "application/json", expected: false},
		{contentType: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			if got := isHTML(tt.contentType); got != tt.expected {
				t.Errorf("isHTML(%q) = %v, want %v", tt.contentType, got, tt.expected)
			}
		})
	}
}
