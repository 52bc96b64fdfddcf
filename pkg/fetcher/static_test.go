package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const tablePage = `<html><head><title> Prices
</title></head><body>
<table><tr><th>Item</th></tr><tr><td>Tea</td></tr></table>
<table><tr><td>second</td></tr></table>
</body></html>`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("X-Seen-Agent", r.UserAgent())
		_, _ = w.Write([]byte(tablePage))
	})
	mux.HandleFunc("/echo-header", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<p>" + r.Header.Get("X-Token") + "</p>"))
	})
	mux.HandleFunc("/agent", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<p>" + r.UserAgent() + "</p>"))
	})
	mux.HandleFunc("/data.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"table":false}`))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// --- StaticFetcher Tests ---

func TestNewStatic_Defaults(t *testing.T) {
	f := NewStatic(StaticConfig{})

	if f.config.UserAgent != defaultUserAgent {
		t.Errorf("UserAgent = %q, want %q", f.config.UserAgent, defaultUserAgent)
	}
	if f.config.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", f.config.Timeout)
	}
	if got := f.Type(); got != "static" {
		t.Errorf("Type() = %q, want %q", got, "static")
	}
	if err := f.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestStaticFetcher_Fetch(t *testing.T) {
	srv := newTestServer(t)
	f := NewStatic(StaticConfig{})

	got, err := f.Fetch(context.Background(), srv.URL+"/page", Options{})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if got.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", got.StatusCode)
	}
	if got.HTML != tablePage {
		t.Errorf("HTML = %q, want page body", got.HTML)
	}
	if got.Title != "Prices" {
		t.Errorf("Title = %q, want %q", got.Title, "Prices")
	}
	if got.Tables != 2 {
		t.Errorf("Tables = %d, want 2", got.Tables)
	}
	if got.FetchedAt.IsZero() {
		t.Error("expected FetchedAt to be set")
	}
}

func TestStaticFetcher_Fetch_Headers(t *testing.T) {
	srv := newTestServer(t)
	f := NewStatic(StaticConfig{})

	got, err := f.Fetch(context.Background(), srv.URL+"/echo-header", Options{
		Headers: map[string]string{"X-Token": "secret"},
	})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got.HTML != "<p>secret</p>" {
		t.Errorf("HTML = %q, want header echoed", got.HTML)
	}
}

func TestStaticFetcher_Fetch_UserAgentOverride(t *testing.T) {
	srv := newTestServer(t)
	f := NewStatic(StaticConfig{UserAgent: "config-agent"})

	got, err := f.Fetch(context.Background(), srv.URL+"/agent", Options{UserAgent: "call-agent"})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got.HTML != "<p>call-agent</p>" {
		t.Errorf("HTML = %q, want per-call user agent", got.HTML)
	}
}

func TestStaticFetcher_Fetch_NotFound(t *testing.T) {
	srv := newTestServer(t)
	f := NewStatic(StaticConfig{})

	got, err := f.Fetch(context.Background(), srv.URL+"/missing", Options{})
	if !errors.Is(err, ErrHTTPStatus) {
		t.Fatalf("Fetch() error = %v, want ErrHTTPStatus", err)
	}
	if got.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", got.StatusCode)
	}
}

func TestStaticFetcher_Fetch_NotHTML(t *testing.T) {
	srv := newTestServer(t)
	f := NewStatic(StaticConfig{})

	got, err := f.Fetch(context.Background(), srv.URL+"/data.json", Options{})
	if !errors.Is(err, ErrNotHTML) {
		t.Fatalf("Fetch() error = %v, want ErrNotHTML", err)
	}
	if got.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", got.StatusCode)
	}
}

func TestIsHTML(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"", true},
		{"text/html", true},
		{"text/html; charset=utf-8", true},
		{"application/xhtml+xml", true},
		{"application/json", false},
		{"text/plain", false},
		{";;bad", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			if got := isHTML(tt.contentType); got != tt.want {
				t.Errorf("isHTML(%q) = %v, want %v", tt.contentType, got, tt.want)
			}
		})
	}
}

func TestCoalesce(t *testing.T) {
	if got := coalesce("", "b", "c"); got != "b" {
		t.Errorf("coalesce() = %q, want %q", got, "b")
	}
	if got := coalesce("", ""); got != "" {
		t.Errorf("coalesce() = %q, want empty", got)
	}
}
