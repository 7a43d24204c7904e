package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/linkshelf/linkshelf/internal/domain"
	"github.com/linkshelf/linkshelf/internal/logger"
)

func newTestService(cfg Config) *Service {
	return New(cfg, domain.DefaultClassifier(), logger.New("error", false))
}

func TestFetchPageTitle(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "plain title tag",
			html:     `<html><head><title>A Readable Title</title></head><body></body></html>`,
			expected: "A Readable Title",
		},
		{
			name: "og title preferred",
			html: `<html><head>
				<meta property="og:title" content="The Open Graph Title">
				<title>Window Title</title>
				</head><body></body></html>`,
			expected: "The Open Graph Title",
		},
		{
			name:     "platform suffix cleaned",
			html:     `<html><head><title>My Great Video - YouTube</title></head></html>`,
			expected: "My Great Video",
		},
		{
			name:     "no title at all",
			html:     `<html><head></head><body><p>text</p></body></html>`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				_, _ = w.Write([]byte(tt.html))
			}))
			defer ts.Close()

			s := newTestService(DefaultConfig())
			got, err := s.FetchPageTitle(context.Background(), ts.URL)
			if err != nil {
				t.Fatalf("FetchPageTitle() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("FetchPageTitle() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFetchPageTitleFailures(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	s := newTestService(DefaultConfig())
	if _, err := s.FetchPageTitle(context.Background(), ts.URL); err == nil {
		t.Error("FetchPageTitle() error = nil, want error for 404")
	}
}

func TestResolveTitleFallsBackToURL(t *testing.T) {
	// Page returns a placeholder title, no oEmbed host matches:
	// the raw URL must come back, never an empty string.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title></title></head></html>`))
	}))
	defer ts.Close()

	s := newTestService(DefaultConfig())
	got := s.ResolveTitle(context.Background(), ts.URL)
	if got != ts.URL {
		t.Errorf("ResolveTitle() = %q, want raw URL %q", got, ts.URL)
	}
}

func TestFetchMetadataSuggestsCategory(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Some Post</title></head></html>`))
	}))
	defer ts.Close()

	s := newTestService(DefaultConfig())
	md := s.FetchMetadata(context.Background(), ts.URL+"/blog/entry")

	if md.Title != "Some Post" {
		t.Errorf("Title = %q, want %q", md.Title, "Some Post")
	}
	if md.Category != domain.CategoryArticle {
		t.Errorf("Category = %q, want %q", md.Category, domain.CategoryArticle)
	}
}
