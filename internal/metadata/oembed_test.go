package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchOEmbedTitle(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("url") == "" {
			t.Error("oembed request missing url parameter")
		}
		_, _ = w.Write([]byte(`{"title":"Primary Title"}`))
	}))
	defer primary.Close()

	cfg := DefaultConfig()
	cfg.YouTubeOEmbedURL = primary.URL
	s := newTestService(cfg)

	got := s.fetchOEmbedTitle(context.Background(), "https://www.youtube.com/watch?v=abc")
	if got != "Primary Title" {
		t.Errorf("fetchOEmbedTitle() = %q, want %q", got, "Primary Title")
	}
}

func TestFetchOEmbedTitleFallsThroughToProxy(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer primary.Close()

	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"title":"Proxy Title"}`))
	}))
	defer proxy.Close()

	cfg := DefaultConfig()
	cfg.YouTubeOEmbedURL = primary.URL
	cfg.NoEmbedURL = proxy.URL
	s := newTestService(cfg)

	got := s.fetchOEmbedTitle(context.Background(), "https://youtu.be/abc")
	if got != "Proxy Title" {
		t.Errorf("fetchOEmbedTitle() = %q, want proxy fallback %q", got, "Proxy Title")
	}
}

func TestFetchOEmbedTitleGivesUpSilently(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{name: "malformed json", body: `{"title": `, code: http.StatusOK},
		{name: "server error", body: "", code: http.StatusInternalServerError},
		{name: "empty title", body: `{"title":""}`, code: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			cfg := DefaultConfig()
			cfg.VimeoOEmbedURL = ts.URL
			cfg.NoEmbedURL = ts.URL
			s := newTestService(cfg)

			if got := s.fetchOEmbedTitle(context.Background(), "https://vimeo.com/1"); got != "" {
				t.Errorf("fetchOEmbedTitle() = %q, want empty on failure", got)
			}
		})
	}
}

func TestFetchOEmbedTitleSkipsUnknownHosts(t *testing.T) {
	s := newTestService(DefaultConfig())
	if got := s.fetchOEmbedTitle(context.Background(), "https://example.com/x"); got != "" {
		t.Errorf("fetchOEmbedTitle() = %q, want empty for non-video host", got)
	}
}
