package domain

import "testing"

func TestIsPlaceholderTitle(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		url      string
		expected bool
	}{
		{
			name:     "empty title",
			title:    "",
			url:      "https://example.com/x",
			expected: true,
		},
		{
			name:     "whitespace only",
			title:    "   ",
			url:      "https://example.com/x",
			expected: true,
		},
		{
			name:     "title equals url",
			title:    "https://example.com/x",
			url:      "https://example.com/x",
			expected: true,
		},
		{
			name:     "title equals host",
			title:    "example.com",
			url:      "https://example.com/x",
			expected: true,
		},
		{
			name:     "title equals host without www",
			title:    "example.com",
			url:      "https://www.example.com/x",
			expected: true,
		},
		{
			name:     "bare platform name",
			title:    "YouTube",
			url:      "https://www.youtube.com/watch?v=abc",
			expected: true,
		},
		{
			name:     "bare vimeo",
			title:    "vimeo.com",
			url:      "https://vimeo.com/12345",
			expected: true,
		},
		{
			name:     "real title",
			title:    "Real Article Title",
			url:      "https://example.com/x",
			expected: false,
		},
		{
			name:     "title containing host is not placeholder",
			title:    "example.com outage postmortem",
			url:      "https://example.com/x",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsPlaceholderTitle(tt.title, tt.url)
			if got != tt.expected {
				t.Errorf("IsPlaceholderTitle(%q, %q) = %v, want %v", tt.title, tt.url, got, tt.expected)
			}
		})
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		host     string
		expected string
	}{
		{
			name:     "strips platform suffix",
			raw:      "My Great Video - YouTube",
			host:     "youtube.com",
			expected: "My Great Video",
		},
		{
			name:     "all-noise title falls back to unfiltered segments",
			raw:      "Sign in | Example.com",
			host:     "example.com",
			expected: "Example.com", // both segments are noise; max-scoring unfiltered segment wins
		},
		{
			name:     "keeps plain title",
			raw:      "An Ordinary Title",
			host:     "example.com",
			expected: "An Ordinary Title",
		},
		{
			name:     "drops auth segment",
			raw:      "Actual Content - Login",
			host:     "example.com",
			expected: "Actual Content",
		},
		{
			name:     "drops second level label segment",
			raw:      "Deep Dive Into Maps | Example",
			host:     "www.example.com",
			expected: "Deep Dive Into Maps",
		},
		{
			name:     "near-noise segment dropped",
			raw:      "Reading List — on YouTube",
			host:     "youtube.com",
			expected: "Reading List",
		},
		{
			name:     "long segment containing brand survives",
			raw:      "How YouTube Recommendations Actually Work - YouTube",
			host:     "youtube.com",
			expected: "How YouTube Recommendations Actually Work",
		},
		{
			name:     "multiple separators",
			raw:      "Title • Site | Subscribe",
			host:     "site.com",
			expected: "Title",
		},
		{
			name:     "empty input unchanged",
			raw:      "",
			host:     "example.com",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanTitle(tt.raw, tt.host)
			if got != tt.expected {
				t.Errorf("CleanTitle(%q, %q) = %q, want %q", tt.raw, tt.host, got, tt.expected)
			}
		})
	}
}

// Cleaning must never shrink a nonempty title below 3 characters;
// the original is kept instead.
func TestCleanTitleNeverTooShort(t *testing.T) {
	inputs := []struct {
		raw  string
		host string
	}{
		{"Go - YouTube", "youtube.com"},
		{"A | B", "example.com"},
		{"x", "example.com"},
	}

	for _, tt := range inputs {
		got := CleanTitle(tt.raw, tt.host)
		if len([]rune(got)) < 3 && got != tt.raw {
			t.Errorf("CleanTitle(%q) = %q: shorter than 3 chars and not the original", tt.raw, got)
		}
	}
}

func TestCleanTitleDiacriticInsensitiveNoise(t *testing.T) {
	// "Giriş Yap" matches the localized auth phrase regardless of diacritics.
	got := CleanTitle("Ürün İncelemesi - Giriş Yap", "example.com")
	if got != "Ürün İncelemesi" {
		t.Errorf("CleanTitle() = %q, want %q", got, "Ürün İncelemesi")
	}
}
