package domain

import "testing"

func TestParseDeepLink(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantID string
		wantOK bool
	}{
		{
			name:   "valid deep link",
			input:  "linkshelf://link/abc-123",
			wantID: "abc-123",
			wantOK: true,
		},
		{
			name:   "wrong scheme",
			input:  "https://link/abc-123",
			wantOK: false,
		},
		{
			name:   "wrong host",
			input:  "linkshelf://settings/abc",
			wantOK: false,
		},
		{
			name:   "missing id",
			input:  "linkshelf://link/",
			wantOK: false,
		},
		{
			name:   "extra path segments",
			input:  "linkshelf://link/a/b",
			wantOK: false,
		},
		{
			name:   "empty input",
			input:  "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ParseDeepLink(tt.input)
			if ok != tt.wantOK || id != tt.wantID {
				t.Errorf("ParseDeepLink(%q) = (%q, %v), want (%q, %v)", tt.input, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestDeepLinkRoundTrip(t *testing.T) {
	id := "0b5a9c2e"
	parsed, ok := ParseDeepLink(DeepLinkFor(id))
	if !ok || parsed != id {
		t.Errorf("ParseDeepLink(DeepLinkFor(%q)) = (%q, %v), want round trip", id, parsed, ok)
	}
}
