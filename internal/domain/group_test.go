package domain

import "testing"

func TestGroupClassifier(t *testing.T) {
	g := DefaultGroupClassifier()

	tests := []struct {
		name     string
		link     *Link
		expected CategoryGroup
	}{
		{
			name:     "youtube link",
			link:     &Link{URL: "https://www.youtube.com/watch?v=abc"},
			expected: GroupYouTube,
		},
		{
			name:     "github is development",
			link:     &Link{URL: "https://github.com/golang/go"},
			expected: GroupDevelopment,
		},
		{
			name:     "claude is an ai tool",
			link:     &Link{URL: "https://claude.ai/chat"},
			expected: GroupAITools,
		},
		{
			name:     "shopping by host",
			link:     &Link{URL: "https://www.etsy.com/listing/1"},
			expected: GroupShopping,
		},
		{
			name:     "shopping by stored category on unknown host",
			link:     &Link{URL: "https://example.com/x", Category: CategoryShopping},
			expected: GroupShopping,
		},
		{
			name:     "category override counts for shopping",
			link:     &Link{URL: "https://example.com/x", Category: CategoryOther, CategoryOverride: CategoryShopping},
			expected: GroupShopping,
		},
		{
			name:     "unmatched is other",
			link:     &Link{URL: "https://example.com/about"},
			expected: GroupOther,
		},
		{
			name:     "malformed url is other",
			link:     &Link{URL: "not a url"},
			expected: GroupOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Group(tt.link)
			if got != tt.expected {
				t.Errorf("Group(%q) = %q, want %q", tt.link.URL, got, tt.expected)
			}
		})
	}
}

// The groups form an exclusive partition: every link matches exactly one.
func TestGroupClassifierExclusive(t *testing.T) {
	g := DefaultGroupClassifier()

	links := []*Link{
		{URL: "https://www.youtube.com/watch?v=abc"},
		{URL: "https://github.com/golang/go"},
		{URL: "https://huggingface.co/models"},
		{URL: "https://www.amazon.com/dp/B000"},
		{URL: "https://example.com/about"},
	}

	for _, link := range links {
		matched := 0
		for _, group := range GroupDisplayOrder() {
			if g.Matches(group, link) {
				matched++
			}
		}
		if matched != 1 {
			t.Errorf("link %q matched %d groups, want exactly 1", link.URL, matched)
		}
	}
}

// Development beats shopping category: dev host wins because groups are
// checked in display priority order.
func TestGroupClassifierPriority(t *testing.T) {
	g := DefaultGroupClassifier()

	link := &Link{URL: "https://github.com/store/thing", Category: CategoryShopping}
	if got := g.Group(link); got != GroupDevelopment {
		t.Errorf("Group() = %q, want %q", got, GroupDevelopment)
	}
}

func TestGroupClassifierExtendGroup(t *testing.T) {
	g := DefaultGroupClassifier()
	g.ExtendGroup(GroupAITools, []string{"myai.example"})

	link := &Link{URL: "https://myai.example/playground"}
	if got := g.Group(link); got != GroupAITools {
		t.Errorf("Group() = %q, want %q after ExtendGroup", got, GroupAITools)
	}
}
