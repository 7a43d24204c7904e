package domain

import "testing"

func searchLink(title, url string) *Link {
	return NewLink(url, title, CategoryOther)
}

func TestRankLinksOrdersByScore(t *testing.T) {
	links := []*Link{
		searchLink("Kubernetes Operators Explained", "https://blog.example.com/k8s"),
		searchLink("Grafana Dashboards", "https://grafana.com/docs"),
		searchLink("Weekly Grocery List", "https://notes.example.com/groceries"),
	}

	matches := RankLinks("grafana", links)
	if len(matches) == 0 {
		t.Fatal("RankLinks returned no matches for 'grafana'")
	}
	if matches[0].Link.Title != "Grafana Dashboards" {
		t.Errorf("best match = %q, want %q", matches[0].Link.Title, "Grafana Dashboards")
	}
}

func TestRankLinksExactBeatsPrefix(t *testing.T) {
	links := []*Link{
		searchLink("Go Generics Proposal", "https://example.com/a"),
		searchLink("Going Serverless", "https://example.com/b"),
	}

	matches := RankLinks("go", links)
	if len(matches) < 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].Link.Title != "Go Generics Proposal" {
		t.Errorf("best match = %q, want exact title word first", matches[0].Link.Title)
	}
	if matches[0].Score <= matches[1].Score {
		t.Errorf("exact score %.1f not above prefix score %.1f",
			matches[0].Score, matches[1].Score)
	}
}

func TestRankLinksMatchesHost(t *testing.T) {
	links := []*Link{
		searchLink("Interesting read", "https://www.github.com/some/repo"),
		searchLink("Another read", "https://example.org/post"),
	}

	matches := RankLinks("github", links)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].Link.URL != "https://www.github.com/some/repo" {
		t.Errorf("matched %q, want the github link", matches[0].Link.URL)
	}
}

func TestRankLinksEveryWordMustMatch(t *testing.T) {
	links := []*Link{
		searchLink("Go Generics Proposal", "https://example.com/a"),
	}

	if matches := RankLinks("go zebra", links); len(matches) != 0 {
		t.Errorf("got %d matches, want 0 when one query word matches nothing", len(matches))
	}
}

func TestRankLinksFavoriteBonus(t *testing.T) {
	plain := searchLink("Redis Persistence", "https://example.com/a")
	starred := searchLink("Redis Persistence", "https://example.org/b")
	starred.IsFavorite = true

	matches := RankLinks("redis", []*Link{plain, starred})
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if !matches[0].Link.IsFavorite {
		t.Error("favorite link did not rank first on equal text score")
	}
}

func TestRankLinksEmptyQuery(t *testing.T) {
	links := []*Link{searchLink("Anything", "https://example.com")}

	if matches := RankLinks("   ", links); matches != nil {
		t.Errorf("got %d matches for blank query, want none", len(matches))
	}
}

func TestScoreFragment(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		frag      string
		wantAbove float64
		wantZero  bool
	}{
		{name: "exact", query: "redis", frag: "redis", wantAbove: ScoreExactMatch},
		{name: "prefix", query: "red", frag: "redis", wantAbove: ScorePrefixMatch},
		{name: "substring", query: "edi", frag: "redis", wantAbove: ScoreSubstringMatch},
		{name: "punctuation ignored", query: "cmake", frag: "c-make", wantAbove: ScoreExactMatch},
		{name: "no overlap", query: "xyz", frag: "redis", wantZero: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreFragment(tt.query, tt.frag, 0)
			if tt.wantZero {
				if got != 0.0 {
					t.Errorf("scoreFragment(%q, %q) = %.1f, want 0", tt.query, tt.frag, got)
				}
				return
			}
			if got < tt.wantAbove {
				t.Errorf("scoreFragment(%q, %q) = %.1f, want >= %.1f",
					tt.query, tt.frag, got, tt.wantAbove)
			}
		})
	}
}
