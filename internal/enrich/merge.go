package enrich

import (
	"time"

	"github.com/linkshelf/linkshelf/internal/domain"
)

// Enrichment holds the values computed by one enrichment pass.
// Zero values mean "nothing computed" and never clear an existing field.
type Enrichment struct {
	Title              string
	Category           domain.Category
	ThumbnailURL       string
	DurationText       string
	ReadingTimeMinutes int
}

// Merge applies an enrichment to a link under the per-field policy and
// reports whether anything changed. Safe to apply repeatedly: a second
// pass with the same (or different) computed values is a no-op for the
// write-once fields.
//
// Policy:
//   - Title: overwritten only while the current title is a placeholder
//     and the computed one is not.
//   - Category: refreshed on every pass (rules may improve over time).
//   - ThumbnailURL, DurationText, ReadingTimeMinutes: write-once.
//   - DurationText and ReadingTimeMinutes stay mutually exclusive.
func Merge(link *domain.Link, e Enrichment) bool {
	changed := false

	if e.Title != "" &&
		domain.IsPlaceholderTitle(link.Title, link.URL) &&
		!domain.IsPlaceholderTitle(e.Title, link.URL) {
		link.Title = e.Title
		changed = true
	}

	if e.Category != "" && e.Category != link.Category {
		link.Category = e.Category
		changed = true
	}

	if e.ThumbnailURL != "" && link.ThumbnailURL == "" {
		link.ThumbnailURL = e.ThumbnailURL
		changed = true
	}

	if e.DurationText != "" && link.DurationText == "" && link.ReadingTimeMinutes == 0 {
		link.DurationText = e.DurationText
		changed = true
	}

	if e.ReadingTimeMinutes > 0 && link.ReadingTimeMinutes == 0 && link.DurationText == "" {
		link.ReadingTimeMinutes = e.ReadingTimeMinutes
		changed = true
	}

	if changed {
		link.UpdatedAt = time.Now()
	}
	return changed
}

// NeedsEnrichment reports whether another pass could still fill
// something: a placeholder title always qualifies, as do the absent
// optional fields for the link's branch.
func NeedsEnrichment(link *domain.Link) bool {
	if domain.IsPlaceholderTitle(link.Title, link.URL) {
		return true
	}
	if domain.IsVideoHost(link.URL) {
		return link.ThumbnailURL == "" || link.DurationText == ""
	}
	return link.ReadingTimeMinutes == 0
}
