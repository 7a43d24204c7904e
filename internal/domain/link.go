package domain

import (
	"time"

	"github.com/google/uuid"
)

// Link represents a saved link and its enrichment state.
//
// It is NOT tied to Redis or any transport. Enrichment passes fill the
// optional fields over time; each optional field is either write-once
// (thumbnail, duration, reading time) or refreshed on every pass
// (title while placeholder, category).
type Link struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier, assigned at creation.
	ID string `json:"id"`

	// URL is the original string as submitted. Never mutated;
	// editing a URL creates a new link.
	URL string `json:"url"`

	// ─────────────────────────────
	// Enriched metadata
	// ─────────────────────────────

	// Title starts as a best-effort value (often the raw URL) and is
	// refined by enrichment passes until it is no longer a placeholder.
	Title string `json:"title"`

	// Category is the stored classification (video/article/shopping/social/other).
	// Recomputed on every enrichment pass.
	Category Category `json:"category"`

	// CategoryOverride, when set by the user, takes precedence over
	// Category everywhere. Enrichment never touches it.
	CategoryOverride Category `json:"categoryOverride,omitempty"`

	// ThumbnailURL is write-once: filled by the first successful
	// enrichment, never overwritten.
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`

	// DurationText is a formatted video duration ("M:SS" or "H:MM:SS").
	// Write-once, video links only.
	DurationText string `json:"durationText,omitempty"`

	// ReadingTimeMinutes is the estimated reading time.
	// Write-once, non-video links only. Zero means unset.
	ReadingTimeMinutes int `json:"readingTimeMinutes,omitempty"`

	// ─────────────────────────────
	// User state
	// ─────────────────────────────

	// IsFavorite is a user toggle, mutable at any time.
	IsFavorite bool `json:"isFavorite"`

	// UserNote is free-form text attached by the user.
	UserNote string `json:"userNote,omitempty"`

	// ReminderAt is the optional reminder fire time. Zero means none.
	ReminderAt time.Time `json:"reminderAt,omitzero"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// CreatedAt is assigned at creation and never changes.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is updated on any mutation.
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewLink creates a link from a submitted URL with best-effort initial
// title and category. An empty title falls back to the URL itself so the
// record is never blank.
func NewLink(rawURL, title string, category Category) *Link {
	if title == "" {
		title = rawURL
	}
	now := time.Now()
	return &Link{
		ID:        uuid.NewString(),
		URL:       rawURL,
		Title:     title,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// EffectiveCategory returns the user override when present,
// the computed category otherwise.
func (l *Link) EffectiveCategory() Category {
	if l.CategoryOverride != "" {
		return l.CategoryOverride
	}
	return l.Category
}

// HasReminder reports whether a reminder is set.
func (l *Link) HasReminder() bool {
	return !l.ReminderAt.IsZero()
}
