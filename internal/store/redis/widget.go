package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/linkshelf/linkshelf/internal/domain"
)

// WidgetMaxLinks caps the denormalized widget list.
const WidgetMaxLinks = 50

// WidgetLink is the trimmed projection the widget surface reads.
type WidgetLink struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	IsFavorite bool      `json:"isFavorite"`
	CreatedAt  time.Time `json:"createdAt"`
}

// WidgetStore maintains the widget's denormalized link list as a single
// JSON blob, newest first, capped at WidgetMaxLinks entries.
type WidgetStore struct {
	client *redis.Client
}

// NewWidgetStore creates a new widget store
func NewWidgetStore(client *redis.Client) *WidgetStore {
	return &WidgetStore{
		client: client,
	}
}

// Upsert inserts or refreshes the widget entry for a link.
func (w *WidgetStore) Upsert(ctx context.Context, link *domain.Link) error {
	entries, err := w.load(ctx)
	if err != nil {
		return err
	}

	entry := widgetEntry(link)
	replaced := false
	for i := range entries {
		if entries[i].ID == entry.ID {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}

	return w.save(ctx, entries)
}

// Remove drops a link from the widget list. Removing an absent id is a
// no-op.
func (w *WidgetStore) Remove(ctx context.Context, id string) error {
	entries, err := w.load(ctx)
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	return w.save(ctx, kept)
}

// UpdateFavorite flips the favorite flag on an existing widget entry.
func (w *WidgetStore) UpdateFavorite(ctx context.Context, id string, favorite bool) error {
	entries, err := w.load(ctx)
	if err != nil {
		return err
	}

	for i := range entries {
		if entries[i].ID == id {
			entries[i].IsFavorite = favorite
			return w.save(ctx, entries)
		}
	}
	return nil
}

// Resync rebuilds the widget list from scratch out of the full link set.
func (w *WidgetStore) Resync(ctx context.Context, links []*domain.Link) error {
	entries := make([]WidgetLink, 0, len(links))
	for _, link := range links {
		entries = append(entries, widgetEntry(link))
	}
	return w.save(ctx, entries)
}

// Links returns the current widget list, newest first.
func (w *WidgetStore) Links(ctx context.Context) ([]WidgetLink, error) {
	return w.load(ctx)
}

func (w *WidgetStore) load(ctx context.Context) ([]WidgetLink, error) {
	data, err := w.client.Get(ctx, KeyWidgetLinks).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []WidgetLink{}, nil
		}
		return nil, fmt.Errorf("failed to get widget links: %w", err)
	}

	var entries []WidgetLink
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal widget links: %w", err)
	}
	return entries, nil
}

// save sorts, caps and writes the list back.
func (w *WidgetStore) save(ctx context.Context, entries []WidgetLink) error {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	if len(entries) > WidgetMaxLinks {
		entries = entries[:WidgetMaxLinks]
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal widget links: %w", err)
	}
	if err := w.client.Set(ctx, KeyWidgetLinks, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save widget links: %w", err)
	}
	return nil
}

func widgetEntry(link *domain.Link) WidgetLink {
	title := link.Title
	if title == "" {
		title = link.URL
	}
	return WidgetLink{
		ID:         link.ID,
		Title:      title,
		URL:        link.URL,
		IsFavorite: link.IsFavorite,
		CreatedAt:  link.CreatedAt,
	}
}
