package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/linkshelf/linkshelf/internal/domain"
)

// ErrLinkNotFound is returned when a link id has no record.
var ErrLinkNotFound = errors.New("link not found")

// Store handles Redis operations for link records and their indexes.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// SaveLink stores a link record and keeps the indexes in step.
// Links are user data: no TTL.
func (s *Store) SaveLink(ctx context.Context, link *domain.Link) error {
	data, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("failed to marshal link: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, LinkKey(link.ID), data, 0)
	pipe.ZAdd(ctx, KeyLinksByCreated, redis.Z{
		Score:  float64(link.CreatedAt.UnixMilli()),
		Member: link.ID,
	})
	if link.IsFavorite {
		pipe.SAdd(ctx, KeyFavoriteLinks, link.ID)
	} else {
		pipe.SRem(ctx, KeyFavoriteLinks, link.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save link: %w", err)
	}
	return nil
}

// GetLink retrieves a link by id.
func (s *Store) GetLink(ctx context.Context, id string) (*domain.Link, error) {
	data, err := s.client.Get(ctx, LinkKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrLinkNotFound, id)
		}
		return nil, fmt.Errorf("failed to get link: %w", err)
	}

	var link domain.Link
	if err := json.Unmarshal(data, &link); err != nil {
		return nil, fmt.Errorf("failed to unmarshal link: %w", err)
	}
	return &link, nil
}

// GetAllLinks retrieves all links, most recent first.
func (s *Store) GetAllLinks(ctx context.Context) ([]*domain.Link, error) {
	ids, err := s.client.ZRevRange(ctx, KeyLinksByCreated, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get link ids: %w", err)
	}
	return s.getMany(ctx, ids)
}

// GetFavoriteLinks retrieves favorite links, most recent first.
func (s *Store) GetFavoriteLinks(ctx context.Context) ([]*domain.Link, error) {
	all, err := s.GetAllLinks(ctx)
	if err != nil {
		return nil, err
	}

	favorites := make([]*domain.Link, 0, len(all))
	for _, link := range all {
		if link.IsFavorite {
			favorites = append(favorites, link)
		}
	}
	return favorites, nil
}

// DeleteLink removes a link and its index entries. Hard delete; the
// reminder payload for the link goes with it.
func (s *Store) DeleteLink(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, LinkKey(id))
	pipe.ZRem(ctx, KeyLinksByCreated, id)
	pipe.SRem(ctx, KeyFavoriteLinks, id)
	pipe.ZRem(ctx, KeyRemindersByFire, id)
	pipe.Del(ctx, ReminderKey(id))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}
	return nil
}

// SetFavorite toggles the favorite flag.
func (s *Store) SetFavorite(ctx context.Context, id string, favorite bool) (*domain.Link, error) {
	link, err := s.GetLink(ctx, id)
	if err != nil {
		return nil, err
	}

	link.IsFavorite = favorite
	link.UpdatedAt = time.Now()
	if err := s.SaveLink(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// SetCategoryOverride sets or clears the user's category override.
func (s *Store) SetCategoryOverride(ctx context.Context, id string, category domain.Category) (*domain.Link, error) {
	link, err := s.GetLink(ctx, id)
	if err != nil {
		return nil, err
	}

	link.CategoryOverride = category
	link.UpdatedAt = time.Now()
	if err := s.SaveLink(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// SetUserNote sets or clears (empty string) the user's note.
func (s *Store) SetUserNote(ctx context.Context, id string, note string) (*domain.Link, error) {
	link, err := s.GetLink(ctx, id)
	if err != nil {
		return nil, err
	}

	link.UserNote = note
	link.UpdatedAt = time.Now()
	if err := s.SaveLink(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// SetReminder sets or clears (zero time) the link's reminder timestamp.
func (s *Store) SetReminder(ctx context.Context, id string, fireAt time.Time) (*domain.Link, error) {
	link, err := s.GetLink(ctx, id)
	if err != nil {
		return nil, err
	}

	link.ReminderAt = fireAt
	link.UpdatedAt = time.Now()
	if err := s.SaveLink(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// SaveLinksMany stores multiple links in one pipeline (bulk operation).
func (s *Store) SaveLinksMany(ctx context.Context, links []*domain.Link) error {
	pipe := s.client.Pipeline()

	for _, link := range links {
		data, err := json.Marshal(link)
		if err != nil {
			return fmt.Errorf("failed to marshal link %s: %w", link.ID, err)
		}
		pipe.Set(ctx, LinkKey(link.ID), data, 0)
		pipe.ZAdd(ctx, KeyLinksByCreated, redis.Z{
			Score:  float64(link.CreatedAt.UnixMilli()),
			Member: link.ID,
		})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save links: %w", err)
	}
	return nil
}

// getMany fetches records for ids, skipping ones that disappeared
// between the index read and the record read.
func (s *Store) getMany(ctx context.Context, ids []string) ([]*domain.Link, error) {
	if len(ids) == 0 {
		return []*domain.Link{}, nil
	}

	links := make([]*domain.Link, 0, len(ids))
	for _, id := range ids {
		link, err := s.GetLink(ctx, id)
		if err != nil {
			continue
		}
		links = append(links, link)
	}
	return links, nil
}
