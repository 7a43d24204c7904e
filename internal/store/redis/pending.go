package redis

import (
	"context"
	"fmt"
)

// PushPending appends a raw URL captured by the share surface to the
// pending inbox.
func (s *Store) PushPending(ctx context.Context, rawURL string) error {
	if err := s.client.RPush(ctx, KeyPendingQueue, rawURL).Err(); err != nil {
		return fmt.Errorf("failed to push pending url: %w", err)
	}
	return nil
}

// DrainPending atomically takes every queued URL and empties the inbox.
// Order of arrival is preserved.
func (s *Store) DrainPending(ctx context.Context) ([]string, error) {
	pipe := s.client.TxPipeline()
	urlsCmd := pipe.LRange(ctx, KeyPendingQueue, 0, -1)
	pipe.Del(ctx, KeyPendingQueue)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to drain pending queue: %w", err)
	}
	return urlsCmd.Val(), nil
}

// PendingCount reports how many captured URLs are waiting.
func (s *Store) PendingCount(ctx context.Context) (int64, error) {
	n, err := s.client.LLen(ctx, KeyPendingQueue).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count pending urls: %w", err)
	}
	return n, nil
}
