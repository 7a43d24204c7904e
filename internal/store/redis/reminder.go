package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Reminder is the payload stored alongside the fire-time index so the
// scheduler can emit events without re-reading the link record.
type Reminder struct {
	LinkID string    `json:"linkId"`
	Title  string    `json:"title"`
	URL    string    `json:"url"`
	FireAt time.Time `json:"fireAt"`
}

// ScheduleReminder indexes a reminder by fire time and stores its payload.
// Scheduling again for the same link replaces the previous reminder.
func (s *Store) ScheduleReminder(ctx context.Context, r Reminder) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal reminder: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.ZAdd(ctx, KeyRemindersByFire, redis.Z{
		Score:  float64(r.FireAt.Unix()),
		Member: r.LinkID,
	})
	pipe.Set(ctx, ReminderKey(r.LinkID), data, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to schedule reminder: %w", err)
	}
	return nil
}

// CancelReminder removes a pending reminder. Cancelling an absent
// reminder is a no-op.
func (s *Store) CancelReminder(ctx context.Context, linkID string) error {
	pipe := s.client.Pipeline()
	pipe.ZRem(ctx, KeyRemindersByFire, linkID)
	pipe.Del(ctx, ReminderKey(linkID))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cancel reminder: %w", err)
	}
	return nil
}

// DueReminders pops every reminder whose fire time has passed and
// returns their payloads, oldest first.
func (s *Store) DueReminders(ctx context.Context, now time.Time) ([]Reminder, error) {
	ids, err := s.client.ZRangeByScore(ctx, KeyRemindersByFire, &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%d", now.Unix()),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to range due reminders: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	due := make([]Reminder, 0, len(ids))
	for _, id := range ids {
		data, err := s.client.Get(ctx, ReminderKey(id)).Bytes()
		if err != nil {
			continue
		}
		var r Reminder
		if err := json.Unmarshal(data, &r); err != nil {
			continue
		}
		due = append(due, r)
	}

	pipe := s.client.Pipeline()
	for _, id := range ids {
		pipe.ZRem(ctx, KeyRemindersByFire, id)
		pipe.Del(ctx, ReminderKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return due, fmt.Errorf("failed to clear fired reminders: %w", err)
	}
	return due, nil
}
