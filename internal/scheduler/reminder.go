package scheduler

import (
	"context"
	"time"

	"github.com/linkshelf/linkshelf/internal/logger"
	redisstore "github.com/linkshelf/linkshelf/internal/store/redis"
)

// ReminderSource pops reminders whose fire time has passed.
type ReminderSource interface {
	DueReminders(ctx context.Context, now time.Time) ([]redisstore.Reminder, error)
}

// ReminderEvent is emitted once per fired reminder.
type ReminderEvent struct {
	LinkID string
	Title  string
	URL    string
	FireAt time.Time
}

// ReminderScheduler ticks the reminder index and emits an event per
// due reminder. Delivery (notification, webhook) is the consumer's
// concern; a full event channel drops the oldest pending event rather
// than stalling the tick loop.
type ReminderScheduler struct {
	source ReminderSource
	logger logger.Logger
	tick   time.Duration
	stopCh chan struct{}
	events chan ReminderEvent
}

// NewReminderScheduler creates a new reminder scheduler
func NewReminderScheduler(
	source ReminderSource,
	log logger.Logger,
	tick time.Duration,
) *ReminderScheduler {
	return &ReminderScheduler{
		source: source,
		logger: log,
		tick:   tick,
		stopCh: make(chan struct{}),
		events: make(chan ReminderEvent, 64),
	}
}

// Events returns the channel fired reminders are delivered on.
func (rs *ReminderScheduler) Events() <-chan ReminderEvent {
	return rs.events
}

// Start begins the periodic due check
func (rs *ReminderScheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(rs.tick)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rs.Check(ctx, time.Now())
			case <-rs.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the scheduler
func (rs *ReminderScheduler) Stop() {
	close(rs.stopCh)
}

// Check pops due reminders and emits their events.
func (rs *ReminderScheduler) Check(ctx context.Context, now time.Time) {
	due, err := rs.source.DueReminders(ctx, now)
	if err != nil {
		rs.logger.Error("failed to check due reminders", logger.Error(err))
		return
	}

	for _, r := range due {
		event := ReminderEvent{
			LinkID: r.LinkID,
			Title:  r.Title,
			URL:    r.URL,
			FireAt: r.FireAt,
		}

		select {
		case rs.events <- event:
		default:
			// Channel full: drop the oldest so the newest still lands.
			select {
			case <-rs.events:
			default:
			}
			select {
			case rs.events <- event:
			default:
			}
		}

		rs.logger.Info("reminder fired",
			logger.String("link_id", r.LinkID),
			logger.Time("fire_at", r.FireAt))
	}
}
