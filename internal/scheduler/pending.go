package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/linkshelf/linkshelf/internal/domain"
	"github.com/linkshelf/linkshelf/internal/logger"
)

// PendingSource is the share-extension inbox the consumer drains.
type PendingSource interface {
	DrainPending(ctx context.Context) ([]string, error)
}

// Saver persists a captured URL as a link.
type Saver interface {
	Create(ctx context.Context, rawURL, title string) (*domain.Link, bool, error)
}

// PendingConsumer periodically drains the share inbox and turns the
// captured URLs into saved links. Duplicates collapse onto the
// existing link, same as a manual save.
type PendingConsumer struct {
	source        PendingSource
	links         Saver
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewPendingConsumer creates a new pending consumer
func NewPendingConsumer(
	source PendingSource,
	svc Saver,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *PendingConsumer {
	return &PendingConsumer{
		source:        source,
		links:         svc,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic drain process
func (pc *PendingConsumer) Start(ctx context.Context) error {
	// Drain immediately on start
	if err := pc.Drain(ctx); err != nil {
		return fmt.Errorf("initial drain failed: %w", err)
	}

	ticker := time.NewTicker(pc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := pc.Drain(ctx); err != nil {
					pc.logger.Error("failed to drain pending urls",
						logger.Error(err))
				}
			case <-pc.manualTrigger:
				pc.logger.Info("manual drain triggered")
				if err := pc.Drain(ctx); err != nil {
					pc.logger.Error("failed to drain pending urls",
						logger.Error(err))
				}
			case <-pc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the consumer
func (pc *PendingConsumer) Stop() {
	close(pc.stopCh)
}

// Drain takes every queued URL and saves it. A bad URL is logged and
// skipped; it must not block the rest of the batch.
func (pc *PendingConsumer) Drain(ctx context.Context) error {
	urls, err := pc.source.DrainPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to drain pending queue: %w", err)
	}
	if len(urls) == 0 {
		return nil
	}

	pc.logger.Info("draining pending urls", logger.Int("count", len(urls)))

	saved := 0
	duplicates := 0
	for _, rawURL := range urls {
		_, created, err := pc.links.Create(ctx, rawURL, "")
		if err != nil {
			pc.logger.Warn("failed to save pending url",
				logger.String("url", rawURL),
				logger.Error(err))
			continue
		}
		if created {
			saved++
		} else {
			duplicates++
		}
	}

	pc.logger.Info("pending urls drained",
		logger.Int("saved", saved),
		logger.Int("duplicates", duplicates))
	return nil
}
