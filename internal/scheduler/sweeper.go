package scheduler

import (
	"context"
	"time"

	"github.com/linkshelf/linkshelf/internal/domain"
	"github.com/linkshelf/linkshelf/internal/enrich"
	"github.com/linkshelf/linkshelf/internal/index"
	"github.com/linkshelf/linkshelf/internal/logger"
)

// Enqueuer hands a link to the background enrichment pipeline.
type Enqueuer interface {
	Submit(ctx context.Context, link *domain.Link)
}

// EnrichmentSweeper periodically re-submits links whose metadata is
// still incomplete, picking up saves made while the network was down
// or a source was failing.
type EnrichmentSweeper struct {
	index    *index.MemoryIndex
	enricher Enqueuer
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewEnrichmentSweeper creates a new enrichment sweeper
func NewEnrichmentSweeper(
	idx *index.MemoryIndex,
	enricher Enqueuer,
	log logger.Logger,
	interval time.Duration,
) *EnrichmentSweeper {
	return &EnrichmentSweeper{
		index:    idx,
		enricher: enricher,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic sweep process
func (es *EnrichmentSweeper) Start(ctx context.Context) error {
	ticker := time.NewTicker(es.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				es.Sweep(ctx)
			case <-es.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the sweeper
func (es *EnrichmentSweeper) Stop() {
	close(es.stopCh)
}

// Sweep re-submits every incomplete link.
func (es *EnrichmentSweeper) Sweep(ctx context.Context) {
	resubmitted := 0
	for _, link := range es.index.GetAllLinks() {
		if !enrich.NeedsEnrichment(link) {
			continue
		}
		es.enricher.Submit(ctx, link)
		resubmitted++
	}

	if resubmitted > 0 {
		es.logger.Info("resubmitted incomplete links for enrichment",
			logger.Int("count", resubmitted))
	} else {
		es.logger.Debug("no incomplete links to sweep")
	}
}
