package enrich

import (
	"context"
	"fmt"
	"sync"

	"github.com/linkshelf/linkshelf/internal/domain"
	"github.com/linkshelf/linkshelf/internal/logger"
	"github.com/linkshelf/linkshelf/internal/metadata"
)

// Fetcher is the slice of the metadata service the enricher needs.
type Fetcher interface {
	FetchMetadata(ctx context.Context, rawURL string) metadata.Metadata
	FetchDurationText(ctx context.Context, rawURL string) string
	FetchReadingTime(ctx context.Context, rawURL string) int
}

// Store persists enriched links. Each stage re-reads the current
// record before writing so a pass never saves back stale user state.
type Store interface {
	GetLink(ctx context.Context, id string) (*domain.Link, error)
	SaveLink(ctx context.Context, link *domain.Link) error
}

// SyncPort receives every successful field fill so cross-surface views
// (widget, share extension) stay current.
type SyncPort interface {
	Upsert(ctx context.Context, link *domain.Link) error
}

// Publisher receives the merged record after each persisted fill.
// Readers keep whatever snapshot they already hold; the index swaps to
// the fresh one.
type Publisher interface {
	AddLink(link *domain.Link)
}

// Enricher runs idempotent enrichment passes against link records.
//
// A pass is best-effort: each sub-fetch failure leaves its field absent
// and the pass continues. The stored record is updated incrementally as
// sub-fetches complete, so a slow duration fetch does not delay a title
// fix. At most one async pass runs per link id; submitting a new one
// cancels the in-flight pass for that id.
//
// A pass never mutates the record it was handed: published pointers are
// read-only snapshots, and every write goes re-read -> merge -> save ->
// publish a fresh pointer.
type Enricher struct {
	fetcher   Fetcher
	store     Store
	sync      SyncPort
	publisher Publisher
	logger    logger.Logger

	mu       sync.Mutex
	inflight map[string]*pass
	wg       sync.WaitGroup
}

// pass is the cancellation token for one in-flight enrichment.
type pass struct {
	cancel context.CancelFunc
}

// New creates an enricher. sync and publisher may be nil when no widget
// surface or memory index exists.
func New(fetcher Fetcher, store Store, syncPort SyncPort, publisher Publisher, log logger.Logger) *Enricher {
	return &Enricher{
		fetcher:   fetcher,
		store:     store,
		sync:      syncPort,
		publisher: publisher,
		logger:    log,
		inflight:  make(map[string]*pass),
	}
}

// Enrich runs one pass synchronously and returns the computed values.
// The submitted link is treated as a read-only snapshot; only its
// immutable fields (id, url) are consulted. The only returned errors
// are persistence failures; fetch failures are absorbed by design.
func (e *Enricher) Enrich(ctx context.Context, link *domain.Link) (Enrichment, error) {
	var result Enrichment

	// Title and category are the cheap pass and always run: the title
	// only overwrites while still a placeholder, the category is
	// refreshed every time.
	md := e.fetcher.FetchMetadata(ctx, link.URL)
	result.Title = md.Title
	result.Category = md.Category
	current, err := e.apply(ctx, link.ID, Enrichment{Title: md.Title, Category: md.Category})
	if err != nil {
		return result, err
	}

	if domain.IsVideoHost(link.URL) {
		if current.ThumbnailURL == "" {
			result.ThumbnailURL = domain.ThumbnailURL(link.URL)
			if current, err = e.apply(ctx, link.ID, Enrichment{ThumbnailURL: result.ThumbnailURL}); err != nil {
				return result, err
			}
		}
		if current.DurationText == "" && current.ReadingTimeMinutes == 0 {
			result.DurationText = e.fetcher.FetchDurationText(ctx, link.URL)
			if _, err = e.apply(ctx, link.ID, Enrichment{DurationText: result.DurationText}); err != nil {
				return result, err
			}
		}
	} else if current.ReadingTimeMinutes == 0 && current.DurationText == "" {
		result.ReadingTimeMinutes = e.fetcher.FetchReadingTime(ctx, link.URL)
		if _, err = e.apply(ctx, link.ID, Enrichment{ReadingTimeMinutes: result.ReadingTimeMinutes}); err != nil {
			return result, err
		}
	}

	return result, nil
}

// apply merges one stage's values into the current stored record and
// persists the result. The record is re-read first so a user mutation
// that landed mid-pass (favorite toggle, note, override) is kept; only
// the enrichment fields move. The merged record is a fresh pointer,
// published to the index and the widget, so snapshots already handed to
// readers are never written to.
func (e *Enricher) apply(ctx context.Context, id string, stage Enrichment) (*domain.Link, error) {
	current, err := e.store.GetLink(ctx, id)
	if err != nil {
		// Link deleted mid-pass, or the store is down. Either way the
		// pass must not write.
		return nil, fmt.Errorf("failed to load link for enrichment: %w", err)
	}

	merged := *current
	if !Merge(&merged, stage) {
		return current, nil
	}

	if err := e.store.SaveLink(ctx, &merged); err != nil {
		return nil, fmt.Errorf("failed to save enriched link: %w", err)
	}

	if e.publisher != nil {
		e.publisher.AddLink(&merged)
	}
	if e.sync != nil {
		if err := e.sync.Upsert(ctx, &merged); err != nil {
			// Widget sync is best effort; the store stays authoritative.
			e.logger.Warn("widget sync failed",
				logger.String("link_id", merged.ID),
				logger.Error(err))
		}
	}
	return &merged, nil
}

// Submit schedules an asynchronous pass for a link, cancelling any pass
// already in flight for the same id.
func (e *Enricher) Submit(ctx context.Context, link *domain.Link) {
	// The pass outlives the submitting request; only a newer Submit,
	// Cancel, or shutdown ends it.
	passCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	p := &pass{cancel: cancel}

	e.mu.Lock()
	if prev, ok := e.inflight[link.ID]; ok {
		prev.cancel()
	}
	e.inflight[link.ID] = p
	e.mu.Unlock()

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		defer func() {
			cancel()
			e.mu.Lock()
			// Only unregister if a newer pass has not replaced this one.
			if current, ok := e.inflight[link.ID]; ok && current == p {
				delete(e.inflight, link.ID)
			}
			e.mu.Unlock()
		}()

		if _, err := e.Enrich(passCtx, link); err != nil {
			e.logger.Warn("enrichment pass failed",
				logger.String("link_id", link.ID),
				logger.Error(err))
		}
	}()
}

// Cancel aborts any in-flight pass for a link id (after a delete).
func (e *Enricher) Cancel(linkID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if p, ok := e.inflight[linkID]; ok {
		p.cancel()
		delete(e.inflight, linkID)
	}
}

// Wait blocks until all submitted passes have finished. Used on shutdown.
func (e *Enricher) Wait() {
	e.wg.Wait()
}
