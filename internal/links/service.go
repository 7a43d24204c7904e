package links

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/linkshelf/linkshelf/internal/domain"
	"github.com/linkshelf/linkshelf/internal/enrich"
	"github.com/linkshelf/linkshelf/internal/index"
	"github.com/linkshelf/linkshelf/internal/logger"
	redisstore "github.com/linkshelf/linkshelf/internal/store/redis"
)

// ErrEmptyURL is returned when a save request carries no URL.
var ErrEmptyURL = errors.New("url must not be empty")

// Store is the persistence surface the service needs.
type Store interface {
	SaveLink(ctx context.Context, link *domain.Link) error
	GetLink(ctx context.Context, id string) (*domain.Link, error)
	GetAllLinks(ctx context.Context) ([]*domain.Link, error)
	DeleteLink(ctx context.Context, id string) error
	SetFavorite(ctx context.Context, id string, favorite bool) (*domain.Link, error)
	SetCategoryOverride(ctx context.Context, id string, category domain.Category) (*domain.Link, error)
	SetUserNote(ctx context.Context, id string, note string) (*domain.Link, error)
	SetReminder(ctx context.Context, id string, fireAt time.Time) (*domain.Link, error)
	ScheduleReminder(ctx context.Context, r redisstore.Reminder) error
	CancelReminder(ctx context.Context, linkID string) error
}

// WidgetSync keeps the widget projection in step with link mutations.
type WidgetSync interface {
	Upsert(ctx context.Context, link *domain.Link) error
	Remove(ctx context.Context, id string) error
	UpdateFavorite(ctx context.Context, id string, favorite bool) error
	Resync(ctx context.Context, links []*domain.Link) error
}

// Enqueuer hands a link to the background enrichment pipeline.
type Enqueuer interface {
	Submit(ctx context.Context, link *domain.Link)
	Cancel(linkID string)
}

// Service orchestrates link mutations across the store, the memory
// index, the widget projection and the enrichment pipeline.
type Service struct {
	store      Store
	index      *index.MemoryIndex
	widget     WidgetSync
	enricher   Enqueuer
	classifier *domain.Classifier
	groups     *domain.GroupClassifier
	logger     logger.Logger
	debounce   time.Duration

	mu        sync.Mutex
	debounces map[string]*enrich.Debouncer
}

// New creates a new link service. debounce is the quiet period for
// coalescing manual re-enrichment; non-positive falls back to the
// default.
func New(
	store Store,
	idx *index.MemoryIndex,
	widget WidgetSync,
	enricher Enqueuer,
	classifier *domain.Classifier,
	groups *domain.GroupClassifier,
	debounce time.Duration,
	log logger.Logger,
) *Service {
	return &Service{
		store:      store,
		index:      idx,
		widget:     widget,
		enricher:   enricher,
		classifier: classifier,
		groups:     groups,
		logger:     log,
		debounce:   debounce,
		debounces:  make(map[string]*enrich.Debouncer),
	}
}

// Create saves a new link. When the URL is already saved (after
// normalization) the existing link is returned and created is false;
// nothing is written and no enrichment runs.
func (s *Service) Create(ctx context.Context, rawURL, title string) (link *domain.Link, created bool, err error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, false, ErrEmptyURL
	}

	if existing := s.index.FindDuplicate(rawURL); existing != nil {
		s.logger.Debug("duplicate url, returning existing link",
			logger.String("link_id", existing.ID),
			logger.String("url", rawURL))
		return existing, false, nil
	}

	link = domain.NewLink(rawURL, title, s.classifier.Suggest(rawURL))
	if err := s.store.SaveLink(ctx, link); err != nil {
		return nil, false, fmt.Errorf("failed to save new link: %w", err)
	}
	s.index.AddLink(link)

	if err := s.widget.Upsert(ctx, link); err != nil {
		s.logger.Warn("failed to sync new link to widget",
			logger.String("link_id", link.ID),
			logger.Error(err))
	}

	s.logger.Info("link saved",
		logger.String("link_id", link.ID),
		logger.String("category", string(link.Category)))

	s.enricher.Submit(ctx, link)
	return link, true, nil
}

// Get retrieves a link by id, preferring the memory index.
func (s *Service) Get(ctx context.Context, id string) (*domain.Link, error) {
	if link, ok := s.index.GetLink(id); ok {
		return link, nil
	}
	return s.store.GetLink(ctx, id)
}

// List returns all links, most recent first.
func (s *Service) List() []*domain.Link {
	return s.index.GetAllLinks()
}

// ListGroup returns the links belonging to one category group,
// most recent first.
func (s *Service) ListGroup(group domain.CategoryGroup) []*domain.Link {
	all := s.index.GetAllLinks()
	matched := make([]*domain.Link, 0, len(all))
	for _, link := range all {
		if s.groups.Matches(group, link) {
			matched = append(matched, link)
		}
	}
	return matched
}

// Search ranks all links against a free-text query, best match first.
// Titles, host names and user notes are matched; favorites rank a
// little higher.
func (s *Service) Search(query string) []*domain.Link {
	matches := domain.RankLinks(query, s.index.GetAllLinks())
	results := make([]*domain.Link, 0, len(matches))
	for _, m := range matches {
		results = append(results, m.Link)
	}
	return results
}

// Delete removes a link everywhere: store, index, widget, and any
// in-flight enrichment.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.enricher.Cancel(id)
	s.dropDebouncer(id)

	if err := s.store.DeleteLink(ctx, id); err != nil {
		return err
	}
	s.index.DeleteLink(id)

	if err := s.widget.Remove(ctx, id); err != nil {
		s.logger.Warn("failed to remove link from widget",
			logger.String("link_id", id),
			logger.Error(err))
	}
	return nil
}

// SetFavorite toggles the favorite flag.
func (s *Service) SetFavorite(ctx context.Context, id string, favorite bool) (*domain.Link, error) {
	link, err := s.store.SetFavorite(ctx, id, favorite)
	if err != nil {
		return nil, err
	}
	s.index.AddLink(link)

	if err := s.widget.UpdateFavorite(ctx, id, favorite); err != nil {
		s.logger.Warn("failed to sync favorite to widget",
			logger.String("link_id", id),
			logger.Error(err))
	}
	return link, nil
}

// SetCategoryOverride sets or clears (empty category) the user's
// category override. The automatic category stays untouched underneath.
func (s *Service) SetCategoryOverride(ctx context.Context, id string, category domain.Category) (*domain.Link, error) {
	link, err := s.store.SetCategoryOverride(ctx, id, category)
	if err != nil {
		return nil, err
	}
	s.index.AddLink(link)
	return link, nil
}

// SetNote sets or clears (empty string) the user's free-form note.
func (s *Service) SetNote(ctx context.Context, id string, note string) (*domain.Link, error) {
	link, err := s.store.SetUserNote(ctx, id, strings.TrimSpace(note))
	if err != nil {
		return nil, err
	}
	s.index.AddLink(link)
	return link, nil
}

// SetReminder sets or clears (zero time) the link's reminder and keeps
// the reminder index in step.
func (s *Service) SetReminder(ctx context.Context, id string, fireAt time.Time) (*domain.Link, error) {
	link, err := s.store.SetReminder(ctx, id, fireAt)
	if err != nil {
		return nil, err
	}
	s.index.AddLink(link)

	if fireAt.IsZero() {
		if err := s.store.CancelReminder(ctx, id); err != nil {
			return nil, err
		}
		return link, nil
	}

	err = s.store.ScheduleReminder(ctx, redisstore.Reminder{
		LinkID: link.ID,
		Title:  link.Title,
		URL:    link.URL,
		FireAt: fireAt,
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

// Enrich re-submits a link to the enrichment pipeline. Rapid repeated
// requests for the same link coalesce into one pass after a short quiet
// period, so hammering refresh does not restart the fetches each time.
func (s *Service) Enrich(ctx context.Context, id string) (*domain.Link, error) {
	link, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.debouncerFor(id).Trigger(func(ctx context.Context) {
		s.enricher.Submit(ctx, link)
	})
	return link, nil
}

func (s *Service) debouncerFor(id string) *enrich.Debouncer {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.debounces[id]
	if !ok {
		d = enrich.NewDebouncer(s.debounce)
		s.debounces[id] = d
	}
	return d
}

func (s *Service) dropDebouncer(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.debounces[id]; ok {
		d.Stop()
		delete(s.debounces, id)
	}
}

// Resync rebuilds the memory index and the widget projection from the
// store. Used at startup and on explicit request.
func (s *Service) Resync(ctx context.Context) (int, error) {
	all, err := s.store.GetAllLinks(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load links for resync: %w", err)
	}

	s.index.UpdateLinks(all)
	if err := s.widget.Resync(ctx, all); err != nil {
		s.logger.Warn("failed to resync widget", logger.Error(err))
	}

	s.logger.Info("resynced links", logger.Int("count", len(all)))
	return len(all), nil
}
