package index

import (
	"sort"
	"sync"
	"time"

	"github.com/linkshelf/linkshelf/internal/domain"
)

// MemoryIndex provides in-memory lookup over the full link set.
// It backs duplicate detection and read paths without a Redis
// round-trip per request.
type MemoryIndex struct {
	mu         sync.RWMutex
	links      map[string]*domain.Link // ID -> Link
	lastReload time.Time               // Timestamp of last full reload
}

// NewMemoryIndex creates a new memory index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		links: make(map[string]*domain.Link),
	}
}

// UpdateLinks replaces all links in the index
func (idx *MemoryIndex) UpdateLinks(links []*domain.Link) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.links = make(map[string]*domain.Link, len(links))
	for _, link := range links {
		idx.links[link.ID] = link
	}
	idx.lastReload = time.Now()
}

// GetLink retrieves a link by ID
func (idx *MemoryIndex) GetLink(id string) (*domain.Link, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	link, ok := idx.links[id]
	return link, ok
}

// GetAllLinks returns all links, most recent first
func (idx *MemoryIndex) GetAllLinks() []*domain.Link {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	links := make([]*domain.Link, 0, len(idx.links))
	for _, link := range idx.links {
		links = append(links, link)
	}
	sort.SliceStable(links, func(i, j int) bool {
		return links[i].CreatedAt.After(links[j].CreatedAt)
	})
	return links
}

// AddLink adds or updates a single link
func (idx *MemoryIndex) AddLink(link *domain.Link) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.links[link.ID] = link
}

// DeleteLink removes a link from the index
func (idx *MemoryIndex) DeleteLink(id string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	delete(idx.links, id)
}

// Count returns the number of links in the index
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.links)
}

// FindDuplicate returns the stored link matching the candidate URL
// after normalization, or nil when the URL is new.
func (idx *MemoryIndex) FindDuplicate(rawURL string) *domain.Link {
	return domain.FindDuplicate(rawURL, idx.GetAllLinks())
}

// GetLastReload returns the timestamp of the last full reload
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
