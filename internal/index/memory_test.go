package index

import (
	"sync"
	"testing"
	"time"

	"github.com/linkshelf/linkshelf/internal/domain"
)

func TestNewMemoryIndex(t *testing.T) {
	index := NewMemoryIndex()
	if index == nil {
		t.Fatal("NewMemoryIndex() returned nil")
	}
	links := index.GetAllLinks()
	if len(links) != 0 {
		t.Errorf("NewMemoryIndex() should start with empty links, got %v", len(links))
	}
}

func TestUpdateLinks(t *testing.T) {
	index := NewMemoryIndex()

	links := []*domain.Link{
		{ID: "a", URL: "https://example.com/a", Title: "A"},
		{ID: "b", URL: "https://example.com/b", Title: "B"},
	}

	index.UpdateLinks(links)

	retrieved := index.GetAllLinks()
	if len(retrieved) != 2 {
		t.Errorf("UpdateLinks() stored %v links, want 2", len(retrieved))
	}
}

func TestUpdateLinksOverwrites(t *testing.T) {
	index := NewMemoryIndex()

	index.UpdateLinks([]*domain.Link{
		{ID: "a", URL: "https://example.com/a"},
	})
	index.UpdateLinks([]*domain.Link{
		{ID: "b", URL: "https://example.com/b"},
		{ID: "c", URL: "https://example.com/c"},
	})

	retrieved := index.GetAllLinks()
	if len(retrieved) != 2 {
		t.Errorf("UpdateLinks() should overwrite, got %v links want 2", len(retrieved))
	}
	if _, ok := index.GetLink("a"); ok {
		t.Error("UpdateLinks() kept a link from the previous set")
	}
}

func TestGetAllLinksOrdered(t *testing.T) {
	index := NewMemoryIndex()

	now := time.Now()
	index.UpdateLinks([]*domain.Link{
		{ID: "old", URL: "https://example.com/old", CreatedAt: now.Add(-time.Hour)},
		{ID: "new", URL: "https://example.com/new", CreatedAt: now},
		{ID: "mid", URL: "https://example.com/mid", CreatedAt: now.Add(-time.Minute)},
	})

	retrieved := index.GetAllLinks()
	want := []string{"new", "mid", "old"}
	for i, id := range want {
		if retrieved[i].ID != id {
			t.Errorf("GetAllLinks()[%d].ID = %q, want %q (newest first)", i, retrieved[i].ID, id)
		}
	}
}

func TestAddAndDeleteLink(t *testing.T) {
	index := NewMemoryIndex()

	index.AddLink(&domain.Link{ID: "a", URL: "https://example.com/a"})
	if index.Count() != 1 {
		t.Fatalf("Count() = %v, want 1", index.Count())
	}

	index.DeleteLink("a")
	if index.Count() != 0 {
		t.Errorf("Count() = %v after delete, want 0", index.Count())
	}

	// Deleting again should not panic
	index.DeleteLink("a")
}

func TestFindDuplicate(t *testing.T) {
	index := NewMemoryIndex()
	index.UpdateLinks([]*domain.Link{
		{ID: "a", URL: "https://example.com/article"},
	})

	if dup := index.FindDuplicate("HTTPS://EXAMPLE.COM/article#section"); dup == nil || dup.ID != "a" {
		t.Errorf("FindDuplicate() = %v, want link a", dup)
	}
	if dup := index.FindDuplicate("https://example.com/other"); dup != nil {
		t.Errorf("FindDuplicate() = %v for new URL, want nil", dup)
	}
}

func TestConcurrentAccess(t *testing.T) {
	index := NewMemoryIndex()

	index.UpdateLinks([]*domain.Link{
		{ID: "a", URL: "https://example.com/a"},
		{ID: "b", URL: "https://example.com/b"},
	})

	var wg sync.WaitGroup

	// Concurrent reads
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = index.GetAllLinks()
		}()
	}

	// Concurrent writes
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			index.AddLink(&domain.Link{ID: "a", URL: "https://example.com/a"})
		}()
	}

	wg.Wait()

	if index.Count() != 2 {
		t.Errorf("Count() = %v after concurrent upserts of same id, want 2", index.Count())
	}
}
