package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/linkshelf/linkshelf/internal/domain"
	"github.com/linkshelf/linkshelf/internal/logger"
)

type fakePendingSource struct {
	mu   sync.Mutex
	urls []string
	err  error
}

func (f *fakePendingSource) DrainPending(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	urls := f.urls
	f.urls = nil
	return urls, nil
}

type fakeSaver struct {
	mu      sync.Mutex
	saved   []string
	seen    map[string]bool
	failURL string
}

func newFakeSaver() *fakeSaver {
	return &fakeSaver{seen: make(map[string]bool)}
}

func (f *fakeSaver) Create(ctx context.Context, rawURL, title string) (*domain.Link, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rawURL == f.failURL {
		return nil, false, errors.New("save failed")
	}
	created := !f.seen[rawURL]
	f.seen[rawURL] = true
	if created {
		f.saved = append(f.saved, rawURL)
	}
	return &domain.Link{ID: rawURL, URL: rawURL}, created, nil
}

func testLogger() logger.Logger {
	return logger.New("error", false)
}

func TestDrainSavesQueuedURLs(t *testing.T) {
	source := &fakePendingSource{urls: []string{
		"https://example.com/a",
		"https://example.com/b",
	}}
	saver := newFakeSaver()
	pc := NewPendingConsumer(source, saver, testLogger(), time.Hour, nil)

	if err := pc.Drain(context.Background()); err != nil {
		t.Fatalf("Drain() error = %v", err)
	}
	if len(saver.saved) != 2 {
		t.Errorf("saved %d urls, want 2", len(saver.saved))
	}
}

func TestDrainSkipsBadURLs(t *testing.T) {
	source := &fakePendingSource{urls: []string{
		"https://example.com/bad",
		"https://example.com/good",
	}}
	saver := newFakeSaver()
	saver.failURL = "https://example.com/bad"
	pc := NewPendingConsumer(source, saver, testLogger(), time.Hour, nil)

	if err := pc.Drain(context.Background()); err != nil {
		t.Fatalf("Drain() error = %v", err)
	}
	if len(saver.saved) != 1 || saver.saved[0] != "https://example.com/good" {
		t.Errorf("saved = %v, want only the good url", saver.saved)
	}
}

func TestDrainPropagatesSourceError(t *testing.T) {
	source := &fakePendingSource{err: errors.New("redis down")}
	pc := NewPendingConsumer(source, newFakeSaver(), testLogger(), time.Hour, nil)

	if err := pc.Drain(context.Background()); err == nil {
		t.Error("Drain() = nil error, want source error")
	}
}

func TestManualTriggerDrains(t *testing.T) {
	source := &fakePendingSource{}
	saver := newFakeSaver()
	trigger := make(chan struct{})
	pc := NewPendingConsumer(source, saver, testLogger(), time.Hour, trigger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := pc.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer pc.Stop()

	source.mu.Lock()
	source.urls = []string{"https://example.com/manual"}
	source.mu.Unlock()

	trigger <- struct{}{}

	deadline := time.After(2 * time.Second)
	for {
		saver.mu.Lock()
		n := len(saver.saved)
		saver.mu.Unlock()
		if n == 1 {
			return
		}
		select {
		case <-deadline:
			t.Fatal("manual trigger did not drain the queue")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
