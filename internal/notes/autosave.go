package notes

import (
	"context"
	"sync"
	"time"

	"github.com/kittclouds/gonote/internal/store"
)

// DefaultAutosaveDelay matches the editor's typing debounce.
const DefaultAutosaveDelay = 2 * time.Second

// AutoSaver debounces note edits. Each Queue call merges the patch with
// any pending patch for that note and restarts the note's timer, so a
// burst of keystrokes produces one UpdateNote once the typist pauses.
type AutoSaver struct {
	store *Store
	delay time.Duration

	mu      sync.Mutex
	pending map[string]*pendingSave
	stopped bool
}

type pendingSave struct {
	patch store.NotePatch
	timer *time.Timer
}

// NewAutoSaver creates an AutoSaver flushing into the given store.
// A non-positive delay falls back to DefaultAutosaveDelay.
func NewAutoSaver(s *Store, delay time.Duration) *AutoSaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	return &AutoSaver{
		store:   s,
		delay:   delay,
		pending: make(map[string]*pendingSave),
	}
}

// Queue schedules the patch for the note. Later fields win when both
// the pending and the new patch set the same field.
func (a *AutoSaver) Queue(id string, patch store.NotePatch) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}

	if p, ok := a.pending[id]; ok {
		p.timer.Stop()
		mergePatch(&p.patch, patch)
		p.timer = time.AfterFunc(a.delay, func() { a.fire(id) })
		return
	}

	a.pending[id] = &pendingSave{
		patch: patch,
		timer: time.AfterFunc(a.delay, func() { a.fire(id) }),
	}
}

// Flush saves all pending patches immediately.
func (a *AutoSaver) Flush(ctx context.Context) {
	a.mu.Lock()
	batch := make(map[string]store.NotePatch, len(a.pending))
	for id, p := range a.pending {
		p.timer.Stop()
		batch[id] = p.patch
	}
	a.pending = make(map[string]*pendingSave)
	a.mu.Unlock()

	for id, patch := range batch {
		a.store.UpdateNote(ctx, id, patch)
	}
}

// Stop flushes and refuses further queueing.
func (a *AutoSaver) Stop(ctx context.Context) {
	a.mu.Lock()
	a.stopped = true
	a.mu.Unlock()
	a.Flush(ctx)
}

func (a *AutoSaver) fire(id string) {
	a.mu.Lock()
	p, ok := a.pending[id]
	if ok {
		delete(a.pending, id)
	}
	a.mu.Unlock()
	if !ok {
		return
	}
	a.store.UpdateNote(context.Background(), id, p.patch)
}

// mergePatch overlays src onto dst field by field.
func mergePatch(dst *store.NotePatch, src store.NotePatch) {
	if src.Title != nil {
		dst.Title = src.Title
	}
	if src.Content != nil {
		dst.Content = src.Content
	}
	if src.ClearCategory {
		dst.ClearCategory = true
		dst.CategoryID = nil
	} else if src.CategoryID != nil {
		dst.CategoryID = src.CategoryID
		dst.ClearCategory = false
	}
	if src.Tags != nil {
		dst.Tags = src.Tags
	}
	if src.Favorite != nil {
		dst.Favorite = src.Favorite
	}
	if src.ClearDeleted {
		dst.ClearDeleted = true
		dst.DeletedAt = nil
	} else if src.DeletedAt != nil {
		dst.DeletedAt = src.DeletedAt
		dst.ClearDeleted = false
	}
}
