// Package notes holds the client-side note state. It mirrors a remote
// DataSource: reads come from the in-memory mirror, mutations go to the
// source and update the mirror optimistically or on confirmation
// depending on the operation. Sync failures are recorded as the last
// error, they are never returned to the caller of a mutation.
package notes

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/kittclouds/gonote/internal/store"
)

// Store is the client state for one owner's notes and categories.
type Store struct {
	mu     sync.RWMutex
	source store.DataSource
	owner  string
	logger *slog.Logger
	bus    eventBus

	notes      []*store.Note
	categories []*store.Category

	selectedID string
	filter     Filter
	query      string
	match      *matcher
	loading    bool
	lastErr    error
}

// NewStore creates an empty store backed by the given source. Call
// LoadNotes and LoadCategories to populate it.
func NewStore(source store.DataSource, ownerID string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		source: source,
		owner:  ownerID,
		logger: logger,
		filter: FilterAll,
	}
}

// ============================================================================
// LOADING
// ============================================================================

// LoadNotes replaces the note mirror with the source's current state.
func (s *Store) LoadNotes(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	notes, err := s.source.ListNotes(ctx, s.owner)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.lastErr = err
		s.mu.Unlock()
		s.logger.Error("failed to load notes", "error", err)
		s.bus.emit(EventSyncFailed, "")
		return
	}
	s.notes = notes
	s.mu.Unlock()

	s.bus.emit(EventNotesLoaded, "")
}

// LoadCategories replaces the category mirror with the source's current
// state.
func (s *Store) LoadCategories(ctx context.Context) {
	cats, err := s.source.ListCategories(ctx, s.owner)

	s.mu.Lock()
	if err != nil {
		s.lastErr = err
		s.mu.Unlock()
		s.logger.Error("failed to load categories", "error", err)
		s.bus.emit(EventSyncFailed, "")
		return
	}
	s.categories = cats
	s.mu.Unlock()

	s.bus.emit(EventCategoriesLoaded, "")
}

// ============================================================================
// NOTE MUTATIONS
// ============================================================================

// CreateNote inserts a new untitled note. The mirror is only updated
// once the source confirms, so a failed create leaves no trace. Returns
// the created note, or nil on failure.
func (s *Store) CreateNote(ctx context.Context) *store.Note {
	note, err := s.source.InsertNote(ctx, s.owner, store.NoteDraft{Title: "Untitled"})
	if err != nil {
		s.recordErr("create note", err)
		return nil
	}

	s.mu.Lock()
	s.notes = append([]*store.Note{note}, s.notes...)
	s.selectedID = note.ID
	s.mu.Unlock()

	s.bus.emit(EventNoteCreated, note.ID)
	return note.Clone()
}

// UpdateNote applies the patch to the mirror immediately and then syncs
// it to the source. A sync failure keeps the optimistic state.
func (s *Store) UpdateNote(ctx context.Context, id string, patch store.NotePatch) {
	patch.UpdatedAt = time.Now().UnixMilli()

	s.mu.Lock()
	for _, n := range s.notes {
		if n.ID == id {
			patch.Apply(n)
			break
		}
	}
	s.mu.Unlock()

	if err := s.source.UpdateNote(ctx, id, patch); err != nil {
		s.recordErr("update note", err)
		return
	}
	s.bus.emit(EventNoteUpdated, id)
}

// DeleteNote moves the note to the trash. The timestamp is the deletion
// marker only, the note's updated time is left alone so restoring does
// not reorder it.
func (s *Store) DeleteNote(ctx context.Context, id string) {
	now := time.Now().UnixMilli()
	patch := store.NotePatch{DeletedAt: &now}

	s.mu.Lock()
	for _, n := range s.notes {
		if n.ID == id {
			patch.Apply(n)
			break
		}
	}
	if s.selectedID == id {
		s.selectedID = ""
	}
	s.mu.Unlock()

	if err := s.source.UpdateNote(ctx, id, patch); err != nil {
		s.recordErr("delete note", err)
		return
	}
	s.bus.emit(EventNoteDeleted, id)
}

// RestoreNote pulls the note back out of the trash. Unlike trashing,
// restoring counts as a modification.
func (s *Store) RestoreNote(ctx context.Context, id string) {
	patch := store.NotePatch{ClearDeleted: true, UpdatedAt: time.Now().UnixMilli()}

	s.mu.Lock()
	for _, n := range s.notes {
		if n.ID == id {
			patch.Apply(n)
			break
		}
	}
	s.mu.Unlock()

	if err := s.source.UpdateNote(ctx, id, patch); err != nil {
		s.recordErr("restore note", err)
		return
	}
	s.bus.emit(EventNoteRestored, id)
}

// DuplicateNote copies an existing note under a " (Copy)" title. Like
// CreateNote this waits for the source before touching the mirror.
// Returns the new note, or nil if the original is missing or the insert
// failed.
func (s *Store) DuplicateNote(ctx context.Context, id string) *store.Note {
	s.mu.RLock()
	var original *store.Note
	for _, n := range s.notes {
		if n.ID == id {
			original = n.Clone()
			break
		}
	}
	s.mu.RUnlock()

	if original == nil {
		s.recordErr("duplicate note", fmt.Errorf("note %s not found", id))
		return nil
	}

	draft := store.NoteDraft{
		Title:      original.Title + " (Copy)",
		Content:    original.Content,
		CategoryID: original.CategoryID,
		Tags:       append([]string(nil), original.Tags...),
	}

	note, err := s.source.InsertNote(ctx, s.owner, draft)
	if err != nil {
		s.recordErr("duplicate note", err)
		return nil
	}

	s.mu.Lock()
	s.notes = append([]*store.Note{note}, s.notes...)
	s.mu.Unlock()

	s.bus.emit(EventNoteCreated, note.ID)
	return note.Clone()
}

// ToggleFavorite flips the note's favorite flag optimistically.
func (s *Store) ToggleFavorite(ctx context.Context, id string) {
	var patch store.NotePatch
	found := false

	s.mu.Lock()
	for _, n := range s.notes {
		if n.ID == id {
			next := !n.Favorite
			patch = store.NotePatch{Favorite: &next, UpdatedAt: time.Now().UnixMilli()}
			patch.Apply(n)
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return
	}

	if err := s.source.UpdateNote(ctx, id, patch); err != nil {
		s.recordErr("toggle favorite", err)
		return
	}
	s.bus.emit(EventNoteUpdated, id)
}

// ============================================================================
// CATEGORY MUTATIONS
// ============================================================================

// CreateCategory adds a category, keeping the mirror sorted by name.
func (s *Store) CreateCategory(ctx context.Context, name string) {
	cat, err := s.source.InsertCategory(ctx, s.owner, name)
	if err != nil {
		s.recordErr("create category", err)
		return
	}

	s.mu.Lock()
	s.categories = insertByName(s.categories, cat)
	s.mu.Unlock()

	s.bus.emit(EventCategoryCreated, cat.ID)
}

// UpdateCategory renames a category.
func (s *Store) UpdateCategory(ctx context.Context, id, name string) {
	if err := s.source.UpdateCategory(ctx, id, name); err != nil {
		s.recordErr("update category", err)
		return
	}

	s.mu.Lock()
	for i, c := range s.categories {
		if c.ID == id {
			renamed := c.Clone()
			renamed.Name = name
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			s.categories = insertByName(s.categories, renamed)
			break
		}
	}
	s.mu.Unlock()

	s.bus.emit(EventCategoryUpdated, id)
}

// DeleteCategory removes a category. Notes referencing it are detached
// first, and the category is deleted even when detaching fails so a
// half-cleared source does not leave a phantom category around. A view
// scoped to the deleted category falls back to showing all notes.
func (s *Store) DeleteCategory(ctx context.Context, id string) {
	if err := s.source.ClearCategoryRefs(ctx, id); err != nil {
		s.recordErr("clear category refs", err)
	}

	s.mu.Lock()
	for _, n := range s.notes {
		if n.CategoryID != nil && *n.CategoryID == id {
			n.CategoryID = nil
		}
	}
	s.mu.Unlock()

	if err := s.source.DeleteCategory(ctx, id); err != nil {
		s.recordErr("delete category", err)
		return
	}

	s.mu.Lock()
	for i, c := range s.categories {
		if c.ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			break
		}
	}
	if s.filter == FilterCategory(id) {
		s.filter = FilterAll
	}
	s.mu.Unlock()

	s.bus.emit(EventCategoryDeleted, id)
}

// ============================================================================
// VIEWS AND STATE
// ============================================================================

// VisibleNotes returns the notes matching the current filter and search
// query, in mirror order.
func (s *Store) VisibleNotes() []*store.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*store.Note
	for _, n := range s.notes {
		if s.filter.matches(n) && s.match.matches(n) {
			out = append(out, n.Clone())
		}
	}
	return out
}

// AllNotes returns the entire mirror, trashed notes included, ignoring
// the active filter and search query. Callers that need a scoring or
// indexing pool use this so enumeration never disturbs view state.
func (s *Store) AllNotes() []*store.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*store.Note, 0, len(s.notes))
	for _, n := range s.notes {
		out = append(out, n.Clone())
	}
	return out
}

// Note returns the note with the given id, or nil.
func (s *Store) Note(id string) *store.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.notes {
		if n.ID == id {
			return n.Clone()
		}
	}
	return nil
}

// Categories returns the category mirror.
func (s *Store) Categories() []*store.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*store.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c.Clone())
	}
	return out
}

// Select marks a note as selected. The id is resolved lazily, selecting
// a note that later disappears simply yields nil from Selected.
func (s *Store) Select(id string) {
	s.mu.Lock()
	s.selectedID = id
	s.mu.Unlock()
}

// Selected returns the currently selected note, or nil.
func (s *Store) Selected() *store.Note {
	s.mu.RLock()
	id := s.selectedID
	s.mu.RUnlock()
	if id == "" {
		return nil
	}
	return s.Note(id)
}

// SetFilter switches the active view.
func (s *Store) SetFilter(f Filter) {
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
}

// Filter returns the active view filter.
func (s *Store) Filter() Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// SetSearchQuery recompiles the search matcher for the new query.
func (s *Store) SetSearchQuery(query string) {
	m := newMatcher(query)
	s.mu.Lock()
	s.query = query
	s.match = m
	s.mu.Unlock()
}

// SearchQuery returns the active search query.
func (s *Store) SearchQuery() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Loading reports whether a note load is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LastErr returns the most recent sync error, or nil.
func (s *Store) LastErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// ClearErr resets the recorded sync error.
func (s *Store) ClearErr() {
	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()
}

// Events returns a channel of store change events. The channel is
// buffered, slow consumers drop events rather than block mutations.
func (s *Store) Events() <-chan Event {
	return s.bus.subscribe()
}

// Close shuts down the event bus.
func (s *Store) Close() {
	s.bus.close()
}

func (s *Store) recordErr(op string, err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	s.logger.Error("sync failed", "op", op, "error", err)
	s.bus.emit(EventSyncFailed, "")
}

// insertByName places the category at its sorted position.
func insertByName(cats []*store.Category, cat *store.Category) []*store.Category {
	for i, c := range cats {
		if cat.Name < c.Name {
			cats = append(cats, nil)
			copy(cats[i+1:], cats[i:])
			cats[i] = cat
			return cats
		}
	}
	return append(cats, cat)
}
