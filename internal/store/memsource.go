package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemSource is an in-memory implementation of DataSource for testing.
// FailWith forces every subsequent call to return the given error,
// which drives the client store's failure-path tests.
type MemSource struct {
	mu         sync.RWMutex
	notes      map[string]*Note
	categories map[string]*Category
	forced     error
}

// NewMemSource creates an empty in-memory source.
func NewMemSource() *MemSource {
	return &MemSource{
		notes:      make(map[string]*Note),
		categories: make(map[string]*Category),
	}
}

// FailWith makes every subsequent call fail with err until called
// again with nil.
func (s *MemSource) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forced = err
}

// Seed inserts a note directly, bypassing id assignment. Test helper.
func (s *MemSource) Seed(n *Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes[n.ID] = n.Clone()
}

// Close is a no-op for MemSource.
func (s *MemSource) Close() error {
	return nil
}

func (s *MemSource) ListNotes(ctx context.Context, ownerID string) ([]*Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.forced != nil {
		return nil, s.forced
	}

	var result []*Note
	for _, n := range s.notes {
		if n.OwnerID == ownerID {
			result = append(result, n.Clone())
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].UpdatedAt > result[j].UpdatedAt
	})
	return result, nil
}

func (s *MemSource) InsertNote(ctx context.Context, ownerID string, draft NoteDraft) (*Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.forced != nil {
		return nil, s.forced
	}

	now := time.Now().UnixMilli()
	n := &Note{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Title:     draft.Title,
		Content:   draft.Content,
		Tags:      append([]string(nil), draft.Tags...),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if draft.CategoryID != nil {
		v := *draft.CategoryID
		n.CategoryID = &v
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	s.notes[n.ID] = n
	return n.Clone(), nil
}

func (s *MemSource) UpdateNote(ctx context.Context, id string, patch NotePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.forced != nil {
		return s.forced
	}

	if n, ok := s.notes[id]; ok {
		patch.Apply(n)
	}
	return nil
}

func (s *MemSource) ListCategories(ctx context.Context, ownerID string) ([]*Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.forced != nil {
		return nil, s.forced
	}

	var result []*Category
	for _, c := range s.categories {
		if c.OwnerID == ownerID {
			copy := *c
			result = append(result, &copy)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (s *MemSource) InsertCategory(ctx context.Context, ownerID, name string) (*Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.forced != nil {
		return nil, s.forced
	}

	c := &Category{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: time.Now().UnixMilli(),
	}
	s.categories[c.ID] = c
	copy := *c
	return &copy, nil
}

func (s *MemSource) UpdateCategory(ctx context.Context, id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.forced != nil {
		return s.forced
	}

	if c, ok := s.categories[id]; ok {
		c.Name = name
	}
	return nil
}

func (s *MemSource) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.forced != nil {
		return s.forced
	}

	delete(s.categories, id)
	return nil
}

func (s *MemSource) ClearCategoryRefs(ctx context.Context, categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.forced != nil {
		return s.forced
	}

	for _, n := range s.notes {
		if n.CategoryID != nil && *n.CategoryID == categoryID {
			n.CategoryID = nil
		}
	}
	return nil
}

// Compile-time interface check
var _ DataSource = (*MemSource)(nil)
