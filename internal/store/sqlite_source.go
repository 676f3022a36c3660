// SQLite-backed DataSource using ncruces/go-sqlite3 through database/sql.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/asg017/sqlite-vec-go-bindings/ncruces"
	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
)

// SQLiteSource is the SQLite-backed data source.
// Thread-safe; per-row tags are stored as a JSON array column.
type SQLiteSource struct {
	mu sync.RWMutex
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS notes (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    title TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL DEFAULT '',
    category_id TEXT,
    tags TEXT NOT NULL DEFAULT '[]',
    favorite INTEGER DEFAULT 0,
    deleted_at INTEGER,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_owner ON notes(owner_id);
CREATE INDEX IF NOT EXISTS idx_notes_category ON notes(category_id);
CREATE INDEX IF NOT EXISTS idx_notes_updated ON notes(owner_id, updated_at);

-- Categories: flat namespace per owner. No uniqueness on name.
-- Note: no foreign keys - the category reference is weak and managed
-- at application level.
CREATE TABLE IF NOT EXISTS categories (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    name TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_categories_owner ON categories(owner_id);
`

// NewSQLiteSource creates an in-memory SQLite source.
func NewSQLiteSource() (*SQLiteSource, error) {
	return NewSQLiteSourceWithDSN(":memory:")
}

// NewSQLiteSourceWithDSN creates a source with a specific data source
// name. Use ":memory:" for in-memory or a file path for persistence.
func NewSQLiteSourceWithDSN(dsn string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteSource{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// =============================================================================
// Notes
// =============================================================================

const noteColumns = `id, owner_id, title, content, category_id, tags, favorite, deleted_at, created_at, updated_at`

func scanNote(scan func(...any) error) (*Note, error) {
	var n Note
	var categoryID sql.NullString
	var deletedAt sql.NullInt64
	var favorite int
	var tagsJSON string

	err := scan(
		&n.ID, &n.OwnerID, &n.Title, &n.Content, &categoryID, &tagsJSON,
		&favorite, &deletedAt, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	n.Favorite = favorite != 0
	if categoryID.Valid {
		n.CategoryID = &categoryID.String
	}
	if deletedAt.Valid {
		n.DeletedAt = &deletedAt.Int64
	}
	if tagsJSON != "" {
		if err := json.Unmarshal([]byte(tagsJSON), &n.Tags); err != nil {
			n.Tags = []string{}
		}
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	return &n, nil
}

func (s *SQLiteSource) ListNotes(ctx context.Context, ownerID string) ([]*Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+noteColumns+` FROM notes
		WHERE owner_id = ? ORDER BY updated_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*Note
	for rows.Next() {
		n, err := scanNote(rows.Scan)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *SQLiteSource) InsertNote(ctx context.Context, ownerID string, draft NoteDraft) (*Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tags := draft.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tags: %w", err)
	}

	var categoryID any
	if draft.CategoryID != nil {
		categoryID = *draft.CategoryID
	}

	now := time.Now().UnixMilli()
	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO notes (id, owner_id, title, content, category_id, tags, favorite, deleted_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, NULL, ?, ?)
	`, id, ownerID, draft.Title, draft.Content, categoryID, string(tagsJSON), now, now)
	if err != nil {
		return nil, err
	}

	n := &Note{
		ID:        id,
		OwnerID:   ownerID,
		Title:     draft.Title,
		Content:   draft.Content,
		Tags:      append([]string(nil), tags...),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if draft.CategoryID != nil {
		v := *draft.CategoryID
		n.CategoryID = &v
	}
	return n, nil
}

func (s *SQLiteSource) UpdateNote(ctx context.Context, id string, patch NotePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sets []string
	var args []any

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *patch.Content)
	}
	if patch.ClearCategory {
		sets = append(sets, "category_id = NULL")
	} else if patch.CategoryID != nil {
		sets = append(sets, "category_id = ?")
		args = append(args, *patch.CategoryID)
	}
	if patch.Tags != nil {
		tagsJSON, err := json.Marshal(patch.Tags)
		if err != nil {
			return fmt.Errorf("failed to marshal tags: %w", err)
		}
		sets = append(sets, "tags = ?")
		args = append(args, string(tagsJSON))
	}
	if patch.Favorite != nil {
		sets = append(sets, "favorite = ?")
		args = append(args, boolToInt(*patch.Favorite))
	}
	if patch.ClearDeleted {
		sets = append(sets, "deleted_at = NULL")
	} else if patch.DeletedAt != nil {
		sets = append(sets, "deleted_at = ?")
		args = append(args, *patch.DeletedAt)
	}
	if patch.UpdatedAt != 0 {
		sets = append(sets, "updated_at = ?")
		args = append(args, patch.UpdatedAt)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	_, err := s.db.ExecContext(ctx,
		"UPDATE notes SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	return err
}

// =============================================================================
// Categories
// =============================================================================

func (s *SQLiteSource) ListCategories(ctx context.Context, ownerID string) ([]*Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, name, created_at FROM categories
		WHERE owner_id = ? ORDER BY name
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

func (s *SQLiteSource) InsertCategory(ctx context.Context, ownerID, name string) (*Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := &Category{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: time.Now().UnixMilli(),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, owner_id, name, created_at)
		VALUES (?, ?, ?, ?)
	`, c.ID, c.OwnerID, c.Name, c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *SQLiteSource) UpdateCategory(ctx context.Context, id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "UPDATE categories SET name = ? WHERE id = ?", name, id)
	return err
}

func (s *SQLiteSource) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	return err
}

func (s *SQLiteSource) ClearCategoryRefs(ctx context.Context, categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "UPDATE notes SET category_id = NULL WHERE category_id = ?", categoryID)
	return err
}

// =============================================================================
// Helpers
// =============================================================================

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Compile-time interface check
var _ DataSource = (*SQLiteSource)(nil)
