package store

import "context"

// DataSource defines the remote persistence contract the client state
// mirrors. All rows are keyed by opaque string ids assigned by the
// source; the client never invents ids. Reads that find nothing return
// (nil, nil), not an error.
type DataSource interface {
	// Notes. ListNotes returns all notes for the owner, trashed
	// included, ordered by updated_at descending. InsertNote returns
	// the stored row with its assigned id and timestamps.
	ListNotes(ctx context.Context, ownerID string) ([]*Note, error)
	InsertNote(ctx context.Context, ownerID string, draft NoteDraft) (*Note, error)
	UpdateNote(ctx context.Context, id string, patch NotePatch) error

	// Categories. ListCategories orders by name ascending.
	ListCategories(ctx context.Context, ownerID string) ([]*Category, error)
	InsertCategory(ctx context.Context, ownerID, name string) (*Category, error)
	UpdateCategory(ctx context.Context, id, name string) error
	DeleteCategory(ctx context.Context, id string) error

	// ClearCategoryRefs nulls category_id on every note referencing
	// the category. Callers invoke it before DeleteCategory so no
	// dangling references survive the deletion.
	ClearCategoryRefs(ctx context.Context, categoryID string) error

	// Lifecycle
	Close() error
}
