// Package store provides the remote persistence layer for gonote.
// It defines the data source contract the client state mirrors, plus
// an in-memory implementation for testing and a SQLite implementation
// for native use.
package store

// Note is a single note row as the data source returns it.
// CategoryID is a weak reference: deleting a category nulls it out on
// every referencing note, there is no cascading delete.
// A non-nil DeletedAt means the note is in the trash.
type Note struct {
	ID         string   `json:"id"`
	OwnerID    string   `json:"ownerId"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	CategoryID *string  `json:"categoryId,omitempty"`
	Tags       []string `json:"tags"`
	Favorite   bool     `json:"favorite"`
	DeletedAt  *int64   `json:"deletedAt,omitempty"`
	CreatedAt  int64    `json:"createdAt"`
	UpdatedAt  int64    `json:"updatedAt"`
}

// Trashed reports whether the note is soft-deleted.
func (n *Note) Trashed() bool {
	return n.DeletedAt != nil
}

// Clone returns a deep copy of the note.
func (n *Note) Clone() *Note {
	c := *n
	if n.CategoryID != nil {
		v := *n.CategoryID
		c.CategoryID = &v
	}
	if n.DeletedAt != nil {
		v := *n.DeletedAt
		c.DeletedAt = &v
	}
	if n.Tags != nil {
		c.Tags = make([]string, len(n.Tags))
		copy(c.Tags, n.Tags)
	}
	return &c
}

// Category is a flat (non-hierarchical) namespace entry per owner.
// Name uniqueness is not enforced: two categories with the same name
// may coexist for one owner.
type Category struct {
	ID        string `json:"id"`
	OwnerID   string `json:"ownerId"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"createdAt"`
}

// Clone returns a copy of the category.
func (c *Category) Clone() *Category {
	cp := *c
	return &cp
}

// NoteDraft is the payload for inserting a note. The data source
// assigns the id and timestamps.
type NoteDraft struct {
	Title      string
	Content    string
	CategoryID *string
	Tags       []string
}

// NotePatch is a partial note update. Nil pointer fields are left
// unchanged. The Clear* flags null out the corresponding nullable
// column, since a nil pointer cannot distinguish "unchanged" from
// "set to null". UpdatedAt is applied only when non-zero, so trashing
// a note can leave the modification time untouched.
type NotePatch struct {
	Title         *string
	Content       *string
	CategoryID    *string
	ClearCategory bool
	Tags          []string
	Favorite      *bool
	DeletedAt     *int64
	ClearDeleted  bool
	UpdatedAt     int64
}

// Apply merges the patch into a note in place. Used by MemSource and
// by the client store's optimistic update so both sides merge fields
// identically.
func (p *NotePatch) Apply(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.ClearCategory {
		n.CategoryID = nil
	} else if p.CategoryID != nil {
		v := *p.CategoryID
		n.CategoryID = &v
	}
	if p.Tags != nil {
		tags := make([]string, len(p.Tags))
		copy(tags, p.Tags)
		n.Tags = tags
	}
	if p.Favorite != nil {
		n.Favorite = *p.Favorite
	}
	if p.ClearDeleted {
		n.DeletedAt = nil
	} else if p.DeletedAt != nil {
		v := *p.DeletedAt
		n.DeletedAt = &v
	}
	if p.UpdatedAt != 0 {
		n.UpdatedAt = p.UpdatedAt
	}
}
