package notes

import "github.com/kittclouds/gonote/internal/store"

// Filter selects which subset of notes a view shows. The zero value is
// not valid, use FilterAll.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterFavorites Filter = "favorites"
	FilterTrash     Filter = "trash"
)

// FilterCategory builds a filter scoped to one category.
func FilterCategory(categoryID string) Filter {
	return Filter("category:" + categoryID)
}

// categoryID returns the category id carried by a category filter, or
// "" for the builtin filters.
func (f Filter) categoryID() string {
	const prefix = "category:"
	if len(f) > len(prefix) && f[:len(prefix)] == prefix {
		return string(f[len(prefix):])
	}
	return ""
}

// matches reports whether a note belongs to the filtered view. Trashed
// notes appear only in the trash view.
func (f Filter) matches(n *store.Note) bool {
	switch f {
	case FilterAll:
		return !n.Trashed()
	case FilterFavorites:
		return n.Favorite && !n.Trashed()
	case FilterTrash:
		return n.Trashed()
	default:
		id := f.categoryID()
		if id == "" {
			return !n.Trashed()
		}
		return !n.Trashed() && n.CategoryID != nil && *n.CategoryID == id
	}
}
