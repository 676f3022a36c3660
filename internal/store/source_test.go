package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Source Factory for Testing Both Implementations
// =============================================================================

// sourceFactory creates a data source for testing.
// We test both MemSource and SQLiteSource with the same suite.
type sourceFactory func() (DataSource, error)

func memSourceFactory() (DataSource, error) {
	return NewMemSource(), nil
}

func sqliteSourceFactory() (DataSource, error) {
	return NewSQLiteSource()
}

// runTestsForAllSources runs a test function against both implementations.
func runTestsForAllSources(t *testing.T, testName string, testFn func(t *testing.T, src DataSource)) {
	factories := map[string]sourceFactory{
		"MemSource":    memSourceFactory,
		"SQLiteSource": sqliteSourceFactory,
	}

	for name, factory := range factories {
		t.Run(name+"/"+testName, func(t *testing.T) {
			src, err := factory()
			require.NoError(t, err, "Failed to create source")
			defer src.Close()
			testFn(t, src)
		})
	}
}

const testOwner = "user-1"

// =============================================================================
// Note Tests
// =============================================================================

func TestInsertAndListNotes(t *testing.T) {
	runTestsForAllSources(t, "InsertAndList", func(t *testing.T, src DataSource) {
		ctx := context.Background()

		first, err := src.InsertNote(ctx, testOwner, NoteDraft{Title: "Untitled", Content: ""})
		require.NoError(t, err)
		require.NotEmpty(t, first.ID, "source must assign an id")
		assert.Equal(t, testOwner, first.OwnerID)
		assert.Equal(t, "Untitled", first.Title)
		assert.NotNil(t, first.Tags, "tags default to an empty list")
		assert.Nil(t, first.DeletedAt)
		assert.NotZero(t, first.CreatedAt)

		second, err := src.InsertNote(ctx, testOwner, NoteDraft{Title: "Second"})
		require.NoError(t, err)

		// Bump the first note so ordering by updated_at is observable.
		later := time.Now().UnixMilli() + 1000
		title := "Bumped"
		require.NoError(t, src.UpdateNote(ctx, first.ID, NotePatch{Title: &title, UpdatedAt: later}))

		notes, err := src.ListNotes(ctx, testOwner)
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, first.ID, notes[0].ID, "most recently updated first")
		assert.Equal(t, "Bumped", notes[0].Title)
		assert.Equal(t, second.ID, notes[1].ID)
	})
}

func TestListNotesScopedToOwner(t *testing.T) {
	runTestsForAllSources(t, "OwnerScope", func(t *testing.T, src DataSource) {
		ctx := context.Background()

		_, err := src.InsertNote(ctx, testOwner, NoteDraft{Title: "Mine"})
		require.NoError(t, err)
		_, err = src.InsertNote(ctx, "someone-else", NoteDraft{Title: "Theirs"})
		require.NoError(t, err)

		notes, err := src.ListNotes(ctx, testOwner)
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, "Mine", notes[0].Title)
	})
}

func TestUpdateNotePatchSemantics(t *testing.T) {
	runTestsForAllSources(t, "PatchSemantics", func(t *testing.T, src DataSource) {
		ctx := context.Background()

		cat, err := src.InsertCategory(ctx, testOwner, "Work")
		require.NoError(t, err)

		n, err := src.InsertNote(ctx, testOwner, NoteDraft{Title: "Draft", Content: "body"})
		require.NoError(t, err)

		now := time.Now().UnixMilli()
		fav := true
		err = src.UpdateNote(ctx, n.ID, NotePatch{
			CategoryID: &cat.ID,
			Tags:       []string{"work", "urgent"},
			Favorite:   &fav,
			UpdatedAt:  now,
		})
		require.NoError(t, err)

		notes, err := src.ListNotes(ctx, testOwner)
		require.NoError(t, err)
		require.Len(t, notes, 1)
		got := notes[0]
		require.NotNil(t, got.CategoryID)
		assert.Equal(t, cat.ID, *got.CategoryID)
		assert.Equal(t, []string{"work", "urgent"}, got.Tags)
		assert.True(t, got.Favorite)
		assert.Equal(t, "Draft", got.Title, "unset fields stay untouched")
		assert.Equal(t, "body", got.Content)

		// Soft delete without touching updated_at.
		deleted := now + 1
		err = src.UpdateNote(ctx, n.ID, NotePatch{DeletedAt: &deleted})
		require.NoError(t, err)

		notes, err = src.ListNotes(ctx, testOwner)
		require.NoError(t, err)
		require.NotNil(t, notes[0].DeletedAt)
		assert.Equal(t, deleted, *notes[0].DeletedAt)
		assert.Equal(t, now, notes[0].UpdatedAt, "trash must not refresh updated_at")

		// Restore clears the timestamp and refreshes updated_at.
		err = src.UpdateNote(ctx, n.ID, NotePatch{ClearDeleted: true, UpdatedAt: now + 2})
		require.NoError(t, err)

		notes, err = src.ListNotes(ctx, testOwner)
		require.NoError(t, err)
		assert.Nil(t, notes[0].DeletedAt)
		assert.Equal(t, now+2, notes[0].UpdatedAt)

		// Clear the category reference.
		err = src.UpdateNote(ctx, n.ID, NotePatch{ClearCategory: true})
		require.NoError(t, err)

		notes, err = src.ListNotes(ctx, testOwner)
		require.NoError(t, err)
		assert.Nil(t, notes[0].CategoryID)
	})
}

func TestUpdateNoteNonexistent(t *testing.T) {
	runTestsForAllSources(t, "UpdateNonexistent", func(t *testing.T, src DataSource) {
		title := "X"
		err := src.UpdateNote(context.Background(), "missing", NotePatch{Title: &title})
		assert.NoError(t, err, "patching a missing row is a no-op, not an error")
	})
}

// =============================================================================
// Category Tests
// =============================================================================

func TestCategoryCRUD(t *testing.T) {
	runTestsForAllSources(t, "CategoryCRUD", func(t *testing.T, src DataSource) {
		ctx := context.Background()

		b, err := src.InsertCategory(ctx, testOwner, "Work")
		require.NoError(t, err)
		a, err := src.InsertCategory(ctx, testOwner, "Ideas")
		require.NoError(t, err)
		require.NotEmpty(t, a.ID)

		cats, err := src.ListCategories(ctx, testOwner)
		require.NoError(t, err)
		require.Len(t, cats, 2)
		assert.Equal(t, "Ideas", cats[0].Name, "categories sorted by name")
		assert.Equal(t, "Work", cats[1].Name)

		require.NoError(t, src.UpdateCategory(ctx, b.ID, "Archive"))
		cats, err = src.ListCategories(ctx, testOwner)
		require.NoError(t, err)
		assert.Equal(t, "Archive", cats[0].Name)

		require.NoError(t, src.DeleteCategory(ctx, a.ID))
		cats, err = src.ListCategories(ctx, testOwner)
		require.NoError(t, err)
		require.Len(t, cats, 1)
		assert.Equal(t, "Archive", cats[0].Name)
	})
}

func TestDuplicateCategoryNamesAllowed(t *testing.T) {
	runTestsForAllSources(t, "DuplicateNames", func(t *testing.T, src DataSource) {
		ctx := context.Background()

		_, err := src.InsertCategory(ctx, testOwner, "Work")
		require.NoError(t, err)
		_, err = src.InsertCategory(ctx, testOwner, "Work")
		require.NoError(t, err, "name uniqueness is not enforced")

		cats, err := src.ListCategories(ctx, testOwner)
		require.NoError(t, err)
		assert.Len(t, cats, 2)
	})
}

func TestClearCategoryRefs(t *testing.T) {
	runTestsForAllSources(t, "ClearRefs", func(t *testing.T, src DataSource) {
		ctx := context.Background()

		cat, err := src.InsertCategory(ctx, testOwner, "Work")
		require.NoError(t, err)
		other, err := src.InsertCategory(ctx, testOwner, "Home")
		require.NoError(t, err)

		inCat, err := src.InsertNote(ctx, testOwner, NoteDraft{Title: "A", CategoryID: &cat.ID})
		require.NoError(t, err)
		inOther, err := src.InsertNote(ctx, testOwner, NoteDraft{Title: "B", CategoryID: &other.ID})
		require.NoError(t, err)

		require.NoError(t, src.ClearCategoryRefs(ctx, cat.ID))

		notes, err := src.ListNotes(ctx, testOwner)
		require.NoError(t, err)
		byID := make(map[string]*Note, len(notes))
		for _, n := range notes {
			byID[n.ID] = n
		}
		assert.Nil(t, byID[inCat.ID].CategoryID, "referencing note must be detached")
		require.NotNil(t, byID[inOther.ID].CategoryID)
		assert.Equal(t, other.ID, *byID[inOther.ID].CategoryID, "other categories untouched")
	})
}

// =============================================================================
// MemSource failure injection
// =============================================================================

func TestMemSourceFailWith(t *testing.T) {
	src := NewMemSource()
	defer src.Close()
	ctx := context.Background()

	_, err := src.InsertNote(ctx, testOwner, NoteDraft{Title: "ok"})
	require.NoError(t, err)

	src.FailWith(assert.AnError)
	_, err = src.InsertNote(ctx, testOwner, NoteDraft{Title: "broken"})
	assert.ErrorIs(t, err, assert.AnError)
	_, err = src.ListNotes(ctx, testOwner)
	assert.ErrorIs(t, err, assert.AnError)

	src.FailWith(nil)
	notes, err := src.ListNotes(ctx, testOwner)
	require.NoError(t, err)
	assert.Len(t, notes, 1, "failed insert must not have written")
}
