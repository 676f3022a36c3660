package notes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/gonote/internal/store"
)

func TestAutoSaverDebounces(t *testing.T) {
	s, src := newTestStore(t)
	ctx := context.Background()

	src.Seed(&store.Note{ID: "n1", OwnerID: testOwner, Title: "v0"})
	s.LoadNotes(ctx)

	saver := NewAutoSaver(s, 30*time.Millisecond)
	saver.Queue("n1", store.NotePatch{Title: ptr("v1")})
	saver.Queue("n1", store.NotePatch{Title: ptr("v2")})
	saver.Queue("n1", store.NotePatch{Content: ptr("body")})

	// Nothing saved while the timer is still pending.
	remote, err := src.ListNotes(ctx, testOwner)
	require.NoError(t, err)
	assert.Equal(t, "v0", remote[0].Title)

	require.Eventually(t, func() bool {
		remote, err := src.ListNotes(ctx, testOwner)
		return err == nil && remote[0].Title == "v2" && remote[0].Content == "body"
	}, time.Second, 10*time.Millisecond)
}

func TestAutoSaverFlush(t *testing.T) {
	s, src := newTestStore(t)
	ctx := context.Background()

	src.Seed(&store.Note{ID: "n1", OwnerID: testOwner})
	src.Seed(&store.Note{ID: "n2", OwnerID: testOwner})
	s.LoadNotes(ctx)

	saver := NewAutoSaver(s, time.Hour)
	saver.Queue("n1", store.NotePatch{Title: ptr("one")})
	saver.Queue("n2", store.NotePatch{Title: ptr("two")})

	saver.Flush(ctx)

	remote, err := src.ListNotes(ctx, testOwner)
	require.NoError(t, err)
	titles := map[string]bool{remote[0].Title: true, remote[1].Title: true}
	assert.True(t, titles["one"] && titles["two"])
}

func TestAutoSaverStopRejectsFurtherQueueing(t *testing.T) {
	s, src := newTestStore(t)
	ctx := context.Background()

	src.Seed(&store.Note{ID: "n1", OwnerID: testOwner, Title: "kept"})
	s.LoadNotes(ctx)

	saver := NewAutoSaver(s, time.Hour)
	saver.Stop(ctx)
	saver.Queue("n1", store.NotePatch{Title: ptr("ignored")})
	saver.Flush(ctx)

	remote, err := src.ListNotes(ctx, testOwner)
	require.NoError(t, err)
	assert.Equal(t, "kept", remote[0].Title)
}

func TestMergePatchLastFieldWins(t *testing.T) {
	dst := store.NotePatch{Title: ptr("a"), CategoryID: ptr("cat")}
	mergePatch(&dst, store.NotePatch{Title: ptr("b"), ClearCategory: true})

	assert.Equal(t, "b", *dst.Title)
	assert.True(t, dst.ClearCategory)
	assert.Nil(t, dst.CategoryID)

	mergePatch(&dst, store.NotePatch{CategoryID: ptr("cat2")})
	assert.False(t, dst.ClearCategory)
	assert.Equal(t, "cat2", *dst.CategoryID)
}
