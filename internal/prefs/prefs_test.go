package prefs

import (
	"testing"

	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	fsys, err := mem.NewFS()
	require.NoError(t, err)

	p, err := NewStore(fsys, "state/prefs.json").Load()
	require.NoError(t, err)
	assert.Equal(t, "all", p.Filter)
	assert.Empty(t, p.SearchQuery)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	fsys, err := mem.NewFS()
	require.NoError(t, err)
	s := NewStore(fsys, "state/prefs.json")

	require.NoError(t, s.Save(Prefs{Filter: "favorites", SearchQuery: "golang"}))

	p, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "favorites", p.Filter)
	assert.Equal(t, "golang", p.SearchQuery)
}

func TestLoadCorruptFile(t *testing.T) {
	fsys, err := mem.NewFS()
	require.NoError(t, err)
	s := NewStore(fsys, "prefs.json")

	require.NoError(t, writeFile(fsys, "prefs.json", "{not json"))

	p, err := s.Load()
	require.Error(t, err)
	assert.Equal(t, "all", p.Filter)
}

func TestLoadEmptyFilterFallsBack(t *testing.T) {
	fsys, err := mem.NewFS()
	require.NoError(t, err)
	s := NewStore(fsys, "prefs.json")

	require.NoError(t, writeFile(fsys, "prefs.json", `{"searchQuery":"x"}`))

	p, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "all", p.Filter)
	assert.Equal(t, "x", p.SearchQuery)
}

func writeFile(fsys *mem.FS, path, content string) error {
	return hackpadfs.WriteFullFile(fsys, path, []byte(content), 0o644)
}
