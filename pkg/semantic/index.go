// Package semantic provides an embedding-based note index for
// similarity search, backed by HNSW with cosine distance. The index
// and its note-id mapping persist together through a hackpadfs FS.
package semantic

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sync"

	"github.com/fogfish/hnsw"
	"github.com/fogfish/hnsw/vector"
	"github.com/hack-pad/hackpadfs"
	kvector "github.com/kshard/vector"
)

// Index maps note ids to embedding vectors and answers nearest-K
// queries. HNSW keys are uint32, so string note ids go through an
// id table that is persisted alongside the graph.
type Index struct {
	mu   sync.RWMutex
	idx  *hnsw.HNSW[vector.VF32]
	fs   hackpadfs.FS
	path string

	ids  map[string]uint32
	rev  map[uint32]string
	next uint32
}

// snapshot is the gob-persisted form of the index.
type snapshot struct {
	Nodes hnsw.Nodes[vector.VF32]
	IDs   map[string]uint32
	Next  uint32
}

// NewIndex creates an index persisted at path on fs. If a valid
// snapshot exists there it is loaded, otherwise a fresh index is
// initialized.
func NewIndex(fs hackpadfs.FS, path string) (*Index, error) {
	x := &Index{
		fs:   fs,
		path: path,
		ids:  make(map[string]uint32),
		rev:  make(map[uint32]string),
		next: 1,
	}

	if err := x.Load(); err != nil {
		// No usable snapshot; start clean with a cosine surface.
		x.idx = hnsw.New[vector.VF32](vector.SurfaceVF32(kvector.Cosine()))
	}

	return x, nil
}

// Add inserts or re-inserts the embedding for a note id.
// Returns an error if the vector dimension doesn't match the index.
func (x *Index) Add(id string, vec []float32) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.idx == nil {
		return fmt.Errorf("index not initialized")
	}

	if x.idx.Size() > 0 {
		dim := len(x.idx.Head().Vec)
		if len(vec) != dim {
			return fmt.Errorf("vector dimension mismatch: expected %d, got %d", dim, len(vec))
		}
	}

	key, ok := x.ids[id]
	if !ok {
		key = x.next
		x.next++
		x.ids[id] = key
		x.rev[key] = id
	}

	x.idx.Insert(vector.VF32{Key: key, Vec: vec})
	return nil
}

// Search returns the ids of the K notes nearest to vec.
func (x *Index) Search(vec []float32, k int) ([]string, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if x.idx == nil {
		return nil, fmt.Errorf("index not initialized")
	}
	if x.idx.Size() == 0 {
		return nil, nil
	}

	dim := len(x.idx.Head().Vec)
	if len(vec) != dim {
		return nil, fmt.Errorf("vector dimension mismatch: expected %d, got %d", dim, len(vec))
	}

	ef := k * 2
	if ef < 100 {
		ef = 100
	}

	results := x.idx.Search(vector.VF32{Vec: vec}, k, ef)

	ids := make([]string, 0, len(results))
	for _, r := range results {
		if id, ok := x.rev[r.Key]; ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Size returns the number of indexed vectors.
func (x *Index) Size() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	if x.idx == nil {
		return 0
	}
	return x.idx.Size()
}

// Save persists the graph and the id table to the FS.
func (x *Index) Save() error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.idx == nil {
		return nil
	}

	snap := snapshot{
		Nodes: x.idx.Nodes(),
		IDs:   x.ids,
		Next:  x.next,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}

	if err := hackpadfs.WriteFullFile(x.fs, x.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write index file: %w", err)
	}

	return nil
}

// Load reads the snapshot from the FS and rehydrates the index.
func (x *Index) Load() error {
	x.mu.Lock()
	defer x.mu.Unlock()

	content, err := hackpadfs.ReadFile(x.fs, x.path)
	if err != nil {
		return err
	}

	var snap snapshot
	if err := gob.NewDecoder(bytes.NewReader(content)).Decode(&snap); err != nil {
		return fmt.Errorf("failed to decode index: %w", err)
	}

	x.idx = hnsw.FromNodes[vector.VF32](
		vector.SurfaceVF32(kvector.Cosine()),
		snap.Nodes,
	)
	x.ids = snap.IDs
	x.next = snap.Next
	x.rev = make(map[uint32]string, len(snap.IDs))
	for id, key := range snap.IDs {
		x.rev[key] = id
	}

	return nil
}
