package vectordb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// FlatIndex is an exact inner-product index over an embeddings artifact
// loaded at startup. Row i of the artifact is the embedding of corpus
// chunk i. Vectors are expected to be L2-normalized offline, making inner
// product equivalent to cosine similarity.
type FlatIndex struct {
	vectors [][]float32
}

// LoadFlatIndex reads the persisted embeddings artifact (a JSON array of
// float arrays). A missing or malformed artifact yields ErrIndexUnavailable.
func LoadFlatIndex(path string) (*FlatIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read artifact %s: %v", ErrIndexUnavailable, path, err)
	}
	var vectors [][]float32
	if err := json.Unmarshal(data, &vectors); err != nil {
		return nil, fmt.Errorf("%w: parse artifact %s: %v", ErrIndexUnavailable, path, err)
	}
	for i, v := range vectors {
		if len(v) != len(vectors[0]) {
			return nil, fmt.Errorf("%w: artifact row %d has dimension %d, want %d",
				ErrIndexUnavailable, i, len(v), len(vectors[0]))
		}
	}
	return &FlatIndex{vectors: vectors}, nil
}

// Size returns the number of indexed vectors.
func (f *FlatIndex) Size() int { return len(f.vectors) }

// Search implements Index with a full scan.
func (f *FlatIndex) Search(ctx context.Context, vector []float32, k int) ([]Hit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k <= 0 || len(f.vectors) == 0 {
		return nil, nil
	}
	if k > len(f.vectors) {
		k = len(f.vectors)
	}

	hits := make([]Hit, 0, len(f.vectors))
	for i, row := range f.vectors {
		hits = append(hits, Hit{Index: int64(i), Distance: dot(row, vector)})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance > hits[j].Distance })
	return hits[:k], nil
}

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
