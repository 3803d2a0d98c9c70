package vectordb

import (
	"context"
	"errors"
)

// ErrIndexUnavailable indicates the index artifact or backend could not be
// loaded or reached.
var ErrIndexUnavailable = errors.New("vector index unavailable")

// Hit is one nearest-neighbor match. Index is the positional id into the
// passage corpus; Distance follows the index metric convention (inner
// product: larger is closer).
type Hit struct {
	Index    int64
	Distance float32
}

// Index is a read-only nearest-neighbor index over precomputed passage
// embeddings. Implementations must be safe for concurrent readers.
type Index interface {
	// Search returns up to k hits ordered best-first. k larger than the
	// corpus is clamped, never an error.
	Search(ctx context.Context, vector []float32, k int) ([]Hit, error)
}
