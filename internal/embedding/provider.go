package embedding

import (
	"context"
	"errors"
	"math"
)

// ErrEmbedding indicates the underlying embedding model call failed.
var ErrEmbedding = errors.New("embedding failed")

// Provider turns a query string into a fixed-length normalized vector.
type Provider interface {
	GetEmbedding(ctx context.Context, text string) ([]float32, error)
}

// Normalize scales v to unit L2 norm in place and returns it.
// A zero vector is returned unchanged to avoid division by zero.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return v
	}
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return v
}
