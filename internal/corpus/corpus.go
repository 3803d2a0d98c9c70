// Package corpus loads the static legal corpus the vector index was built
// from. Positional order must match the index: row i of the embeddings
// artifact embeds chunk i of the corpus file.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/legalchat/legalchat/internal/schema"
)

// Corpus holds the ordered legal chunks.
type Corpus struct {
	chunks []schema.Chunk
}

// New wraps an already loaded chunk slice.
func New(chunks []schema.Chunk) *Corpus {
	return &Corpus{chunks: chunks}
}

// Load reads the corpus JSON file (an array of chunk objects).
func Load(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}
	var chunks []schema.Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", path, err)
	}
	return &Corpus{chunks: chunks}, nil
}

// Size returns the number of chunks.
func (c *Corpus) Size() int { return len(c.chunks) }

// Chunk returns the chunk at positional index i, or false when i is out of
// range (the index can hold ids the corpus file no longer covers).
func (c *Corpus) Chunk(i int64) (schema.Chunk, bool) {
	if i < 0 || i >= int64(len(c.chunks)) {
		return schema.Chunk{}, false
	}
	return c.chunks[i], true
}
