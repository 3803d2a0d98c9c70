package schema

import "fmt"

// Chunk is a unit of legal text with its structural metadata.
// JSON field names follow the corpus file layout (Chunk.json).
type Chunk struct {
	Chapter string `json:"chuong,omitempty"`
	Section string `json:"muc,omitempty"`
	Article string `json:"dieu,omitempty"`
	Content string `json:"noidung"`
}

// PairText builds the cross-encoder input for this chunk.
func (c Chunk) PairText() string {
	return fmt.Sprintf("%s %s %s", c.Section, c.Article, c.Content)
}

// Answer renders the citation template used for final answers.
// Missing fields render as empty strings, never as a null placeholder.
func (c Chunk) Answer() string {
	return fmt.Sprintf("Theo %s %s %s, %s", c.Chapter, c.Section, c.Article, c.Content)
}

// ScoredResult pairs a formatted answer with its fused reranker score.
type ScoredResult struct {
	Answer string  `json:"answer"`
	Score  float64 `json:"score"`
}
