// Package rerank scores query/document pairs with cross-encoder models and
// fuses the scores of several models into one ranking signal.
package rerank

import (
	"context"
	"errors"
)

// ErrRerank indicates a reranker call failed.
var ErrRerank = errors.New("rerank failed")

// CrossEncoder scores how relevant each document is to the query. The
// returned slice is parallel to documents.
type CrossEncoder interface {
	Score(ctx context.Context, query string, documents []string) ([]float64, error)
}
