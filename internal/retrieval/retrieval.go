// Package retrieval runs the query pipeline: embed the query, search the
// vector index, rerank the candidates with the cross-encoder ensemble and
// format the surviving passages as answer strings.
package retrieval

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/legalchat/legalchat/internal/corpus"
	"github.com/legalchat/legalchat/internal/embedding"
	"github.com/legalchat/legalchat/internal/rerank"
	"github.com/legalchat/legalchat/internal/schema"
	"github.com/legalchat/legalchat/internal/vectordb"
)

// TokenCounter measures answer text against the token gate. Satisfied by
// tokenizer.Counter.
type TokenCounter interface {
	Count(text string) int
}

// Result is the outcome of one retrieval pass.
type Result struct {
	// Answers holds formatted passages, best first.
	Answers []string `json:"answers"`
	// Scored pairs each answer with its fused cross-encoder score.
	Scored []schema.ScoredResult `json:"results"`
	// TotalTokens is the token count across all answers.
	TotalTokens int `json:"total_tokens"`
	// Elapsed is the wall time of the whole pass.
	Elapsed time.Duration `json:"-"`
}

// Timeouts bounds the upstream calls of a retrieval pass. A zero duration
// leaves that stage on the caller's context.
type Timeouts struct {
	Embed  time.Duration
	Search time.Duration
}

// Retriever wires the embedding model, vector index, corpus and reranking
// ensemble into a single Retrieve call.
type Retriever struct {
	embedder embedding.Provider
	index    vectordb.Index
	corpus   *corpus.Corpus
	scorer   rerank.CrossEncoder
	counter  TokenCounter
	topK     int
	timeouts Timeouts
	logger   *zap.Logger
}

// New constructs a Retriever. All dependencies are required except logger,
// which defaults to a no-op.
func New(embedder embedding.Provider, index vectordb.Index, c *corpus.Corpus,
	scorer rerank.CrossEncoder, counter TokenCounter, topK int,
	timeouts Timeouts, logger *zap.Logger) *Retriever {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Retriever{
		embedder: embedder,
		index:    index,
		corpus:   c,
		scorer:   scorer,
		counter:  counter,
		topK:     topK,
		timeouts: timeouts,
		logger:   logger,
	}
}

// Retrieve answers a query with the top reranked passages. An empty index
// or a query matching nothing yields an empty Result, not an error.
func (r *Retriever) Retrieve(ctx context.Context, query string) (*Result, error) {
	start := time.Now()

	embedCtx, cancel := withTimeout(ctx, r.timeouts.Embed)
	vector, err := r.embedder.GetEmbedding(embedCtx, query)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	searchCtx, cancel := withTimeout(ctx, r.timeouts.Search)
	hits, err := r.index.Search(searchCtx, vector, r.topK)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	if len(hits) == 0 {
		return &Result{Elapsed: time.Since(start)}, nil
	}

	chunks := make([]schema.Chunk, 0, len(hits))
	for _, hit := range hits {
		chunk, ok := r.corpus.Chunk(hit.Index)
		if !ok {
			r.logger.Warn("index hit outside corpus", zap.Int64("id", hit.Index))
			continue
		}
		chunks = append(chunks, chunk)
	}
	if len(chunks) == 0 {
		return &Result{Elapsed: time.Since(start)}, nil
	}

	pairs := make([]string, len(chunks))
	for i, chunk := range chunks {
		pairs[i] = chunk.PairText()
	}
	scores, err := r.scorer.Score(ctx, query, pairs)
	if err != nil {
		return nil, fmt.Errorf("rerank candidates: %w", err)
	}

	scored := make([]schema.ScoredResult, len(chunks))
	for i, chunk := range chunks {
		scored[i] = schema.ScoredResult{Answer: chunk.Answer(), Score: scores[i]}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	result := &Result{Scored: scored}
	result.Answers = make([]string, len(scored))
	for i, s := range scored {
		result.Answers[i] = s.Answer
		result.TotalTokens += r.counter.Count(s.Answer)
	}
	result.Elapsed = time.Since(start)

	r.logger.Info("retrieval complete",
		zap.Int("candidates", len(chunks)),
		zap.Int("total_tokens", result.TotalTokens),
		zap.Duration("elapsed", result.Elapsed))
	return result, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
