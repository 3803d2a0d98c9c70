package rerank

import (
	"context"
	"fmt"
	"time"

	"github.com/legalchat/legalchat/internal/config"
)

// Ensemble fuses the scores of several cross-encoders by summing each
// document's score across members. Every member sees the same pairs, so a
// document favored by all models dominates the fused ranking.
type Ensemble struct {
	members []CrossEncoder
}

// NewEnsemble builds one HTTP cross-encoder per configured member.
func NewEnsemble(cfg config.RerankConfig, timeout time.Duration) *Ensemble {
	members := make([]CrossEncoder, 0, len(cfg.Members))
	for _, m := range cfg.Members {
		members = append(members, NewHTTPCrossEncoder(m, timeout))
	}
	return &Ensemble{members: members}
}

// NewEnsembleOf wraps already constructed encoders, mainly for tests.
func NewEnsembleOf(members ...CrossEncoder) *Ensemble {
	return &Ensemble{members: members}
}

// Score implements CrossEncoder by summing member scores per document.
// A single failing member fails the whole call so a ranking never silently
// mixes scored and unscored members.
func (e *Ensemble) Score(ctx context.Context, query string, documents []string) ([]float64, error) {
	if len(documents) == 0 {
		return nil, nil
	}
	if len(e.members) == 0 {
		return nil, fmt.Errorf("%w: no ensemble members configured", ErrRerank)
	}

	fused := make([]float64, len(documents))
	for i, member := range e.members {
		scores, err := member.Score(ctx, query, documents)
		if err != nil {
			return nil, fmt.Errorf("member %d: %w", i, err)
		}
		if len(scores) != len(documents) {
			return nil, fmt.Errorf("%w: member %d returned %d scores for %d documents",
				ErrRerank, i, len(scores), len(documents))
		}
		for j, s := range scores {
			fused[j] += s
		}
	}
	return fused, nil
}

var _ CrossEncoder = (*Ensemble)(nil)
var _ CrossEncoder = (*HTTPCrossEncoder)(nil)
