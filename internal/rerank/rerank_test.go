package rerank

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/legalchat/legalchat/internal/config"
)

func scoringServer(t *testing.T, scores []float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query     string   `json:"query"`
			Documents []string `json:"documents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		type item struct {
			Index          int     `json:"index"`
			RelevanceScore float64 `json:"relevance_score"`
		}
		out := struct {
			Results []item `json:"results"`
		}{}
		for i := range req.Documents {
			score := 0.0
			if i < len(scores) {
				score = scores[i]
			}
			out.Results = append(out.Results, item{Index: i, RelevanceScore: score})
		}
		_ = json.NewEncoder(w).Encode(out)
	}))
}

func TestHTTPCrossEncoder_Score(t *testing.T) {
	srv := scoringServer(t, []float64{0.9, 0.1, 0.5})
	defer srv.Close()

	enc := NewHTTPCrossEncoder(config.RerankMember{Endpoint: srv.URL, Model: "bge-reranker-large"}, 5*time.Second)
	scores, err := enc.Score(context.Background(), "q", []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("score error: %v", err)
	}
	if len(scores) != 3 || scores[0] != 0.9 || scores[1] != 0.1 || scores[2] != 0.5 {
		t.Fatalf("unexpected scores: %v", scores)
	}
}

func TestHTTPCrossEncoder_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	enc := NewHTTPCrossEncoder(config.RerankMember{Endpoint: srv.URL}, 5*time.Second)
	_, err := enc.Score(context.Background(), "q", []string{"a"})
	if !errors.Is(err, ErrRerank) {
		t.Fatalf("want ErrRerank, got %v", err)
	}
}

type fixedEncoder struct {
	scores []float64
	err    error
}

func (f *fixedEncoder) Score(ctx context.Context, query string, documents []string) ([]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.scores, nil
}

func TestEnsemble_SumsMemberScores(t *testing.T) {
	ensemble := NewEnsembleOf(
		&fixedEncoder{scores: []float64{0.25, 0.75}},
		&fixedEncoder{scores: []float64{0.5, 0.125}},
	)
	scores, err := ensemble.Score(context.Background(), "q", []string{"a", "b"})
	if err != nil {
		t.Fatalf("score error: %v", err)
	}
	if scores[0] != 0.75 {
		t.Fatalf("scores[0] = %v, want 0.75", scores[0])
	}
	if scores[1] != 0.875 {
		t.Fatalf("scores[1] = %v, want 0.875", scores[1])
	}
}

func TestEnsemble_MemberFailureFailsCall(t *testing.T) {
	ensemble := NewEnsembleOf(
		&fixedEncoder{scores: []float64{0.2}},
		&fixedEncoder{err: ErrRerank},
	)
	_, err := ensemble.Score(context.Background(), "q", []string{"a"})
	if !errors.Is(err, ErrRerank) {
		t.Fatalf("want ErrRerank, got %v", err)
	}
}

func TestEnsemble_NoMembers(t *testing.T) {
	ensemble := NewEnsembleOf()
	_, err := ensemble.Score(context.Background(), "q", []string{"a"})
	if !errors.Is(err, ErrRerank) {
		t.Fatalf("want ErrRerank, got %v", err)
	}
}
