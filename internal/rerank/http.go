package rerank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/legalchat/legalchat/internal/config"
)

// HTTPCrossEncoder calls an external cross-encoder service (BGE-reranker,
// Cohere rerank and compatible endpoints).
// Request body:
// {"query":"...","documents":["..."],"model":"...","top_n":100}
// Response body:
// {"results":[{"index":0,"relevance_score":0.9}]}
type HTTPCrossEncoder struct {
	Endpoint string
	Model    string
	APIKey   string
	Client   *http.Client
}

// NewHTTPCrossEncoder builds a cross-encoder client for one ensemble member.
func NewHTTPCrossEncoder(member config.RerankMember, timeout time.Duration) *HTTPCrossEncoder {
	return &HTTPCrossEncoder{
		Endpoint: member.Endpoint,
		Model:    member.Model,
		APIKey:   member.APIKey,
		Client:   &http.Client{Timeout: timeout},
	}
}

type crossEncodeReq struct {
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
	Model     string   `json:"model,omitempty"`
	TopN      int      `json:"top_n,omitempty"`
}

type crossEncodeResp struct {
	Results []struct {
		Index          int     `json:"index"`
		RelevanceScore float64 `json:"relevance_score"`
	} `json:"results"`
}

// Score implements CrossEncoder. The returned slice is parallel to
// documents; indices the service omits keep a zero score.
func (h *HTTPCrossEncoder) Score(ctx context.Context, query string, documents []string) ([]float64, error) {
	if len(documents) == 0 {
		return nil, nil
	}

	reqBody := crossEncodeReq{
		Query:     query,
		Documents: documents,
		Model:     h.Model,
		TopN:      len(documents),
	}
	bs, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %v", ErrRerank, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.Endpoint, bytes.NewReader(bs))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrRerank, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if h.APIKey != "" {
		httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", h.APIKey))
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRerank, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: server returned status %d", ErrRerank, resp.StatusCode)
	}

	var decoded crossEncodeResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrRerank, err)
	}

	scores := make([]float64, len(documents))
	for _, r := range decoded.Results {
		if r.Index >= 0 && r.Index < len(scores) {
			scores[r.Index] = r.RelevanceScore
		}
	}
	return scores, nil
}
