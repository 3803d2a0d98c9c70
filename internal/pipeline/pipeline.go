// Package pipeline composes routing, retrieval and generation into the
// question answering flow behind the HTTP API.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/legalchat/legalchat/internal/cache"
	"github.com/legalchat/legalchat/internal/config"
	"github.com/legalchat/legalchat/internal/llm"
	"github.com/legalchat/legalchat/internal/retrieval"
	"github.com/legalchat/legalchat/internal/router"
	"github.com/legalchat/legalchat/internal/session"
)

// Source names which path produced the answer.
type Source string

const (
	SourceTool          Source = "tool"
	SourceClarification Source = "clarification"
	SourceGrounded      Source = "grounded"
	SourceKnowledge     Source = "knowledge"
	SourceError         Source = "error"
)

// Response is the outcome of one Ask call.
type Response struct {
	SessionID string                `json:"session_id"`
	Answer    string                `json:"answer"`
	Source    Source                `json:"source"`
	Context   []string              `json:"context,omitempty"`
	History   []session.ChatMessage `json:"history"`
}

const unparsableMessage = "Lỗi: Không thể phân tích phản hồi từ LLM. Vui lòng thử lại."

// Retriever is the retrieval stage. Satisfied by retrieval.Retriever.
type Retriever interface {
	Retrieve(ctx context.Context, query string) (*retrieval.Result, error)
}

// Pipeline wires the stages together. Router and cache are optional.
type Pipeline struct {
	cfg       *config.Config
	router    *router.Router
	retriever Retriever
	snapshots *retrieval.SnapshotStore
	queries   cache.QueryCache
	generator llm.Provider
	store     session.Store
	logger    *zap.Logger
}

// New constructs a Pipeline.
func New(cfg *config.Config, rt *router.Router, retriever Retriever,
	snapshots *retrieval.SnapshotStore, queries cache.QueryCache,
	generator llm.Provider, store session.Store, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		cfg:       cfg,
		router:    rt,
		retriever: retriever,
		snapshots: snapshots,
		queries:   queries,
		generator: generator,
		store:     store,
		logger:    logger,
	}
}

// Ask answers one user query within a session. A missing session id starts
// a new session. Failures are reported to the user inside the conversation
// rather than as transport errors, matching the chat surface.
func (p *Pipeline) Ask(ctx context.Context, query, sessionID string) (*Response, error) {
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	query = strings.TrimSpace(query)

	if err := p.store.AppendMessage(ctx, sessionID, session.ChatMessage{Role: "user", Content: query}); err != nil {
		return nil, fmt.Errorf("record user turn: %w", err)
	}

	resp, err := p.answer(ctx, query, sessionID)
	if err != nil {
		p.logger.Error("pipeline failed", zap.String("session_id", sessionID), zap.Error(err))
		apology := fmt.Sprintf("Xin lỗi, đã có lỗi xảy ra: %v", err)
		resp = &Response{Answer: apology, Source: SourceError}
	}
	resp.SessionID = sessionID

	if err := p.store.AppendMessage(ctx, sessionID, session.ChatMessage{Role: "assistant", Content: resp.Answer}); err != nil {
		return nil, fmt.Errorf("record assistant turn: %w", err)
	}
	if err := p.ensureSession(ctx, sessionID, query); err != nil {
		p.logger.Warn("session bootstrap failed", zap.String("session_id", sessionID), zap.Error(err))
	}

	history, err := p.store.History(ctx, sessionID)
	if err != nil {
		p.logger.Warn("history read failed", zap.String("session_id", sessionID), zap.Error(err))
	}
	resp.History = history
	return resp, nil
}

func (p *Pipeline) answer(ctx context.Context, query, sessionID string) (*Response, error) {
	if p.router != nil {
		if resp, routed := p.tryRoute(ctx, query, sessionID); routed {
			return resp, nil
		}
	}

	result, err := p.retrieve(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}

	var prompt string
	source := SourceKnowledge
	if result.TotalTokens >= p.cfg.Retrieval.MinTokens {
		prompt = llm.GroundedPrompt(query, result.Answers)
		source = SourceGrounded
	} else {
		p.logger.Info("context below token gate, answering from model knowledge",
			zap.Int("total_tokens", result.TotalTokens),
			zap.Int("min_tokens", p.cfg.Retrieval.MinTokens))
		prompt = llm.KnowledgePrompt(query)
	}

	genCtx, cancel := context.WithTimeout(ctx, p.cfg.GenerateTimeout())
	defer cancel()
	answer, err := p.generator.Generate(genCtx, prompt)
	if err != nil {
		return nil, err
	}

	resp := &Response{Answer: answer, Source: source}
	if source == SourceGrounded {
		resp.Context = result.Answers
	}
	return resp, nil
}

// tryRoute runs the function-calling router. The second return value says
// whether routing fully handled the query.
func (p *Pipeline) tryRoute(ctx context.Context, query, sessionID string) (*Response, bool) {
	history, err := p.store.History(ctx, sessionID)
	if err != nil {
		p.logger.Warn("history read for routing failed", zap.Error(err))
	}

	routeCtx, cancel := context.WithTimeout(ctx, p.cfg.RouteTimeout())
	defer cancel()
	result, err := p.router.Route(routeCtx, query, renderHistory(history))
	if err != nil {
		if errors.Is(err, router.ErrUnparsableResponse) {
			return &Response{Answer: unparsableMessage, Source: SourceError}, true
		}
		p.logger.Warn("routing failed, falling through to retrieval", zap.Error(err))
		return nil, false
	}

	switch result.Outcome {
	case router.ToolExecuted:
		return &Response{Answer: result.Message, Source: SourceTool}, true
	case router.NeedsClarification:
		return &Response{Answer: result.Message, Source: SourceClarification}, true
	default:
		return nil, false
	}
}

func (p *Pipeline) retrieve(ctx context.Context, query, sessionID string) (*retrieval.Result, error) {
	if p.queries != nil {
		if cached, ok := p.queries.Get(ctx, query); ok {
			p.logger.Debug("retrieval cache hit", zap.String("query", query))
			return cached, nil
		}
	}

	result, err := p.retriever.Retrieve(ctx, query)
	if err != nil {
		return nil, err
	}

	if p.snapshots != nil {
		if err := p.snapshots.Save(sessionID, result); err != nil {
			p.logger.Warn("snapshot write failed", zap.String("session_id", sessionID), zap.Error(err))
		}
	}
	if p.queries != nil {
		p.queries.Set(ctx, query, result)
	}
	return result, nil
}

// ensureSession creates the session metadata on the first exchange.
func (p *Pipeline) ensureSession(ctx context.Context, sessionID, query string) error {
	info, err := p.store.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if info != nil {
		return nil
	}
	return p.store.CreateSession(ctx, session.Info{
		ID:        sessionID,
		Title:     session.SessionTitle(query),
		CreatedAt: time.Now().Format(time.RFC3339),
	})
}

// renderHistory flattens the conversation for the routing prompt.
func renderHistory(history []session.ChatMessage) string {
	var b strings.Builder
	for _, msg := range history {
		fmt.Fprintf(&b, "%s: %s\n", msg.Role, msg.Content)
	}
	return b.String()
}
