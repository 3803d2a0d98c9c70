// Package router asks a routing model whether a query maps to one of the
// deterministic calculators, and executes or asks for clarification
// accordingly.
package router

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/legalchat/legalchat/internal/config"
	"github.com/legalchat/legalchat/internal/llm"
	"github.com/legalchat/legalchat/internal/tools"
)

// Outcome classifies a routing pass.
type Outcome int

const (
	// ToolExecuted means a calculator ran and Message holds its result.
	ToolExecuted Outcome = iota
	// NeedsClarification means required arguments are missing and Message
	// holds the follow-up question.
	NeedsClarification
	// NoToolApplicable means the query is not a calculation and should go
	// through retrieval.
	NoToolApplicable
)

// noToolSentinel is the function name the routing model emits when no
// calculator applies.
const noToolSentinel = "Not_call_function_calling"

// Result is the outcome of one routing pass.
type Result struct {
	Outcome Outcome
	// Message is the tool output or clarification question. Empty when
	// Outcome is NoToolApplicable.
	Message string
	// Tool names the routed calculator, when one was identified.
	Tool string
}

// Router drives the routing model.
type Router struct {
	provider llm.Provider
	registry *tools.Registry
	cfg      config.RouterConfig
	logger   *zap.Logger
}

// New constructs a Router.
func New(provider llm.Provider, registry *tools.Registry, cfg config.RouterConfig, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{provider: provider, registry: registry, cfg: cfg, logger: logger}
}

// Route classifies the query against the tool catalog. history is the
// rendered conversation so far; it lets the model fill arguments from
// earlier turns. Extraction failures return ErrUnparsableResponse; a tool
// that fails to execute routes the query onward to retrieval instead.
func (r *Router) Route(ctx context.Context, query, history string) (*Result, error) {
	prompt := buildPrompt(r.registry, query, history)

	opts := []llm.Option{llm.WithTemperature(r.cfg.Temperature)}
	if r.cfg.Model != "" {
		opts = append(opts, llm.WithModel(r.cfg.Model))
	}
	if len(r.cfg.Stop) > 0 {
		opts = append(opts, llm.WithStop(r.cfg.Stop))
	}
	response, err := r.provider.Generate(ctx, prompt, opts...)
	if err != nil {
		return nil, fmt.Errorf("routing model: %w", err)
	}

	decision, err := ExtractDecision(response)
	if err != nil {
		return nil, err
	}

	if decision.Function == noToolSentinel {
		return &Result{Outcome: NoToolApplicable}, nil
	}

	if len(decision.MissingInfo) > 0 {
		return &Result{
			Outcome: NeedsClarification,
			Message: clarificationQuestion(decision.Function, decision.MissingInfo),
			Tool:    decision.Function,
		}, nil
	}

	output, err := r.registry.Execute(decision.Function, decision.Arguments)
	if err != nil {
		r.logger.Warn("tool execution failed, falling through to retrieval",
			zap.String("tool", decision.Function), zap.Error(err))
		return &Result{Outcome: NoToolApplicable, Tool: decision.Function}, nil
	}
	return &Result{Outcome: ToolExecuted, Message: output, Tool: decision.Function}, nil
}
