package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/legalchat/legalchat/internal/config"
	"github.com/legalchat/legalchat/internal/llm"
	"github.com/legalchat/legalchat/internal/retrieval"
	"github.com/legalchat/legalchat/internal/router"
	"github.com/legalchat/legalchat/internal/schema"
	"github.com/legalchat/legalchat/internal/session"
	"github.com/legalchat/legalchat/internal/tools"
)

type fakeRetriever struct {
	result *retrieval.Result
	err    error
	calls  int
}

func (f *fakeRetriever) Retrieve(ctx context.Context, query string) (*retrieval.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeLLM struct {
	response   string
	err        error
	lastPrompt string
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func richResult() *retrieval.Result {
	answer := strings.Repeat("nội dung quy định chi tiết về hợp đồng lao động ", 30)
	return &retrieval.Result{
		Answers:     []string{answer},
		Scored:      []schema.ScoredResult{{Answer: answer, Score: 0.9}},
		TotalTokens: 300,
	}
}

func thinResult() *retrieval.Result {
	return &retrieval.Result{
		Answers:     []string{"Theo Chương I Mục 1 Điều 1, phạm vi"},
		Scored:      []schema.ScoredResult{{Answer: "Theo Chương I Mục 1 Điều 1, phạm vi", Score: 0.2}},
		TotalTokens: 12,
	}
}

func newPipeline(retriever Retriever, generator llm.Provider, rt *router.Router) (*Pipeline, *session.MemStore) {
	cfg := config.Default()
	store := session.NewMemStore()
	p := New(cfg, rt, retriever, nil, nil, generator, store, nil)
	return p, store
}

func TestAsk_GroundedWhenEnoughContext(t *testing.T) {
	generator := &fakeLLM{response: "câu trả lời đầy đủ"}
	p, _ := newPipeline(&fakeRetriever{result: richResult()}, generator, nil)

	resp, err := p.Ask(context.Background(), "Hợp đồng lao động là gì?", "")
	if err != nil {
		t.Fatalf("ask error: %v", err)
	}
	if resp.Source != SourceGrounded {
		t.Fatalf("source = %s, want grounded", resp.Source)
	}
	if !strings.Contains(generator.lastPrompt, "Nội dung pháp luật được trích xuất") {
		t.Fatal("grounded prompt not used")
	}
	if len(resp.Context) == 0 {
		t.Fatal("grounded response should carry context")
	}
	if resp.SessionID == "" {
		t.Fatal("session id should be assigned")
	}
}

func TestAsk_KnowledgeFallbackBelowGate(t *testing.T) {
	generator := &fakeLLM{response: "trả lời từ kiến thức"}
	p, _ := newPipeline(&fakeRetriever{result: thinResult()}, generator, nil)

	resp, err := p.Ask(context.Background(), "Một câu hỏi mơ hồ", "")
	if err != nil {
		t.Fatalf("ask error: %v", err)
	}
	if resp.Source != SourceKnowledge {
		t.Fatalf("source = %s, want knowledge", resp.Source)
	}
	if !strings.Contains(generator.lastPrompt, "trả lời dựa trên tri thức của bạn") {
		t.Fatal("knowledge prompt not used")
	}
	if len(resp.Context) != 0 {
		t.Fatal("knowledge response should not carry context")
	}
}

func TestAsk_RecordsConversationAndSession(t *testing.T) {
	generator := &fakeLLM{response: "trả lời"}
	p, store := newPipeline(&fakeRetriever{result: richResult()}, generator, nil)

	resp, err := p.Ask(context.Background(), "Câu hỏi đầu tiên", "")
	if err != nil {
		t.Fatalf("ask error: %v", err)
	}

	history, _ := store.History(context.Background(), resp.SessionID)
	if len(history) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(history))
	}
	if history[0].Role != "user" || history[0].Content != "Câu hỏi đầu tiên" {
		t.Fatalf("user turn wrong: %+v", history[0])
	}
	if history[1].Role != "assistant" || history[1].Content != "trả lời" {
		t.Fatalf("assistant turn wrong: %+v", history[1])
	}

	info, _ := store.GetSession(context.Background(), resp.SessionID)
	if info == nil || info.Title != "Câu hỏi đầu tiên" {
		t.Fatalf("session not bootstrapped: %+v", info)
	}
}

func TestAsk_ErrorRecordedAsApology(t *testing.T) {
	generator := &fakeLLM{response: "không dùng"}
	p, store := newPipeline(&fakeRetriever{err: errors.New("index down")}, generator, nil)

	resp, err := p.Ask(context.Background(), "Câu hỏi", "")
	if err != nil {
		t.Fatalf("ask should degrade, not error: %v", err)
	}
	if resp.Source != SourceError {
		t.Fatalf("source = %s, want error", resp.Source)
	}
	if !strings.HasPrefix(resp.Answer, "Xin lỗi, đã có lỗi xảy ra:") {
		t.Fatalf("apology missing: %q", resp.Answer)
	}

	history, _ := store.History(context.Background(), resp.SessionID)
	if len(history) != 2 || history[1].Role != "assistant" {
		t.Fatalf("apology not recorded: %+v", history)
	}
}

func TestAsk_RouterShortCircuits(t *testing.T) {
	routeLLM := &fakeLLM{response: `{"function":"tra_cuu_luong_toi_thieu","arguments":{"region":"vung_II"},"missing_info":[]}`}
	rt := router.New(routeLLM, tools.NewRegistry(), config.RouterConfig{Enable: true}, nil)

	retriever := &fakeRetriever{result: richResult()}
	generator := &fakeLLM{response: "không dùng"}
	p, _ := newPipeline(retriever, generator, rt)

	resp, err := p.Ask(context.Background(), "Lương tối thiểu vùng 2?", "")
	if err != nil {
		t.Fatalf("ask error: %v", err)
	}
	if resp.Source != SourceTool {
		t.Fatalf("source = %s, want tool", resp.Source)
	}
	if resp.Answer != "4.160.000 đồng/tháng" {
		t.Fatalf("answer = %q", resp.Answer)
	}
	if retriever.calls != 0 {
		t.Fatal("retrieval should be skipped when a tool answers")
	}
}

func TestAsk_UnparsableRouterResponse(t *testing.T) {
	routeLLM := &fakeLLM{response: "không phải JSON"}
	rt := router.New(routeLLM, tools.NewRegistry(), config.RouterConfig{Enable: true}, nil)
	p, _ := newPipeline(&fakeRetriever{result: richResult()}, &fakeLLM{response: "x"}, rt)

	resp, err := p.Ask(context.Background(), "Câu hỏi", "")
	if err != nil {
		t.Fatalf("ask error: %v", err)
	}
	if resp.Answer != "Lỗi: Không thể phân tích phản hồi từ LLM. Vui lòng thử lại." {
		t.Fatalf("answer = %q", resp.Answer)
	}
}

func TestAsk_NoToolFallsThroughToRetrieval(t *testing.T) {
	routeLLM := &fakeLLM{response: `{"function":"Not_call_function_calling","arguments":{},"missing_info":[]}`}
	rt := router.New(routeLLM, tools.NewRegistry(), config.RouterConfig{Enable: true}, nil)

	retriever := &fakeRetriever{result: richResult()}
	p, _ := newPipeline(retriever, &fakeLLM{response: "trả lời"}, rt)

	resp, err := p.Ask(context.Background(), "Điều 35 quy định gì?", "")
	if err != nil {
		t.Fatalf("ask error: %v", err)
	}
	if resp.Source != SourceGrounded {
		t.Fatalf("source = %s, want grounded", resp.Source)
	}
	if retriever.calls != 1 {
		t.Fatalf("retriever calls = %d, want 1", retriever.calls)
	}
}
