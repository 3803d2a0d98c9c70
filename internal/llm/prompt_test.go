package llm

import (
	"strings"
	"testing"
)

func TestGroundedPrompt(t *testing.T) {
	contexts := []string{
		"Theo Chương I Mục 1 Điều 1, phạm vi điều chỉnh",
		"  Theo Chương I Mục 1 Điều 2, đối tượng áp dụng  ",
	}
	prompt := GroundedPrompt("  Điều 1 nói gì?  ", contexts)

	if !strings.Contains(prompt, "1. Theo Chương I Mục 1 Điều 1, phạm vi điều chỉnh\n") {
		t.Fatalf("first context missing or unnumbered:\n%s", prompt)
	}
	if !strings.Contains(prompt, "2. Theo Chương I Mục 1 Điều 2, đối tượng áp dụng\n") {
		t.Fatalf("context not trimmed:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Câu hỏi: Điều 1 nói gì?\n") {
		t.Fatalf("query not trimmed:\n%s", prompt)
	}
	if !strings.HasSuffix(prompt, "Trả lời bằng tiếng Việt: ") {
		t.Fatalf("prompt tail wrong:\n%s", prompt)
	}
}

func TestGroundedPrompt_CapsContexts(t *testing.T) {
	contexts := make([]string, 15)
	for i := range contexts {
		contexts[i] = "nội dung"
	}
	prompt := GroundedPrompt("q", contexts)

	if !strings.Contains(prompt, "10. nội dung") {
		t.Fatal("tenth context should be included")
	}
	if strings.Contains(prompt, "11. nội dung") {
		t.Fatal("contexts beyond ten should be dropped")
	}
}

func TestKnowledgePrompt(t *testing.T) {
	prompt := KnowledgePrompt("Câu hỏi của tôi")
	if !strings.Contains(prompt, "trả lời dựa trên tri thức của bạn") {
		t.Fatalf("knowledge instruction missing:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Câu hỏi: Câu hỏi của tôi") {
		t.Fatalf("query missing:\n%s", prompt)
	}
}
