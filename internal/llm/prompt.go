package llm

import (
	"fmt"
	"strings"
)

// maxGroundedContexts caps how many passages a grounded prompt includes.
const maxGroundedContexts = 10

const groundedHeader = `Bạn là một luật sư chuyên nghiệp người Việt Nam. Hãy trả lời câu hỏi dựa trên các nội dung pháp luật được cung cấp.
    YÊU CẦU:
    1. LUÔN trả lời bằng tiếng Việt
    2. Trả lời đầy đủ, chi tiết, cụ thể, dễ hiểu
    3. Chỉ sử dụng thông tin từ các nội dung được cung cấp
    4. Nếu không có đủ thông tin để trả lời, hãy nói "Tôi không có đủ thông tin để trả lời câu hỏi này"

    Nội dung pháp luật được trích xuất:
    `

// GroundedPrompt asks the model to answer strictly from the retrieved
// passages, numbered best first.
func GroundedPrompt(query string, contexts []string) string {
	var b strings.Builder
	b.WriteString(groundedHeader)
	n := len(contexts)
	if n > maxGroundedContexts {
		n = maxGroundedContexts
	}
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%d. %s\n", i+1, strings.TrimSpace(contexts[i]))
	}
	b.WriteString("\n------------\n")
	fmt.Fprintf(&b, "Câu hỏi: %s\n", strings.TrimSpace(query))
	b.WriteString("Trả lời bằng tiếng Việt: ")
	return b.String()
}

// KnowledgePrompt asks the model to answer from its own knowledge, used
// when retrieval produced too little context to ground an answer.
func KnowledgePrompt(query string) string {
	return fmt.Sprintf(`Bạn là một luật sư chuyên nghiệp người Việt Nam.

YÊU CẦU:
1. LUÔN trả lời bằng tiếng Việt
2. Trả lời đầy đủ, chi tiết, cụ thể, dễ hiểu
3. Nếu không chắc chắn về thông tin, hãy nói rõ điều đó
4. trả lời dựa trên tri thức của bạn

Câu hỏi: %s

Trả lời bằng tiếng Việt:`, query)
}
