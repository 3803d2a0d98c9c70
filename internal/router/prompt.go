package router

import (
	"fmt"
	"strings"

	"github.com/legalchat/legalchat/internal/tools"
)

// buildPrompt renders the routing instruction: the strict JSON contract,
// the keyword hints, the tool catalog and the running conversation.
func buildPrompt(registry *tools.Registry, query, history string) string {
	var b strings.Builder
	b.WriteString(`Bạn là một luật sư chuyên nghiệp tại Việt Nam, hỗ trợ tính toán, phân tích và tra cứu quy định lao động.

NHIỆM VỤ CỦA BẠN:
Phân tích câu hỏi và trả về chính xác JSON theo định dạng sau, không thêm bất kỳ text nào khác:

{
    "function": "<tên_hàm>",
    "arguments": {<tham_số_hàm>},
    "missing_info": ["<danh_sách_tham_số_thiếu>"]
}

QUY TẮC NGHIÊM NGẶT:
1. CHỈ TRẢ VỀ MỘT JSON DUY NHẤT
2. KHÔNG THÊM TEXT GIẢI THÍCH
3. KHÔNG THÊM MARKDOWN
4. KHÔNG THÊM NEWLINE
5. KHÔNG THÊM KHOẢNG TRẮNG THỪA

LOGIC XỬ LÝ:
- Nếu đủ thông tin để gọi hàm: điền "function" và "arguments", để "missing_info": []
- Nếu thiếu thông tin: điền "function", để "arguments": {}, điền "missing_info" với danh sách tham số thiếu
- Nếu không xác định được hàm hoặc câu hỏi không liên quan đến tính toán/tra cứu: trả về {"function": "Not_call_function_calling", "arguments": {}, "missing_info": []}

ÁNH XẠ TỪ KHÓA:
`)
	for _, mapping := range tools.KeywordMappings {
		b.WriteString("- ")
		b.WriteString(mapping)
		b.WriteString("\n")
	}
	b.WriteString("\nCÁC HÀM CÓ THỂ GỌI:\n")
	b.WriteString(registry.CatalogJSON())
	fmt.Fprintf(&b, "\n\nCâu hỏi: %s\n\nLịch sử trao đổi:\n%s", query, history)
	return b.String()
}

// clarificationQuestion phrases a follow-up asking for the parameters the
// model reported missing.
func clarificationQuestion(tool string, missing []string) string {
	labels := make([]string, len(missing))
	for i, param := range missing {
		labels[i] = tools.ParamLabel(param)
	}
	purpose := tools.PurposePhrase(tool)

	if len(labels) == 1 {
		return fmt.Sprintf("Bạn có thể cho tôi biết %s %s không?", labels[0], purpose)
	}
	joined := strings.Join(labels[:len(labels)-1], ", ") + " và " + labels[len(labels)-1]
	return fmt.Sprintf("Bạn có thể cho tôi biết thêm %s %s không?", joined, purpose)
}
