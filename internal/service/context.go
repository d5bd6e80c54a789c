package service

import (
	"fmt"
	"strings"

	"educhat-go/internal/model"
)

// contextSeparator 是上下文块之间的固定分隔符。
const contextSeparator = "\n---\n"

// buildContext 把检索到的文档格式化为单个上下文字符串。
// 空输入返回空串（不是错误）；每个文档按输入顺序生成一个块，块间以分隔符连接。
func buildContext(documents []model.KnowledgeDocument) string {
	if len(documents) == 0 {
		return ""
	}

	blocks := make([]string, 0, len(documents))
	for i, doc := range documents {
		var b strings.Builder
		fmt.Fprintf(&b, "[Source %d]\n", i+1)
		fmt.Fprintf(&b, "Category: %s\n", doc.Category)
		if doc.Question != "" {
			fmt.Fprintf(&b, "Q: %s\n", doc.Question)
		}
		fmt.Fprintf(&b, "Content: %s\n", doc.Content)
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, contextSeparator)
}

// renderRecentMessages 将最近的会话消息渲染为 "role: content" 行。
func renderRecentMessages(messages []model.Message) string {
	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		lines = append(lines, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
	}
	return strings.Join(lines, "\n")
}

// truncateRunes 按字符数截断字符串。
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
