package service

import (
	"regexp"
	"strings"
)

const (
	// maxKeywords 是单个文档关键词数量的上限。
	maxKeywords = 20
	// minKeywordLen 以下（含）长度的词直接丢弃。
	minKeywordLen = 3
)

// wordPattern 匹配文本中最长的连续词字符序列。
var wordPattern = regexp.MustCompile(`\w+`)

// stopWords 是固定的小型停用词表。
var stopWords = map[string]struct{}{
	"the": {}, "is": {}, "at": {}, "which": {}, "on": {},
	"a": {}, "an": {}, "and": {}, "or": {}, "but": {},
}

// extractKeywords 从自由文本中提取候选关键词。
// 全部小写，丢弃长度 <= 3 的词和停用词，按首次出现顺序去重，最多保留 20 个。
// 不做词频加权，也不做词干化；相同输入的输出是确定的。
func extractKeywords(text string) []string {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)

	seen := make(map[string]struct{}, len(words))
	keywords := make([]string, 0, maxKeywords)
	for _, word := range words {
		if len(word) <= minKeywordLen {
			continue
		}
		if _, isStop := stopWords[word]; isStop {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}
