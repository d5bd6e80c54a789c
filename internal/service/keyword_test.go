package service

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "基本提取与小写化",
			text: "Photosynthesis converts Light energy",
			want: []string{"photosynthesis", "converts", "light", "energy"},
		},
		{
			name: "丢弃停用词和短词",
			text: "the cat is on a mat and which dog",
			want: []string{"which"},
		},
		{
			name: "按首次出现顺序去重",
			text: "learning machine learning means learning",
			want: []string{"learning", "machine", "means"},
		},
		{
			name: "长度恰好为 4 的词保留",
			text: "word his hers",
			want: []string{"word", "hers"},
		},
		{
			name: "空输入",
			text: "",
			want: []string{},
		},
		{
			name: "标点只作为分隔符",
			text: "hello, world! hello-again",
			want: []string{"hello", "world", "again"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractKeywords(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("extractKeywords(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractKeywordsCap(t *testing.T) {
	// 构造 30 个互不相同的合格词，结果应截断在 20 个
	words := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		words = append(words, strings.Repeat("ab", 3)+string(rune('a'+i)))
	}
	got := extractKeywords(strings.Join(words, " "))
	if len(got) != maxKeywords {
		t.Fatalf("expected %d keywords, got %d", maxKeywords, len(got))
	}
	// 保留的是前 20 个
	if got[0] != words[0] || got[maxKeywords-1] != words[maxKeywords-1] {
		t.Errorf("cap should keep first-seen keywords, got first=%s last=%s", got[0], got[maxKeywords-1])
	}
}

func TestExtractKeywordsDeterministic(t *testing.T) {
	text := "Machine learning enables systems to learn from experience"
	first := extractKeywords(text)
	second := extractKeywords(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same input should yield identical output: %v vs %v", first, second)
	}
}
