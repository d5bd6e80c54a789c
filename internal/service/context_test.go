package service

import (
	"strings"
	"testing"

	"educhat-go/internal/model"
)

func TestBuildContextEmpty(t *testing.T) {
	if got := buildContext(nil); got != "" {
		t.Errorf("buildContext(nil) = %q, want empty string", got)
	}
	if got := buildContext([]model.KnowledgeDocument{}); got != "" {
		t.Errorf("buildContext(empty) = %q, want empty string", got)
	}
}

func TestBuildContextSingleDocument(t *testing.T) {
	docs := []model.KnowledgeDocument{
		{
			Category: model.CategoryFAQ,
			Question: "What is machine learning?",
			Content:  "Machine learning is a subset of AI.",
		},
	}
	got := buildContext(docs)
	want := "[Source 1]\nCategory: FAQ\nQ: What is machine learning?\nContent: Machine learning is a subset of AI.\n"
	if got != want {
		t.Errorf("buildContext() = %q, want %q", got, want)
	}
}

func TestBuildContextOmitsEmptyQuestion(t *testing.T) {
	docs := []model.KnowledgeDocument{
		{Category: model.CategoryUploaded, Content: "extracted file content"},
	}
	got := buildContext(docs)
	if strings.Contains(got, "Q:") {
		t.Errorf("block should not contain a Q line for empty question: %q", got)
	}
}

func TestBuildContextOrderAndSeparator(t *testing.T) {
	docs := []model.KnowledgeDocument{
		{Category: model.CategoryFAQ, Content: "first"},
		{Category: model.CategoryGeneral, Content: "second"},
		{Category: model.CategoryAssignment, Content: "third"},
	}
	got := buildContext(docs)

	blocks := strings.Split(got, contextSeparator)
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d: %q", len(blocks), got)
	}
	for i, content := range []string{"first", "second", "third"} {
		if !strings.HasPrefix(blocks[i], "[Source "+string(rune('1'+i))+"]") {
			t.Errorf("block %d has wrong source label: %q", i, blocks[i])
		}
		if !strings.Contains(blocks[i], "Content: "+content) {
			t.Errorf("block %d should contain %q: %q", i, content, blocks[i])
		}
	}
}

func TestRenderRecentMessages(t *testing.T) {
	messages := []model.Message{
		{Role: model.RoleUser, Content: "hello"},
		{Role: model.RoleBot, Content: "hi there"},
	}
	got := renderRecentMessages(messages)
	want := "user: hello\nbot: hi there"
	if got != want {
		t.Errorf("renderRecentMessages() = %q, want %q", got, want)
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("hello", 10); got != "hello" {
		t.Errorf("no truncation expected, got %q", got)
	}
	if got := truncateRunes("hello", 3); got != "hel" {
		t.Errorf("truncateRunes = %q, want %q", got, "hel")
	}
	// 多字节字符按字符截断而不是按字节
	if got := truncateRunes("日本語テキスト", 3); got != "日本語" {
		t.Errorf("truncateRunes = %q, want %q", got, "日本語")
	}
}
