package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"educhat-go/internal/model"
	"educhat-go/pkg/tasks"
)

func TestAddDocumentInvalidCategory(t *testing.T) {
	svc := NewKnowledgeService(newMockKnowledgeRepository(), noopProducer)

	_, err := svc.AddDocument(context.Background(), AddDocumentInput{
		Category: model.Category("Bogus"),
		Content:  "some content",
	})
	if !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("error = %v, want ErrInvalidCategory", err)
	}
}

func TestAddDocumentEmptyContent(t *testing.T) {
	svc := NewKnowledgeService(newMockKnowledgeRepository(), noopProducer)

	for _, content := range []string{"", "   ", "\n"} {
		_, err := svc.AddDocument(context.Background(), AddDocumentInput{
			Category: model.CategoryFAQ,
			Content:  content,
		})
		if !errors.Is(err, ErrEmptyContent) {
			t.Errorf("AddDocument(content=%q) error = %v, want ErrEmptyContent", content, err)
		}
	}
}

func TestAddDocumentPersistsAndProducesTask(t *testing.T) {
	repo := newMockKnowledgeRepository()
	var produced []tasks.DocumentIndexTask
	producer := func(task tasks.DocumentIndexTask) error {
		produced = append(produced, task)
		return nil
	}
	svc := NewKnowledgeService(repo, producer)

	doc, err := svc.AddDocument(context.Background(), AddDocumentInput{
		Category: model.CategoryCourseMaterial,
		Question: "What is photosynthesis?",
		Content:  "Photosynthesis converts light energy into chemical energy.",
		Metadata: model.DocumentMetadata{Subject: "Biology"},
	})
	if err != nil {
		t.Fatalf("AddDocument failed: %v", err)
	}

	if doc.ID == "" {
		t.Error("expected a generated document id")
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 persisted document, got %d", len(repo.created))
	}
	if len(doc.Keywords) == 0 {
		t.Error("expected extracted keywords")
	}
	for _, kw := range doc.Keywords {
		if kw != strings.ToLower(kw) {
			t.Errorf("keyword %q should be lower-cased", kw)
		}
	}
	if len(produced) != 1 || produced[0].DocumentID != doc.ID {
		t.Errorf("expected one index task for %s, got %v", doc.ID, produced)
	}
}

func TestAddDocumentTruncatesContent(t *testing.T) {
	repo := newMockKnowledgeRepository()
	svc := NewKnowledgeService(repo, noopProducer)

	doc, err := svc.AddDocument(context.Background(), AddDocumentInput{
		Category: model.CategoryGeneral,
		Content:  strings.Repeat("x", 6000),
	})
	if err != nil {
		t.Fatalf("AddDocument failed: %v", err)
	}
	if len([]rune(doc.Content)) != maxContentChars {
		t.Errorf("content length = %d, want %d", len([]rune(doc.Content)), maxContentChars)
	}
}

func TestAddDocumentResumeKeywordInjection(t *testing.T) {
	repo := newMockKnowledgeRepository()
	svc := NewKnowledgeService(repo, noopProducer)

	doc, err := svc.AddDocument(context.Background(), AddDocumentInput{
		Category: model.CategoryUploaded,
		Content:  "Work experience and education history.",
		Metadata: model.DocumentMetadata{Source: "My_Resume.pdf"},
	})
	if err != nil {
		t.Fatalf("AddDocument failed: %v", err)
	}

	found := 0
	for _, kw := range doc.Keywords {
		if kw == "resume" {
			found++
		}
	}
	if found != 1 {
		t.Errorf("keyword 'resume' should appear exactly once, found %d in %v", found, doc.Keywords)
	}
}

func TestAddDocumentResumeKeywordNotDuplicated(t *testing.T) {
	repo := newMockKnowledgeRepository()
	svc := NewKnowledgeService(repo, noopProducer)

	// 正文已经包含 resume 时不能重复注入
	doc, err := svc.AddDocument(context.Background(), AddDocumentInput{
		Category: model.CategoryUploaded,
		Content:  "This resume lists work experience.",
		Metadata: model.DocumentMetadata{Source: "resume.txt"},
	})
	if err != nil {
		t.Fatalf("AddDocument failed: %v", err)
	}
	found := 0
	for _, kw := range doc.Keywords {
		if kw == "resume" {
			found++
		}
	}
	if found != 1 {
		t.Errorf("keyword 'resume' should appear exactly once, found %d in %v", found, doc.Keywords)
	}
}

func TestAddDocumentProducerFailureDoesNotFailCreate(t *testing.T) {
	repo := newMockKnowledgeRepository()
	producer := func(task tasks.DocumentIndexTask) error {
		return errors.New("kafka unavailable")
	}
	svc := NewKnowledgeService(repo, producer)

	doc, err := svc.AddDocument(context.Background(), AddDocumentInput{
		Category: model.CategoryFAQ,
		Content:  "content survives a broker outage",
	})
	if err != nil {
		t.Fatalf("AddDocument should not fail when the producer fails: %v", err)
	}
	if len(repo.created) != 1 || repo.created[0].ID != doc.ID {
		t.Errorf("document should still be persisted")
	}
}

func noopProducer(task tasks.DocumentIndexTask) error { return nil }
