package service

import (
	"context"
	"encoding/json"
	"io"

	"educhat-go/internal/model"

	"gorm.io/gorm"
)

// mockKnowledgeRepository 实现 repository.KnowledgeRepository 供测试使用。
type mockKnowledgeRepository struct {
	docs             map[string]model.KnowledgeDocument
	created          []*model.KnowledgeDocument
	createFn         func(doc *model.KnowledgeDocument) error
	searchFallbackFn func(query string, limit int) ([]model.KnowledgeDocument, error)
	findByIDsFn      func(ids []string) ([]model.KnowledgeDocument, error)
	findRecentFn     func(limit int) ([]model.KnowledgeDocument, error)
}

func newMockKnowledgeRepository() *mockKnowledgeRepository {
	return &mockKnowledgeRepository{docs: make(map[string]model.KnowledgeDocument)}
}

func (m *mockKnowledgeRepository) Create(ctx context.Context, doc *model.KnowledgeDocument) error {
	if m.createFn != nil {
		return m.createFn(doc)
	}
	m.docs[doc.ID] = *doc
	m.created = append(m.created, doc)
	return nil
}

func (m *mockKnowledgeRepository) FindByID(ctx context.Context, id string) (*model.KnowledgeDocument, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &doc, nil
}

func (m *mockKnowledgeRepository) FindByIDs(ctx context.Context, ids []string) ([]model.KnowledgeDocument, error) {
	if m.findByIDsFn != nil {
		return m.findByIDsFn(ids)
	}
	ordered := make([]model.KnowledgeDocument, 0, len(ids))
	for _, id := range ids {
		if doc, ok := m.docs[id]; ok {
			ordered = append(ordered, doc)
		}
	}
	return ordered, nil
}

func (m *mockKnowledgeRepository) SearchFallback(ctx context.Context, query string, limit int) ([]model.KnowledgeDocument, error) {
	if m.searchFallbackFn != nil {
		return m.searchFallbackFn(query, limit)
	}
	return nil, nil
}

func (m *mockKnowledgeRepository) FindRecent(ctx context.Context, limit int) ([]model.KnowledgeDocument, error) {
	if m.findRecentFn != nil {
		return m.findRecentFn(limit)
	}
	return nil, nil
}

func (m *mockKnowledgeRepository) DeleteAll(ctx context.Context) error {
	m.docs = make(map[string]model.KnowledgeDocument)
	return nil
}

// mockConversationRepository 实现 repository.ConversationRepository 供测试使用。
type mockConversationRepository struct {
	conversations    map[string]*model.Conversation
	appendMessagesFn func(conv *model.Conversation, messages []*model.Message) error
}

func newMockConversationRepository() *mockConversationRepository {
	return &mockConversationRepository{conversations: make(map[string]*model.Conversation)}
}

func (m *mockConversationRepository) Create(ctx context.Context, conv *model.Conversation) error {
	stored := *conv
	m.conversations[conv.ID] = &stored
	return nil
}

func (m *mockConversationRepository) FindByIDAndUser(ctx context.Context, id string, userID uint) (*model.Conversation, error) {
	conv, ok := m.conversations[id]
	if !ok || conv.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *conv
	return &copied, nil
}

func (m *mockConversationRepository) FindSummaries(ctx context.Context, userID uint, limit int) ([]model.ConversationSummary, error) {
	var summaries []model.ConversationSummary
	for _, conv := range m.conversations {
		if conv.UserID != userID {
			continue
		}
		summaries = append(summaries, model.ConversationSummary{ID: conv.ID, Title: conv.Title})
		if len(summaries) == limit {
			break
		}
	}
	return summaries, nil
}

func (m *mockConversationRepository) AppendMessages(ctx context.Context, conv *model.Conversation, messages []*model.Message) error {
	if m.appendMessagesFn != nil {
		return m.appendMessagesFn(conv, messages)
	}
	stored, ok := m.conversations[conv.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for _, msg := range messages {
		msg.ConversationID = conv.ID
		stored.Messages = append(stored.Messages, *msg)
	}
	return nil
}

func (m *mockConversationRepository) Delete(ctx context.Context, id string, userID uint) (bool, error) {
	conv, ok := m.conversations[id]
	if !ok || conv.UserID != userID {
		return false, nil
	}
	delete(m.conversations, id)
	return true, nil
}

// mockRetrieval 实现 RetrievalService 供测试使用。
type mockRetrieval struct {
	docs []model.KnowledgeDocument
}

func (m *mockRetrieval) Retrieve(ctx context.Context, query string, topK int) []model.KnowledgeDocument {
	if topK < len(m.docs) {
		return m.docs[:topK]
	}
	return m.docs
}

// mockLLMClient 实现 llm.Client 供测试使用。
type mockLLMClient struct {
	generateFn func(prompt, contextText string) (string, error)
	lastPrompt string
	lastCtx    string
}

func (m *mockLLMClient) Generate(ctx context.Context, prompt, contextText string) (string, error) {
	m.lastPrompt = prompt
	m.lastCtx = contextText
	if m.generateFn != nil {
		return m.generateFn(prompt, contextText)
	}
	return "mock reply", nil
}

func (m *mockLLMClient) ListModels(ctx context.Context) (json.RawMessage, error) {
	return json.RawMessage(`{"models":[]}`), nil
}

// mockExtractor 实现 TextExtractor 供测试使用。
type mockExtractor struct {
	extractFn func(fileName string) (string, error)
}

func (m *mockExtractor) ExtractText(fileReader io.Reader, fileName string) (string, error) {
	if m.extractFn != nil {
		return m.extractFn(fileName)
	}
	return "extracted text", nil
}
