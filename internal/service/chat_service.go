package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"educhat-go/internal/model"
	"educhat-go/internal/repository"
	"educhat-go/pkg/llm"
	"educhat-go/pkg/log"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// maxTitleChars 是会话标题的最大长度（取首条消息前 50 字符）。
	maxTitleChars = 50
	// recentMessageWindow 是拼入提示词的近期消息条数。
	recentMessageWindow = 5
)

// ChatTurnResult 是一次对话轮次的处理结果。
type ChatTurnResult struct {
	ConversationID string
	Message        *model.Message
	UsedRAG        bool
	Sources        []SourceRef
}

// SourceRef 标识回复所引用的一个知识库来源。
// 仅供服务内部与日志使用，HTTP 响应只携带数量。
type SourceRef struct {
	ID       string
	Category model.Category
}

// ChatService 负责对话轮次的编排。
type ChatService interface {
	SendMessage(ctx context.Context, userID uint, conversationID, message string) (*ChatTurnResult, error)
}

type chatService struct {
	conversationRepo repository.ConversationRepository
	retrieval        RetrievalService
	llmClient        llm.Client
	topK             int
}

// NewChatService 创建一个新的 ChatService 实例。
func NewChatService(conversationRepo repository.ConversationRepository, retrieval RetrievalService, llmClient llm.Client, topK int) ChatService {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &chatService{
		conversationRepo: conversationRepo,
		retrieval:        retrieval,
		llmClient:        llmClient,
		topK:             topK,
	}
}

// SendMessage 处理一次完整的对话轮次：
// 定位或新建会话，检索知识库构造上下文，先落库用户消息再调用生成，
// 最后追加机器人回复。检索失败不阻断对话，生成时总是带上已有的上下文。
// 用户消息先于生成落库，生成失败时该消息保留，用户重试不丢历史。
func (s *chatService) SendMessage(ctx context.Context, userID uint, conversationID, message string) (*ChatTurnResult, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return nil, ErrEmptyMessage
	}

	conv, isNew, err := s.resolveConversation(ctx, userID, conversationID, trimmed)
	if err != nil {
		return nil, err
	}

	// 检索阶段失败已在内部降级为空结果
	docs := s.retrieval.Retrieve(ctx, trimmed, s.topK)
	ragContext := buildContext(docs)
	usedRAG := len(docs) > 0

	sources := make([]SourceRef, 0, len(docs))
	for _, doc := range docs {
		sources = append(sources, SourceRef{ID: doc.ID, Category: doc.Category})
	}

	userMsg := &model.Message{
		ConversationID: conv.ID,
		Seq:            len(conv.Messages) + 1,
		Role:           model.RoleUser,
		Content:        trimmed,
		Sentiment:      analyzeSentiment(trimmed),
		Timestamp:      time.Now(),
	}
	if err := s.conversationRepo.AppendMessages(ctx, conv, []*model.Message{userMsg}); err != nil {
		log.Errorf("[ChatService] 保存用户消息失败, conversationID: %s, error: %v", conv.ID, err)
		return nil, err
	}
	conv.Messages = append(conv.Messages, *userMsg)

	fullContext := s.assembleContext(ragContext, conv.Messages)

	reply, err := s.llmClient.Generate(ctx, trimmed, fullContext)
	if err != nil {
		log.Errorf("[ChatService] 生成回复失败, conversationID: %s, error: %v", conv.ID, err)
		return nil, err
	}

	botMsg := &model.Message{
		ConversationID: conv.ID,
		Seq:            len(conv.Messages) + 1,
		Role:           model.RoleBot,
		Content:        reply,
		Sentiment:      model.SentimentNeutral,
		Timestamp:      time.Now(),
	}
	if err := s.conversationRepo.AppendMessages(ctx, conv, []*model.Message{botMsg}); err != nil {
		log.Errorf("[ChatService] 保存机器人回复失败, conversationID: %s, error: %v", conv.ID, err)
		return nil, err
	}

	log.Infof("[ChatService] 对话轮次完成, conversationID: %s, new: %t, usedRAG: %t, sources: %d",
		conv.ID, isNew, usedRAG, len(sources))

	return &ChatTurnResult{
		ConversationID: conv.ID,
		Message:        botMsg,
		UsedRAG:        usedRAG,
		Sources:        sources,
	}, nil
}

// resolveConversation 按 ID 加载归属当前用户的会话，ID 为空时新建，
// 新会话标题取首条消息的前 50 字符。
func (s *chatService) resolveConversation(ctx context.Context, userID uint, conversationID, firstMessage string) (*model.Conversation, bool, error) {
	if conversationID != "" {
		conv, err := s.conversationRepo.FindByIDAndUser(ctx, conversationID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, false, ErrConversationNotFound
			}
			return nil, false, err
		}
		return conv, false, nil
	}

	conv := &model.Conversation{
		ID:     uuid.NewString(),
		UserID: userID,
		Title:  truncateRunes(firstMessage, maxTitleChars),
	}
	if err := s.conversationRepo.Create(ctx, conv); err != nil {
		log.Errorf("[ChatService] 创建会话失败, userID: %d, error: %v", userID, err)
		return nil, false, err
	}
	return conv, true, nil
}

// assembleContext 把检索上下文和近期对话拼成生成用的完整上下文。
func (s *chatService) assembleContext(ragContext string, messages []model.Message) string {
	start := len(messages) - recentMessageWindow
	if start < 0 {
		start = 0
	}
	recent := renderRecentMessages(messages[start:])
	if recent == "" {
		return ragContext
	}
	return fmt.Sprintf("%s\n\nRecent Conversation:\n%s", ragContext, recent)
}
