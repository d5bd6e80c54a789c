package service

import (
	"context"
	"errors"

	"educhat-go/internal/model"
	"educhat-go/internal/repository"
	"educhat-go/pkg/log"

	"gorm.io/gorm"
)

// maxConversationList 是会话列表接口返回条数的上限。
const maxConversationList = 20

// ConversationService 提供会话历史的查询和删除。
type ConversationService interface {
	ListConversations(ctx context.Context, userID uint) ([]model.ConversationSummary, error)
	GetConversation(ctx context.Context, id string, userID uint) (*model.Conversation, error)
	DeleteConversation(ctx context.Context, id string, userID uint) error
}

type conversationService struct {
	conversationRepo repository.ConversationRepository
}

// NewConversationService 创建一个新的 ConversationService 实例。
func NewConversationService(conversationRepo repository.ConversationRepository) ConversationService {
	return &conversationService{conversationRepo: conversationRepo}
}

// ListConversations 返回当前用户最近更新的会话摘要，最多 20 条。
func (s *conversationService) ListConversations(ctx context.Context, userID uint) ([]model.ConversationSummary, error) {
	return s.conversationRepo.FindSummaries(ctx, userID, maxConversationList)
}

// GetConversation 返回归属当前用户的完整会话，消息按序号升序排列。
func (s *conversationService) GetConversation(ctx context.Context, id string, userID uint) (*model.Conversation, error) {
	conv, err := s.conversationRepo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return conv, nil
}

// DeleteConversation 删除归属当前用户的会话及其全部消息。
func (s *conversationService) DeleteConversation(ctx context.Context, id string, userID uint) error {
	deleted, err := s.conversationRepo.Delete(ctx, id, userID)
	if err != nil {
		log.Errorf("[ConversationService] 删除会话失败, id: %s, userID: %d, error: %v", id, userID, err)
		return err
	}
	if !deleted {
		return ErrConversationNotFound
	}
	return nil
}
