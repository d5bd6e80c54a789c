// Package repository 定义了与数据库进行数据交换的接口和实现。
package repository

import (
	"context"
	"time"

	"educhat-go/internal/model"

	"gorm.io/gorm"
)

// ConversationRepository 接口定义了会话数据的持久化操作。
// 所有查询都以 userID 为范围，保证用户只能访问自己的会话。
type ConversationRepository interface {
	Create(ctx context.Context, conv *model.Conversation) error
	FindByIDAndUser(ctx context.Context, id string, userID uint) (*model.Conversation, error)
	FindSummaries(ctx context.Context, userID uint, limit int) ([]model.ConversationSummary, error)
	AppendMessages(ctx context.Context, conv *model.Conversation, messages []*model.Message) error
	Delete(ctx context.Context, id string, userID uint) (bool, error)
}

// conversationRepository 是 ConversationRepository 接口的 GORM 实现。
type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository 创建一个新的 ConversationRepository 实例。
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// Create 在数据库中创建一个新的会话记录（不含消息）。
func (r *conversationRepository) Create(ctx context.Context, conv *model.Conversation) error {
	return r.db.WithContext(ctx).Omit("Messages").Create(conv).Error
}

// FindByIDAndUser 按会话 ID 和所有者查找会话，预加载按 Seq 升序排列的消息。
func (r *conversationRepository) FindByIDAndUser(ctx context.Context, id string, userID uint) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq asc")
		}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// FindSummaries 返回用户的会话列表，按最近更新时间倒序，最多 limit 条。
func (r *conversationRepository) FindSummaries(ctx context.Context, userID uint, limit int) ([]model.ConversationSummary, error) {
	var summaries []model.ConversationSummary
	err := r.db.WithContext(ctx).
		Model(&model.Conversation{}).
		Select("id", "title", "created_at", "updated_at").
		Where("user_id = ?", userID).
		Order("updated_at desc").
		Limit(limit).
		Find(&summaries).Error
	return summaries, err
}

// AppendMessages 在一个事务中追加消息并刷新会话的 updated_at。
// 消息只追加，永不改写已有记录。
func (r *conversationRepository) AppendMessages(ctx context.Context, conv *model.Conversation, messages []*model.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, msg := range messages {
			msg.ConversationID = conv.ID
			if err := tx.Create(msg).Error; err != nil {
				return err
			}
		}
		now := time.Now()
		if err := tx.Model(&model.Conversation{}).
			Where("id = ?", conv.ID).
			Update("updated_at", now).Error; err != nil {
			return err
		}
		conv.UpdatedAt = now
		return nil
	})
}

// Delete 按会话 ID 和所有者整体删除会话及其消息。
// 返回是否确有记录被删除，用于区分 404。
func (r *conversationRepository) Delete(ctx context.Context, id string, userID uint) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Conversation{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return tx.Where("conversation_id = ?", id).Delete(&model.Message{}).Error
	})
	return deleted, err
}
