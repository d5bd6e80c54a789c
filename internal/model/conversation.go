// Package model 包含了应用的数据模型定义。
package model

import "time"

// MessageRole 是消息的角色，仅允许 user 与 bot 两种取值。
type MessageRole string

const (
	RoleUser MessageRole = "user"
	RoleBot  MessageRole = "bot"
)

// Valid 判断角色是否属于合法的枚举值。
func (r MessageRole) Valid() bool {
	return r == RoleUser || r == RoleBot
}

// Sentiment 是消息的情感标签。只对用户消息计算，bot 消息恒为 neutral。
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Valid 判断情感标签是否属于合法的枚举值。
func (s Sentiment) Valid() bool {
	return s == SentimentPositive || s == SentimentNeutral || s == SentimentNegative
}

// Message 对应于数据库中的 'messages' 表，是会话的单条消息。
// 消息按 Seq 追加写入，既不重排也不单独删除。
type Message struct {
	ID             uint        `gorm:"primaryKey;autoIncrement" json:"-"`
	ConversationID string      `gorm:"type:varchar(36);index;not null" json:"-"`
	Seq            int         `gorm:"not null" json:"-"`
	Role           MessageRole `gorm:"type:varchar(8);not null" json:"role"`
	Content        string      `gorm:"type:text;not null" json:"content"`
	Sentiment      Sentiment   `gorm:"type:varchar(8);not null;default:'neutral'" json:"sentiment"`
	Timestamp      time.Time   `gorm:"not null" json:"timestamp"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Message) TableName() string {
	return "messages"
}

// Conversation 对应于数据库中的 'conversations' 表。
// 一个会话归属于单个用户，所有读写都以 UserID 为范围。
type Conversation struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Title     string    `gorm:"type:varchar(100);not null" json:"title"`
	Messages  []Message `gorm:"foreignKey:ConversationID;references:ID" json:"messages"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Conversation) TableName() string {
	return "conversations"
}

// ConversationSummary 是会话列表接口返回的轻量视图。
type ConversationSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
