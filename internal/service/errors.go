// Package service 包含了应用的业务逻辑层。
package service

import "errors"

// 业务层的哨兵错误，handler 据此映射 HTTP 状态码。
var (
	// ErrEmptyMessage 表示聊天消息为空或仅含空白字符。
	ErrEmptyMessage = errors.New("message cannot be empty")
	// ErrConversationNotFound 表示会话不存在，或不归属于当前用户。
	ErrConversationNotFound = errors.New("conversation not found")
	// ErrInvalidCategory 表示文档分类不在合法的枚举集合内。
	ErrInvalidCategory = errors.New("invalid knowledge category")
	// ErrEmptyContent 表示文档内容为空，违反知识库不变式。
	ErrEmptyContent = errors.New("document content cannot be empty")
	// ErrInvalidFile 表示上传文件未通过大小或类型校验。
	ErrInvalidFile = errors.New("invalid upload file")
)
