// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"

	"educhat-go/internal/model"
	"educhat-go/internal/service"
	"educhat-go/pkg/llm"
	"educhat-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// ChatHandler 负责处理所有与对话相关的 API 请求。
type ChatHandler struct {
	chatService         service.ChatService
	conversationService service.ConversationService
}

// NewChatHandler 创建一个新的 ChatHandler 实例。
func NewChatHandler(chatService service.ChatService, conversationService service.ConversationService) *ChatHandler {
	return &ChatHandler{
		chatService:         chatService,
		conversationService: conversationService,
	}
}

// SendMessageRequest 定义了发送消息 API 的请求体结构。
type SendMessageRequest struct {
	ConversationID string `json:"conversationId"`
	Message        string `json:"message"`
}

// SendMessage 处理一次对话消息请求。
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	user := currentUser(c)
	result, err := h.chatService.SendMessage(c.Request.Context(), user.ID, req.ConversationID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "message cannot be empty"})
		case errors.Is(err, service.ErrConversationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
		case errors.Is(err, llm.ErrAllModelsFailed):
			c.JSON(http.StatusInternalServerError, internalError("failed to generate a response", err))
		default:
			log.Error("SendMessage: chat turn failed", err)
			c.JSON(http.StatusInternalServerError, internalError("internal server error", err))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversationId": result.ConversationID,
		"message": gin.H{
			"role":      result.Message.Role,
			"content":   result.Message.Content,
			"timestamp": result.Message.Timestamp,
		},
		"usedRAG": result.UsedRAG,
		// 对外只暴露引用数量，来源明细保留在服务层
		"sources": len(result.Sources),
	})
}

// ListConversations 返回当前用户的会话列表。
func (h *ChatHandler) ListConversations(c *gin.Context) {
	user := currentUser(c)
	summaries, err := h.conversationService.ListConversations(c.Request.Context(), user.ID)
	if err != nil {
		log.Error("ListConversations: failed to list conversations", err)
		c.JSON(http.StatusInternalServerError, internalError("internal server error", err))
		return
	}
	if summaries == nil {
		summaries = []model.ConversationSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"conversations": summaries})
}

// GetConversation 返回一个完整会话及其消息。
func (h *ChatHandler) GetConversation(c *gin.Context) {
	user := currentUser(c)
	conv, err := h.conversationService.GetConversation(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
			return
		}
		log.Error("GetConversation: failed to load conversation", err)
		c.JSON(http.StatusInternalServerError, internalError("internal server error", err))
		return
	}
	c.JSON(http.StatusOK, conv)
}

// DeleteConversation 删除一个会话及其消息。
func (h *ChatHandler) DeleteConversation(c *gin.Context) {
	user := currentUser(c)
	err := h.conversationService.DeleteConversation(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
			return
		}
		log.Error("DeleteConversation: failed to delete conversation", err)
		c.JSON(http.StatusInternalServerError, internalError("internal server error", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "conversation deleted"})
}

// currentUser 从 Gin 上下文中取出认证中间件注入的用户。
func currentUser(c *gin.Context) *model.User {
	userValue, _ := c.Get("user")
	return userValue.(*model.User)
}

// internalError 组装 500 响应体，下游原始错误只在非 release 模式下透出。
func internalError(msg string, err error) gin.H {
	body := gin.H{"error": msg}
	if gin.Mode() != gin.ReleaseMode {
		body["detail"] = err.Error()
	}
	return body
}
