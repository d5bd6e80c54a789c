package handler

import (
	"errors"
	"net/http"

	"educhat-go/internal/model"
	"educhat-go/internal/service"
	"educhat-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// RagHandler 负责处理知识库相关的 API 请求。
type RagHandler struct {
	uploadService    service.UploadService
	knowledgeService service.KnowledgeService
}

// NewRagHandler 创建一个新的 RagHandler 实例。
func NewRagHandler(uploadService service.UploadService, knowledgeService service.KnowledgeService) *RagHandler {
	return &RagHandler{
		uploadService:    uploadService,
		knowledgeService: knowledgeService,
	}
}

// Upload 处理文件上传入库请求，表单字段名为 file。
func (h *RagHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Upload: failed to open uploaded file", err)
		c.JSON(http.StatusInternalServerError, internalError("internal server error", err))
		return
	}
	defer file.Close()

	user := currentUser(c)
	result, err := h.uploadService.UploadDocument(c.Request.Context(), fileHeader.Filename, fileHeader.Size, file, user.Username)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFile) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error("Upload: failed to ingest document", err)
		c.JSON(http.StatusInternalServerError, internalError("internal server error", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Document uploaded and added to knowledge base",
		"document": gin.H{
			"id":       result.DocumentID,
			"filename": result.Filename,
			"category": result.Category,
		},
	})
}

// ListKnowledgeBase 返回最新入库的知识库文档。
func (h *RagHandler) ListKnowledgeBase(c *gin.Context) {
	docs, err := h.knowledgeService.ListDocuments(c.Request.Context())
	if err != nil {
		log.Error("ListKnowledgeBase: failed to list documents", err)
		c.JSON(http.StatusInternalServerError, internalError("internal server error", err))
		return
	}
	if docs == nil {
		docs = []model.KnowledgeDocument{}
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(docs),
		"documents": docs,
	})
}
