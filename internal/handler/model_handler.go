package handler

import (
	"net/http"

	"educhat-go/pkg/llm"
	"educhat-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// ModelHandler 负责透传上游可用模型列表。
type ModelHandler struct {
	llmClient llm.Client
}

// NewModelHandler 创建一个新的 ModelHandler 实例。
func NewModelHandler(llmClient llm.Client) *ModelHandler {
	return &ModelHandler{llmClient: llmClient}
}

// ListModels 把上游的模型列表原样返回给前端。
func (h *ModelHandler) ListModels(c *gin.Context) {
	raw, err := h.llmClient.ListModels(c.Request.Context())
	if err != nil {
		log.Error("ListModels: failed to fetch upstream models", err)
		c.JSON(http.StatusInternalServerError, internalError("failed to fetch models", err))
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}
