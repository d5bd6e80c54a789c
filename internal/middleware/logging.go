package middleware

import (
	"time"

	"educhat-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// RequestLogger 是一个 Gin 中间件，用于记录请求级别的结构化日志。
// 聊天消息和上传文件可能包含敏感内容，这里只记录字节数，不落请求体。
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		latency := time.Since(startTime)
		log.Infow("HTTP Request Log",
			"statusCode", c.Writer.Status(),
			"latency", latency.String(),
			"clientIP", c.ClientIP(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"requestSize", c.Request.ContentLength,
			"responseSize", c.Writer.Size(),
		)
	}
}
