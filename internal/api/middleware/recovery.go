package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mbramani/coders-boutique-task/pkg/response"
)

// Recovery panic 恢复中间件：记录堆栈并返回统一 500 信封
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("请求处理 panic",
			zap.String("request_id", GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
			zap.Stack("stack"),
		)
		response.InternalError(c, "Internal server error", "An unexpected error occurred")
		c.Abort()
	})
}
