package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pcl-checkout-api/internal/dto"
	"pcl-checkout-api/internal/logger"
)

// TraceAuditMiddleware 为提交链路生成 trace id 并在请求结束后落审计日志。
// multipart 原始 body 不复制进日志，凭证内容只留在对象存储
func TraceAuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := uuid.New().String()

		ctx := &dto.AuditContextPayload{
			TraceID:   traceID,
			Slug:      c.Param("slug"),
			IP:        c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
			StartTime: time.Now(),
		}
		c.Set("audit_ctx", ctx)
		c.Writer.Header().Set("X-Trace-ID", traceID)

		c.Next()

		ctx.LatencyMs = time.Since(ctx.StartTime).Milliseconds()
		logger.WritePaymentLog(ctx)
	}
}
