package middleware

import (
	"go-hrms/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextLogger attaches a logger tagged with request_id and user_id to the
// request context so services can log through contextutil.GetLogger.
// Mount it after Identity so the user id is known.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetString(ContextRequestID)
		if rid == "" {
			rid = c.GetHeader(HeaderRequestID)
		}
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Header(HeaderRequestID, rid)

		ctx := contextutil.WithRequestID(c.Request.Context(), rid)
		ctx = contextutil.WithUserID(ctx, c.GetString(ContextUserID))
		ctx = contextutil.WithLogger(ctx, logger.With(contextutil.Fields(ctx)...))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
