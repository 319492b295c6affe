package attendance

import (
	"go-hrms/internal/access"
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects r to already carry the identity and access.Resolve middleware.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz access.Authorizer) {
	readAll := access.RequirePermission(authz, access.ObjAttendance, access.ActReadAll)

	att := r.Group("/attendance")
	{
		att.POST("/check-in", middleware.RateLimitByUser(0.2, 3), handler.CheckIn)
		att.POST("/check-out", middleware.RateLimitByUser(0.2, 3), handler.CheckOut)
		att.GET("/today", handler.Today)
		att.GET("", readAll, handler.ByDate)
		att.GET("/range", readAll, handler.ByRange)
		att.GET("/range/export", middleware.RateLimitByUser(0.1, 2), readAll, handler.ExportRange)
	}
}
