package profile

import (
	"go-hrms/internal/access"
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects r to already carry the identity and access.Resolve middleware.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz access.Authorizer) {
	canManage := access.RequirePermission(authz, access.ObjEmployee, access.ActManage)

	me := r.Group("/me")
	{
		me.GET("", handler.Me)
		me.PUT("", middleware.RateLimitByUser(0.5, 2), handler.UpdateMe)
		me.POST("/first-login", handler.CompleteFirstLogin)
	}

	profiles := r.Group("/profiles")
	{
		profiles.GET("",
			middleware.RateLimitByUser(3, 10),
			handler.GetAll,
		)

		profiles.GET("/options",
			middleware.RateLimitByUser(5, 20),
			handler.GetOptions,
		)

		profiles.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			handler.GetByID,
		)

		profiles.POST("",
			middleware.RateLimitByUser(0.2, 2),
			canManage,
			handler.Create,
		)

		profiles.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			canManage,
			handler.Update,
		)
	}
}
