package salary

import (
	"go-hrms/internal/access"
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz access.Authorizer) {
	salaries := r.Group("/salaries")
	{
		salaries.GET("", access.RequirePermission(authz, access.ObjSalary, access.ActRead), handler.GetAll)
		salaries.GET("/:profile_id", handler.GetByProfile)
		salaries.PUT("/:profile_id",
			access.RequirePermission(authz, access.ObjSalary, access.ActManage),
			middleware.RateLimitByUser(1, 5),
			handler.Upsert,
		)
	}
}
