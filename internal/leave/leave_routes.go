package leave

import (
	"go-hrms/internal/access"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects r to already carry the identity and access.Resolve middleware.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz access.Authorizer) {
	canDecide := access.RequirePermission(authz, access.ObjLeave, access.ActApprove)

	leaves := r.Group("/leaves")
	{
		leaves.POST("", handler.Create)
		leaves.GET("", handler.GetMine)
		leaves.GET("/all", canDecide, handler.GetAll)
		leaves.GET("/balances", handler.GetBalances)
		leaves.GET("/:id", handler.GetByID)
		leaves.POST("/:id/cancel", handler.Cancel)
		leaves.POST("/:id/approve", canDecide, handler.Approve)
		leaves.POST("/:id/reject", canDecide, handler.Reject)
	}

	r.PUT("/leave-allocations", access.RequirePermission(authz, access.ObjAllocation, access.ActManage), handler.SetAllocation)
}
