package leave

import (
	"worklane/internal/domain"
	"worklane/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authMW gin.HandlerFunc) {
	leaves := r.Group("/leaves")
	leaves.Use(authMW)
	{
		leaves.GET("", handler.GetAll)
		leaves.POST("", handler.Create)
		leaves.DELETE("/:id", handler.Delete)
		leaves.POST("/:id/approve", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), handler.Approve)
		leaves.POST("/:id/reject", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), handler.Reject)
	}
}
