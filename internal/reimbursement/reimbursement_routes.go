package reimbursement

import (
	"worklane/internal/domain"
	"worklane/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authMW gin.HandlerFunc) {
	reimbursements := r.Group("/reimbursements")
	reimbursements.Use(authMW)
	{
		reimbursements.GET("", handler.GetAll)
		reimbursements.POST("", handler.Create)
		reimbursements.POST("/with-file", handler.CreateWithFile)
		reimbursements.GET("/:id/download", handler.DownloadReceipt)
		reimbursements.DELETE("/:id", handler.Delete)
		reimbursements.POST("/:id/approve", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), handler.Approve)
		reimbursements.POST("/:id/reject", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), handler.Reject)
	}
}
