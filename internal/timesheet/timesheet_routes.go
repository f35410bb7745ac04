package timesheet

import (
	"worklane/internal/domain"
	"worklane/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authMW gin.HandlerFunc) {
	timesheets := r.Group("/timesheets")
	timesheets.Use(authMW)
	{
		timesheets.GET("", handler.GetAll)
		timesheets.GET("/:id", handler.GetById)
		timesheets.POST("", handler.Create)
		timesheets.PUT("/:id", handler.Update)
		timesheets.DELETE("/:id", handler.Delete)
		timesheets.POST("/:id/submit", handler.Submit)
		timesheets.POST("/:id/approve", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), handler.Approve)
		timesheets.POST("/:id/reject", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), handler.Reject)
	}
}
