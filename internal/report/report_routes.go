package report

import (
	"worklane/internal/domain"
	"worklane/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authMW gin.HandlerFunc) {
	reports := r.Group("/reports")
	reports.Use(authMW, middleware.RequireRole(domain.RoleAdmin, domain.RoleManager))
	{
		reports.GET("/timesheet-summary", handler.TimesheetSummary)
		reports.GET("/project-hours", handler.ProjectHours)
		reports.GET("/export/timesheets", handler.ExportTimesheets)
		reports.GET("/export/leaves", handler.ExportLeaves)
	}
}
