package project

import (
	"worklane/internal/domain"
	"worklane/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authMW gin.HandlerFunc) {
	projects := r.Group("/projects")
	projects.Use(authMW)
	{
		projects.GET("", handler.GetAll)
		projects.GET("/:id", handler.GetById)
		projects.POST("", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), handler.Create)
		projects.PUT("/:id", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), handler.Update)
		projects.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), handler.Delete)
	}
}
