package user

import (
	"worklane/internal/domain"
	"worklane/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authMW gin.HandlerFunc) {
	users := r.Group("/users")
	users.Use(authMW)
	{
		users.GET("", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), handler.GetAll)
		users.POST("", middleware.RequireRole(domain.RoleAdmin), handler.Create)
		users.GET("/:id", handler.GetById)
		users.PUT("/:id", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), handler.Update)
		users.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), handler.Delete)
	}
}
