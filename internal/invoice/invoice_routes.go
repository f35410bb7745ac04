package invoice

import (
	"worklane/internal/domain"
	"worklane/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authMW gin.HandlerFunc) {
	invoices := r.Group("/invoices")
	invoices.Use(authMW, middleware.RequireRole(domain.RoleAdmin, domain.RoleManager))
	{
		invoices.GET("", handler.GetAll)
		invoices.GET("/:id", handler.GetById)
		invoices.POST("", handler.Create)
		invoices.PUT("/:id", handler.Update)
		invoices.DELETE("/:id", handler.Delete)
	}
}
