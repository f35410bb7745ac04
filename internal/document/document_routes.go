package document

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authMW gin.HandlerFunc) {
	upload := r.Group("/upload")
	upload.Use(authMW)
	{
		upload.POST("/user/:id/document", handler.UploadUserDocument)
		upload.POST("/project/:id/document", handler.UploadProjectDocument)
	}

	download := r.Group("/download")
	download.Use(authMW)
	{
		download.GET("/document/:entity_type/:entity_id/:doc_index", handler.Download)
	}
}
