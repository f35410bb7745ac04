package document

import (
	"io"
	"net/http"
	"strconv"

	documenterrors "worklane/internal/document/errors"
	"worklane/internal/domain"
	"worklane/internal/middleware"
	"worklane/internal/shared/apperror"
	"worklane/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxDocumentSize caps uploaded documents at 10 MiB.
const maxDocumentSize = 10 << 20

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("document.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("document request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) readUpload(c *gin.Context) (domain.FileDocument, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.writeServiceError(c, documenterrors.ErrFileRequired)
		return domain.FileDocument{}, false
	}
	if fileHeader.Size > maxDocumentSize {
		h.writeServiceError(c, apperror.InvalidField("file", "file too large"))
		return domain.FileDocument{}, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.writeServiceError(c, err)
		return domain.FileDocument{}, false
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		h.writeServiceError(c, err)
		return domain.FileDocument{}, false
	}

	return domain.NewFileDocument(fileHeader.Filename, fileHeader.Header.Get("Content-Type"), raw), true
}

func (h *Handler) UploadUserDocument(c *gin.Context) {
	doc, ok := h.readUpload(c)
	if !ok {
		return
	}

	actor := middleware.PrincipalFromContext(c)
	idx, err := h.service.UploadUserDocument(c.Request.Context(), actor, c.Param("id"), doc)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"entity_type": EntityUser,
		"entity_id":   c.Param("id"),
		"doc_index":   idx,
		"filename":    doc.Filename,
	}, nil)
}

func (h *Handler) UploadProjectDocument(c *gin.Context) {
	doc, ok := h.readUpload(c)
	if !ok {
		return
	}

	actor := middleware.PrincipalFromContext(c)
	idx, err := h.service.UploadProjectDocument(c.Request.Context(), actor, c.Param("id"), doc)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"entity_type": EntityProject,
		"entity_id":   c.Param("id"),
		"doc_index":   idx,
		"filename":    doc.Filename,
	}, nil)
}

func (h *Handler) Download(c *gin.Context) {
	docIndex, err := strconv.Atoi(c.Param("doc_index"))
	if err != nil {
		h.writeServiceError(c, documenterrors.ErrInvalidDocIndex)
		return
	}

	actor := middleware.PrincipalFromContext(c)
	doc, err := h.service.Download(c.Request.Context(), actor, c.Param("entity_type"), c.Param("entity_id"), docIndex)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	raw, err := doc.Bytes()
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	c.Data(http.StatusOK, doc.ContentType, raw)
}
