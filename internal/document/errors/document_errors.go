package documenterrors

import (
	"net/http"

	"worklane/internal/shared/apperror"
)

var (
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"document not found",
		http.StatusNotFound,
	)
	ErrInvalidEntityType = apperror.New(
		apperror.CodeInvalidInput,
		"entity_type must be user or project",
		http.StatusBadRequest,
	)
	ErrInvalidEntityID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid entity id",
		http.StatusBadRequest,
	)
	ErrInvalidDocIndex = apperror.New(
		apperror.CodeInvalidInput,
		"doc_index must be a non-negative integer",
		http.StatusBadRequest,
	)
	ErrFileRequired = apperror.New(
		apperror.CodeInvalidInput,
		"file is required",
		http.StatusBadRequest,
	)
	ErrNotOwnRecord = apperror.New(
		apperror.CodeForbidden,
		"you may only upload documents to your own record",
		http.StatusForbidden,
	)
)
