package projecterrors

import (
	"net/http"

	"worklane/internal/shared/apperror"
)

var (
	ErrProjectNotFound = apperror.New(
		apperror.CodeNotFound,
		"project not found",
		http.StatusNotFound,
	)
	ErrProjectCodeExists = apperror.New(
		apperror.CodeConflict,
		"project code already exists",
		http.StatusBadRequest,
	)
	ErrInvalidProjectID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid project id",
		http.StatusBadRequest,
	)
	ErrInvalidManagerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid project_manager_id",
		http.StatusBadRequest,
	)
)
