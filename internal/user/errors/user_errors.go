package usererrors

import (
	"net/http"

	"worklane/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"email already exists",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidManagerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid reporting_manager_id",
		http.StatusBadRequest,
	)
	ErrFieldNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"your role may not modify this field",
		http.StatusForbidden,
	)
)
