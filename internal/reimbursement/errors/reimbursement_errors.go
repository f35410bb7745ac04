package reimbursementerrors

import (
	"net/http"

	"worklane/internal/shared/apperror"
)

var (
	ErrReimbursementNotFound = apperror.New(
		apperror.CodeNotFound,
		"reimbursement not found",
		http.StatusNotFound,
	)
	ErrInvalidReimbursementID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid reimbursement id",
		http.StatusBadRequest,
	)
	ErrReceiptRequired = apperror.New(
		apperror.CodeInvalidInput,
		"receipt file is required",
		http.StatusBadRequest,
	)
	ErrReceiptNotFound = apperror.New(
		apperror.CodeNotFound,
		"reimbursement has no receipt",
		http.StatusNotFound,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"you may only act on your own reimbursement",
		http.StatusForbidden,
	)
	ErrDeleteNotPending = apperror.New(
		apperror.CodeForbidden,
		"only pending reimbursements can be deleted",
		http.StatusForbidden,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"reimbursement has already been reviewed",
		http.StatusBadRequest,
	)
	ErrCommentsRequired = apperror.New(
		apperror.CodeInvalidInput,
		"comments are required when rejecting",
		http.StatusBadRequest,
	)
)
