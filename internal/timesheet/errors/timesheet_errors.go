package timesheeterrors

import (
	"net/http"

	"worklane/internal/shared/apperror"
)

var (
	ErrTimesheetNotFound = apperror.New(
		apperror.CodeNotFound,
		"timesheet not found",
		http.StatusNotFound,
	)
	ErrWeekAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"timesheet for this week already exists",
		http.StatusBadRequest,
	)
	ErrInvalidTimesheetID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid timesheet id",
		http.StatusBadRequest,
	)
	ErrInvalidWeekStart = apperror.New(
		apperror.CodeInvalidInput,
		"week_start must be an ISO date (YYYY-MM-DD)",
		http.StatusBadRequest,
	)
	ErrNotEditable = apperror.New(
		apperror.CodeForbidden,
		"submitted timesheets can only be edited by an admin or manager",
		http.StatusForbidden,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"you may only act on your own timesheet",
		http.StatusForbidden,
	)
	ErrDeleteNotDraft = apperror.New(
		apperror.CodeForbidden,
		"only draft timesheets can be deleted",
		http.StatusForbidden,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid timesheet status transition",
		http.StatusBadRequest,
	)
	ErrCommentsRequired = apperror.New(
		apperror.CodeInvalidInput,
		"comments are required when rejecting",
		http.StatusBadRequest,
	)
)
