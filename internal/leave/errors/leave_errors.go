package leaveerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrLeaveTypeRequired = apperror.New(
		apperror.CodeValidation,
		"leave_type is required",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeValidation,
		"leave_type must be one of paid_leave, sick_leave, unpaid_leave, casual_leave",
		http.StatusBadRequest,
	)
	ErrDatesRequired = apperror.New(
		apperror.CodeValidation,
		"start_date and end_date are required",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeValidation,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeValidation,
		"end_date must not be before start_date",
		http.StatusBadRequest,
	)
	ErrRangeTooLong = apperror.New(
		apperror.CodeValidation,
		"a leave request may span at most 366 days",
		http.StatusBadRequest,
	)
	ErrInvalidProfileID = apperror.New(
		apperror.CodeValidation,
		"invalid profile id",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeValidation,
		"year is invalid",
		http.StatusBadRequest,
	)
	ErrInvalidTotalDays = apperror.New(
		apperror.CodeValidation,
		"total_days must not be negative",
		http.StatusBadRequest,
	)
	ErrAllocationMissing = apperror.New(
		apperror.CodeAllocationMissing,
		"no leave allocation for this leave type and year",
		http.StatusUnprocessableEntity,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInsufficientBalance,
		"requested days exceed the remaining leave balance",
		http.StatusUnprocessableEntity,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrProfileNotFound = apperror.New(
		apperror.CodeNotFound,
		"profile not found",
		http.StatusNotFound,
	)
	ErrNotPending = apperror.New(
		apperror.CodeInvalidState,
		"leave request is no longer pending",
		http.StatusConflict,
	)
)
