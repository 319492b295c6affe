package attendanceerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrOnApprovedLeave = apperror.New(
		apperror.CodeOnApprovedLeave,
		"check-in is blocked by an approved leave for today",
		http.StatusConflict,
	)
	ErrNoCheckIn = apperror.New(
		apperror.CodeNoCheckIn,
		"no check-in recorded for today",
		http.StatusConflict,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeValidation,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidRange = apperror.New(
		apperror.CodeValidation,
		"to must not be before from",
		http.StatusBadRequest,
	)
	ErrRangeTooLong = apperror.New(
		apperror.CodeValidation,
		"date range must not exceed 366 days",
		http.StatusBadRequest,
	)
)
