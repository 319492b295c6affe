package profileerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrProfileNotFound = apperror.New(
		apperror.CodeNotFound,
		"Profile not found",
		http.StatusNotFound,
	)
	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A profile with the same email already exists",
		http.StatusConflict,
	)
	ErrLoginIDAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Generated login ID is already taken",
		http.StatusConflict,
	)
	ErrEmployeeCodeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee code already exists in this company",
		http.StatusConflict,
	)
	ErrInvalidJoiningDate = apperror.New(
		apperror.CodeValidation,
		"invalid joining_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrNameTooShort = apperror.New(
		apperror.CodeValidation,
		"first and last name need at least two letters each",
		http.StatusBadRequest,
	)
	ErrCompanyNameUnusable = apperror.New(
		apperror.CodeInvalidState,
		"Company name needs at least two letters to issue login IDs",
		http.StatusConflict,
	)
	ErrLoginSerialExhausted = apperror.New(
		apperror.CodeConflict,
		"No login ID serials left for this company",
		http.StatusConflict,
	)
)
