package profile

import (
	"errors"

	"go-hrms/internal/credential"
	profileerrors "go-hrms/internal/profile/errors"
	"go-hrms/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return profileerrors.ErrProfileNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_profile_email":
			return profileerrors.ErrEmailAlreadyExists
		case "uq_profile_login_id":
			return profileerrors.ErrLoginIDAlreadyExists
		case "uq_profile_employee_code":
			return profileerrors.ErrEmployeeCodeAlreadyExists
		}
	}

	return apperror.Store(err)
}

func mapLoginIDError(err error) error {
	switch {
	case errors.Is(err, credential.ErrCompanyNameTooShort):
		return profileerrors.ErrCompanyNameUnusable
	case errors.Is(err, credential.ErrPersonNameTooShort):
		return profileerrors.ErrNameTooShort
	case errors.Is(err, credential.ErrYearOutOfRange):
		return profileerrors.ErrInvalidJoiningDate
	case errors.Is(err, credential.ErrSerialOutOfRange):
		return profileerrors.ErrLoginSerialExhausted
	}
	return apperror.ErrInternal
}
