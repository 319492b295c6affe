package salary

import (
	"errors"
	"fmt"

	"go-hrms/internal/messaging/kafka/consumer"
	salaryerrors "go-hrms/internal/salary/errors"
	"go-hrms/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func isDuplicateSalary(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_salary_profile"
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salaryerrors.ErrSalaryNotFound
	}
	if isDuplicateSalary(err) {
		return salaryerrors.ErrSalaryAlreadyExists
	}
	return apperror.Store(err)
}

// mapProvisionError reports duplicates as consumer.ErrAlreadyProvisioned so
// redelivered events are committed instead of retried.
func mapProvisionError(err error) error {
	if isDuplicateSalary(err) {
		return fmt.Errorf("salary for profile: %w", consumer.ErrAlreadyProvisioned)
	}
	return apperror.Store(err)
}
