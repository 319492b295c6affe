package apperror_test

import (
	"errors"
	"testing"

	"go-hrms/internal/shared/apperror"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	LeaveType   string `json:"leave_type" binding:"required,oneof=paid_leave sick_leave"`
	StartDate   string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	MonthlyWage string `json:"monthly_wage" binding:"omitempty,money"`
	Email       string `json:"email" binding:"omitempty,email"`
}

func TestMapValidationError(t *testing.T) {
	apperror.Init()

	cases := []struct {
		name string
		in   sample
		want string
	}{
		{"required", sample{}, "Leave Type is required"},
		{"oneof", sample{LeaveType: "vacation"}, "Leave Type is invalid"},
		{"datetime", sample{LeaveType: "paid_leave", StartDate: "10/06/2024"}, "Start Date must be a date in YYYY-MM-DD format"},
		{"money", sample{LeaveType: "paid_leave", MonthlyWage: "-5"}, "Monthly Wage must be a non-negative amount"},
		{"email", sample{LeaveType: "paid_leave", Email: "nope"}, "Email must be a valid email address"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tc.in)

			appErr := apperror.MapValidationError(err)

			assert.Equal(t, apperror.CodeValidation, appErr.Code)
			assert.Equal(t, tc.want, appErr.Message)
		})
	}

	t.Run("non validator error", func(t *testing.T) {
		appErr := apperror.MapValidationError(errors.New("unexpected EOF"))

		assert.Equal(t, apperror.CodeValidation, appErr.Code)
		assert.Equal(t, apperror.ErrValidation.Message, appErr.Message)
	})
}
