package salary

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Salary is the current monthly wage of a profile; one row per profile.
type Salary struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID     uuid.UUID       `gorm:"column:company_id;type:uuid;not null;index"`
	ProfileID     uuid.UUID       `gorm:"column:profile_id;type:uuid;not null;uniqueIndex:uq_salary_profile"`
	MonthlyWage   decimal.Decimal `gorm:"column:monthly_wage;type:numeric(14,2);not null"`
	EffectiveDate time.Time       `gorm:"column:effective_date;type:date;not null"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
	ProfileName   string          `gorm:"column:profile_name;->"`
}

func (Salary) TableName() string {
	return "salaries"
}
