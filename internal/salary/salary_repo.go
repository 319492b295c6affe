package salary

import (
	"context"
	"database/sql"

	"go-hrms/internal/shared/connection"
	"go-hrms/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=salary_repo.go -destination=mock/salary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Salary) error
	Upsert(ctx context.Context, s *Salary) error
	FindByProfile(ctx context.Context, companyID, profileID string) (*Salary, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]Salary, error)
	ProfileCompanyID(ctx context.Context, profileID string) (string, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return connection.Bind(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, s *Salary) error {
	return r.conn(ctx).Create(s).Error
}

// Upsert replaces the wage and effective date of the profile's salary row.
func (r *repository) Upsert(ctx context.Context, s *Salary) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"monthly_wage", "effective_date", "updated_at"}),
		}).
		Create(s).Error
}

func (r *repository) FindByProfile(ctx context.Context, companyID, profileID string) (*Salary, error) {
	var s Salary
	err := r.conn(ctx).
		Table("salaries").
		Select("salaries.*, profiles.full_name AS profile_name").
		Joins("JOIN profiles ON profiles.id = salaries.profile_id").
		Scopes(tenant.Scope(companyID, "salaries")).
		Where("salaries.profile_id = ?", profileID).
		First(&s).Error
	return &s, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Salary, error) {
	var rows []Salary
	query := `
SELECT
	salaries.*,
	profiles.full_name AS profile_name
FROM salaries
JOIN profiles ON profiles.id = salaries.profile_id
WHERE salaries.company_id = ?
ORDER BY profiles.full_name ASC
`
	err := r.conn(ctx).Raw(query, companyID).Scan(&rows).Error
	return rows, err
}

func (r *repository) ProfileCompanyID(ctx context.Context, profileID string) (string, error) {
	var companyID string
	res := r.conn(ctx).
		Table("profiles").
		Select("company_id").
		Where("id = ?", profileID).
		Limit(1).
		Scan(&companyID)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", gorm.ErrRecordNotFound
	}
	return companyID, nil
}
