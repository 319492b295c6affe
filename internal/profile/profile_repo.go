package profile

import (
	"context"
	"database/sql"
	"time"

	"go-hrms/internal/shared/connection"
	"go-hrms/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=profile_repo.go -destination=mock/profile_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Profile) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Profile, error)
	FindOptionsByCompany(ctx context.Context, companyID string) ([]Profile, error)
	FindByID(ctx context.Context, id string) (*Profile, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
	ClearFirstLogin(ctx context.Context, id string, at time.Time) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return connection.Bind(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, p *Profile) error {
	return r.conn(ctx).Create(p).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Profile, error) {
	var rows []Profile
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("full_name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindOptionsByCompany(ctx context.Context, companyID string) ([]Profile, error) {
	var rows []Profile
	err := r.conn(ctx).
		Select("id", "full_name").
		Scopes(tenant.Scope(companyID)).
		Order("full_name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	err := r.conn(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Profile, error) {
	var p Profile
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) Update(ctx context.Context, p *Profile) error {
	return r.conn(ctx).Save(p).Error
}

func (r *repository) ClearFirstLogin(ctx context.Context, id string, at time.Time) error {
	return r.conn(ctx).
		Model(&Profile{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_first_login": false, "updated_at": at}).Error
}
