package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-hrms/internal/shared/connection"
	"go-hrms/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByProfileAndDate(ctx context.Context, profileID string, date time.Time) (*Record, error)
	UpsertCheckIn(ctx context.Context, r *Record) error
	SetCheckOut(ctx context.Context, id string, at time.Time) error
	HasApprovedLeaveOn(ctx context.Context, profileID string, date time.Time) (bool, error)
	SetProfileAttendanceStatus(ctx context.Context, profileID, status string) error
	FindByCompanyAndDate(ctx context.Context, companyID string, date time.Time) ([]Record, error)
	FindByCompanyAndRange(ctx context.Context, companyID string, from, to time.Time) ([]Record, error)
	CompanyName(ctx context.Context, companyID string) (string, error)
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

func (r *repository) FindByProfileAndDate(ctx context.Context, profileID string, date time.Time) (*Record, error) {
	var rec Record
	err := r.conn(ctx).
		Where("profile_id = ?", profileID).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		First(&rec).Error
	return &rec, err
}

// UpsertCheckIn creates today's row or overwrites the check-in time and status
// of the existing one. check_out_time is left as it was.
func (r *repository) UpsertCheckIn(ctx context.Context, rec *Record) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_id"}, {Name: "attendance_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"check_in_time", "status", "updated_at"}),
		}).
		Omit(clause.Associations).
		Create(rec).Error
}

func (r *repository) SetCheckOut(ctx context.Context, id string, at time.Time) error {
	return r.conn(ctx).
		Model(&Record{}).
		Where("id = ?", id).
		Updates(map[string]any{"check_out_time": at}).Error
}

func (r *repository) HasApprovedLeaveOn(ctx context.Context, profileID string, date time.Time) (bool, error) {
	var count int64
	day := date.Format("2006-01-02")
	err := r.conn(ctx).
		Table("leave_requests").
		Where("profile_id = ?", profileID).
		Where("status = ?", "approved").
		Where("start_date <= ? AND end_date >= ?", day, day).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) SetProfileAttendanceStatus(ctx context.Context, profileID, status string) error {
	return r.conn(ctx).
		Table("profiles").
		Where("id = ?", profileID).
		Update("attendance_status", status).Error
}

func (r *repository) FindByCompanyAndDate(ctx context.Context, companyID string, date time.Time) ([]Record, error) {
	var rows []Record
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Profile").
		Where("attendance_date = ?", date.Format("2006-01-02")).
		Order("check_in_time DESC NULLS LAST").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByCompanyAndRange(ctx context.Context, companyID string, from, to time.Time) ([]Record, error) {
	var rows []Record
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Profile").
		Where("attendance_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("attendance_date DESC, check_in_time DESC NULLS LAST").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CompanyName(ctx context.Context, companyID string) (string, error) {
	var name string
	err := r.conn(ctx).
		Table("companies").
		Select("name").
		Where("id = ?", companyID).
		Scan(&name).Error
	return name, err
}
