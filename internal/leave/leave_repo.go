package leave

import (
	"context"
	"database/sql"

	"go-hrms/internal/attendance"
	"go-hrms/internal/shared/connection"
	"go-hrms/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindByIDForUpdate(ctx context.Context, id string) (*LeaveRequest, error)
	FindAllByProfile(ctx context.Context, profileID string) ([]LeaveRequest, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]LeaveRequest, error)
	Decide(ctx context.Context, id string, d Decision) (bool, error)

	FindAllocation(ctx context.Context, profileID, leaveType string, year int) (*LeaveAllocation, error)
	FindAllocationsByProfile(ctx context.Context, profileID string, year int) ([]LeaveAllocation, error)
	IncrementAllocationUsage(ctx context.Context, companyID, profileID, leaveType string, year, days int) (*LeaveAllocation, error)
	UpsertAllocationTotal(ctx context.Context, a *LeaveAllocation) error
	SeedAllocations(ctx context.Context, allocations []LeaveAllocation) error

	UpsertOnLeaveAttendance(ctx context.Context, rows []attendance.Record) error
	SetProfileAttendanceStatus(ctx context.Context, profileID, status string) error
	ProfileCompanyID(ctx context.Context, profileID string) (string, error)
}

const onLeaveBatchSize = 500

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

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.conn(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.conn(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindAllByProfile(ctx context.Context, profileID string) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.conn(ctx).
		Where("profile_id = ?", profileID).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

// Decide closes a request only while it is still pending. It reports false
// when another caller already moved it.
func (r *repository) Decide(ctx context.Context, id string, d Decision) (bool, error) {
	res := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]any{
			"status":           d.Status,
			"approved_by":      d.DecidedBy,
			"approved_at":      d.DecidedAt,
			"rejection_reason": d.RejectionReason,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) FindAllocation(ctx context.Context, profileID, leaveType string, year int) (*LeaveAllocation, error) {
	var a LeaveAllocation
	err := r.conn(ctx).
		Where("profile_id = ? AND leave_type = ? AND year = ?", profileID, leaveType, year).
		First(&a).Error
	return &a, err
}

func (r *repository) FindAllocationsByProfile(ctx context.Context, profileID string, year int) ([]LeaveAllocation, error) {
	var rows []LeaveAllocation
	err := r.conn(ctx).
		Where("profile_id = ? AND year = ?", profileID, year).
		Order("leave_type ASC").
		Find(&rows).Error
	return rows, err
}

// IncrementAllocationUsage adds days to used_days in one statement, creating
// the row with the type's default entitlement when it does not exist yet.
func (r *repository) IncrementAllocationUsage(ctx context.Context, companyID, profileID, leaveType string, year, days int) (*LeaveAllocation, error) {
	a := &LeaveAllocation{}
	err := r.conn(ctx).Raw(`
		INSERT INTO leave_allocations (id, company_id, profile_id, leave_type, year, total_days, used_days, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, now(), now())
		ON CONFLICT (profile_id, leave_type, year) DO UPDATE
		SET used_days = leave_allocations.used_days + EXCLUDED.used_days, updated_at = now()
		RETURNING id, company_id, profile_id, leave_type, year, total_days, used_days
	`, uuid.New(), companyID, profileID, leaveType, year, DefaultTotalDays(leaveType), days).Scan(a).Error
	if err != nil {
		return nil, err
	}
	return a, nil
}

// UpsertAllocationTotal sets total_days and loads the stored row back into a,
// so an existing allocation keeps its id and used_days.
func (r *repository) UpsertAllocationTotal(ctx context.Context, a *LeaveAllocation) error {
	return r.conn(ctx).Raw(`
		INSERT INTO leave_allocations (id, company_id, profile_id, leave_type, year, total_days, used_days, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, ?, ?)
		ON CONFLICT (profile_id, leave_type, year) DO UPDATE
		SET total_days = EXCLUDED.total_days, updated_at = EXCLUDED.updated_at
		RETURNING id, company_id, profile_id, leave_type, year, total_days, used_days, created_at, updated_at
	`, a.ID, a.CompanyID, a.ProfileID, a.LeaveType, a.Year, a.TotalDays, a.CreatedAt, a.UpdatedAt).Scan(a).Error
}

func (r *repository) SeedAllocations(ctx context.Context, allocations []LeaveAllocation) error {
	if len(allocations) == 0 {
		return nil
	}
	return r.conn(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&allocations).Error
}

// UpsertOnLeaveAttendance writes rows in batches of onLeaveBatchSize. Existing
// rows for the same day lose their check-in data.
func (r *repository) UpsertOnLeaveAttendance(ctx context.Context, rows []attendance.Record) error {
	if len(rows) == 0 {
		return nil
	}
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_id"}, {Name: "attendance_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "check_in_time", "check_out_time", "updated_at"}),
		}).
		Omit(clause.Associations).
		CreateInBatches(&rows, onLeaveBatchSize).Error
}

func (r *repository) SetProfileAttendanceStatus(ctx context.Context, profileID, status string) error {
	return r.conn(ctx).
		Table("profiles").
		Where("id = ?", profileID).
		Update("attendance_status", status).Error
}

func (r *repository) ProfileCompanyID(ctx context.Context, profileID string) (string, error) {
	var companyID string
	err := r.conn(ctx).
		Table("profiles").
		Select("company_id::text").
		Where("id = ?", profileID).
		Take(&companyID).Error
	return companyID, err
}
