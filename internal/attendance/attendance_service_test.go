package attendance_test

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"sort"
	"testing"
	"time"

	"go-hrms/internal/access"
	"go-hrms/internal/attendance"
	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/dateutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type memRepository struct {
	records  map[string]*attendance.Record
	leaves   map[string][]time.Time
	statuses map[string]string

	upsertErr error
}

func newMemRepository() *memRepository {
	return &memRepository{
		records:  map[string]*attendance.Record{},
		leaves:   map[string][]time.Time{},
		statuses: map[string]string{},
	}
}

func recordKey(profileID string, date time.Time) string {
	return profileID + "|" + dateutil.Format(date)
}

func (m *memRepository) WithTx(tx *sql.Tx) attendance.Repository { return m }

func (m *memRepository) FindByProfileAndDate(ctx context.Context, profileID string, date time.Time) (*attendance.Record, error) {
	r, ok := m.records[recordKey(profileID, date)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memRepository) UpsertCheckIn(ctx context.Context, r *attendance.Record) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	key := recordKey(r.ProfileID.String(), r.AttendanceDate)
	if existing, ok := m.records[key]; ok {
		existing.CheckInTime = r.CheckInTime
		existing.Status = r.Status
		existing.UpdatedAt = r.UpdatedAt
		return nil
	}
	cp := *r
	m.records[key] = &cp
	return nil
}

func (m *memRepository) SetCheckOut(ctx context.Context, id string, at time.Time) error {
	for _, r := range m.records {
		if r.ID.String() == id {
			r.CheckOutTime = &at
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memRepository) HasApprovedLeaveOn(ctx context.Context, profileID string, date time.Time) (bool, error) {
	for _, d := range m.leaves[profileID] {
		if d.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepository) SetProfileAttendanceStatus(ctx context.Context, profileID, status string) error {
	m.statuses[profileID] = status
	return nil
}

func (m *memRepository) FindByCompanyAndDate(ctx context.Context, companyID string, date time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, r := range m.records {
		if r.CompanyID.String() == companyID && r.AttendanceDate.Equal(date) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memRepository) FindByCompanyAndRange(ctx context.Context, companyID string, from, to time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, r := range m.records {
		if r.CompanyID.String() == companyID && dateutil.Within(r.AttendanceDate, from, to) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AttendanceDate.After(out[j].AttendanceDate) })
	return out, nil
}

func (m *memRepository) CompanyName(ctx context.Context, companyID string) (string, error) {
	return "Odoo India", nil
}

type attendanceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	repo    *memRepository
	clock   *time.Time
	service attendance.Service
}

var morning = time.Date(2024, 6, 11, 9, 0, 0, 0, time.UTC)

func setupAttendanceServiceTest(t *testing.T) *attendanceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gate, err := access.NewGate()
	assert.NoError(t, err)

	clock := morning
	deps := &attendanceDeps{db: db, sqlMock: sqlMock, repo: newMemRepository(), clock: &clock}
	deps.service = attendance.NewService(db, deps.repo, gate, func() time.Time { return *deps.clock })
	return deps
}

func employee() access.Actor {
	return access.Actor{UserID: uuid.NewString(), CompanyID: uuid.NewString(), Role: access.RoleEmployee}
}

func TestAttendanceService_CheckIn(t *testing.T) {
	ctx := context.Background()

	t.Run("creates present record and marks profile", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		actor := employee()
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.CheckIn(ctx, actor)

		assert.NoError(t, err)
		assert.Equal(t, attendance.StatusPresent, resp.Status)
		assert.Equal(t, "2024-06-11", resp.AttendanceDate)
		assert.NotNil(t, resp.CheckInTime)
		assert.Nil(t, resp.CheckOutTime)
		assert.Equal(t, attendance.StatusPresent, deps.repo.statuses[actor.UserID])
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("second check-in overwrites the same row", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		actor := employee()
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		first, err := deps.service.CheckIn(ctx, actor)
		assert.NoError(t, err)
		*deps.clock = morning.Add(2 * time.Hour)
		second, err := deps.service.CheckIn(ctx, actor)
		assert.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Len(t, deps.repo.records, 1)
		assert.Equal(t, "2024-06-11T11:00:00Z", *second.CheckInTime)
	})

	t.Run("blocked by approved leave", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		actor := employee()
		deps.repo.leaves[actor.UserID] = []time.Time{dateutil.Day(morning)}

		_, err := deps.service.CheckIn(ctx, actor)

		assert.ErrorIs(t, err, attendanceerrors.ErrOnApprovedLeave)
		assert.Empty(t, deps.repo.records)
		assert.Empty(t, deps.repo.statuses)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("store failure rolls back", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		deps.repo.upsertErr = errors.New("connection reset")
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.CheckIn(ctx, employee())

		assert.True(t, apperror.HasCode(err, apperror.CodeStore))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("day follows the company clock", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		kolkata := time.FixedZone("IST", 5*3600+1800)
		*deps.clock = time.Date(2024, 6, 12, 1, 0, 0, 0, kolkata)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.CheckIn(ctx, employee())

		assert.NoError(t, err)
		assert.Equal(t, "2024-06-12", resp.AttendanceDate)
	})
}

func TestAttendanceService_CheckOut(t *testing.T) {
	ctx := context.Background()

	t.Run("without check-in", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)

		_, err := deps.service.CheckOut(ctx, employee())

		assert.ErrorIs(t, err, attendanceerrors.ErrNoCheckIn)
	})

	t.Run("sets checkout and keeps status", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		actor := employee()
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		_, err := deps.service.CheckIn(ctx, actor)
		assert.NoError(t, err)

		*deps.clock = morning.Add(8 * time.Hour)
		resp, err := deps.service.CheckOut(ctx, actor)

		assert.NoError(t, err)
		assert.Equal(t, attendance.StatusPresent, resp.Status)
		assert.Equal(t, "2024-06-11T17:00:00Z", *resp.CheckOutTime)
		stored := deps.repo.records[recordKey(actor.UserID, dateutil.Day(morning))]
		assert.NotNil(t, stored.CheckOutTime)
	})
}

func TestAttendanceService_Today(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing recorded", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)

		resp, err := deps.service.Today(ctx, employee())

		assert.NoError(t, err)
		assert.Nil(t, resp.Record)
		assert.False(t, resp.OnLeave)
	})

	t.Run("on approved leave", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		actor := employee()
		deps.repo.leaves[actor.UserID] = []time.Time{dateutil.Day(morning)}

		resp, err := deps.service.Today(ctx, actor)

		assert.NoError(t, err)
		assert.True(t, resp.OnLeave)
	})
}

func TestAttendanceService_CompanyViews(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	admin := access.Actor{UserID: uuid.NewString(), CompanyID: companyID, Role: access.RoleAdmin}
	staff := access.Actor{UserID: uuid.NewString(), CompanyID: companyID, Role: access.RoleEmployee}

	seed := func(repo *memRepository) {
		for _, d := range []string{"2024-06-10", "2024-06-11"} {
			day, _ := dateutil.Parse(d)
			at := day.Add(9 * time.Hour)
			r := &attendance.Record{
				ID:             uuid.New(),
				CompanyID:      uuid.MustParse(companyID),
				ProfileID:      uuid.MustParse(staff.UserID),
				AttendanceDate: day,
				CheckInTime:    &at,
				Status:         attendance.StatusPresent,
			}
			repo.records[recordKey(staff.UserID, day)] = r
		}
	}

	t.Run("employee cannot list company attendance", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)

		_, err := deps.service.ByDate(ctx, staff, "2024-06-11")

		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})

	t.Run("by date defaults to today", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		seed(deps.repo)

		rows, err := deps.service.ByDate(ctx, admin, "")

		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, "2024-06-11", rows[0].AttendanceDate)
	})

	t.Run("by date rejects bad format", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)

		_, err := deps.service.ByDate(ctx, admin, "11/06/2024")

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDate)
	})

	t.Run("by range newest first", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		seed(deps.repo)

		rows, err := deps.service.ByRange(ctx, admin, "2024-06-01", "2024-06-30")

		assert.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.Equal(t, "2024-06-11", rows[0].AttendanceDate)
	})

	t.Run("by range inverted", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)

		_, err := deps.service.ByRange(ctx, admin, "2024-06-30", "2024-06-01")

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidRange)
	})

	t.Run("export renders a pdf", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		seed(deps.repo)

		pdf, err := deps.service.ExportRange(ctx, admin, "2024-06-01", "2024-06-30")

		assert.NoError(t, err)
		assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	})
}
