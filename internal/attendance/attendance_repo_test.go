package attendance_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"go-hrms/internal/attendance"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) (attendance.Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	return attendance.NewRepository(gdb), mock
}

func TestRepository_HasApprovedLeaveOn(t *testing.T) {
	repo, mock := setupRepo(t)
	profileID := uuid.NewString()
	day := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "leave_requests"`)).
		WithArgs(profileID, "approved", "2024-06-11", "2024-06-11").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := repo.HasApprovedLeaveOn(context.Background(), profileID, day)

	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByProfileAndDate_NotFound(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "attendance_records"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByProfileAndDate(context.Background(), uuid.NewString(), time.Now())

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpsertCheckIn(t *testing.T) {
	repo, mock := setupRepo(t)
	at := time.Date(2024, 6, 11, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT ("profile_id","attendance_date") DO UPDATE SET "check_in_time"="excluded"."check_in_time"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpsertCheckIn(context.Background(), &attendance.Record{
		ID:             uuid.New(),
		CompanyID:      uuid.New(),
		ProfileID:      uuid.New(),
		AttendanceDate: time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
		CheckInTime:    &at,
		Status:         attendance.StatusPresent,
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
