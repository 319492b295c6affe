package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-hrms/internal/access"
	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/dateutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxRangeDays = 366

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, actor access.Actor) (RecordResponse, error)
	CheckOut(ctx context.Context, actor access.Actor) (RecordResponse, error)
	Today(ctx context.Context, actor access.Actor) (TodayResponse, error)
	ByDate(ctx context.Context, actor access.Actor, date string) ([]RecordResponse, error)
	ByRange(ctx context.Context, actor access.Actor, from, to string) ([]RecordResponse, error)
	ExportRange(ctx context.Context, actor access.Actor, from, to string) ([]byte, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	authz  access.Authorizer
	now    func() time.Time
	logger *zap.Logger
}

// NewService builds the attendance recorder. now supplies the wall clock in
// the company's timezone and decides which calendar day "today" is.
func NewService(
	db *sql.DB,
	repo Repository,
	authz access.Authorizer,
	now func() time.Time,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if now == nil {
		now = time.Now
	}
	return &service{db: db, repo: repo, authz: authz, now: now, logger: l}
}

func (s *service) CheckIn(ctx context.Context, actor access.Actor) (RecordResponse, error) {
	now := s.now()
	today := dateutil.Day(now)
	s.logger.Debug("check-in requested",
		zap.String("profile_id", actor.UserID),
		zap.String("date", dateutil.Format(today)),
	)

	profileID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return RecordResponse{}, apperror.ErrUnauthenticated
	}
	companyID, err := uuid.Parse(actor.CompanyID)
	if err != nil {
		return RecordResponse{}, apperror.ErrUnauthenticated
	}

	onLeave, err := s.repo.HasApprovedLeaveOn(ctx, actor.UserID, today)
	if err != nil {
		s.logger.Error("check-in leave lookup failed", zap.Error(err))
		return RecordResponse{}, apperror.Store(err)
	}
	if onLeave {
		s.logger.Warn("check-in blocked by approved leave",
			zap.String("profile_id", actor.UserID),
			zap.String("date", dateutil.Format(today)),
		)
		return RecordResponse{}, attendanceerrors.ErrOnApprovedLeave
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("check-in begin tx failed", zap.Error(err))
		return RecordResponse{}, apperror.Store(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	at := now.UTC()
	rec := &Record{
		ID:             uuid.New(),
		CompanyID:      companyID,
		ProfileID:      profileID,
		AttendanceDate: today,
		CheckInTime:    &at,
		Status:         StatusPresent,
		CreatedAt:      at,
		UpdatedAt:      at,
	}
	if err := qtx.UpsertCheckIn(ctx, rec); err != nil {
		s.logger.Error("check-in upsert failed", zap.Error(err))
		return RecordResponse{}, apperror.Store(err)
	}
	if err := qtx.SetProfileAttendanceStatus(ctx, actor.UserID, StatusPresent); err != nil {
		s.logger.Error("check-in profile status update failed", zap.Error(err))
		return RecordResponse{}, apperror.Store(err)
	}

	saved, err := qtx.FindByProfileAndDate(ctx, actor.UserID, today)
	if err != nil {
		s.logger.Error("check-in reload failed", zap.Error(err))
		return RecordResponse{}, apperror.Store(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("check-in commit failed", zap.Error(err))
		return RecordResponse{}, apperror.Store(err)
	}
	s.logger.Info("check-in success",
		zap.String("profile_id", actor.UserID),
		zap.String("record_id", saved.ID.String()),
	)

	return toResponse(*saved, now.Location()), nil
}

func (s *service) CheckOut(ctx context.Context, actor access.Actor) (RecordResponse, error) {
	now := s.now()
	today := dateutil.Day(now)
	s.logger.Debug("check-out requested", zap.String("profile_id", actor.UserID))

	rec, err := s.repo.FindByProfileAndDate(ctx, actor.UserID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("check-out without check-in", zap.String("profile_id", actor.UserID))
			return RecordResponse{}, attendanceerrors.ErrNoCheckIn
		}
		s.logger.Error("check-out lookup failed", zap.Error(err))
		return RecordResponse{}, apperror.Store(err)
	}

	at := now.UTC()
	if err := s.repo.SetCheckOut(ctx, rec.ID.String(), at); err != nil {
		s.logger.Error("check-out update failed", zap.Error(err))
		return RecordResponse{}, apperror.Store(err)
	}
	rec.CheckOutTime = &at
	rec.UpdatedAt = at

	s.logger.Info("check-out success",
		zap.String("profile_id", actor.UserID),
		zap.String("record_id", rec.ID.String()),
	)
	return toResponse(*rec, now.Location()), nil
}

func (s *service) Today(ctx context.Context, actor access.Actor) (TodayResponse, error) {
	now := s.now()
	today := dateutil.Day(now)

	var res TodayResponse
	rec, err := s.repo.FindByProfileAndDate(ctx, actor.UserID, today)
	switch {
	case err == nil:
		r := toResponse(*rec, now.Location())
		res.Record = &r
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		s.logger.Error("today lookup failed", zap.Error(err))
		return TodayResponse{}, apperror.Store(err)
	}

	onLeave, err := s.repo.HasApprovedLeaveOn(ctx, actor.UserID, today)
	if err != nil {
		s.logger.Error("today leave lookup failed", zap.Error(err))
		return TodayResponse{}, apperror.Store(err)
	}
	res.OnLeave = onLeave
	return res, nil
}

func (s *service) ByDate(ctx context.Context, actor access.Actor, date string) ([]RecordResponse, error) {
	if err := s.authz.Require(actor, access.ObjAttendance, access.ActReadAll); err != nil {
		return nil, err
	}

	day := dateutil.Day(s.now())
	if date != "" {
		d, err := dateutil.Parse(date)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidDate
		}
		day = d
	}

	rows, err := s.repo.FindByCompanyAndDate(ctx, actor.CompanyID, day)
	if err != nil {
		s.logger.Error("list attendance by date failed", zap.Error(err))
		return nil, apperror.Store(err)
	}
	return toResponses(rows, s.now().Location()), nil
}

func (s *service) ByRange(ctx context.Context, actor access.Actor, from, to string) ([]RecordResponse, error) {
	if err := s.authz.Require(actor, access.ObjAttendance, access.ActReadAll); err != nil {
		return nil, err
	}
	start, end, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.FindByCompanyAndRange(ctx, actor.CompanyID, start, end)
	if err != nil {
		s.logger.Error("list attendance by range failed", zap.Error(err))
		return nil, apperror.Store(err)
	}
	return toResponses(rows, s.now().Location()), nil
}

func (s *service) ExportRange(ctx context.Context, actor access.Actor, from, to string) ([]byte, error) {
	s.logger.Debug("attendance export requested",
		zap.String("company_id", actor.CompanyID),
		zap.String("from", from),
		zap.String("to", to),
	)

	records, err := s.ByRange(ctx, actor, from, to)
	if err != nil {
		return nil, err
	}
	start, end, _ := parseRange(from, to)

	name, err := s.repo.CompanyName(ctx, actor.CompanyID)
	if err != nil {
		s.logger.Warn("attendance export company lookup failed", zap.Error(err))
	}

	pdf, err := RenderRangeReport(name, start, end, records)
	if err != nil {
		s.logger.Error("attendance export render failed", zap.Error(err))
		return nil, apperror.ErrInternal
	}
	s.logger.Info("attendance export success",
		zap.String("company_id", actor.CompanyID),
		zap.Int("rows", len(records)),
		zap.Int("bytes", len(pdf)),
	)
	return pdf, nil
}

func parseRange(from, to string) (time.Time, time.Time, error) {
	if from == "" {
		return time.Time{}, time.Time{}, apperror.RequiredField("from")
	}
	if to == "" {
		return time.Time{}, time.Time{}, apperror.RequiredField("to")
	}
	start, err := dateutil.Parse(from)
	if err != nil {
		return time.Time{}, time.Time{}, attendanceerrors.ErrInvalidDate
	}
	end, err := dateutil.Parse(to)
	if err != nil {
		return time.Time{}, time.Time{}, attendanceerrors.ErrInvalidDate
	}
	days := dateutil.DaysInclusive(start, end)
	if days <= 0 {
		return time.Time{}, time.Time{}, attendanceerrors.ErrInvalidRange
	}
	if days > maxRangeDays {
		return time.Time{}, time.Time{}, attendanceerrors.ErrRangeTooLong
	}
	return start, end, nil
}
