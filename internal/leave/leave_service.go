package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go-hrms/internal/access"
	"go-hrms/internal/attendance"
	"go-hrms/internal/events"
	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/dateutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor access.Actor, req CreateLeaveRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, actor access.Actor, id string) (LeaveResponse, error)
	Approve(ctx context.Context, actor access.Actor, id string) (LeaveResponse, error)
	Reject(ctx context.Context, actor access.Actor, id string, req RejectLeaveRequest) (LeaveResponse, error)
	GetMine(ctx context.Context, actor access.Actor) ([]LeaveResponse, error)
	GetAll(ctx context.Context, actor access.Actor) ([]LeaveResponse, error)
	GetByID(ctx context.Context, actor access.Actor, id string) (LeaveResponse, error)
	GetBalances(ctx context.Context, actor access.Actor, year int) ([]AllocationResponse, error)
	SetAllocation(ctx context.Context, actor access.Actor, req SetAllocationRequest) (AllocationResponse, error)
	SeedDefaultAllocations(ctx context.Context, companyID, profileID string, year int) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	authz  access.Authorizer
	outbox kafka.OutboxRepository
	now    func() time.Time
	logger *zap.Logger
}

// NewService wires the leave lifecycle. now supplies the wall clock in the
// company's timezone; nil means time.Now.
func NewService(
	db *sql.DB,
	repo Repository,
	authz access.Authorizer,
	outbox kafka.OutboxRepository,
	now func() time.Time,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if now == nil {
		now = time.Now
	}
	return &service{db: db, repo: repo, authz: authz, outbox: outbox, now: now, logger: l}
}

func (s *service) Create(ctx context.Context, actor access.Actor, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.String("profile_id", actor.UserID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	startDate, endDate, days, err := validateCreateRequest(req)
	if err != nil {
		s.logger.Warn("create leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	profileID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidProfileID
	}
	companyID, err := uuid.Parse(actor.CompanyID)
	if err != nil {
		return LeaveResponse{}, apperror.ErrUnauthenticated
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, apperror.Store(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if UsesAllocation(req.LeaveType) {
		alloc, err := qtx.FindAllocation(ctx, actor.UserID, req.LeaveType, startDate.Year())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Warn("create leave allocation missing",
					zap.String("profile_id", actor.UserID),
					zap.String("leave_type", req.LeaveType),
					zap.Int("year", startDate.Year()),
				)
				return LeaveResponse{}, leaveerrors.ErrAllocationMissing
			}
			s.logger.Error("create leave find allocation failed", zap.Error(err))
			return LeaveResponse{}, apperror.Store(err)
		}
		if days > alloc.Remaining() {
			s.logger.Warn("create leave insufficient balance",
				zap.String("profile_id", actor.UserID),
				zap.Int("requested", days),
				zap.Int("remaining", alloc.Remaining()),
			)
			return LeaveResponse{}, leaveerrors.ErrInsufficientBalance
		}
	}

	now := s.now().UTC()
	l := &LeaveRequest{
		ID:        uuid.New(),
		CompanyID: companyID,
		ProfileID: profileID,
		LeaveType: req.LeaveType,
		StartDate: startDate,
		EndDate:   endDate,
		DaysCount: days,
		Reason:    strings.TrimSpace(req.Reason),
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, apperror.Store(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, apperror.Store(err)
	}
	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("profile_id", actor.UserID),
		zap.Int("days_count", days),
	)

	return mapToResponse(*l), nil
}

func (s *service) Cancel(ctx context.Context, actor access.Actor, id string) (LeaveResponse, error) {
	s.logger.Debug("cancel leave requested",
		zap.String("leave_id", id),
		zap.String("profile_id", actor.UserID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, apperror.Store(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := s.findForUpdate(ctx, qtx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if l.ProfileID.String() != actor.UserID {
		s.logger.Warn("cancel leave not owned",
			zap.String("leave_id", id),
			zap.String("profile_id", actor.UserID),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	if !CanTransition(l.Status, StatusCancelled) {
		s.logger.Warn("cancel leave invalid state",
			zap.String("leave_id", id),
			zap.String("status", l.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrNotPending
	}

	if err := s.decide(ctx, qtx, l, Decision{Status: StatusCancelled}); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel leave commit failed", zap.Error(err))
		return LeaveResponse{}, apperror.Store(err)
	}
	s.logger.Info("cancel leave success", zap.String("leave_id", id))

	return mapToResponse(*l), nil
}

// Approve closes a pending request and applies every side effect in one
// transaction: allocation usage, on_leave attendance rows, the profile's
// current status and the leave_approved event.
func (s *service) Approve(ctx context.Context, actor access.Actor, id string) (LeaveResponse, error) {
	s.logger.Debug("approve leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actor.UserID),
	)

	if err := s.authz.Require(actor, access.ObjLeave, access.ActApprove); err != nil {
		return LeaveResponse{}, err
	}
	approverID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return LeaveResponse{}, apperror.ErrUnauthenticated
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, apperror.Store(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := s.findDecidable(ctx, qtx, actor, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	now := s.now()
	decidedAt := now.UTC()
	if err := s.decide(ctx, qtx, l, Decision{
		Status:    StatusApproved,
		DecidedBy: &approverID,
		DecidedAt: &decidedAt,
	}); err != nil {
		return LeaveResponse{}, err
	}

	if UsesAllocation(l.LeaveType) {
		alloc, err := qtx.IncrementAllocationUsage(ctx, l.CompanyID.String(), l.ProfileID.String(), l.LeaveType, l.StartDate.Year(), l.DaysCount)
		if err != nil {
			s.logger.Error("approve leave allocation update failed",
				zap.String("leave_id", id),
				zap.Error(err),
			)
			return LeaveResponse{}, apperror.Store(err)
		}
		s.logger.Debug("allocation usage incremented",
			zap.String("profile_id", l.ProfileID.String()),
			zap.String("leave_type", l.LeaveType),
			zap.Int("used_days", alloc.UsedDays),
			zap.Int("total_days", alloc.TotalDays),
		)
	}

	rows := attendance.OnLeaveDays(l.CompanyID, l.ProfileID, dateutil.Range(l.StartDate, l.EndDate), decidedAt)
	if err := qtx.UpsertOnLeaveAttendance(ctx, rows); err != nil {
		s.logger.Error("approve leave attendance backfill failed",
			zap.String("leave_id", id),
			zap.Int("days", len(rows)),
			zap.Error(err),
		)
		return LeaveResponse{}, apperror.Store(err)
	}

	if dateutil.Within(now, l.StartDate, l.EndDate) {
		if err := qtx.SetProfileAttendanceStatus(ctx, l.ProfileID.String(), attendance.StatusOnLeave); err != nil {
			s.logger.Error("approve leave profile status update failed",
				zap.String("leave_id", id),
				zap.Error(err),
			)
			return LeaveResponse{}, apperror.Store(err)
		}
	}

	if err := s.enqueueApproved(ctx, tx, *l); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve leave commit failed", zap.Error(err))
		return LeaveResponse{}, apperror.Store(err)
	}
	s.logger.Info("approve leave success",
		zap.String("leave_id", id),
		zap.String("profile_id", l.ProfileID.String()),
		zap.Int("days_count", l.DaysCount),
	)

	return mapToResponse(*l), nil
}

func (s *service) Reject(ctx context.Context, actor access.Actor, id string, req RejectLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("reject leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actor.UserID),
	)

	if err := s.authz.Require(actor, access.ObjLeave, access.ActApprove); err != nil {
		return LeaveResponse{}, err
	}
	approverID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return LeaveResponse{}, apperror.ErrUnauthenticated
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("reject leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, apperror.Store(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := s.findDecidable(ctx, qtx, actor, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	decidedAt := s.now().UTC()
	d := Decision{
		Status:    StatusRejected,
		DecidedBy: &approverID,
		DecidedAt: &decidedAt,
	}
	if reason := strings.TrimSpace(req.Reason); reason != "" {
		d.RejectionReason = &reason
	}
	if err := s.decide(ctx, qtx, l, d); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("reject leave commit failed", zap.Error(err))
		return LeaveResponse{}, apperror.Store(err)
	}
	s.logger.Info("reject leave success", zap.String("leave_id", id))

	return mapToResponse(*l), nil
}

func (s *service) GetMine(ctx context.Context, actor access.Actor) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAllByProfile(ctx, actor.UserID)
	if err != nil {
		s.logger.Error("list own leaves failed", zap.Error(err))
		return nil, apperror.Store(err)
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetAll(ctx context.Context, actor access.Actor) ([]LeaveResponse, error) {
	if err := s.authz.Require(actor, access.ObjLeave, access.ActApprove); err != nil {
		return nil, err
	}
	leaves, err := s.repo.FindAllByCompany(ctx, actor.CompanyID)
	if err != nil {
		s.logger.Error("list company leaves failed", zap.Error(err))
		return nil, apperror.Store(err)
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, actor access.Actor, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, apperror.Store(err)
	}

	owner := l.ProfileID.String() == actor.UserID
	reviewer := actor.SameCompany(l.CompanyID.String()) && s.authz.Allows(actor, access.ObjLeave, access.ActApprove)
	if !owner && !reviewer {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	return mapToResponse(*l), nil
}

func (s *service) GetBalances(ctx context.Context, actor access.Actor, year int) ([]AllocationResponse, error) {
	if year == 0 {
		year = s.now().Year()
	}
	if year < 2000 || year > 9999 {
		return nil, leaveerrors.ErrInvalidYear
	}

	rows, err := s.repo.FindAllocationsByProfile(ctx, actor.UserID, year)
	if err != nil {
		s.logger.Error("list allocations failed", zap.Error(err))
		return nil, apperror.Store(err)
	}

	res := make([]AllocationResponse, len(rows))
	for i, a := range rows {
		res[i] = mapAllocation(a)
	}
	return res, nil
}

func (s *service) SetAllocation(ctx context.Context, actor access.Actor, req SetAllocationRequest) (AllocationResponse, error) {
	s.logger.Debug("set allocation requested",
		zap.String("profile_id", req.ProfileID),
		zap.String("leave_type", req.LeaveType),
		zap.Int("year", req.Year),
	)

	if err := s.authz.Require(actor, access.ObjAllocation, access.ActManage); err != nil {
		return AllocationResponse{}, err
	}
	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		return AllocationResponse{}, leaveerrors.ErrInvalidProfileID
	}
	if !UsesAllocation(req.LeaveType) {
		return AllocationResponse{}, leaveerrors.ErrInvalidLeaveType
	}
	if req.Year < 2000 || req.Year > 9999 {
		return AllocationResponse{}, leaveerrors.ErrInvalidYear
	}
	if req.TotalDays < 0 {
		return AllocationResponse{}, leaveerrors.ErrInvalidTotalDays
	}

	companyID, err := s.repo.ProfileCompanyID(ctx, req.ProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AllocationResponse{}, leaveerrors.ErrProfileNotFound
		}
		return AllocationResponse{}, apperror.Store(err)
	}
	if !actor.SameCompany(companyID) {
		s.logger.Warn("set allocation cross tenant",
			zap.String("actor_company_id", actor.CompanyID),
			zap.String("profile_company_id", companyID),
		)
		return AllocationResponse{}, apperror.ErrCrossTenant
	}

	now := s.now().UTC()
	a := &LeaveAllocation{
		ID:        uuid.New(),
		CompanyID: uuid.MustParse(companyID),
		ProfileID: profileID,
		LeaveType: req.LeaveType,
		Year:      req.Year,
		TotalDays: req.TotalDays,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.UpsertAllocationTotal(ctx, a); err != nil {
		s.logger.Error("set allocation persist failed", zap.Error(err))
		return AllocationResponse{}, apperror.Store(err)
	}
	s.logger.Info("set allocation success",
		zap.String("profile_id", req.ProfileID),
		zap.String("leave_type", req.LeaveType),
		zap.Int("total_days", a.TotalDays),
	)

	return mapAllocation(*a), nil
}

func (s *service) SeedDefaultAllocations(ctx context.Context, companyID, profileID string, year int) error {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return apperror.InvalidField("company_id")
	}
	pid, err := uuid.Parse(profileID)
	if err != nil {
		return leaveerrors.ErrInvalidProfileID
	}

	now := s.now().UTC()
	rows := make([]LeaveAllocation, 0, len(AllocatedTypes))
	for _, t := range AllocatedTypes {
		rows = append(rows, LeaveAllocation{
			ID:        uuid.New(),
			CompanyID: cid,
			ProfileID: pid,
			LeaveType: t,
			Year:      year,
			TotalDays: DefaultTotalDays(t),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if err := s.repo.SeedAllocations(ctx, rows); err != nil {
		s.logger.Error("seed allocations failed",
			zap.String("profile_id", profileID),
			zap.Int("year", year),
			zap.Error(err),
		)
		return apperror.Store(err)
	}
	s.logger.Info("seed allocations success",
		zap.String("profile_id", profileID),
		zap.Int("year", year),
	)
	return nil
}

func (s *service) findForUpdate(ctx context.Context, qtx Repository, id string) (*LeaveRequest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, leaveerrors.ErrLeaveNotFound
	}
	l, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("find leave failed", zap.String("leave_id", id), zap.Error(err))
		return nil, apperror.Store(err)
	}
	return l, nil
}

// findDecidable loads a request a reviewer may approve or reject: it must
// exist, belong to a profile of the reviewer's company and still be pending.
func (s *service) findDecidable(ctx context.Context, qtx Repository, actor access.Actor, id string) (*LeaveRequest, error) {
	l, err := s.findForUpdate(ctx, qtx, id)
	if err != nil {
		return nil, err
	}

	companyID, err := qtx.ProfileCompanyID(ctx, l.ProfileID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("find leave profile failed", zap.String("leave_id", id), zap.Error(err))
		return nil, apperror.Store(err)
	}
	if !actor.SameCompany(companyID) {
		s.logger.Warn("leave decision cross tenant",
			zap.String("leave_id", id),
			zap.String("actor_company_id", actor.CompanyID),
		)
		return nil, apperror.ErrCrossTenant
	}

	if l.Status != StatusPending {
		s.logger.Warn("leave decision invalid state",
			zap.String("leave_id", id),
			zap.String("status", l.Status),
		)
		return nil, leaveerrors.ErrNotPending
	}
	return l, nil
}

func (s *service) decide(ctx context.Context, qtx Repository, l *LeaveRequest, d Decision) error {
	ok, err := qtx.Decide(ctx, l.ID.String(), d)
	if err != nil {
		s.logger.Error("leave decision persist failed",
			zap.String("leave_id", l.ID.String()),
			zap.String("status", d.Status),
			zap.Error(err),
		)
		return apperror.Store(err)
	}
	if !ok {
		s.logger.Warn("leave decision lost race", zap.String("leave_id", l.ID.String()))
		return leaveerrors.ErrNotPending
	}

	l.Status = d.Status
	l.ApprovedBy = d.DecidedBy
	l.ApprovedAt = d.DecidedAt
	l.RejectionReason = d.RejectionReason
	return nil
}

func (s *service) enqueueApproved(ctx context.Context, tx *sql.Tx, l LeaveRequest) error {
	payload := events.LeaveApprovedEvent{
		EventType:  events.EventTypeLeaveApproved,
		LeaveID:    l.ID.String(),
		ProfileID:  l.ProfileID.String(),
		CompanyID:  l.CompanyID.String(),
		LeaveType:  l.LeaveType,
		StartDate:  dateutil.Format(l.StartDate),
		EndDate:    dateutil.Format(l.EndDate),
		DaysCount:  l.DaysCount,
		OccurredAt: s.now().UTC(),
	}
	if l.ApprovedBy != nil {
		payload.ApprovedBy = l.ApprovedBy.String()
	}

	event, err := kafka.NewOutboxEvent(
		ctx,
		kafka.AggregateLeaveRequest,
		l.ID.String(),
		events.EventTypeLeaveApproved,
		events.LeaveLifecycleTopic,
		payload,
	)
	if err != nil {
		return apperror.Store(err)
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("enqueue leave_approved failed",
			zap.String("leave_id", l.ID.String()),
			zap.Error(err),
		)
		return apperror.Store(err)
	}
	return nil
}

func validateCreateRequest(req CreateLeaveRequest) (time.Time, time.Time, int, error) {
	if strings.TrimSpace(req.LeaveType) == "" {
		return time.Time{}, time.Time{}, 0, leaveerrors.ErrLeaveTypeRequired
	}
	if !IsKnownType(req.LeaveType) {
		return time.Time{}, time.Time{}, 0, leaveerrors.ErrInvalidLeaveType
	}
	if req.StartDate == "" || req.EndDate == "" {
		return time.Time{}, time.Time{}, 0, leaveerrors.ErrDatesRequired
	}
	startDate, err := dateutil.Parse(req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, 0, leaveerrors.ErrInvalidDateFormat
	}
	endDate, err := dateutil.Parse(req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, 0, leaveerrors.ErrInvalidDateFormat
	}
	days := dateutil.DaysInclusive(startDate, endDate)
	if days <= 0 {
		return time.Time{}, time.Time{}, 0, leaveerrors.ErrInvalidDateRange
	}
	if days > MaxLeaveDays {
		return time.Time{}, time.Time{}, 0, leaveerrors.ErrRangeTooLong
	}
	return startDate, endDate, days, nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID.String(),
		CompanyID:       l.CompanyID.String(),
		ProfileID:       l.ProfileID.String(),
		LeaveType:       l.LeaveType,
		StartDate:       dateutil.Format(l.StartDate),
		EndDate:         dateutil.Format(l.EndDate),
		DaysCount:       l.DaysCount,
		Reason:          l.Reason,
		Status:          l.Status,
		RejectionReason: l.RejectionReason,
		CreatedAt:       l.CreatedAt.Format(time.RFC3339),
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}

func mapAllocation(a LeaveAllocation) AllocationResponse {
	return AllocationResponse{
		ProfileID:     a.ProfileID.String(),
		LeaveType:     a.LeaveType,
		Year:          a.Year,
		TotalDays:     a.TotalDays,
		UsedDays:      a.UsedDays,
		RemainingDays: a.Remaining(),
	}
}
