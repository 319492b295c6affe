package salary

import (
	"context"
	"errors"
	"time"

	"go-hrms/internal/access"
	salaryerrors "go-hrms/internal/salary/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/dateutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var monthsPerYear = decimal.NewFromInt(12)

//go:generate mockgen -source=salary_service.go -destination=mock/salary_service_mock.go -package=mock
type Service interface {
	GetByProfile(ctx context.Context, actor access.Actor, profileID string) (SalaryResponse, error)
	GetAll(ctx context.Context, actor access.Actor) ([]SalaryResponse, error)
	Upsert(ctx context.Context, actor access.Actor, profileID string, req UpsertSalaryRequest) (SalaryResponse, error)
	CreateDefault(ctx context.Context, companyID, profileID string) error
}

type service struct {
	repo   Repository
	authz  access.Authorizer
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, authz access.Authorizer, now func() time.Time, logger ...*zap.Logger) Service {
	l := zap.L().Named("salary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.service")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, authz: authz, now: now, logger: l}
}

func (s *service) GetByProfile(ctx context.Context, actor access.Actor, profileID string) (SalaryResponse, error) {
	if actor.UserID != profileID && !s.authz.CanViewSalary(actor) {
		s.logger.Warn("get salary forbidden",
			zap.String("actor_id", actor.UserID),
			zap.String("profile_id", profileID),
		)
		return SalaryResponse{}, apperror.ErrUnauthorized
	}
	if _, err := uuid.Parse(profileID); err != nil {
		return SalaryResponse{}, salaryerrors.ErrSalaryNotFound
	}

	row, err := s.repo.FindByProfile(ctx, actor.CompanyID, profileID)
	if err != nil {
		return SalaryResponse{}, mapRepositoryError(err)
	}
	return mapSalary(*row), nil
}

func (s *service) GetAll(ctx context.Context, actor access.Actor) ([]SalaryResponse, error) {
	if err := s.authz.Require(actor, access.ObjSalary, access.ActRead); err != nil {
		return nil, err
	}

	rows, err := s.repo.FindAllByCompany(ctx, actor.CompanyID)
	if err != nil {
		s.logger.Error("list salaries failed", zap.String("company_id", actor.CompanyID), zap.Error(err))
		return nil, apperror.Store(err)
	}

	res := make([]SalaryResponse, len(rows))
	for i, r := range rows {
		res[i] = mapSalary(r)
	}
	return res, nil
}

func (s *service) Upsert(ctx context.Context, actor access.Actor, profileID string, req UpsertSalaryRequest) (SalaryResponse, error) {
	s.logger.Debug("upsert salary requested",
		zap.String("profile_id", profileID),
		zap.String("effective_date", req.EffectiveDate),
	)

	if err := s.authz.Require(actor, access.ObjSalary, access.ActManage); err != nil {
		return SalaryResponse{}, err
	}
	pid, err := uuid.Parse(profileID)
	if err != nil {
		return SalaryResponse{}, salaryerrors.ErrProfileNotFound
	}
	wage, err := decimal.NewFromString(req.MonthlyWage)
	if err != nil || wage.IsNegative() {
		return SalaryResponse{}, salaryerrors.ErrInvalidWage
	}
	effective, err := dateutil.Parse(req.EffectiveDate)
	if err != nil {
		return SalaryResponse{}, salaryerrors.ErrInvalidEffectiveDate
	}

	companyID, err := s.repo.ProfileCompanyID(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryResponse{}, salaryerrors.ErrProfileNotFound
		}
		return SalaryResponse{}, apperror.Store(err)
	}
	if !actor.SameCompany(companyID) {
		s.logger.Warn("upsert salary cross tenant",
			zap.String("actor_company_id", actor.CompanyID),
			zap.String("profile_company_id", companyID),
		)
		return SalaryResponse{}, apperror.ErrCrossTenant
	}

	now := s.now().UTC()
	row := &Salary{
		ID:            uuid.New(),
		CompanyID:     uuid.MustParse(companyID),
		ProfileID:     pid,
		MonthlyWage:   wage.Round(2),
		EffectiveDate: effective,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Upsert(ctx, row); err != nil {
		s.logger.Error("upsert salary failed", zap.String("profile_id", profileID), zap.Error(err))
		return SalaryResponse{}, apperror.Store(err)
	}

	saved, err := s.repo.FindByProfile(ctx, companyID, profileID)
	if err != nil {
		return SalaryResponse{}, mapRepositoryError(err)
	}
	s.logger.Info("upsert salary success",
		zap.String("profile_id", profileID),
		zap.String("monthly_wage", saved.MonthlyWage.StringFixed(2)),
	)
	return mapSalary(*saved), nil
}

// CreateDefault provisions a zero wage effective today for a new profile.
func (s *service) CreateDefault(ctx context.Context, companyID, profileID string) error {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return apperror.InvalidField("company_id")
	}
	pid, err := uuid.Parse(profileID)
	if err != nil {
		return apperror.InvalidField("profile_id")
	}

	now := s.now()
	row := &Salary{
		ID:            uuid.New(),
		CompanyID:     cid,
		ProfileID:     pid,
		MonthlyWage:   decimal.Zero,
		EffectiveDate: dateutil.Day(now),
		CreatedAt:     now.UTC(),
		UpdatedAt:     now.UTC(),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return mapProvisionError(err)
	}
	s.logger.Info("default salary created", zap.String("profile_id", profileID))
	return nil
}

func mapSalary(s Salary) SalaryResponse {
	return SalaryResponse{
		ID:            s.ID.String(),
		ProfileID:     s.ProfileID.String(),
		ProfileName:   s.ProfileName,
		MonthlyWage:   s.MonthlyWage.StringFixed(2),
		YearlyWage:    s.MonthlyWage.Mul(monthsPerYear).StringFixed(2),
		EffectiveDate: dateutil.Format(s.EffectiveDate),
	}
}
