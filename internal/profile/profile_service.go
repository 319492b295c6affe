package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-hrms/internal/access"
	"go-hrms/internal/company"
	"go-hrms/internal/credential"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/notification"
	profileerrors "go-hrms/internal/profile/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/counter"
	"go-hrms/internal/shared/dateutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	OptionsKeyPrefix = "profiles:options:"
	optionsTTL       = time.Hour
)

func OptionsKey(companyID string) string {
	return OptionsKeyPrefix + companyID
}

// CompanyDirectory resolves the company name used in login identifiers.
type CompanyDirectory interface {
	GetByID(ctx context.Context, id string) (*company.CompanyResponse, error)
}

//go:generate mockgen -source=profile_service.go -destination=mock/profile_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor access.Actor, req CreateProfileRequest) (CreatedProfileResponse, error)
	GetAll(ctx context.Context, actor access.Actor) ([]ProfileResponse, error)
	GetOptions(ctx context.Context, actor access.Actor) ([]OptionResponse, error)
	GetByID(ctx context.Context, actor access.Actor, id string) (ProfileResponse, error)
	Me(ctx context.Context, actor access.Actor) (ProfileResponse, error)
	UpdateSelf(ctx context.Context, actor access.Actor, req UpdateSelfRequest) (ProfileResponse, error)
	Update(ctx context.Context, actor access.Actor, id string, req UpdateProfileRequest) (ProfileResponse, error)
	CompleteFirstLogin(ctx context.Context, actor access.Actor) error
	LoadActor(ctx context.Context, userID string) (access.Actor, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	counter   counter.Repository
	outbox    kafka.OutboxRepository
	companies CompanyDirectory
	authz     access.Authorizer
	notifier  notification.Notifier
	rdb       *redis.Client
	sf        *singleflight.Group
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outbox kafka.OutboxRepository,
	companies CompanyDirectory,
	authz access.Authorizer,
	notifier notification.Notifier,
	rdb *redis.Client,
	now func() time.Time,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("profile.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("profile.service")
	}
	if now == nil {
		now = time.Now
	}
	return &service{
		db:        db,
		repo:      repo,
		counter:   counter,
		outbox:    outbox,
		companies: companies,
		authz:     authz,
		notifier:  notifier,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		now:       now,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, actor access.Actor, req CreateProfileRequest) (CreatedProfileResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create profile requested",
		zap.String("request_id", rid),
		zap.String("company_id", actor.CompanyID),
		zap.String("email", req.Email),
	)

	if err := s.authz.Require(actor, access.ObjEmployee, access.ActManage); err != nil {
		return CreatedProfileResponse{}, err
	}
	companyID, err := uuid.Parse(actor.CompanyID)
	if err != nil {
		return CreatedProfileResponse{}, apperror.ErrUnauthenticated
	}

	joining := dateutil.Day(s.now())
	if req.JoiningDate != "" {
		joining, err = dateutil.Parse(req.JoiningDate)
		if err != nil {
			s.logger.Warn("create profile invalid joining_date", zap.String("joining_date", req.JoiningDate))
			return CreatedProfileResponse{}, profileerrors.ErrInvalidJoiningDate
		}
	}

	comp, err := s.companies.GetByID(ctx, actor.CompanyID)
	if err != nil {
		s.logger.Error("create profile company lookup failed", zap.Error(err))
		return CreatedProfileResponse{}, err
	}

	password, err := credential.GeneratePassword(credential.DefaultPasswordLength)
	if err != nil {
		s.logger.Error("create profile password generation failed", zap.Error(err))
		return CreatedProfileResponse{}, apperror.ErrInternal
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("create profile password hash failed", zap.Error(err))
		return CreatedProfileResponse{}, apperror.ErrInternal
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create profile begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return CreatedProfileResponse{}, apperror.Store(err)
	}
	defer tx.Rollback()

	serial, err := s.counter.WithTx(tx).GetNextValue(ctx, actor.CompanyID, counter.LoginSerial)
	if err != nil {
		s.logger.Error("create profile serial allocation failed", zap.Error(err))
		return CreatedProfileResponse{}, apperror.Store(err)
	}

	first := strings.TrimSpace(req.FirstName)
	last := strings.TrimSpace(req.LastName)
	if err := credential.CheckLoginIDParts(comp.Name, first, last, joining.Year(), int(serial)); err != nil {
		s.logger.Warn("create profile login id not canonical",
			zap.String("company_name", comp.Name),
			zap.Int64("serial", serial),
			zap.Error(err),
		)
		return CreatedProfileResponse{}, mapLoginIDError(err)
	}
	loginID := credential.GenerateLoginID(comp.Name, first, last, joining.Year(), int(serial))

	now := s.now().UTC()
	role := access.NormalizeRole(req.Role)
	p := &Profile{
		ID:               uuid.New(),
		CompanyID:        companyID,
		LoginID:          loginID,
		PasswordHash:     string(hash),
		EmployeeCode:     trimPtr(req.EmployeeCode),
		FirstName:        first,
		LastName:         last,
		FullName:         fullName(first, last),
		Email:            strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:            trimPtr(req.Phone),
		Role:             role.String(),
		Designation:      trimPtr(req.Designation),
		Department:       trimPtr(req.Department),
		AttendanceStatus: AttendanceAbsent,
		IsFirstLogin:     true,
		JoiningDate:      joining,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, p); err != nil {
		s.logger.Error("create profile persist failed", zap.Error(err))
		return CreatedProfileResponse{}, mapRepositoryError(err)
	}

	event, err := kafka.NewOutboxEvent(ctx, kafka.AggregateProfile, p.ID.String(), events.EventTypeProfileCreated, events.ProfileLifecycleTopic,
		events.ProfileCreatedEvent{
			EventType:   events.EventTypeProfileCreated,
			ProfileID:   p.ID.String(),
			CompanyID:   actor.CompanyID,
			LoginID:     loginID,
			JoiningYear: joining.Year(),
			OccurredAt:  now,
		})
	if err != nil {
		s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
		return CreatedProfileResponse{}, apperror.ErrInternal
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("create profile outbox persist failed",
			zap.String("profile_id", p.ID.String()),
			zap.Error(err),
		)
		return CreatedProfileResponse{}, apperror.Store(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return CreatedProfileResponse{}, apperror.Store(err)
	}

	s.invalidateOptions(ctx, actor.CompanyID)

	if s.notifier != nil {
		if err := s.notifier.ProfileProvisioned(ctx, notification.Provisioned{
			Email:             p.Email,
			Name:              p.FullName,
			LoginID:           loginID,
			TemporaryPassword: password,
		}); err != nil {
			s.logger.Warn("provisioning notice failed",
				zap.String("profile_id", p.ID.String()),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("create profile success",
		zap.String("request_id", rid),
		zap.String("profile_id", p.ID.String()),
		zap.String("login_id", loginID),
	)

	return CreatedProfileResponse{
		Profile:           mapToResponse(*p),
		TemporaryPassword: password,
	}, nil
}

func (s *service) GetAll(ctx context.Context, actor access.Actor) ([]ProfileResponse, error) {
	s.logger.Debug("get all profiles requested", zap.String("company_id", actor.CompanyID))

	rows, err := s.repo.FindAllByCompany(ctx, actor.CompanyID)
	if err != nil {
		s.logger.Error("get all profiles failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetOptions(ctx context.Context, actor access.Actor) ([]OptionResponse, error) {
	cacheKey := OptionsKey(actor.CompanyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []OptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		rows, err := s.repo.FindOptionsByCompany(ctx, actor.CompanyID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]OptionResponse, len(rows))
		for i, p := range rows {
			resp[i] = OptionResponse{ID: p.ID.String(), FullName: p.FullName}
		}

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, data, optionsTTL).Err(); err != nil {
					s.logger.Warn("cache profile options failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("get profile options failed", zap.Error(err))
		return nil, err
	}

	return v.([]OptionResponse), nil
}

func (s *service) GetByID(ctx context.Context, actor access.Actor, id string) (ProfileResponse, error) {
	s.logger.Debug("get profile by id requested",
		zap.String("company_id", actor.CompanyID),
		zap.String("profile_id", id),
	)
	if _, err := uuid.Parse(id); err != nil {
		return ProfileResponse{}, profileerrors.ErrProfileNotFound
	}

	p, err := s.repo.FindByIDAndCompany(ctx, actor.CompanyID, id)
	if err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*p), nil
}

func (s *service) Me(ctx context.Context, actor access.Actor) (ProfileResponse, error) {
	p, err := s.repo.FindByID(ctx, actor.UserID)
	if err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*p), nil
}

func (s *service) UpdateSelf(ctx context.Context, actor access.Actor, req UpdateSelfRequest) (ProfileResponse, error) {
	s.logger.Debug("update own profile requested", zap.String("profile_id", actor.UserID))

	p, err := s.repo.FindByID(ctx, actor.UserID)
	if err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}

	if req.Phone != nil {
		p.Phone = trimPtr(req.Phone)
	}
	if req.Address != nil {
		p.Address = trimPtr(req.Address)
	}
	p.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("update own profile persist failed", zap.Error(err))
		return ProfileResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update own profile success", zap.String("profile_id", actor.UserID))
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, actor access.Actor, id string, req UpdateProfileRequest) (ProfileResponse, error) {
	s.logger.Debug("update profile requested",
		zap.String("company_id", actor.CompanyID),
		zap.String("profile_id", id),
	)

	if err := s.authz.Require(actor, access.ObjEmployee, access.ActManage); err != nil {
		return ProfileResponse{}, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return ProfileResponse{}, profileerrors.ErrProfileNotFound
	}

	p, err := s.repo.FindByIDAndCompany(ctx, actor.CompanyID, id)
	if err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}

	p.FirstName = strings.TrimSpace(req.FirstName)
	p.LastName = strings.TrimSpace(req.LastName)
	p.FullName = fullName(p.FirstName, p.LastName)
	p.Email = strings.ToLower(strings.TrimSpace(req.Email))
	p.Phone = trimPtr(req.Phone)
	p.Address = trimPtr(req.Address)
	p.EmployeeCode = trimPtr(req.EmployeeCode)
	p.Role = access.NormalizeRole(req.Role).String()
	p.Designation = trimPtr(req.Designation)
	p.Department = trimPtr(req.Department)
	p.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("update profile persist failed", zap.Error(err))
		return ProfileResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx, actor.CompanyID)

	s.logger.Info("update profile success", zap.String("profile_id", id))
	return mapToResponse(*p), nil
}

func (s *service) CompleteFirstLogin(ctx context.Context, actor access.Actor) error {
	if err := s.repo.ClearFirstLogin(ctx, actor.UserID, s.now().UTC()); err != nil {
		s.logger.Error("clear first login failed", zap.String("profile_id", actor.UserID), zap.Error(err))
		return mapRepositoryError(err)
	}
	s.logger.Info("first login completed", zap.String("profile_id", actor.UserID))
	return nil
}

// LoadActor turns an authenticated user id into an Actor. Unknown users are
// reported as unauthenticated.
func (s *service) LoadActor(ctx context.Context, userID string) (access.Actor, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return access.Actor{}, apperror.ErrUnauthenticated
	}
	p, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return access.Actor{}, apperror.ErrUnauthenticated
		}
		s.logger.Error("load actor failed", zap.String("user_id", userID), zap.Error(err))
		return access.Actor{}, apperror.Store(err)
	}
	return access.Actor{
		UserID:    p.ID.String(),
		CompanyID: p.CompanyID.String(),
		Role:      access.NormalizeRole(p.Role),
	}, nil
}

func (s *service) invalidateOptions(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := OptionsKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate profile options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(p Profile) ProfileResponse {
	return ProfileResponse{
		ID:               p.ID.String(),
		CompanyID:        p.CompanyID.String(),
		LoginID:          p.LoginID,
		EmployeeCode:     p.EmployeeCode,
		FirstName:        p.FirstName,
		LastName:         p.LastName,
		FullName:         p.FullName,
		Email:            p.Email,
		Phone:            p.Phone,
		Address:          p.Address,
		Role:             access.NormalizeRole(p.Role).String(),
		Designation:      p.Designation,
		Department:       p.Department,
		AttendanceStatus: p.AttendanceStatus,
		IsFirstLogin:     p.IsFirstLogin,
		JoiningDate:      dateutil.Format(p.JoiningDate),
	}
}

func mapToListResponse(rows []Profile) []ProfileResponse {
	res := make([]ProfileResponse, len(rows))
	for i, p := range rows {
		res[i] = mapToResponse(p)
	}
	return res
}

func trimPtr(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
