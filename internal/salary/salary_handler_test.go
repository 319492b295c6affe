package salary_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrms/internal/access"
	"go-hrms/internal/salary"
	salaryerrors "go-hrms/internal/salary/errors"
	"go-hrms/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

type fakeSalaryService struct {
	salary.Service
	getByProfileFn func(ctx context.Context, actor access.Actor, profileID string) (salary.SalaryResponse, error)
	upsertFn       func(ctx context.Context, actor access.Actor, profileID string, req salary.UpsertSalaryRequest) (salary.SalaryResponse, error)
}

func (f *fakeSalaryService) GetByProfile(ctx context.Context, actor access.Actor, profileID string) (salary.SalaryResponse, error) {
	return f.getByProfileFn(ctx, actor, profileID)
}

func (f *fakeSalaryService) Upsert(ctx context.Context, actor access.Actor, profileID string, req salary.UpsertSalaryRequest) (salary.SalaryResponse, error) {
	return f.upsertFn(ctx, actor, profileID, req)
}

func newTestContext(method, target, body string, actor *access.Actor) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if actor != nil {
		c.Set(access.ContextActor, *actor)
	}
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestHandler_GetByProfile(t *testing.T) {
	actor := access.Actor{UserID: uuid.NewString(), CompanyID: uuid.NewString(), Role: access.RoleEmployee}

	t.Run("success", func(t *testing.T) {
		svc := &fakeSalaryService{
			getByProfileFn: func(ctx context.Context, a access.Actor, profileID string) (salary.SalaryResponse, error) {
				assert.Equal(t, actor.UserID, profileID)
				return salary.SalaryResponse{ProfileID: profileID, MonthlyWage: "1000.00"}, nil
			},
		}
		h := salary.NewHandler(svc)
		c, w := newTestContext(http.MethodGet, "/salaries/"+actor.UserID, "", &actor)
		c.Params = gin.Params{{Key: "profile_id", Value: actor.UserID}}

		h.GetByProfile(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var got salary.SalaryResponse
		assert.NoError(t, json.Unmarshal(decode(t, w).Data, &got))
		assert.Equal(t, "1000.00", got.MonthlyWage)
	})

	t.Run("forbidden", func(t *testing.T) {
		svc := &fakeSalaryService{
			getByProfileFn: func(ctx context.Context, a access.Actor, profileID string) (salary.SalaryResponse, error) {
				return salary.SalaryResponse{}, apperror.ErrUnauthorized
			},
		}
		h := salary.NewHandler(svc)
		c, w := newTestContext(http.MethodGet, "/salaries/x", "", &actor)
		c.Params = gin.Params{{Key: "profile_id", Value: "x"}}

		h.GetByProfile(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no actor", func(t *testing.T) {
		h := salary.NewHandler(&fakeSalaryService{})
		c, w := newTestContext(http.MethodGet, "/salaries/x", "", nil)

		h.GetByProfile(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHandler_Upsert(t *testing.T) {
	admin := access.Actor{UserID: uuid.NewString(), CompanyID: uuid.NewString(), Role: access.RoleAdmin}
	profileID := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		svc := &fakeSalaryService{
			upsertFn: func(ctx context.Context, a access.Actor, id string, req salary.UpsertSalaryRequest) (salary.SalaryResponse, error) {
				assert.Equal(t, profileID, id)
				assert.Equal(t, "2500.75", req.MonthlyWage)
				return salary.SalaryResponse{ProfileID: id, MonthlyWage: req.MonthlyWage}, nil
			},
		}
		h := salary.NewHandler(svc)
		c, w := newTestContext(http.MethodPut, "/salaries/"+profileID, `{"monthly_wage":"2500.75","effective_date":"2024-07-01"}`, &admin)
		c.Params = gin.Params{{Key: "profile_id", Value: profileID}}

		h.Upsert(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("binding error", func(t *testing.T) {
		h := salary.NewHandler(&fakeSalaryService{})
		c, w := newTestContext(http.MethodPut, "/salaries/"+profileID, `{"effective_date":"2024-07-01"}`, &admin)
		c.Params = gin.Params{{Key: "profile_id", Value: profileID}}

		h.Upsert(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperror.CodeValidation, decode(t, w).Error.Code)
	})

	t.Run("invalid wage", func(t *testing.T) {
		svc := &fakeSalaryService{
			upsertFn: func(ctx context.Context, a access.Actor, id string, req salary.UpsertSalaryRequest) (salary.SalaryResponse, error) {
				return salary.SalaryResponse{}, salaryerrors.ErrInvalidWage
			},
		}
		h := salary.NewHandler(svc)
		c, w := newTestContext(http.MethodPut, "/salaries/"+profileID, `{"monthly_wage":"abc","effective_date":"2024-07-01"}`, &admin)
		c.Params = gin.Params{{Key: "profile_id", Value: profileID}}

		h.Upsert(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
