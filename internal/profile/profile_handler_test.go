package profile_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrms/internal/access"
	"go-hrms/internal/profile"
	profileerrors "go-hrms/internal/profile/errors"
	"go-hrms/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeProfileService struct {
	profile.Service
	createFn func(ctx context.Context, actor access.Actor, req profile.CreateProfileRequest) (profile.CreatedProfileResponse, error)
	meFn     func(ctx context.Context, actor access.Actor) (profile.ProfileResponse, error)
	getFn    func(ctx context.Context, actor access.Actor, id string) (profile.ProfileResponse, error)
}

func (f *fakeProfileService) Create(ctx context.Context, actor access.Actor, req profile.CreateProfileRequest) (profile.CreatedProfileResponse, error) {
	return f.createFn(ctx, actor, req)
}

func (f *fakeProfileService) Me(ctx context.Context, actor access.Actor) (profile.ProfileResponse, error) {
	return f.meFn(ctx, actor)
}

func (f *fakeProfileService) GetByID(ctx context.Context, actor access.Actor, id string) (profile.ProfileResponse, error) {
	return f.getFn(ctx, actor, id)
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

func TestProfileHandler_Create(t *testing.T) {
	admin, _ := actors()

	t.Run("returns temporary password once", func(t *testing.T) {
		svc := &fakeProfileService{
			createFn: func(ctx context.Context, a access.Actor, req profile.CreateProfileRequest) (profile.CreatedProfileResponse, error) {
				assert.Equal(t, "John", req.FirstName)
				return profile.CreatedProfileResponse{
					Profile:           profile.ProfileResponse{ID: uuid.NewString(), LoginID: "ODJODO20240001"},
					TemporaryPassword: "Abc1!xyzXYZ9",
				}, nil
			},
		}
		c, w := newTestContext(http.MethodPost, "/profiles", `{"first_name":"John","last_name":"Doe","email":"john@odoo.in"}`, &admin)

		profile.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var env struct {
			Data profile.CreatedProfileResponse `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "Abc1!xyzXYZ9", env.Data.TemporaryPassword)
	})

	t.Run("invalid email", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "/profiles", `{"first_name":"John","last_name":"Doe","email":"nope"}`, &admin)

		profile.NewHandler(&fakeProfileService{}).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeValidation)
	})
}

func TestProfileHandler_Reads(t *testing.T) {
	_, employee := actors()

	t.Run("me", func(t *testing.T) {
		svc := &fakeProfileService{
			meFn: func(ctx context.Context, a access.Actor) (profile.ProfileResponse, error) {
				return profile.ProfileResponse{ID: a.UserID, IsFirstLogin: true}, nil
			},
		}
		c, w := newTestContext(http.MethodGet, "/me", "", &employee)

		profile.NewHandler(svc).Me(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), employee.UserID)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeProfileService{
			getFn: func(ctx context.Context, a access.Actor, id string) (profile.ProfileResponse, error) {
				return profile.ProfileResponse{}, profileerrors.ErrProfileNotFound
			},
		}
		c, w := newTestContext(http.MethodGet, "/profiles/x", "", &employee)
		c.Params = gin.Params{{Key: "id", Value: "x"}}

		profile.NewHandler(svc).GetByID(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
