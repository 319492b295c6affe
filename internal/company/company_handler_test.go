package company_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrms/internal/access"
	"go-hrms/internal/company"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	getByIDFn func(ctx context.Context, id string) (*company.CompanyResponse, error)
}

func (f *fakeService) GetByID(ctx context.Context, id string) (*company.CompanyResponse, error) {
	return f.getByIDFn(ctx, id)
}

func TestHandler_GetMe(t *testing.T) {
	gin.SetMode(gin.TestMode)
	companyID := uuid.NewString()

	t.Run("returns caller company", func(t *testing.T) {
		svc := &fakeService{getByIDFn: func(ctx context.Context, id string) (*company.CompanyResponse, error) {
			assert.Equal(t, companyID, id)
			return &company.CompanyResponse{ID: id, Name: "Odoo India"}, nil
		}}
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/company", nil)
		c.Set(access.ContextActor, access.Actor{UserID: uuid.NewString(), CompanyID: companyID, Role: access.RoleEmployee})

		company.NewHandler(svc).GetMe(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Odoo India")
	})

	t.Run("unauthenticated", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/company", nil)

		company.NewHandler(&fakeService{}).GetMe(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
