package access_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrms/internal/access"
	"go-hrms/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeRole(t *testing.T) {
	tests := map[string]access.Role{
		"admin":    access.RoleAdmin,
		"ADMIN":    access.RoleAdmin,
		" hr ":     access.RoleAdmin,
		"HR":       access.RoleAdmin,
		"employee": access.RoleEmployee,
		"manager":  access.RoleEmployee,
		"":         access.RoleEmployee,
	}

	for raw, expected := range tests {
		assert.Equal(t, expected, access.NormalizeRole(raw), raw)
	}
}

func TestGate(t *testing.T) {
	gate, err := access.NewGate()
	assert.NoError(t, err)

	admin := access.Actor{UserID: "u1", CompanyID: "c1", Role: access.NormalizeRole("hr")}
	employee := access.Actor{UserID: "u2", CompanyID: "c1", Role: access.RoleEmployee}

	t.Run("admin", func(t *testing.T) {
		assert.True(t, gate.CanManageEmployees(admin))
		assert.True(t, gate.CanViewSalary(admin))
		assert.True(t, gate.Allows(admin, access.ObjLeave, access.ActApprove))
		assert.True(t, gate.Allows(admin, access.ObjAttendance, access.ActReadAll))
		assert.NoError(t, gate.Require(admin, access.ObjAllocation, access.ActManage))
	})

	t.Run("employee", func(t *testing.T) {
		assert.False(t, gate.CanManageEmployees(employee))
		assert.False(t, gate.CanViewSalary(employee))
		err := gate.Require(employee, access.ObjLeave, access.ActApprove)
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})

	t.Run("unknown permission", func(t *testing.T) {
		assert.False(t, gate.Allows(admin, "payroll", "run"))
	})
}

type fakeLoader struct {
	calls int
	actor access.Actor
	err   error
}

func (f *fakeLoader) LoadActor(ctx context.Context, userID string) (access.Actor, error) {
	f.calls++
	return f.actor, f.err
}

func TestResolve(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(loader access.ActorLoader, userID string) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			if userID != "" {
				c.Set("user_id", userID)
			}
			c.Next()
		})
		r.Use(access.Resolve(loader))
		r.GET("/who", func(c *gin.Context) {
			actor, ok := access.FromGin(c)
			ctxActor, ctxOK := access.ActorFromContext(c.Request.Context())
			assert.True(t, ctxOK)
			assert.Equal(t, actor, ctxActor)
			c.JSON(http.StatusOK, gin.H{"ok": ok, "role": actor.Role})
		})
		return r
	}

	t.Run("stores actor", func(t *testing.T) {
		loader := &fakeLoader{actor: access.Actor{UserID: "u1", CompanyID: "c1", Role: access.RoleAdmin}}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/who", nil)

		newRouter(loader, "u1").ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"role":"admin"`)
		assert.Equal(t, 1, loader.calls)
	})

	t.Run("missing user", func(t *testing.T) {
		loader := &fakeLoader{}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/who", nil)

		newRouter(loader, "").ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeUnauthenticated)
		assert.Equal(t, 0, loader.calls)
	})

	t.Run("loader error", func(t *testing.T) {
		loader := &fakeLoader{err: errors.New("db down")}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/who", nil)

		newRouter(loader, "u1").ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "db down")
	})
}

func TestRequirePermission(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gate, err := access.NewGate()
	assert.NoError(t, err)

	run := func(role access.Role) int {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			c.Set(access.ContextActor, access.Actor{UserID: "u1", CompanyID: "c1", Role: role})
			c.Next()
		})
		r.GET("/salaries", access.RequirePermission(gate, access.ObjSalary, access.ActRead), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/salaries", nil))
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, run(access.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, run(access.RoleEmployee))
}
