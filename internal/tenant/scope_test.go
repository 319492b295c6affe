package tenant_test

import (
	"testing"

	"go-hrms/internal/tenant"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type row struct {
	ID string
}

func dryRun(t *testing.T) *gorm.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{DryRun: true})
	assert.NoError(t, err)
	return gdb
}

func TestScope(t *testing.T) {
	t.Run("plain column", func(t *testing.T) {
		stmt := dryRun(t).Table("profiles").Scopes(tenant.Scope("c-1")).Find(&[]row{}).Statement

		assert.Equal(t, `SELECT * FROM "profiles" WHERE "company_id" = $1`, stmt.SQL.String())
		assert.Equal(t, []any{"c-1"}, stmt.Vars)
	})

	t.Run("qualified column", func(t *testing.T) {
		stmt := dryRun(t).Table("salaries").Scopes(tenant.Scope("c-1", "salaries")).Find(&[]row{}).Statement

		assert.Equal(t, `SELECT * FROM "salaries" WHERE "salaries"."company_id" = $1`, stmt.SQL.String())
	})
}
