package migrate_test

import (
	"context"
	"errors"
	"testing"

	"go-hrms/internal/migrate"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestEmbedded(t *testing.T) {
	got, err := migrate.Embedded()

	assert.NoError(t, err)
	assert.NotEmpty(t, got)
	assert.Equal(t, "0001_init", got[0].Version)
	assert.Contains(t, got[0].SQL, "CONSTRAINT uq_salary_profile UNIQUE (profile_id)")
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	migrations := []migrate.Migration{
		{Version: "0001_init", SQL: "CREATE TABLE a (id INT)"},
		{Version: "0002_more", SQL: "CREATE TABLE b (id INT)"},
	}

	t.Run("skips applied versions", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").WithArgs("0001_init").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectQuery("SELECT EXISTS").WithArgs("0002_more").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectBegin()
		mock.ExpectExec("CREATE TABLE b").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO schema_migrations").WithArgs("0002_more").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		applied, err := migrate.Run(ctx, db, migrations, zap.NewNop())

		assert.NoError(t, err)
		assert.Equal(t, 1, applied)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed migration rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").WithArgs("0001_init").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectBegin()
		mock.ExpectExec("CREATE TABLE a").WillReturnError(errors.New("syntax error"))
		mock.ExpectRollback()

		applied, err := migrate.Run(ctx, db, migrations, zap.NewNop())

		assert.EqualError(t, err, "migration 0001_init failed: syntax error")
		assert.Zero(t, applied)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
