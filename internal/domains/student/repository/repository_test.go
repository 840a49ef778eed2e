package repository_test

import (
	"context"
	"errors"
	"galpao/infras/otel/mocks"
	"galpao/infras/postgres"
	"galpao/internal/domains/student/repository"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adjustQuery = "UPDATE students SET credits = credits + $1, modified_at = $2, modified_by = $3 WHERE id = $4 AND credits + $5 >= 0"

func setup(t *testing.T) (repository.Student, sqlmock.Sqlmock, *sqlx.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")

	return repository.New(&postgres.Connection{Read: sqlxDB, Write: sqlxDB}, mocks.NewOtel()), mock, sqlxDB
}

func TestAdjustCreditsTx(t *testing.T) {
	tests := []struct {
		name     string
		delta    int
		affected int64
		want     bool
	}{
		{"debit applied", -1, 1, true},
		{"debit refused at zero", -1, 0, false},
		{"refund applied", 1, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := setup(t)

			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta(adjustQuery)).
				WithArgs(tt.delta, sqlmock.AnyArg(), "Ana", "s-1", tt.delta).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))
			mock.ExpectRollback()

			tx, err := db.Beginx()
			require.NoError(t, err)

			got, err := repo.AdjustCreditsTx(context.Background(), tx, "s-1", tt.delta, "Ana")

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			require.NoError(t, tx.Rollback())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAdjustCreditsTx_Error(t *testing.T) {
	repo, mock, db := setup(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE students").WillReturnError(errors.New("check constraint"))

	tx, err := db.Beginx()
	require.NoError(t, err)

	got, err := repo.AdjustCreditsTx(context.Background(), tx, "s-1", -1, "Ana")

	require.Error(t, err)
	assert.False(t, got)
}
