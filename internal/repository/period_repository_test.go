package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-rating/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func periodRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "is_active", "annual_workload", "created_at", "updated_at"})
}

func TestPeriodRepositoryListActive(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPeriodRepository(db)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM report_periods WHERE is_active = TRUE")).
		WillReturnRows(periodRows().AddRow(1, "2023/2024", true, 600, now, now))

	periods, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, periods, 1)
	assert.Equal(t, "2023/2024", periods[0].Title)
	assert.Equal(t, 600.0, periods[0].AnnualWorkload)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPeriodRepositoryCreateIsInactive(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPeriodRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO report_periods")).
		WithArgs("2024/2025", 540.0, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	period := &models.ReportPeriod{Title: "2024/2025", AnnualWorkload: 540, IsActive: true}
	require.NoError(t, repo.Create(context.Background(), period))
	assert.EqualValues(t, 7, period.ID)
	assert.False(t, period.IsActive)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPeriodRepositorySetActive(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPeriodRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE report_periods SET is_active = FALSE")).
		WithArgs(sqlmock.AnyArg(), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE report_periods SET is_active = TRUE")).
		WithArgs(int64(3), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.SetActive(context.Background(), 3))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPeriodRepositorySetActiveRollsBack(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPeriodRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE report_periods SET is_active = FALSE")).
		WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := repo.SetActive(context.Background(), 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deactivate other periods")
	require.NoError(t, mock.ExpectationsWereMet())
}
