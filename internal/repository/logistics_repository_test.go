package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogisticsMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestLogisticsRepositoryGetMostRecent(t *testing.T) {
	db, mock, cleanup := newLogisticsMock(t)
	defer cleanup()
	repo := NewLogisticsRepository(db)

	now := time.Now()
	semesterID := "sem-1"
	mock.ExpectQuery("ORDER BY s.year DESC NULLS LAST").
		WillReturnRows(sqlmock.NewRows([]string{"id", "semester_id", "created_at", "updated_at"}).
			AddRow("log-1", semesterID, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM logistics_one_hour_tutors WHERE logistics_id = $1 ORDER BY user_id")).
		WithArgs("log-1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(1).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM logistics_two_hour_tutors WHERE logistics_id = $1 ORDER BY user_id")).
		WithArgs("log-1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(3))

	logistics, err := repo.GetMostRecent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "log-1", logistics.ID)
	require.NotNil(t, logistics.SemesterID)
	assert.Equal(t, semesterID, *logistics.SemesterID)
	assert.Equal(t, []int64{1, 2}, logistics.OneHourTutorIDs)
	assert.Equal(t, []int64{3}, logistics.TwoHourTutorIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogisticsRepositoryGetMostRecentEmpty(t *testing.T) {
	db, mock, cleanup := newLogisticsMock(t)
	defer cleanup()
	repo := NewLogisticsRepository(db)

	mock.ExpectQuery("ORDER BY s.year DESC NULLS LAST").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetMostRecent(context.Background())
	require.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogisticsRepositorySetTutorPools(t *testing.T) {
	db, mock, cleanup := newLogisticsMock(t)
	defer cleanup()
	repo := NewLogisticsRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM logistics_one_hour_tutors WHERE logistics_id = $1")).
		WithArgs("log-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM logistics_two_hour_tutors WHERE logistics_id = $1")).
		WithArgs("log-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO logistics_one_hour_tutors").
		WithArgs("log-1", int64(1)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO logistics_two_hour_tutors").
		WithArgs("log-1", int64(2)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE tutoring_logistics SET updated_at").
		WithArgs("log-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.SetTutorPools(context.Background(), "log-1", []int64{1}, []int64{2})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogisticsRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newLogisticsMock(t)
	defer cleanup()
	repo := NewLogisticsRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tutoring_logistics WHERE id = $1")).
		WithArgs("nope").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "nope")
	require.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}
