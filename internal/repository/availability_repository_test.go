package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkn-dev/tutoring-api/internal/models"
)

func newAvailabilityMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func fullGrid(userID int64) []models.TutoringAvailability {
	rows := make([]models.TutoringAvailability, 0, len(models.SlotKeys))
	for _, key := range models.SlotKeys {
		rows = append(rows, models.TutoringAvailability{
			UserID:                  userID,
			Weekday:                 key.Weekday,
			Hour:                    key.Hour,
			PreferenceLevel:         models.PreferenceCanMake,
			CoryPreference:          true,
			SodaPreference:          true,
			AdjacentSlotsPreference: models.AdjacentDontCare,
		})
	}
	return rows
}

func TestAvailabilityRepositoryReplace(t *testing.T) {
	db, mock, cleanup := newAvailabilityMock(t)
	defer cleanup()
	repo := NewAvailabilityRepository(db)

	rows := fullGrid(42)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tutoring_availability WHERE user_id = $1")).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 25))
	for range rows {
		mock.ExpectExec("INSERT INTO tutoring_availability").
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()

	err := repo.Replace(context.Background(), 42, rows)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	for _, row := range rows {
		assert.NotEmpty(t, row.ID)
		assert.Equal(t, int64(42), row.UserID)
		assert.False(t, row.UpdatedAt.IsZero())
	}
}

func TestAvailabilityRepositoryReplaceRollsBackOnInsertFailure(t *testing.T) {
	db, mock, cleanup := newAvailabilityMock(t)
	defer cleanup()
	repo := NewAvailabilityRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tutoring_availability WHERE user_id = $1")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 25))
	mock.ExpectExec("INSERT INTO tutoring_availability").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.Replace(context.Background(), 7, fullGrid(7))
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepositoryListByUser(t *testing.T) {
	db, mock, cleanup := newAvailabilityMock(t)
	defer cleanup()
	repo := NewAvailabilityRepository(db)

	columns := []string{"id", "user_id", "semester_id", "weekday", "hour", "preference_level", "cory_preference", "soda_preference", "adjacent_slots_preference"}
	rows := sqlmock.NewRows(columns).
		AddRow("row-1", 42, nil, 0, 12, 3, true, false, 1).
		AddRow("row-2", 42, nil, 0, 13, 0, true, false, 1)
	mock.ExpectQuery("SELECT (.+) FROM tutoring_availability WHERE user_id").
		WithArgs(int64(42)).
		WillReturnRows(rows)

	stored, err := repo.ListByUser(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, 12, stored[0].Hour)
	assert.Equal(t, 3, stored[0].PreferenceLevel)
	assert.False(t, stored[0].SodaPreference)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepositoryListAll(t *testing.T) {
	db, mock, cleanup := newAvailabilityMock(t)
	defer cleanup()
	repo := NewAvailabilityRepository(db)

	columns := []string{"user_id", "user_name", "weekday", "hour", "preference_level", "cory_preference", "soda_preference", "adjacent_slots_preference"}
	rows := sqlmock.NewRows(columns).
		AddRow(1, "Ada Lovelace", 0, 12, 2, true, true, -1).
		AddRow(2, "Grace Hopper", 0, 12, 3, false, true, 0)
	mock.ExpectQuery("SELECT (.+) FROM tutoring_availability a").
		WillReturnRows(rows)

	records, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(1), records[0].UserID)
	assert.Equal(t, "Ada Lovelace", records[0].UserName)
	assert.Equal(t, "Grace Hopper", records[1].UserName)
	assert.Equal(t, 0, records[1].AdjacentSlotsPreference)
	assert.NoError(t, mock.ExpectationsWereMet())
}
