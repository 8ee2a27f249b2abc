package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/hkn-dev/tutoring-api/internal/dto"
	"github.com/hkn-dev/tutoring-api/internal/models"
)

// AvailabilityRepository persists tutoring availability grids.
type AvailabilityRepository struct {
	db *sqlx.DB
}

// NewAvailabilityRepository constructs the repository.
func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// Replace atomically swaps all stored rows for a user with the provided
// set. The delete and inserts run in one transaction so a failure
// partway never leaves a mixed or truncated grid behind.
func (r *AvailabilityRepository) Replace(ctx context.Context, userID int64, rows []models.TutoringAvailability) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin availability replace: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM tutoring_availability WHERE user_id = $1`, userID); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("delete availability rows: %w", err)
	}

	const insertQuery = `
INSERT INTO tutoring_availability (id, user_id, semester_id, weekday, hour, preference_level, cory_preference, soda_preference, adjacent_slots_preference, created_at, updated_at)
VALUES (:id, :user_id, :semester_id, :weekday, :hour, :preference_level, :cory_preference, :soda_preference, :adjacent_slots_preference, :created_at, :updated_at)`

	now := time.Now().UTC()
	for i := range rows {
		row := &rows[i]
		if row.ID == "" {
			row.ID = uuid.NewString()
		}
		row.UserID = userID
		if row.CreatedAt.IsZero() {
			row.CreatedAt = now
		}
		row.UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, insertQuery, row); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("insert availability row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit availability replace: %w", err)
	}
	return nil
}

// ListByUser returns the stored grid rows for one user in the default
// (weekday, hour) ordering.
func (r *AvailabilityRepository) ListByUser(ctx context.Context, userID int64) ([]models.TutoringAvailability, error) {
	const query = `SELECT id, user_id, semester_id, weekday, hour, preference_level, cory_preference, soda_preference, adjacent_slots_preference, created_at, updated_at
FROM tutoring_availability WHERE user_id = $1 ORDER BY weekday ASC, hour ASC`
	var rows []models.TutoringAvailability
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list availability for user: %w", err)
	}
	return rows, nil
}

// ListAll projects every stored row with the owner's display name for
// the staff scheduling dump, ordered by weekday then hour.
func (r *AvailabilityRepository) ListAll(ctx context.Context) ([]dto.AvailabilityRecord, error) {
	const query = `SELECT a.user_id, TRIM(u.first_name || ' ' || u.last_name) AS user_name, a.weekday, a.hour, a.preference_level, a.cory_preference, a.soda_preference, a.adjacent_slots_preference
FROM tutoring_availability a
JOIN users u ON u.id = a.user_id
ORDER BY a.weekday ASC, a.hour ASC`
	var records []dto.AvailabilityRecord
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	return records, nil
}
