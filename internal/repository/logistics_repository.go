package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/hkn-dev/tutoring-api/internal/models"
)

// LogisticsRepository handles persistence for per-semester tutoring
// logistics and their tutor shift pools.
type LogisticsRepository struct {
	db *sqlx.DB
}

// NewLogisticsRepository instantiates a logistics repository.
func NewLogisticsRepository(db *sqlx.DB) *LogisticsRepository {
	return &LogisticsRepository{db: db}
}

const logisticsColumns = `l.id, l.semester_id, l.created_at, l.updated_at`

// GetMostRecent returns the logistics record for the latest semester,
// ordering by year descending then term descending. sql.ErrNoRows is
// returned when no logistics record exists.
func (r *LogisticsRepository) GetMostRecent(ctx context.Context) (*models.TutoringLogistics, error) {
	const query = `SELECT l.id, l.semester_id, l.created_at, l.updated_at
FROM tutoring_logistics l
LEFT JOIN semesters s ON s.id = l.semester_id
ORDER BY s.year DESC NULLS LAST,
         CASE s.term WHEN 'FALL' THEN 3 WHEN 'SUMMER' THEN 2 WHEN 'SPRING' THEN 1 ELSE 0 END DESC
LIMIT 1`
	var logistics models.TutoringLogistics
	if err := r.db.GetContext(ctx, &logistics, query); err != nil {
		return nil, err
	}
	if err := r.loadTutorPools(ctx, &logistics); err != nil {
		return nil, err
	}
	return &logistics, nil
}

// FindByID loads a logistics record with its tutor pools.
func (r *LogisticsRepository) FindByID(ctx context.Context, id string) (*models.TutoringLogistics, error) {
	query := fmt.Sprintf(`SELECT %s FROM tutoring_logistics l WHERE l.id = $1`, logisticsColumns)
	var logistics models.TutoringLogistics
	if err := r.db.GetContext(ctx, &logistics, query, id); err != nil {
		return nil, err
	}
	if err := r.loadTutorPools(ctx, &logistics); err != nil {
		return nil, err
	}
	return &logistics, nil
}

// List returns all logistics records, newest semester first, without
// tutor pools.
func (r *LogisticsRepository) List(ctx context.Context) ([]models.TutoringLogistics, error) {
	const query = `SELECT l.id, l.semester_id, l.created_at, l.updated_at
FROM tutoring_logistics l
LEFT JOIN semesters s ON s.id = l.semester_id
ORDER BY s.year DESC NULLS LAST,
         CASE s.term WHEN 'FALL' THEN 3 WHEN 'SUMMER' THEN 2 WHEN 'SPRING' THEN 1 ELSE 0 END DESC`
	var records []models.TutoringLogistics
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("list logistics: %w", err)
	}
	return records, nil
}

// Create inserts a logistics record.
func (r *LogisticsRepository) Create(ctx context.Context, logistics *models.TutoringLogistics) error {
	if logistics.ID == "" {
		logistics.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if logistics.CreatedAt.IsZero() {
		logistics.CreatedAt = now
	}
	logistics.UpdatedAt = now

	const query = `INSERT INTO tutoring_logistics (id, semester_id, created_at, updated_at)
VALUES (:id, :semester_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, logistics); err != nil {
		return fmt.Errorf("insert logistics: %w", err)
	}
	return nil
}

// Delete removes a logistics record; the join rows cascade.
func (r *LogisticsRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tutoring_logistics WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete logistics: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("logistics rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetTutorPools replaces both shift pools of a logistics record in one
// transaction.
func (r *LogisticsRepository) SetTutorPools(ctx context.Context, id string, oneHour, twoHour []int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tutor pool update: %w", err)
	}

	for _, table := range []string{"logistics_one_hour_tutors", "logistics_two_hour_tutors"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE logistics_id = $1`, table), id); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("clear tutor pool: %w", err)
		}
	}

	insert := func(table string, userIDs []int64) error {
		for _, userID := range userIDs {
			if _, err := tx.ExecContext(ctx, fmt.Sprintf(`INSERT INTO %s (logistics_id, user_id) VALUES ($1, $2)`, table), id, userID); err != nil {
				return fmt.Errorf("insert tutor pool member: %w", err)
			}
		}
		return nil
	}
	if err := insert("logistics_one_hour_tutors", oneHour); err != nil {
		tx.Rollback() //nolint:errcheck
		return err
	}
	if err := insert("logistics_two_hour_tutors", twoHour); err != nil {
		tx.Rollback() //nolint:errcheck
		return err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE tutoring_logistics SET updated_at = $2 WHERE id = $1`, id, time.Now().UTC()); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("touch logistics: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tutor pool update: %w", err)
	}
	return nil
}

func (r *LogisticsRepository) loadTutorPools(ctx context.Context, logistics *models.TutoringLogistics) error {
	const oneHourQuery = `SELECT user_id FROM logistics_one_hour_tutors WHERE logistics_id = $1 ORDER BY user_id`
	if err := r.db.SelectContext(ctx, &logistics.OneHourTutorIDs, oneHourQuery, logistics.ID); err != nil {
		return fmt.Errorf("load one hour tutors: %w", err)
	}
	const twoHourQuery = `SELECT user_id FROM logistics_two_hour_tutors WHERE logistics_id = $1 ORDER BY user_id`
	if err := r.db.SelectContext(ctx, &logistics.TwoHourTutorIDs, twoHourQuery, logistics.ID); err != nil {
		return fmt.Errorf("load two hour tutors: %w", err)
	}
	return nil
}
