package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/hkn-dev/tutoring-api/internal/dto"
	"github.com/hkn-dev/tutoring-api/internal/models"
)

// SlotRepository handles persistence for scheduled tutoring slots.
type SlotRepository struct {
	db *sqlx.DB
}

// NewSlotRepository instantiates a slot repository.
func NewSlotRepository(db *sqlx.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

// FindByID loads a slot with its assigned tutors.
func (r *SlotRepository) FindByID(ctx context.Context, id string) (*models.Slot, error) {
	const query = `SELECT id, logistics_id, room_id, num_tutors, weekday, start_time, created_at, updated_at
FROM slots WHERE id = $1`
	var slot models.Slot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		return nil, err
	}
	if err := r.loadTutors(ctx, &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

// ListAll returns the public slot listing with room details and
// aggregated tutor names, ordered by weekday then start time.
func (r *SlotRepository) ListAll(ctx context.Context) ([]dto.SlotListing, error) {
	const query = `SELECT s.id, s.weekday, s.start_time, s.num_tutors, r.name AS room_name, r.color AS room_color,
       COALESCE(string_agg(TRIM(u.first_name || ' ' || u.last_name), ', ' ORDER BY u.first_name, u.last_name), '') AS tutor_names
FROM slots s
LEFT JOIN rooms r ON r.id = s.room_id
LEFT JOIN slot_tutors st ON st.slot_id = s.id
LEFT JOIN users u ON u.id = st.user_id
GROUP BY s.id, s.weekday, s.start_time, s.num_tutors, r.name, r.color
ORDER BY s.weekday ASC, s.start_time ASC`
	var listings []dto.SlotListing
	if err := r.db.SelectContext(ctx, &listings, query); err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return listings, nil
}

// Create inserts a slot and its tutor assignments.
func (r *SlotRepository) Create(ctx context.Context, slot *models.Slot) error {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = now
	}
	slot.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin slot create: %w", err)
	}

	const insertQuery = `INSERT INTO slots (id, logistics_id, room_id, num_tutors, weekday, start_time, created_at, updated_at)
VALUES (:id, :logistics_id, :room_id, :num_tutors, :weekday, :start_time, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, insertQuery, slot); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("insert slot: %w", err)
	}
	if err := replaceSlotTutors(ctx, tx, slot.ID, slot.TutorIDs); err != nil {
		tx.Rollback() //nolint:errcheck
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit slot create: %w", err)
	}
	return nil
}

// Update modifies a slot and replaces its tutor assignments.
func (r *SlotRepository) Update(ctx context.Context, slot *models.Slot) error {
	slot.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin slot update: %w", err)
	}

	const updateQuery = `UPDATE slots SET logistics_id = :logistics_id, room_id = :room_id, num_tutors = :num_tutors,
weekday = :weekday, start_time = :start_time, updated_at = :updated_at WHERE id = :id`
	result, err := tx.NamedExecContext(ctx, updateQuery, slot)
	if err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("update slot: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("slot rows affected: %w", err)
	}
	if affected == 0 {
		tx.Rollback() //nolint:errcheck
		return sql.ErrNoRows
	}
	if err := replaceSlotTutors(ctx, tx, slot.ID, slot.TutorIDs); err != nil {
		tx.Rollback() //nolint:errcheck
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit slot update: %w", err)
	}
	return nil
}

// Delete removes a slot; tutor assignment rows cascade.
func (r *SlotRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("slot rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func replaceSlotTutors(ctx context.Context, tx *sqlx.Tx, slotID string, tutorIDs []int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM slot_tutors WHERE slot_id = $1`, slotID); err != nil {
		return fmt.Errorf("clear slot tutors: %w", err)
	}
	for _, userID := range tutorIDs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO slot_tutors (slot_id, user_id) VALUES ($1, $2)`, slotID, userID); err != nil {
			return fmt.Errorf("insert slot tutor: %w", err)
		}
	}
	return nil
}

func (r *SlotRepository) loadTutors(ctx context.Context, slot *models.Slot) error {
	const query = `SELECT user_id FROM slot_tutors WHERE slot_id = $1 ORDER BY user_id`
	if err := r.db.SelectContext(ctx, &slot.TutorIDs, query, slot.ID); err != nil {
		return fmt.Errorf("load slot tutors: %w", err)
	}
	return nil
}
