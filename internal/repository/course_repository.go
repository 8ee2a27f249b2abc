package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hkn-dev/tutoring-api/internal/dto"
)

// CourseRepository searches the course catalog for the autocomplete
// widget. Courses are owned by a separate subsystem; this is read-only.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository instantiates a course repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// Search returns courses whose title matches the query.
func (r *CourseRepository) Search(ctx context.Context, search string, limit int) ([]dto.CourseOption, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	query := fmt.Sprintf(`SELECT id, title FROM courses WHERE title ILIKE $1 ORDER BY title LIMIT %d`, limit)
	var options []dto.CourseOption
	if err := r.db.SelectContext(ctx, &options, query, "%"+search+"%"); err != nil {
		return nil, fmt.Errorf("search courses: %w", err)
	}
	return options, nil
}
