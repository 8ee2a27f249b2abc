package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/hkn-dev/tutoring-api/internal/dto"
	"github.com/hkn-dev/tutoring-api/internal/models"
	appErrors "github.com/hkn-dev/tutoring-api/pkg/errors"
)

type tutorSearcher interface {
	SearchByName(ctx context.Context, search string, ids []int64, limit int) ([]models.User, error)
}

type courseSearcher interface {
	Search(ctx context.Context, search string, limit int) ([]dto.CourseOption, error)
}

// AutocompleteService backs the tutor and course search widgets.
type AutocompleteService struct {
	users     tutorSearcher
	courses   courseSearcher
	logistics logisticsMostRecentReader
	logger    *zap.Logger
}

type logisticsMostRecentReader interface {
	GetMostRecent(ctx context.Context) (*models.TutoringLogistics, error)
}

// NewAutocompleteService builds the service.
func NewAutocompleteService(users tutorSearcher, courses courseSearcher, logistics logisticsMostRecentReader, logger *zap.Logger) *AutocompleteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AutocompleteService{users: users, courses: courses, logistics: logistics, logger: logger}
}

// SearchTutors matches tutors by name, scoped to the tutor pools of the
// most recent logistics record. With no logistics record there are no
// tutors to offer.
func (s *AutocompleteService) SearchTutors(ctx context.Context, search string) ([]dto.TutorOption, error) {
	logistics, err := s.logistics.GetMostRecent(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []dto.TutorOption{}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load logistics")
	}

	ids := append(append([]int64{}, logistics.OneHourTutorIDs...), logistics.TwoHourTutorIDs...)
	if len(ids) == 0 {
		return []dto.TutorOption{}, nil
	}

	users, err := s.users.SearchByName(ctx, search, ids, 20)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to search tutors")
	}

	options := make([]dto.TutorOption, 0, len(users))
	for i := range users {
		options = append(options, dto.TutorOption{ID: users[i].ID, Name: users[i].FullName()})
	}
	return options, nil
}

// SearchCourses matches catalog courses by title.
func (s *AutocompleteService) SearchCourses(ctx context.Context, search string) ([]dto.CourseOption, error) {
	options, err := s.courses.Search(ctx, search, 20)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to search courses")
	}
	if options == nil {
		options = []dto.CourseOption{}
	}
	return options, nil
}
