package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hkn-dev/tutoring-api/internal/dto"
	"github.com/hkn-dev/tutoring-api/internal/models"
	appErrors "github.com/hkn-dev/tutoring-api/pkg/errors"
)

type logisticsRepository interface {
	GetMostRecent(ctx context.Context) (*models.TutoringLogistics, error)
	FindByID(ctx context.Context, id string) (*models.TutoringLogistics, error)
	List(ctx context.Context) ([]models.TutoringLogistics, error)
	Create(ctx context.Context, logistics *models.TutoringLogistics) error
	Delete(ctx context.Context, id string) error
	SetTutorPools(ctx context.Context, id string, oneHour, twoHour []int64) error
}

type semesterReader interface {
	FindByID(ctx context.Context, id string) (*models.Semester, error)
}

type userReader interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// LogisticsService manages per-semester tutoring logistics.
type LogisticsService struct {
	repo      logisticsRepository
	semesters semesterReader
	users     userReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLogisticsService builds the service.
func NewLogisticsService(repo logisticsRepository, semesters semesterReader, users userReader, validate *validator.Validate, logger *zap.Logger) *LogisticsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogisticsService{repo: repo, semesters: semesters, users: users, validator: validate, logger: logger}
}

// GetMostRecent returns the latest semester's logistics record, or nil
// when none exists. Absence is an expected state, not an error.
func (s *LogisticsService) GetMostRecent(ctx context.Context) (*models.TutoringLogistics, error) {
	logistics, err := s.repo.GetMostRecent(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load logistics")
	}
	return logistics, nil
}

// Get loads one logistics record.
func (s *LogisticsService) Get(ctx context.Context, id string) (*models.TutoringLogistics, error) {
	logistics, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "logistics not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load logistics")
	}
	return logistics, nil
}

// List returns all logistics records, newest semester first.
func (s *LogisticsService) List(ctx context.Context) ([]models.TutoringLogistics, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list logistics")
	}
	return records, nil
}

// Create adds a logistics record for a semester.
func (s *LogisticsService) Create(ctx context.Context, req dto.CreateLogisticsRequest) (*models.TutoringLogistics, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid logistics payload")
	}
	if req.SemesterID != nil {
		if _, err := s.semesters.FindByID(ctx, *req.SemesterID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrValidation, "semester not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load semester")
		}
	}

	logistics := &models.TutoringLogistics{SemesterID: req.SemesterID}
	if err := s.repo.Create(ctx, logistics); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create logistics")
	}
	logistics.OneHourTutorIDs = []int64{}
	logistics.TwoHourTutorIDs = []int64{}
	return logistics, nil
}

// Delete removes a logistics record.
func (s *LogisticsService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "logistics not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete logistics")
	}
	return nil
}

// SetTutorPools replaces both shift pools. The pools must be disjoint
// and every referenced user must exist.
func (s *LogisticsService) SetTutorPools(ctx context.Context, id string, req dto.SetTutorPoolsRequest) (*models.TutoringLogistics, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid tutor pools payload")
	}

	oneHour := dedupe(req.OneHourTutorIDs)
	twoHour := dedupe(req.TwoHourTutorIDs)

	oneHourSet := make(map[int64]struct{}, len(oneHour))
	for _, userID := range oneHour {
		oneHourSet[userID] = struct{}{}
	}
	for _, userID := range twoHour {
		if _, ok := oneHourSet[userID]; ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "tutor pools must be disjoint")
		}
	}

	for _, userID := range append(append([]int64{}, oneHour...), twoHour...) {
		if _, err := s.users.FindByID(ctx, userID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrValidation, "tutor user not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tutor user")
		}
	}

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.SetTutorPools(ctx, id, oneHour, twoHour); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update tutor pools")
	}
	return s.Get(ctx, id)
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
