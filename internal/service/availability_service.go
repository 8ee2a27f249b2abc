package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hkn-dev/tutoring-api/internal/dto"
	"github.com/hkn-dev/tutoring-api/internal/models"
	appErrors "github.com/hkn-dev/tutoring-api/pkg/errors"
)

const availabilityCacheKey = "availability:all"

type availabilityRepository interface {
	Replace(ctx context.Context, userID int64, rows []models.TutoringAvailability) error
	ListByUser(ctx context.Context, userID int64) ([]models.TutoringAvailability, error)
	ListAll(ctx context.Context) ([]dto.AvailabilityRecord, error)
}

type auditLogger interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

type availabilityCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, pattern string) error
}

// AvailabilityService implements the submission and query layers of the
// tutoring availability workflow.
type AvailabilityService struct {
	repo      availabilityRepository
	audit     auditLogger
	cache     availabilityCache
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAvailabilityService builds the service.
func NewAvailabilityService(repo availabilityRepository, audit auditLogger, cache availabilityCache, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *AvailabilityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{
		repo:      repo,
		audit:     audit,
		cache:     cache,
		cacheTTL:  cacheTTL,
		validator: validate,
		logger:    logger,
	}
}

// Submit validates a full weekly grid and replaces every stored row for
// the user. All validation happens before any write; a valid submission
// always results in exactly one row per grid cell, carrying the three
// submission-wide values on each row.
func (s *AvailabilityService) Submit(ctx context.Context, userID int64, req dto.SubmitAvailabilityRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability payload")
	}
	for field, level := range req.Slots {
		if _, ok := models.SlotKeyByField[field]; !ok {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown slot field %q", field))
		}
		if !models.ValidPreferenceLevel(level) {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("preference level for %s must be between 0 and 3", field))
		}
	}
	if req.AdjacentSlots != nil && !models.ValidAdjacency(*req.AdjacentSlots) {
		return appErrors.Clone(appErrors.ErrValidation, "adjacent slots preference must be -1, 0 or 1")
	}

	cory := true
	if req.CoryPreference != nil {
		cory = *req.CoryPreference
	}
	soda := true
	if req.SodaPreference != nil {
		soda = *req.SodaPreference
	}
	adjacent := models.AdjacentDontCare
	if req.AdjacentSlots != nil {
		adjacent = *req.AdjacentSlots
	}

	rows := make([]models.TutoringAvailability, 0, len(models.SlotKeys))
	for _, key := range models.SlotKeys {
		rows = append(rows, models.TutoringAvailability{
			UserID:                  userID,
			Weekday:                 key.Weekday,
			Hour:                    key.Hour,
			PreferenceLevel:         req.Slots[key.Field],
			CoryPreference:          cory,
			SodaPreference:          soda,
			AdjacentSlotsPreference: adjacent,
		})
	}

	if err := s.repo.Replace(ctx, userID, rows); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store availability")
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, "availability:*"); err != nil {
			s.logger.Warn("availability cache invalidation failed", zap.Error(err))
		}
	}

	if s.audit != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"cory_preference": cory,
			"soda_preference": soda,
			"adjacent_slots":  adjacent,
		})
		if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
			UserID:    &userID,
			Action:    models.AuditActionAvailabilitySave,
			Resource:  "tutoring_availability",
			NewValues: payload,
		}); err != nil {
			s.logger.Warn("failed to record availability audit log", zap.Error(err))
		}
	}

	s.logger.Info("availability grid replaced", zap.Int64("user_id", userID))
	return nil
}

// FormState returns the pre-fill state for the signup form. A user with
// no stored rows gets the documented defaults: every slot at level 0,
// both buildings preferred, adjacency "don't care".
func (s *AvailabilityService) FormState(ctx context.Context, userID int64) (*dto.AvailabilityFormState, error) {
	state := &dto.AvailabilityFormState{
		Slots:          make(map[string]int, len(models.SlotKeys)),
		CoryPreference: true,
		SodaPreference: true,
		AdjacentSlots:  models.AdjacentDontCare,
	}
	for _, key := range models.SlotKeys {
		state.Slots[key.Field] = models.PreferenceCannotMake
	}

	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load availability")
	}
	if len(rows) == 0 {
		return state, nil
	}

	// The submission-wide values are stored identically on every row,
	// so any row works as the source.
	state.CoryPreference = rows[0].CoryPreference
	state.SodaPreference = rows[0].SodaPreference
	state.AdjacentSlots = rows[0].AdjacentSlotsPreference

	for _, row := range rows {
		field := fmt.Sprintf("slot_%d_%d", row.Weekday, row.Hour)
		if _, ok := models.SlotKeyByField[field]; ok {
			state.Slots[field] = row.PreferenceLevel
		}
	}
	return state, nil
}

// ListAll returns every stored availability row across all users for
// the staff scheduling dump, cache-aside when caching is enabled.
func (s *AvailabilityService) ListAll(ctx context.Context) ([]dto.AvailabilityRecord, error) {
	if s.cache != nil {
		var cached []dto.AvailabilityRecord
		hit, err := s.cache.Get(ctx, availabilityCacheKey, &cached)
		if err != nil {
			s.logger.Warn("availability cache read failed", zap.Error(err))
		}
		if hit {
			return cached, nil
		}
	}

	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list availability")
	}
	if records == nil {
		records = []dto.AvailabilityRecord{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, availabilityCacheKey, records, s.cacheTTL); err != nil {
			s.logger.Warn("availability cache write failed", zap.Error(err))
		}
	}
	return records, nil
}
