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

type slotRepository interface {
	FindByID(ctx context.Context, id string) (*models.Slot, error)
	ListAll(ctx context.Context) ([]dto.SlotListing, error)
	Create(ctx context.Context, slot *models.Slot) error
	Update(ctx context.Context, slot *models.Slot) error
	Delete(ctx context.Context, id string) error
}

type logisticsReader interface {
	FindByID(ctx context.Context, id string) (*models.TutoringLogistics, error)
}

type roomReader interface {
	FindByID(ctx context.Context, id string) (*models.Room, error)
}

// SlotService manages scheduled tutoring slots. Slots are the output
// target of the human or algorithm consuming availability data; the
// submission flow never writes them.
type SlotService struct {
	repo      slotRepository
	logistics logisticsReader
	rooms     roomReader
	users     userReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSlotService builds the service.
func NewSlotService(repo slotRepository, logistics logisticsReader, rooms roomReader, users userReader, validate *validator.Validate, logger *zap.Logger) *SlotService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlotService{repo: repo, logistics: logistics, rooms: rooms, users: users, validator: validate, logger: logger}
}

// ListAll returns the public slot listing with weekday display names.
func (s *SlotService) ListAll(ctx context.Context) ([]dto.SlotListing, error) {
	listings, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list slots")
	}
	for i := range listings {
		if listings[i].Weekday >= 0 && listings[i].Weekday < len(models.WeekdayNames) {
			listings[i].WeekdayName = models.WeekdayNames[listings[i].Weekday]
		}
	}
	if listings == nil {
		listings = []dto.SlotListing{}
	}
	return listings, nil
}

// Get loads one slot.
func (s *SlotService) Get(ctx context.Context, id string) (*models.Slot, error) {
	slot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "slot not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load slot")
	}
	return slot, nil
}

// Create adds a slot. num_tutors is intentionally not validated against
// the size of the tutor set.
func (s *SlotService) Create(ctx context.Context, req dto.UpsertSlotRequest) (*models.Slot, error) {
	if err := s.validateReferences(ctx, req); err != nil {
		return nil, err
	}
	slot := &models.Slot{
		LogisticsID: req.LogisticsID,
		RoomID:      req.RoomID,
		NumTutors:   req.NumTutors,
		Weekday:     req.Weekday,
		StartTime:   req.StartTime,
		TutorIDs:    dedupe(req.TutorIDs),
	}
	if err := s.repo.Create(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create slot")
	}
	return slot, nil
}

// Update modifies a slot and its tutor assignments.
func (s *SlotService) Update(ctx context.Context, id string, req dto.UpsertSlotRequest) (*models.Slot, error) {
	if err := s.validateReferences(ctx, req); err != nil {
		return nil, err
	}
	slot, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	slot.LogisticsID = req.LogisticsID
	slot.RoomID = req.RoomID
	slot.NumTutors = req.NumTutors
	slot.Weekday = req.Weekday
	slot.StartTime = req.StartTime
	slot.TutorIDs = dedupe(req.TutorIDs)
	if err := s.repo.Update(ctx, slot); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "slot not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update slot")
	}
	return slot, nil
}

// Delete removes a slot.
func (s *SlotService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "slot not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete slot")
	}
	return nil
}

func (s *SlotService) validateReferences(ctx context.Context, req dto.UpsertSlotRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot payload")
	}
	if req.LogisticsID != nil {
		if _, err := s.logistics.FindByID(ctx, *req.LogisticsID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrValidation, "logistics not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load logistics")
		}
	}
	if req.RoomID != nil {
		if _, err := s.rooms.FindByID(ctx, *req.RoomID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrValidation, "room not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
		}
	}
	for _, userID := range req.TutorIDs {
		if _, err := s.users.FindByID(ctx, userID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrValidation, "tutor user not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tutor user")
		}
	}
	return nil
}
