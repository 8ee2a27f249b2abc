package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hkn-dev/tutoring-api/internal/dto"
	"github.com/hkn-dev/tutoring-api/internal/models"
	appErrors "github.com/hkn-dev/tutoring-api/pkg/errors"
	"github.com/hkn-dev/tutoring-api/pkg/response"
)

type slotService interface {
	ListAll(ctx context.Context) ([]dto.SlotListing, error)
	Get(ctx context.Context, id string) (*models.Slot, error)
	Create(ctx context.Context, req dto.UpsertSlotRequest) (*models.Slot, error)
	Update(ctx context.Context, id string, req dto.UpsertSlotRequest) (*models.Slot, error)
	Delete(ctx context.Context, id string) error
}

// SlotHandler serves the public slot listing plus the admin CRUD surface.
type SlotHandler struct {
	service slotService
}

// NewSlotHandler constructs the handler.
func NewSlotHandler(service slotService) *SlotHandler {
	return &SlotHandler{service: service}
}

// ListAll godoc
// @Summary Scheduled tutoring slots with assigned tutor names
// @Tags Slots
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tutoring/api/slots [get]
func (h *SlotHandler) ListAll(c *gin.Context) {
	slots, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, nil)
}

// Get godoc
// @Summary Load one slot
// @Tags Slots
// @Produce json
// @Param id path string true "Slot ID"
// @Success 200 {object} response.Envelope
// @Router /tutoring/slots/{id} [get]
func (h *SlotHandler) Get(c *gin.Context) {
	slot, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot, nil)
}

// Create godoc
// @Summary Create a slot
// @Tags Slots
// @Accept json
// @Produce json
// @Param payload body dto.UpsertSlotRequest true "Slot"
// @Success 201 {object} response.Envelope
// @Router /tutoring/slots [post]
func (h *SlotHandler) Create(c *gin.Context) {
	var req dto.UpsertSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid slot payload"))
		return
	}
	slot, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, slot)
}

// Update godoc
// @Summary Update a slot
// @Tags Slots
// @Accept json
// @Produce json
// @Param id path string true "Slot ID"
// @Param payload body dto.UpsertSlotRequest true "Slot"
// @Success 200 {object} response.Envelope
// @Router /tutoring/slots/{id} [put]
func (h *SlotHandler) Update(c *gin.Context) {
	var req dto.UpsertSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid slot payload"))
		return
	}
	slot, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot, nil)
}

// Delete godoc
// @Summary Delete a slot
// @Tags Slots
// @Param id path string true "Slot ID"
// @Success 204
// @Router /tutoring/slots/{id} [delete]
func (h *SlotHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
