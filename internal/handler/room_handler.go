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

type roomService interface {
	List(ctx context.Context) ([]models.Room, error)
	Get(ctx context.Context, id string) (*models.Room, error)
	Create(ctx context.Context, req dto.UpsertRoomRequest) (*models.Room, error)
	Update(ctx context.Context, id string, req dto.UpsertRoomRequest) (*models.Room, error)
	Delete(ctx context.Context, id string) error
}

// RoomHandler exposes room administration endpoints.
type RoomHandler struct {
	service roomService
}

// NewRoomHandler constructs the handler.
func NewRoomHandler(service roomService) *RoomHandler {
	return &RoomHandler{service: service}
}

// List godoc
// @Summary List tutoring rooms
// @Tags Rooms
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tutoring/rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rooms, nil)
}

// Get godoc
// @Summary Load one room
// @Tags Rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Envelope
// @Router /tutoring/rooms/{id} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	room, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, room, nil)
}

// Create godoc
// @Summary Create a room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param payload body dto.UpsertRoomRequest true "Room"
// @Success 201 {object} response.Envelope
// @Router /tutoring/rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	var req dto.UpsertRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid room payload"))
		return
	}
	room, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, room)
}

// Update godoc
// @Summary Update a room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param payload body dto.UpsertRoomRequest true "Room"
// @Success 200 {object} response.Envelope
// @Router /tutoring/rooms/{id} [put]
func (h *RoomHandler) Update(c *gin.Context) {
	var req dto.UpsertRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid room payload"))
		return
	}
	room, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, room, nil)
}

// Delete godoc
// @Summary Delete a room
// @Tags Rooms
// @Param id path string true "Room ID"
// @Success 204
// @Router /tutoring/rooms/{id} [delete]
func (h *RoomHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
