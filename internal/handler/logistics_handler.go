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

type logisticsService interface {
	GetMostRecent(ctx context.Context) (*models.TutoringLogistics, error)
	Get(ctx context.Context, id string) (*models.TutoringLogistics, error)
	List(ctx context.Context) ([]models.TutoringLogistics, error)
	Create(ctx context.Context, req dto.CreateLogisticsRequest) (*models.TutoringLogistics, error)
	Delete(ctx context.Context, id string) error
	SetTutorPools(ctx context.Context, id string, req dto.SetTutorPoolsRequest) (*models.TutoringLogistics, error)
}

// LogisticsHandler exposes logistics administration endpoints.
type LogisticsHandler struct {
	service logisticsService
}

// NewLogisticsHandler constructs the handler.
func NewLogisticsHandler(service logisticsService) *LogisticsHandler {
	return &LogisticsHandler{service: service}
}

// List godoc
// @Summary List logistics records, newest semester first
// @Tags Logistics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tutoring/logistics [get]
func (h *LogisticsHandler) List(c *gin.Context) {
	records, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// MostRecent godoc
// @Summary Logistics record for the latest semester
// @Tags Logistics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tutoring/logistics/most-recent [get]
func (h *LogisticsHandler) MostRecent(c *gin.Context) {
	logistics, err := h.service.GetMostRecent(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	// A nil record is the documented empty result, not an error.
	response.JSON(c, http.StatusOK, logistics, nil)
}

// Get godoc
// @Summary Load one logistics record
// @Tags Logistics
// @Produce json
// @Param id path string true "Logistics ID"
// @Success 200 {object} response.Envelope
// @Router /tutoring/logistics/{id} [get]
func (h *LogisticsHandler) Get(c *gin.Context) {
	logistics, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, logistics, nil)
}

// Create godoc
// @Summary Create a logistics record
// @Tags Logistics
// @Accept json
// @Produce json
// @Param payload body dto.CreateLogisticsRequest true "Logistics"
// @Success 201 {object} response.Envelope
// @Router /tutoring/logistics [post]
func (h *LogisticsHandler) Create(c *gin.Context) {
	var req dto.CreateLogisticsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid logistics payload"))
		return
	}
	logistics, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, logistics)
}

// SetTutorPools godoc
// @Summary Replace both tutor shift pools
// @Tags Logistics
// @Accept json
// @Produce json
// @Param id path string true "Logistics ID"
// @Param payload body dto.SetTutorPoolsRequest true "Tutor pools"
// @Success 200 {object} response.Envelope
// @Router /tutoring/logistics/{id}/tutors [put]
func (h *LogisticsHandler) SetTutorPools(c *gin.Context) {
	var req dto.SetTutorPoolsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid tutor pools payload"))
		return
	}
	logistics, err := h.service.SetTutorPools(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, logistics, nil)
}

// Delete godoc
// @Summary Delete a logistics record
// @Tags Logistics
// @Param id path string true "Logistics ID"
// @Success 204
// @Router /tutoring/logistics/{id} [delete]
func (h *LogisticsHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
