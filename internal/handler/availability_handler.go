package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hkn-dev/tutoring-api/internal/dto"
	"github.com/hkn-dev/tutoring-api/internal/service"
	appErrors "github.com/hkn-dev/tutoring-api/pkg/errors"
	"github.com/hkn-dev/tutoring-api/pkg/response"
)

type availabilityService interface {
	Submit(ctx context.Context, userID int64, req dto.SubmitAvailabilityRequest) error
	FormState(ctx context.Context, userID int64) (*dto.AvailabilityFormState, error)
	ListAll(ctx context.Context) ([]dto.AvailabilityRecord, error)
}

type availabilityExporter interface {
	Render(ctx context.Context, format service.ExportFormat, filter service.ExportFilter) (*service.ExportResult, error)
}

// AvailabilityHandler exposes the tutoring signup and availability
// query endpoints.
type AvailabilityHandler struct {
	service  availabilityService
	exporter availabilityExporter
}

// NewAvailabilityHandler constructs the handler.
func NewAvailabilityHandler(service availabilityService, exporter availabilityExporter) *AvailabilityHandler {
	return &AvailabilityHandler{service: service, exporter: exporter}
}

// Form godoc
// @Summary Pre-filled availability signup form state
// @Tags Tutoring
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tutoring/signup [get]
func (h *AvailabilityHandler) Form(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	state, err := h.service.FormState(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}

// Submit godoc
// @Summary Submit the weekly availability grid
// @Tags Tutoring
// @Accept json
// @Produce json
// @Param payload body dto.SubmitAvailabilityRequest true "Availability grid"
// @Success 200 {object} response.Envelope
// @Router /tutoring/signup [post]
func (h *AvailabilityHandler) Submit(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.SubmitAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid availability payload"))
		return
	}
	if err := h.service.Submit(c.Request.Context(), claims.UserID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"redirect": "signup/success"}, nil)
}

// Success godoc
// @Summary Signup confirmation
// @Tags Tutoring
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tutoring/signup/success [get]
func (h *AvailabilityHandler) Success(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"message": "Your tutoring availability has been saved."}, nil)
}

// ListAll godoc
// @Summary Full availability dump for the room scheduler
// @Tags Tutoring
// @Produce json
// @Success 200 {object} dto.AvailabilityListResponse
// @Router /tutoring/api/availability [get]
func (h *AvailabilityHandler) ListAll(c *gin.Context) {
	records, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	// Bare contract shape, consumed by the external scheduler.
	c.JSON(http.StatusOK, dto.AvailabilityListResponse{Availabilities: records})
}

// Export godoc
// @Summary Download availability as CSV or PDF
// @Tags Tutoring
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Router /tutoring/api/availability/export [get]
func (h *AvailabilityHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", string(service.FormatCSV)))

	var filter service.ExportFilter
	if raw := c.Query("weekday"); raw != "" {
		weekday, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "weekday must be an integer"))
			return
		}
		filter.Weekday = &weekday
	}
	if raw := c.Query("preference_level"); raw != "" {
		level, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "preference_level must be an integer"))
			return
		}
		filter.PreferenceLevel = &level
	}

	result, err := h.exporter.Render(c.Request.Context(), format, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
