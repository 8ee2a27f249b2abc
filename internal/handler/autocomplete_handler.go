package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hkn-dev/tutoring-api/internal/dto"
	"github.com/hkn-dev/tutoring-api/pkg/response"
)

type autocompleteService interface {
	SearchTutors(ctx context.Context, search string) ([]dto.TutorOption, error)
	SearchCourses(ctx context.Context, search string) ([]dto.CourseOption, error)
}

// AutocompleteHandler backs the typeahead widgets on the admin forms.
type AutocompleteHandler struct {
	service autocompleteService
}

// NewAutocompleteHandler constructs the handler.
func NewAutocompleteHandler(service autocompleteService) *AutocompleteHandler {
	return &AutocompleteHandler{service: service}
}

// Tutors godoc
// @Summary Search tutors in the current semester pools
// @Tags Autocomplete
// @Produce json
// @Param q query string false "Name fragment"
// @Success 200 {object} response.Envelope
// @Router /tutoring/autocomplete/tutor [get]
func (h *AutocompleteHandler) Tutors(c *gin.Context) {
	options, err := h.service.SearchTutors(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, options, nil)
}

// Courses godoc
// @Summary Search the course catalog by number or title
// @Tags Autocomplete
// @Produce json
// @Param q query string false "Course fragment"
// @Success 200 {object} response.Envelope
// @Router /tutoring/autocomplete/course [get]
func (h *AutocompleteHandler) Courses(c *gin.Context) {
	options, err := h.service.SearchCourses(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, options, nil)
}
