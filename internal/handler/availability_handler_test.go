package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkn-dev/tutoring-api/internal/dto"
	"github.com/hkn-dev/tutoring-api/internal/middleware"
	"github.com/hkn-dev/tutoring-api/internal/models"
	"github.com/hkn-dev/tutoring-api/internal/service"
)

type availabilityServiceMock struct {
	submitted    *dto.SubmitAvailabilityRequest
	submitUserID int64
	state        *dto.AvailabilityFormState
	records      []dto.AvailabilityRecord
	err          error
}

func (m *availabilityServiceMock) Submit(ctx context.Context, userID int64, req dto.SubmitAvailabilityRequest) error {
	m.submitUserID = userID
	m.submitted = &req
	return m.err
}

func (m *availabilityServiceMock) FormState(ctx context.Context, userID int64) (*dto.AvailabilityFormState, error) {
	return m.state, m.err
}

func (m *availabilityServiceMock) ListAll(ctx context.Context) ([]dto.AvailabilityRecord, error) {
	return m.records, m.err
}

type exporterMock struct {
	result *service.ExportResult
	format service.ExportFormat
}

func (m *exporterMock) Render(ctx context.Context, format service.ExportFormat, filter service.ExportFilter) (*service.ExportResult, error) {
	m.format = format
	return m.result, nil
}

func authedContext(t *testing.T, userID int64, method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(method, target, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: userID, Role: models.RoleOfficer})
	return c, w
}

func TestAvailabilityHandlerSubmit(t *testing.T) {
	mockSvc := &availabilityServiceMock{}
	handler := NewAvailabilityHandler(mockSvc, &exporterMock{})

	body := []byte(`{"slots":{"slot_0_12":3},"soda_preference":false,"adjacent_slots":1}`)
	c, w := authedContext(t, 42, http.MethodPost, "/tutoring/signup", body)

	handler.Submit(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(42), mockSvc.submitUserID)
	require.NotNil(t, mockSvc.submitted)
	assert.Equal(t, 3, mockSvc.submitted.Slots["slot_0_12"])
	require.NotNil(t, mockSvc.submitted.SodaPreference)
	assert.False(t, *mockSvc.submitted.SodaPreference)
}

func TestAvailabilityHandlerSubmitRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAvailabilityHandler(&availabilityServiceMock{}, &exporterMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/tutoring/signup", bytes.NewReader([]byte(`{}`)))
	c.Request = req

	handler.Submit(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAvailabilityHandlerSubmitRejectsMalformedJSON(t *testing.T) {
	mockSvc := &availabilityServiceMock{}
	handler := NewAvailabilityHandler(mockSvc, &exporterMock{})

	c, w := authedContext(t, 42, http.MethodPost, "/tutoring/signup", []byte(`{"slots":`))

	handler.Submit(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, mockSvc.submitted)
}

func TestAvailabilityHandlerForm(t *testing.T) {
	mockSvc := &availabilityServiceMock{state: &dto.AvailabilityFormState{
		Slots:          map[string]int{"slot_0_12": 2},
		CoryPreference: true,
		SodaPreference: true,
		AdjacentSlots:  -1,
	}}
	handler := NewAvailabilityHandler(mockSvc, &exporterMock{})

	c, w := authedContext(t, 7, http.MethodGet, "/tutoring/signup", nil)

	handler.Form(c)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data dto.AvailabilityFormState `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 2, envelope.Data.Slots["slot_0_12"])
	assert.Equal(t, -1, envelope.Data.AdjacentSlots)
}

func TestAvailabilityHandlerListAllBareShape(t *testing.T) {
	mockSvc := &availabilityServiceMock{records: []dto.AvailabilityRecord{
		{UserID: 1, UserName: "Ada Lovelace", Weekday: 0, Hour: 12, PreferenceLevel: 3, CoryPreference: true, SodaPreference: false, AdjacentSlotsPreference: 1},
	}}
	handler := NewAvailabilityHandler(mockSvc, &exporterMock{})

	c, w := authedContext(t, 1, http.MethodGet, "/tutoring/api/availability", nil)

	handler.ListAll(c)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Contains(t, body, "availabilities")
	assert.NotContains(t, body, "data")

	var records []dto.AvailabilityRecord
	require.NoError(t, json.Unmarshal(body["availabilities"], &records))
	require.Len(t, records, 1)
	assert.Equal(t, int64(1), records[0].UserID)
	assert.Equal(t, "Ada Lovelace", records[0].UserName)
	assert.Equal(t, 1, records[0].AdjacentSlotsPreference)
}

func TestAvailabilityHandlerListAllEmpty(t *testing.T) {
	mockSvc := &availabilityServiceMock{records: []dto.AvailabilityRecord{}}
	handler := NewAvailabilityHandler(mockSvc, &exporterMock{})

	c, w := authedContext(t, 1, http.MethodGet, "/tutoring/api/availability", nil)

	handler.ListAll(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"availabilities":[]}`, w.Body.String())
}

func TestAvailabilityHandlerExport(t *testing.T) {
	exporter := &exporterMock{result: &service.ExportResult{
		Content:     []byte("User ID,Name\n"),
		ContentType: "text/csv",
		Filename:    "tutoring-availability.csv",
	}}
	handler := NewAvailabilityHandler(&availabilityServiceMock{}, exporter)

	c, w := authedContext(t, 1, http.MethodGet, "/tutoring/api/availability/export?format=csv&weekday=2", nil)

	handler.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.FormatCSV, exporter.format)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "tutoring-availability.csv")
}

func TestAvailabilityHandlerExportRejectsBadWeekday(t *testing.T) {
	handler := NewAvailabilityHandler(&availabilityServiceMock{}, &exporterMock{})

	c, w := authedContext(t, 1, http.MethodGet, "/tutoring/api/availability/export?weekday=abc", nil)

	handler.Export(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
