package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hkn-dev/tutoring-api/internal/dto"
	"github.com/hkn-dev/tutoring-api/pkg/export"
)

func exportFixture() []dto.AvailabilityRecord {
	return []dto.AvailabilityRecord{
		{UserID: 1, UserName: "Ada Lovelace", Weekday: 0, Hour: 12, PreferenceLevel: 3, CoryPreference: true, SodaPreference: true, AdjacentSlotsPreference: -1},
		{UserID: 1, UserName: "Ada Lovelace", Weekday: 1, Hour: 14, PreferenceLevel: 2, CoryPreference: true, SodaPreference: true, AdjacentSlotsPreference: -1},
		{UserID: 2, UserName: "Grace Hopper", Weekday: 1, Hour: 14, PreferenceLevel: 0, CoryPreference: false, SodaPreference: true, AdjacentSlotsPreference: 1},
	}
}

func TestExportServiceRenderCSV(t *testing.T) {
	repo := &availabilityRepoMock{records: exportFixture()}
	svc := NewExportService(repo, export.NewCSVExporter(), export.NewPDFExporter(), zap.NewNop())

	result, err := svc.Render(context.Background(), FormatCSV, ExportFilter{})
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "tutoring-availability.csv", result.Filename)

	content := string(result.Content)
	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "User ID")
	assert.Contains(t, lines[1], "Ada Lovelace")
	assert.Contains(t, lines[1], "Mon")
	assert.Contains(t, lines[3], "Grace Hopper")
}

func TestExportServiceRenderCSVWithFilters(t *testing.T) {
	repo := &availabilityRepoMock{records: exportFixture()}
	svc := NewExportService(repo, export.NewCSVExporter(), export.NewPDFExporter(), zap.NewNop())

	weekday := 1
	result, err := svc.Render(context.Background(), FormatCSV, ExportFilter{Weekday: &weekday})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(result.Content)), "\n")
	require.Len(t, lines, 3)
	assert.NotContains(t, string(result.Content), "12:00")

	level := 0
	result, err = svc.Render(context.Background(), FormatCSV, ExportFilter{Weekday: &weekday, PreferenceLevel: &level})
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(string(result.Content)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "Grace Hopper")
}

func TestExportServiceRenderPDF(t *testing.T) {
	repo := &availabilityRepoMock{records: exportFixture()}
	svc := NewExportService(repo, export.NewCSVExporter(), export.NewPDFExporter(), zap.NewNop())

	result, err := svc.Render(context.Background(), FormatPDF, ExportFilter{})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.NotEmpty(t, result.Content)
}

func TestExportServiceRejectsBadInput(t *testing.T) {
	repo := &availabilityRepoMock{records: exportFixture()}
	svc := NewExportService(repo, export.NewCSVExporter(), export.NewPDFExporter(), zap.NewNop())

	_, err := svc.Render(context.Background(), ExportFormat("xlsx"), ExportFilter{})
	require.Error(t, err)

	weekday := 9
	_, err = svc.Render(context.Background(), FormatCSV, ExportFilter{Weekday: &weekday})
	require.Error(t, err)
}
