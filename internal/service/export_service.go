package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/hkn-dev/tutoring-api/internal/models"
	appErrors "github.com/hkn-dev/tutoring-api/pkg/errors"
	"github.com/hkn-dev/tutoring-api/pkg/export"
)

// ExportFormat enumerates supported availability export formats.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

// ExportFilter narrows the exported rows. The JSON dump endpoint stays
// filter-free; filters only apply to staff downloads.
type ExportFilter struct {
	Weekday         *int
	PreferenceLevel *int
}

// ExportResult is a rendered availability document.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportService renders the availability dump as downloadable files.
type ExportService struct {
	repo   availabilityRepository
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
}

// NewExportService builds the service.
func NewExportService(repo availabilityRepository, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{repo: repo, csv: csv, pdf: pdf, logger: logger}
}

var exportHeaders = []string{"User ID", "Name", "Weekday", "Hour", "Preference", "Cory", "Soda", "Adjacent"}

// Render produces the availability table in the requested format.
func (s *ExportService) Render(ctx context.Context, format ExportFormat, filter ExportFilter) (*ExportResult, error) {
	if filter.Weekday != nil && (*filter.Weekday < 0 || *filter.Weekday > 4) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "weekday filter must be between 0 and 4")
	}
	if filter.PreferenceLevel != nil && !models.ValidPreferenceLevel(*filter.PreferenceLevel) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "preference level filter must be between 0 and 3")
	}

	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list availability")
	}

	dataset := export.Dataset{Headers: exportHeaders}
	for _, record := range records {
		if filter.Weekday != nil && record.Weekday != *filter.Weekday {
			continue
		}
		if filter.PreferenceLevel != nil && record.PreferenceLevel != *filter.PreferenceLevel {
			continue
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"User ID":    strconv.FormatInt(record.UserID, 10),
			"Name":       record.UserName,
			"Weekday":    models.WeekdayNames[record.Weekday],
			"Hour":       fmt.Sprintf("%d:00", record.Hour),
			"Preference": models.PreferenceLevelLabels[record.PreferenceLevel],
			"Cory":       strconv.FormatBool(record.CoryPreference),
			"Soda":       strconv.FormatBool(record.SodaPreference),
			"Adjacent":   strconv.Itoa(record.AdjacentSlotsPreference),
		})
	}

	switch format {
	case FormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: "tutoring-availability.csv"}, nil
	case FormatPDF:
		content, err := s.pdf.Render(dataset, "Tutoring Availability")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: "tutoring-availability.pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}
