package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/campushq/faculty-portal-api/pkg/errors"
	"github.com/campushq/faculty-portal-api/pkg/export"
)

// ExportFile is a rendered schedule download.
type ExportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders the weekly schedule view as CSV or PDF.
type ExportService struct {
	schedules *ScheduleService
	logger    *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(schedules *ScheduleService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{schedules: schedules, logger: logger}
}

var scheduleExportHeaders = []string{"Course", "Teacher", "Department", "Day", "Date", "Start", "End", "Room"}

// WeeklySchedule renders the visibility-filtered schedule, honouring the same
// search token as the JSON view.
func (s *ExportService) WeeklySchedule(ctx context.Context, search, format string) (*ExportFile, error) {
	view, err := s.schedules.WeeklySchedule(ctx, search)
	if err != nil {
		return nil, err
	}

	table := export.Table{Headers: scheduleExportHeaders, Rows: make([]map[string]string, 0, len(view.Entries))}
	for _, row := range view.Entries {
		record := map[string]string{
			"Course": row.CourseName,
			"Day":    row.Day,
			"Start":  row.StartTime,
			"End":    row.EndTime,
			"Room":   row.Room,
		}
		if row.TeacherFirstName != nil || row.TeacherLastName != nil {
			record["Teacher"] = joinName(row.TeacherFirstName, row.TeacherLastName)
		}
		if row.DepartmentCode != nil {
			record["Department"] = *row.DepartmentCode
		}
		if row.Date != nil {
			record["Date"] = row.Date.Format(time.DateOnly)
		}
		table.Rows = append(table.Rows, record)
	}

	switch format {
	case "csv", "":
		content, err := export.CSV(table)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportFile{Content: content, ContentType: "text/csv", Filename: "weekly-schedule.csv"}, nil
	case "pdf":
		content, err := export.PDF(table, "Weekly Schedule")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportFile{Content: content, ContentType: "application/pdf", Filename: "weekly-schedule.pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}

func joinName(first, last *string) string {
	name := ""
	if first != nil {
		name = *first
	}
	if last != nil && *last != "" {
		if name != "" {
			name += " "
		}
		name += *last
	}
	return name
}
