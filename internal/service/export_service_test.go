package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campushq/faculty-portal-api/internal/models"
	appErrors "github.com/campushq/faculty-portal-api/pkg/errors"
)

func exportScheduleService(rows []models.ScheduleRow) *ScheduleService {
	return NewScheduleService(&mockVisibleScheduleRepo{rows: rows}, &mockOverlayLeaveRepo{}, nil, zap.NewNop(), false)
}

func TestExportWeeklyScheduleCSV(t *testing.T) {
	date := time.Date(2026, time.January, 19, 0, 0, 0, 0, time.UTC)
	rows := []models.ScheduleRow{
		{
			ScheduleEntry: models.ScheduleEntry{
				CourseName: "Networking",
				Day:        "Monday",
				Date:       &date,
				StartTime:  "10:00",
				EndTime:    "11:30",
				Room:       "Lab 2",
			},
			TeacherFirstName: strPtr("Ana"),
			TeacherLastName:  strPtr("Shrestha"),
			DepartmentCode:   strPtr("CSIT"),
		},
	}
	svc := NewExportService(exportScheduleService(rows), zap.NewNop())

	file, err := svc.WeeklySchedule(context.Background(), "", "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "weekly-schedule.csv", file.Filename)

	content := string(file.Content)
	assert.Contains(t, content, "Course,Teacher,Department,Day,Date,Start,End,Room")
	assert.Contains(t, content, "Networking,Ana Shrestha,CSIT,Monday,2026-01-19,10:00,11:30,Lab 2")
}

func TestExportWeeklyScheduleCSVDefaultsOnEmptyFormat(t *testing.T) {
	svc := NewExportService(exportScheduleService(nil), zap.NewNop())

	file, err := svc.WeeklySchedule(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
}

func TestExportWeeklySchedulePDF(t *testing.T) {
	rows := []models.ScheduleRow{
		{ScheduleEntry: models.ScheduleEntry{CourseName: "Networking", Day: "Monday", StartTime: "10:00", EndTime: "11:30", Room: "Lab 2"}},
	}
	svc := NewExportService(exportScheduleService(rows), zap.NewNop())

	file, err := svc.WeeklySchedule(context.Background(), "", "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, "weekly-schedule.pdf", file.Filename)
	assert.True(t, len(file.Content) > 0)
	assert.Equal(t, "%PDF", string(file.Content[:4]))
}

func TestExportWeeklyScheduleUnknownFormat(t *testing.T) {
	svc := NewExportService(exportScheduleService(nil), zap.NewNop())

	_, err := svc.WeeklySchedule(context.Background(), "", "xlsx")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestExportLeavesMissingTeacherBlank(t *testing.T) {
	rows := []models.ScheduleRow{
		{ScheduleEntry: models.ScheduleEntry{CourseName: "Orphan Course", Day: "Friday", StartTime: "08:00", EndTime: "09:00", Room: "Hall"}},
	}
	svc := NewExportService(exportScheduleService(rows), zap.NewNop())

	file, err := svc.WeeklySchedule(context.Background(), "", "csv")
	require.NoError(t, err)
	assert.Contains(t, string(file.Content), "Orphan Course,,,Friday,,08:00,09:00,Hall")
}
