package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campushq/faculty-portal-api/internal/models"
	"github.com/campushq/faculty-portal-api/internal/service"
	"github.com/campushq/faculty-portal-api/pkg/response"
)

type scheduleService interface {
	WeeklySchedule(ctx context.Context, search string) (*models.ScheduleView, error)
}

type scheduleExportService interface {
	WeeklySchedule(ctx context.Context, search, format string) (*service.ExportFile, error)
}

// ScheduleHandler serves the weekly schedule view and its exports.
type ScheduleHandler struct {
	schedules scheduleService
	exports   scheduleExportService
}

// NewScheduleHandler constructs a new ScheduleHandler.
func NewScheduleHandler(schedules scheduleService, exports scheduleExportService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules, exports: exports}
}

// List godoc
// @Summary Weekly schedule with the on-leave overlay
// @Tags Schedule
// @Produce json
// @Param q query string false "Search by teacher name, course, or department"
// @Success 200 {object} response.Envelope
// @Router /schedule [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	view, err := h.schedules.WeeklySchedule(c.Request.Context(), strings.TrimSpace(c.Query("q")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Export godoc
// @Summary Download the weekly schedule as CSV or PDF
// @Tags Schedule
// @Produce text/csv
// @Produce application/pdf
// @Param q query string false "Search by teacher name, course, or department"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /schedule/export [get]
func (h *ScheduleHandler) Export(c *gin.Context) {
	file, err := h.exports.WeeklySchedule(c.Request.Context(), strings.TrimSpace(c.Query("q")), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
