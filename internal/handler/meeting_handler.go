package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/faculty-portal-api/internal/service"
	appErrors "github.com/campushq/faculty-portal-api/pkg/errors"
	"github.com/campushq/faculty-portal-api/pkg/response"
)

// MeetingHandler wires meeting scheduling to HTTP routes.
type MeetingHandler struct {
	meetings *service.MeetingService
}

// NewMeetingHandler constructs a new MeetingHandler.
func NewMeetingHandler(meetings *service.MeetingService) *MeetingHandler {
	return &MeetingHandler{meetings: meetings}
}

// Create godoc
// @Summary Schedule a department meeting
// @Tags Meetings
// @Accept json
// @Produce json
// @Param payload body service.CreateMeetingRequest true "Meeting payload"
// @Success 201 {object} response.Envelope
// @Router /meetings [post]
func (h *MeetingHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid meeting payload"))
		return
	}
	result, err := h.meetings.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result.Meeting, map[string]interface{}{
		"recipients": result.Recipients,
		"dispatched": result.Dispatched,
	})
}

// List godoc
// @Summary Upcoming meetings for the acting teacher's department
// @Tags Meetings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /meetings [get]
func (h *MeetingHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	meetings, today, err := h.meetings.Upcoming(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	var meta map[string]interface{}
	if today != nil {
		meta = map[string]interface{}{"today": today}
	}
	response.JSON(c, http.StatusOK, meetings, nil, meta)
}
