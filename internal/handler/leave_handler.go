package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/faculty-portal-api/internal/service"
	appErrors "github.com/campushq/faculty-portal-api/pkg/errors"
	"github.com/campushq/faculty-portal-api/pkg/response"
)

// LeaveHandler wires leave requests to HTTP routes.
type LeaveHandler struct {
	leaves *service.LeaveService
}

// NewLeaveHandler constructs a new LeaveHandler.
func NewLeaveHandler(leaves *service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaves: leaves}
}

// Create godoc
// @Summary Submit a leave request
// @Tags Leaves
// @Accept json
// @Produce json
// @Param payload body service.SubmitLeaveRequest true "Leave payload"
// @Success 201 {object} response.Envelope
// @Router /leaves [post]
func (h *LeaveHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.SubmitLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid leave payload"))
		return
	}
	leave, err := h.leaves.Submit(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, leave)
}

// List godoc
// @Summary List the acting teacher's leave requests
// @Tags Leaves
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /leaves [get]
func (h *LeaveHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	leaves, err := h.leaves.ListMine(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, leaves, nil)
}
