package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campushq/faculty-portal-api/internal/models"
	"github.com/campushq/faculty-portal-api/internal/service"
	appErrors "github.com/campushq/faculty-portal-api/pkg/errors"
	"github.com/campushq/faculty-portal-api/pkg/response"
)

// AccountHandler wires account lifecycle operations to HTTP routes.
type AccountHandler struct {
	accounts *service.AccountService
}

// NewAccountHandler constructs a new AccountHandler.
func NewAccountHandler(accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Signup godoc
// @Summary Register a teacher account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param payload body service.SignupRequest true "Signup payload"
// @Success 201 {object} response.Envelope
// @Router /accounts [post]
func (h *AccountHandler) Signup(c *gin.Context) {
	var req service.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid signup payload"))
		return
	}
	teacher, err := h.accounts.Signup(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, teacher)
}

// List godoc
// @Summary List the teacher directory
// @Tags Accounts
// @Produce json
// @Param search query string false "Search by username or name"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
	filter := models.TeacherFilter{Search: strings.TrimSpace(c.Query("search"))}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	teachers, pagination, err := h.accounts.Directory(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teachers, pagination)
}

// Me godoc
// @Summary Get the acting account's profile
// @Tags Accounts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /accounts/me [get]
func (h *AccountHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	teacher, err := h.accounts.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher, nil)
}

// UpdateMe godoc
// @Summary Update the acting account's profile
// @Tags Accounts
// @Accept json
// @Produce json
// @Param payload body service.UpdateProfileRequest true "Profile payload"
// @Success 200 {object} response.Envelope
// @Router /accounts/me [put]
func (h *AccountHandler) UpdateMe(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid profile payload"))
		return
	}
	teacher, err := h.accounts.UpdateProfile(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher, nil)
}

// DeleteMe godoc
// @Summary Permanently delete the acting account
// @Tags Accounts
// @Success 204
// @Router /accounts/me [delete]
func (h *AccountHandler) DeleteMe(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.accounts.Delete(c.Request.Context(), claims.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
