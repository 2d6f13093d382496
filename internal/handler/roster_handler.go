package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campushq/faculty-portal-api/internal/models"
	"github.com/campushq/faculty-portal-api/pkg/response"
)

type rosterService interface {
	DepartmentRoster(ctx context.Context, deptCode, search string) ([]models.RosterGroup, error)
}

// RosterHandler serves department roster aggregations.
type RosterHandler struct {
	rosters rosterService
}

// NewRosterHandler constructs a new RosterHandler.
func NewRosterHandler(rosters rosterService) *RosterHandler {
	return &RosterHandler{rosters: rosters}
}

// Get godoc
// @Summary Department roster grouped by teacher
// @Tags Departments
// @Produce json
// @Param code path string true "Department code"
// @Param q query string false "Search by teacher username or name"
// @Success 200 {object} response.Envelope
// @Router /departments/{code}/roster [get]
func (h *RosterHandler) Get(c *gin.Context) {
	groups, err := h.rosters.DepartmentRoster(c.Request.Context(), c.Param("code"), strings.TrimSpace(c.Query("q")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, groups, nil, map[string]interface{}{
		"department": strings.ToUpper(c.Param("code")),
	})
}
