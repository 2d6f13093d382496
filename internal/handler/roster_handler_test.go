package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/faculty-portal-api/internal/models"
	appErrors "github.com/campushq/faculty-portal-api/pkg/errors"
)

type rosterServiceMock struct {
	resp       []models.RosterGroup
	err        error
	lastCode   string
	lastSearch string
}

func (m *rosterServiceMock) DepartmentRoster(ctx context.Context, deptCode, search string) ([]models.RosterGroup, error) {
	m.lastCode = deptCode
	m.lastSearch = search
	return m.resp, m.err
}

func TestRosterHandlerGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &rosterServiceMock{
		resp: []models.RosterGroup{{Teacher: models.RosterTeacher{ID: "t1", Username: "ana"}}},
	}
	h := NewRosterHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/departments/csit/roster?q=%20ana%20", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "code", Value: "csit"}}

	h.Get(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csit", mockSvc.lastCode)
	assert.Equal(t, "ana", mockSvc.lastSearch)

	var body struct {
		Data []models.RosterGroup   `json:"data"`
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "ana", body.Data[0].Teacher.Username)
	assert.Equal(t, "CSIT", body.Meta["department"])
}

func TestRosterHandlerGetUnknownDepartment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &rosterServiceMock{err: appErrors.Clone(appErrors.ErrNotFound, "department not found")}
	h := NewRosterHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/departments/phys/roster", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "code", Value: "phys"}}

	h.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
