package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campushq/faculty-portal-api/internal/models"
	appErrors "github.com/campushq/faculty-portal-api/pkg/errors"
)

type mockRosterDeptRepo struct {
	dept  *models.Department
	err   error
	calls int
}

func (m *mockRosterDeptRepo) FindByCode(ctx context.Context, code string) (*models.Department, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.dept, nil
}

type mockRosterCourseRepo struct {
	courses []models.DepartmentCourse
}

func (m *mockRosterCourseRepo) ListByDepartment(ctx context.Context, departmentID string) ([]models.DepartmentCourse, error) {
	return m.courses, nil
}

type mockRosterScheduleRepo struct {
	rows       []models.ScheduleRow
	lastSearch string
}

func (m *mockRosterScheduleRepo) ListByDepartment(ctx context.Context, departmentID, search string) ([]models.ScheduleRow, error) {
	m.lastSearch = search
	return m.rows, nil
}

func strPtr(s string) *string { return &s }

func rosterRow(teacherID, username, firstName, lastName, course string) models.ScheduleRow {
	return models.ScheduleRow{
		ScheduleEntry:    models.ScheduleEntry{CourseName: course, TeacherID: strPtr(teacherID)},
		TeacherUsername:  strPtr(username),
		TeacherFirstName: strPtr(firstName),
		TeacherLastName:  strPtr(lastName),
	}
}

func TestRosterGroupsByFirstAppearance(t *testing.T) {
	depts := &mockRosterDeptRepo{dept: &models.Department{ID: "d1", Code: "CSIT"}}
	courses := &mockRosterCourseRepo{courses: []models.DepartmentCourse{
		{DepartmentID: "d1", Semester: 1, CourseName: "C Programming"},
		{DepartmentID: "d1", Semester: 2, CourseName: "Data Structures"},
	}}
	schedules := &mockRosterScheduleRepo{rows: []models.ScheduleRow{
		rosterRow("t1", "ana", "Ana", "Shrestha", "C Programming"),
		rosterRow("t2", "bir", "Bir", "Gurung", "Data Structures"),
		rosterRow("t1", "ana", "Ana", "Shrestha", "Data Structures"),
	}}
	svc := NewRosterService(depts, courses, schedules, zap.NewNop())

	groups, err := svc.DepartmentRoster(context.Background(), "CSIT", "")
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "ana", groups[0].Teacher.Username)
	assert.Equal(t, "bir", groups[1].Teacher.Username)

	require.Len(t, groups[0].Courses, 2)
	assert.Equal(t, "C Programming", groups[0].Courses[0].Name)
	require.NotNil(t, groups[0].Courses[0].Semester)
	assert.Equal(t, 1, *groups[0].Courses[0].Semester)
	assert.Equal(t, "Data Structures", groups[0].Courses[1].Name)
	require.NotNil(t, groups[0].Courses[1].Semester)
	assert.Equal(t, 2, *groups[0].Courses[1].Semester)
}

func TestRosterKeepsLastSeenSemester(t *testing.T) {
	depts := &mockRosterDeptRepo{dept: &models.Department{ID: "d1", Code: "BCA"}}
	courses := &mockRosterCourseRepo{courses: []models.DepartmentCourse{
		{DepartmentID: "d1", Semester: 1, CourseName: "Mathematics"},
		{DepartmentID: "d1", Semester: 3, CourseName: "Mathematics"},
	}}
	schedules := &mockRosterScheduleRepo{rows: []models.ScheduleRow{
		rosterRow("t1", "ana", "Ana", "Shrestha", "Mathematics"),
	}}
	svc := NewRosterService(depts, courses, schedules, zap.NewNop())

	groups, err := svc.DepartmentRoster(context.Background(), "bca", "")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Courses, 1)
	require.NotNil(t, groups[0].Courses[0].Semester)
	assert.Equal(t, 3, *groups[0].Courses[0].Semester)
}

func TestRosterDropsUnassignedRowsAndKeepsDuplicates(t *testing.T) {
	depts := &mockRosterDeptRepo{dept: &models.Department{ID: "d1", Code: "BIM"}}
	courses := &mockRosterCourseRepo{}
	schedules := &mockRosterScheduleRepo{rows: []models.ScheduleRow{
		{ScheduleEntry: models.ScheduleEntry{CourseName: "Orphan Course"}},
		rosterRow("t1", "ana", "Ana", "Shrestha", "Networking"),
		rosterRow("t1", "ana", "Ana", "Shrestha", "Networking"),
	}}
	svc := NewRosterService(depts, courses, schedules, zap.NewNop())

	groups, err := svc.DepartmentRoster(context.Background(), "BIM", "")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	// same course twice on the schedule stays twice on the roster
	assert.Len(t, groups[0].Courses, 2)
	// no DepartmentCourse row means no semester
	assert.Nil(t, groups[0].Courses[0].Semester)
}

func TestRosterUnknownDepartmentCode(t *testing.T) {
	depts := &mockRosterDeptRepo{}
	svc := NewRosterService(depts, &mockRosterCourseRepo{}, &mockRosterScheduleRepo{}, zap.NewNop())

	_, err := svc.DepartmentRoster(context.Background(), "PHYS", "")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
	// validation happens before any store access
	assert.Zero(t, depts.calls)
}

func TestRosterDepartmentMissingFromStore(t *testing.T) {
	depts := &mockRosterDeptRepo{err: sql.ErrNoRows}
	svc := NewRosterService(depts, &mockRosterCourseRepo{}, &mockRosterScheduleRepo{}, zap.NewNop())

	_, err := svc.DepartmentRoster(context.Background(), "CSIT", "")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestRosterPassesSearchThrough(t *testing.T) {
	depts := &mockRosterDeptRepo{dept: &models.Department{ID: "d1", Code: "CSIT"}}
	schedules := &mockRosterScheduleRepo{}
	svc := NewRosterService(depts, &mockRosterCourseRepo{}, schedules, zap.NewNop())

	_, err := svc.DepartmentRoster(context.Background(), "CSIT", "shrestha")
	require.NoError(t, err)
	assert.Equal(t, "shrestha", schedules.lastSearch)
}
