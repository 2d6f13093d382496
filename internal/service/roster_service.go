package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/campushq/faculty-portal-api/internal/models"
	appErrors "github.com/campushq/faculty-portal-api/pkg/errors"
)

type rosterDepartmentRepository interface {
	FindByCode(ctx context.Context, code string) (*models.Department, error)
}

type rosterCourseRepository interface {
	ListByDepartment(ctx context.Context, departmentID string) ([]models.DepartmentCourse, error)
}

type rosterScheduleRepository interface {
	ListByDepartment(ctx context.Context, departmentID, search string) ([]models.ScheduleRow, error)
}

// RosterService aggregates a department's schedule rows into per-teacher
// course groups.
type RosterService struct {
	departments rosterDepartmentRepository
	courses     rosterCourseRepository
	schedules   rosterScheduleRepository
	logger      *zap.Logger
}

// NewRosterService constructs a RosterService.
func NewRosterService(departments rosterDepartmentRepository, courses rosterCourseRepository, schedules rosterScheduleRepository, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{departments: departments, courses: courses, schedules: schedules, logger: logger}
}

// DepartmentRoster returns the roster for a department code, optionally
// narrowed by a search token matched against the teacher's username, first
// name, or last name. Groups appear in first-appearance order of the
// underlying schedule rows; rows without an assigned teacher are dropped.
//
// When the same course name occurs in several semesters, the semester lookup
// keeps the last-seen row. Known quirk of the data model, kept as-is.
func (s *RosterService) DepartmentRoster(ctx context.Context, deptCode, search string) ([]models.RosterGroup, error) {
	if !models.IsValidDepartment(deptCode) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "department not found")
	}

	dept, err := s.departments.FindByCode(ctx, deptCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "department not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load department")
	}

	courses, err := s.courses.ListByDepartment(ctx, dept.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load department courses")
	}

	semesterByCourse := make(map[string]int, len(courses))
	for _, course := range courses {
		semesterByCourse[course.CourseName] = course.Semester
	}

	rows, err := s.schedules.ListByDepartment(ctx, dept.ID, search)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load department schedules")
	}

	groups := make([]models.RosterGroup, 0)
	indexByUsername := make(map[string]int)

	for _, row := range rows {
		if row.TeacherID == nil || row.TeacherUsername == nil {
			continue
		}

		username := *row.TeacherUsername
		idx, ok := indexByUsername[username]
		if !ok {
			group := models.RosterGroup{
				Teacher: models.RosterTeacher{
					ID:       *row.TeacherID,
					Username: username,
				},
				Courses: []models.RosterCourse{},
			}
			if row.TeacherFirstName != nil {
				group.Teacher.FirstName = *row.TeacherFirstName
			}
			if row.TeacherLastName != nil {
				group.Teacher.LastName = *row.TeacherLastName
			}
			groups = append(groups, group)
			idx = len(groups) - 1
			indexByUsername[username] = idx
		}

		course := models.RosterCourse{Name: row.CourseName}
		if semester, known := semesterByCourse[row.CourseName]; known {
			sem := semester
			course.Semester = &sem
		}
		groups[idx].Courses = append(groups[idx].Courses, course)
	}

	return groups, nil
}
