package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campushq/faculty-portal-api/internal/models"
)

// CourseRepository manages department course assignments.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// ListByDepartment returns course rows for a department in insertion order.
func (r *CourseRepository) ListByDepartment(ctx context.Context, departmentID string) ([]models.DepartmentCourse, error) {
	const query = `SELECT id, department_id, semester, course_name, teacher_id FROM department_courses WHERE department_id = $1 ORDER BY created_at ASC, id ASC`
	var courses []models.DepartmentCourse
	if err := r.db.SelectContext(ctx, &courses, query, departmentID); err != nil {
		return nil, fmt.Errorf("list department courses: %w", err)
	}
	return courses, nil
}

// Create inserts a course assignment. A (department, semester, course)
// duplicate surfaces as a unique violation for the caller to translate.
func (r *CourseRepository) Create(ctx context.Context, course *models.DepartmentCourse) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	const query = `INSERT INTO department_courses (id, department_id, semester, course_name, teacher_id)
		VALUES (:id, :department_id, :semester, :course_name, :teacher_id)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		if IsUniqueViolation(err, "") {
			return err
		}
		return fmt.Errorf("create department course: %w", err)
	}
	return nil
}
