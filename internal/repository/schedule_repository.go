package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/campushq/faculty-portal-api/internal/models"
)

const scheduleRowColumns = `s.id, s.course_name, s.teacher_id, s.department_id, s.day, s.date, s.start_time, s.end_time, s.room, s.created_at,
	t.username AS teacher_username, t.first_name AS teacher_first_name, t.last_name AS teacher_last_name,
	d.code AS department_code`

// ScheduleRepository reads weekly schedule entries with their joined teacher
// and department rows. Entries are returned in insertion order so grouping
// downstream preserves first-appearance ordering.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs a ScheduleRepository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// ListByDepartment returns a department's schedule rows, optionally narrowed
// by a case-insensitive substring match on the teacher's username, first
// name, or last name.
func (r *ScheduleRepository) ListByDepartment(ctx context.Context, departmentID, search string) ([]models.ScheduleRow, error) {
	query := fmt.Sprintf(`SELECT %s FROM schedules s
		LEFT JOIN teachers t ON t.id = s.teacher_id
		LEFT JOIN departments d ON d.id = s.department_id
		WHERE s.department_id = $1`, scheduleRowColumns)
	args := []interface{}{departmentID}

	if search != "" {
		query += " AND (LOWER(t.username) LIKE $2 OR LOWER(t.first_name) LIKE $2 OR LOWER(t.last_name) LIKE $2)"
		args = append(args, "%"+strings.ToLower(search)+"%")
	}

	query += " ORDER BY s.created_at ASC, s.id ASC"

	var rows []models.ScheduleRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list department schedules: %w", err)
	}
	return rows, nil
}

// ListVisible returns schedule rows whose teacher is either absent or not an
// administrative account, optionally narrowed by a token matched against
// teacher first name, last name, course name, or department code.
func (r *ScheduleRepository) ListVisible(ctx context.Context, search string) ([]models.ScheduleRow, error) {
	query := fmt.Sprintf(`SELECT %s FROM schedules s
		LEFT JOIN teachers t ON t.id = s.teacher_id
		LEFT JOIN departments d ON d.id = s.department_id
		WHERE (s.teacher_id IS NULL OR t.is_admin = FALSE)`, scheduleRowColumns)
	var args []interface{}

	if search != "" {
		query += ` AND (LOWER(t.first_name) LIKE $1 OR LOWER(t.last_name) LIKE $1 OR LOWER(s.course_name) LIKE $1 OR LOWER(d.code) LIKE $1)`
		args = append(args, "%"+strings.ToLower(search)+"%")
	}

	query += " ORDER BY s.created_at ASC, s.id ASC"

	var rows []models.ScheduleRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list visible schedules: %w", err)
	}
	return rows, nil
}

// ListByTeacher returns one teacher's schedule rows.
func (r *ScheduleRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.ScheduleRow, error) {
	query := fmt.Sprintf(`SELECT %s FROM schedules s
		LEFT JOIN teachers t ON t.id = s.teacher_id
		LEFT JOIN departments d ON d.id = s.department_id
		WHERE s.teacher_id = $1
		ORDER BY s.created_at ASC, s.id ASC`, scheduleRowColumns)
	var rows []models.ScheduleRow
	if err := r.db.SelectContext(ctx, &rows, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher schedules: %w", err)
	}
	return rows, nil
}
