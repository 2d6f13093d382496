package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campushq/faculty-portal-api/internal/models"
)

const teacherColumns = "id, username, first_name, last_name, email, department, teacher_code, is_admin, password_hash, created_at, updated_at"

// TeacherRepository manages persistence for staff accounts.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// List returns non-admin teachers matching the filter plus total count.
func (r *TeacherRepository) List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, int, error) {
	base := "FROM teachers WHERE is_admin = FALSE"
	var args []interface{}

	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		base += fmt.Sprintf(" AND (LOWER(username) LIKE $%d OR LOWER(first_name) LIKE $%d OR LOWER(last_name) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1)
		args = append(args, search)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY username ASC LIMIT %d OFFSET %d", teacherColumns, base, size, offset)
	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list teachers: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count teachers: %w", err)
	}

	return teachers, total, nil
}

// ListByDepartment returns non-admin teachers sharing a department tag.
// Used for meeting fan-out recipient resolution.
func (r *TeacherRepository) ListByDepartment(ctx context.Context, department string) ([]models.Teacher, error) {
	query := fmt.Sprintf("SELECT %s FROM teachers WHERE department = $1 AND is_admin = FALSE ORDER BY username ASC", teacherColumns)
	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, query, department); err != nil {
		return nil, fmt.Errorf("list department teachers: %w", err)
	}
	return teachers, nil
}

// FindByID fetches a teacher by ID.
func (r *TeacherRepository) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	query := fmt.Sprintf("SELECT %s FROM teachers WHERE id = $1", teacherColumns)
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// FindByUsername fetches a teacher by username.
func (r *TeacherRepository) FindByUsername(ctx context.Context, username string) (*models.Teacher, error) {
	query := fmt.Sprintf("SELECT %s FROM teachers WHERE LOWER(username) = LOWER($1)", teacherColumns)
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, username); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// ExistsByCode checks whether a teacher code is already taken.
func (r *TeacherRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists int
	err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM teachers WHERE teacher_code = $1 LIMIT 1", code)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check teacher code: %w", err)
	}
	return true, nil
}

// Create inserts a new teacher record. Unique-constraint violations are
// returned unwrapped so callers can inspect the failing constraint.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	if teacher.ID == "" {
		teacher.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if teacher.CreatedAt.IsZero() {
		teacher.CreatedAt = now
	}
	teacher.UpdatedAt = now

	const query = `INSERT INTO teachers (id, username, first_name, last_name, email, department, teacher_code, is_admin, password_hash, created_at, updated_at)
		VALUES (:id, :username, :first_name, :last_name, :email, :department, :teacher_code, :is_admin, :password_hash, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, teacher); err != nil {
		if IsUniqueViolation(err, "") {
			return err
		}
		return fmt.Errorf("create teacher: %w", err)
	}
	return nil
}

// Update modifies profile fields of an existing teacher. The teacher code is
// never updated; it is assigned once at creation.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	teacher.UpdatedAt = time.Now().UTC()
	const query = `UPDATE teachers SET username = :username, first_name = :first_name, last_name = :last_name, email = :email, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, teacher); err != nil {
		if IsUniqueViolation(err, "") {
			return err
		}
		return fmt.Errorf("update teacher: %w", err)
	}
	return nil
}

// Delete permanently removes a teacher. Schedules, meetings, and leave
// requests cascade at the store level.
func (r *TeacherRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM teachers WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete teacher: %w", err)
	}
	return nil
}
