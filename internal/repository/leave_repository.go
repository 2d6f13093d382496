package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campushq/faculty-portal-api/internal/models"
)

// LeaveRepository manages leave requests.
type LeaveRepository struct {
	db *sqlx.DB
}

// NewLeaveRepository constructs a LeaveRepository.
func NewLeaveRepository(db *sqlx.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

// Create inserts a new leave request.
func (r *LeaveRepository) Create(ctx context.Context, leave *models.LeaveRequest) error {
	if leave.ID == "" {
		leave.ID = uuid.NewString()
	}
	if leave.Status == "" {
		leave.Status = models.LeaveStatusPending
	}
	if leave.CreatedAt.IsZero() {
		leave.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO leave_requests (id, teacher_id, date, reason, status, created_at)
		VALUES (:id, :teacher_id, :date, :reason, :status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, leave); err != nil {
		return fmt.Errorf("create leave request: %w", err)
	}
	return nil
}

// ListByTeacher returns a teacher's leave requests, newest date first.
func (r *LeaveRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.LeaveRequest, error) {
	const query = `SELECT id, teacher_id, date, reason, status, created_at
		FROM leave_requests WHERE teacher_id = $1 ORDER BY date DESC`
	var leaves []models.LeaveRequest
	if err := r.db.SelectContext(ctx, &leaves, query, teacherID); err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	return leaves, nil
}

// ApprovedTeacherIDs returns the distinct IDs of teachers with an approved
// leave request dated exactly on the given day.
func (r *LeaveRepository) ApprovedTeacherIDs(ctx context.Context, date time.Time) ([]string, error) {
	const query = `SELECT DISTINCT teacher_id FROM leave_requests WHERE date = $1 AND status = $2`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, date, models.LeaveStatusApproved); err != nil {
		return nil, fmt.Errorf("list approved leave teachers: %w", err)
	}
	return ids, nil
}

// DeleteExpired removes leave requests dated strictly before asOf and reports
// how many were deleted. Safe to invoke concurrently.
func (r *LeaveRepository) DeleteExpired(ctx context.Context, asOf time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM leave_requests WHERE date < $1", asOf)
	if err != nil {
		return 0, fmt.Errorf("delete expired leave requests: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return deleted, nil
}
