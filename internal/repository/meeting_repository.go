package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campushq/faculty-portal-api/internal/models"
)

// MeetingRepository manages meeting announcements.
type MeetingRepository struct {
	db *sqlx.DB
}

// NewMeetingRepository constructs a MeetingRepository.
func NewMeetingRepository(db *sqlx.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// Create inserts a new meeting.
func (r *MeetingRepository) Create(ctx context.Context, meeting *models.Meeting) error {
	if meeting.ID == "" {
		meeting.ID = uuid.NewString()
	}
	if meeting.CreatedAt.IsZero() {
		meeting.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO meetings (id, created_by, date, time, venue, created_at)
		VALUES (:id, :created_by, :date, :time, :venue, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, meeting); err != nil {
		return fmt.Errorf("create meeting: %w", err)
	}
	return nil
}

// ListUpcomingByDepartment returns meetings created by members of the given
// department dated on or after asOf, ordered by date then time.
func (r *MeetingRepository) ListUpcomingByDepartment(ctx context.Context, department string, asOf time.Time) ([]models.Meeting, error) {
	const query = `SELECT m.id, m.created_by, m.date, m.time, m.venue, m.created_at
		FROM meetings m
		JOIN teachers t ON t.id = m.created_by
		WHERE t.department = $1 AND m.date >= $2
		ORDER BY m.date ASC, m.time ASC`
	var meetings []models.Meeting
	if err := r.db.SelectContext(ctx, &meetings, query, department, asOf); err != nil {
		return nil, fmt.Errorf("list upcoming meetings: %w", err)
	}
	return meetings, nil
}

// DeleteExpired removes meetings dated strictly before asOf and reports how
// many were deleted. A plain conditional DELETE, so concurrent sweeps are
// safe and a second run is a no-op.
func (r *MeetingRepository) DeleteExpired(ctx context.Context, asOf time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM meetings WHERE date < $1", asOf)
	if err != nil {
		return 0, fmt.Errorf("delete expired meetings: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return deleted, nil
}
