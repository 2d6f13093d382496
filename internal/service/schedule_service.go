package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/campushq/faculty-portal-api/internal/models"
	appErrors "github.com/campushq/faculty-portal-api/pkg/errors"
)

type visibleScheduleRepository interface {
	ListVisible(ctx context.Context, search string) ([]models.ScheduleRow, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]models.ScheduleRow, error)
}

type overlayLeaveRepository interface {
	ApprovedTeacherIDs(ctx context.Context, date time.Time) ([]string, error)
	DeleteExpired(ctx context.Context, asOf time.Time) (int64, error)
}

// ScheduleService produces the weekly schedule view: visibility-filtered
// entries plus the same-day approved-leave overlay.
type ScheduleService struct {
	schedules visibleScheduleRepository
	leaves    overlayLeaveRepository
	metrics   *MetricsService
	logger    *zap.Logger
	sweep     bool
	now       Clock
}

// NewScheduleService constructs a ScheduleService. sweep toggles the leave
// expiry sweep on the read path; production keeps it on.
func NewScheduleService(schedules visibleScheduleRepository, leaves overlayLeaveRepository, metrics *MetricsService, logger *zap.Logger, sweep bool) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{
		schedules: schedules,
		leaves:    leaves,
		metrics:   metrics,
		logger:    logger,
		sweep:     sweep,
		now:       time.Now,
	}
}

// WithClock overrides the service clock. Test hook.
func (s *ScheduleService) WithClock(now Clock) *ScheduleService {
	s.now = now
	return s
}

// WeeklySchedule returns every schedule entry whose teacher is absent or not
// an administrative account, optionally narrowed by a token OR-matched
// against teacher first name, last name, course name, and department code.
// Expired leave requests are swept first so the overlay never reflects stale
// rows; the overlay holds teachers with approved leave dated exactly today.
func (s *ScheduleService) WeeklySchedule(ctx context.Context, search string) (*models.ScheduleView, error) {
	today := dateOf(s.now())

	if s.sweep {
		deleted, err := s.leaves.DeleteExpired(ctx, today)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to expire leave requests")
		}
		s.metrics.ObserveExpirySweep("leave_requests", deleted)
	}

	rows, err := s.schedules.ListVisible(ctx, search)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedules")
	}

	onLeave, err := s.leaves.ApprovedTeacherIDs(ctx, today)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load leave overlay")
	}

	if rows == nil {
		rows = []models.ScheduleRow{}
	}
	if onLeave == nil {
		onLeave = []string{}
	}

	return &models.ScheduleView{Entries: rows, OnLeaveToday: onLeave}, nil
}

// TeacherSchedule returns one teacher's own schedule entries.
func (s *ScheduleService) TeacherSchedule(ctx context.Context, teacherID string) ([]models.ScheduleRow, error) {
	rows, err := s.schedules.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher schedules")
	}
	return rows, nil
}
