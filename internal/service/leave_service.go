package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushq/faculty-portal-api/internal/models"
	appErrors "github.com/campushq/faculty-portal-api/pkg/errors"
)

type leaveRepository interface {
	Create(ctx context.Context, leave *models.LeaveRequest) error
	ListByTeacher(ctx context.Context, teacherID string) ([]models.LeaveRequest, error)
	DeleteExpired(ctx context.Context, asOf time.Time) (int64, error)
}

// SubmitLeaveRequest is the leave submission payload. Date is "YYYY-MM-DD";
// the reason is optional.
type SubmitLeaveRequest struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Reason string `json:"reason" validate:"max=2000"`
}

// LeaveService records leave requests. Status always starts pending; the
// service never transitions it — approval happens elsewhere.
type LeaveService struct {
	leaves    leaveRepository
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	sweep     bool
	now       Clock
}

// NewLeaveService constructs a LeaveService.
func NewLeaveService(leaves leaveRepository, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, sweep bool) *LeaveService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaveService{
		leaves:    leaves,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		sweep:     sweep,
		now:       time.Now,
	}
}

// WithClock overrides the service clock. Test hook.
func (s *LeaveService) WithClock(now Clock) *LeaveService {
	s.now = now
	return s
}

// Submit creates a pending leave request for the acting teacher. A missing
// or malformed date is a validation failure with nothing persisted.
func (s *LeaveService) Submit(ctx context.Context, actorID string, req SubmitLeaveRequest) (*models.LeaveRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid leave payload")
	}

	date, err := time.ParseInLocation(time.DateOnly, req.Date, time.UTC)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid leave date")
	}

	leave := &models.LeaveRequest{
		TeacherID: actorID,
		Date:      date,
		Reason:    strings.TrimSpace(req.Reason),
		Status:    models.LeaveStatusPending,
	}
	if err := s.leaves.Create(ctx, leave); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create leave request")
	}

	return leave, nil
}

// ListMine returns the acting teacher's leave requests, newest date first,
// after sweeping out past-dated requests.
func (s *LeaveService) ListMine(ctx context.Context, actorID string) ([]models.LeaveRequest, error) {
	if s.sweep {
		deleted, err := s.leaves.DeleteExpired(ctx, dateOf(s.now()))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to expire leave requests")
		}
		s.metrics.ObserveExpirySweep("leave_requests", deleted)
	}

	leaves, err := s.leaves.ListByTeacher(ctx, actorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load leave requests")
	}
	return leaves, nil
}
