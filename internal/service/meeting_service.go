package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushq/faculty-portal-api/internal/models"
	appErrors "github.com/campushq/faculty-portal-api/pkg/errors"
	"github.com/campushq/faculty-portal-api/pkg/mailer"
)

type meetingRepository interface {
	Create(ctx context.Context, meeting *models.Meeting) error
	ListUpcomingByDepartment(ctx context.Context, department string, asOf time.Time) ([]models.Meeting, error)
	DeleteExpired(ctx context.Context, asOf time.Time) (int64, error)
}

type meetingTeacherRepository interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	ListByDepartment(ctx context.Context, department string) ([]models.Teacher, error)
}

// CreateMeetingRequest is the meeting creation payload. Date is
// "YYYY-MM-DD", Time is "HH:MM".
type CreateMeetingRequest struct {
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
	Time  string `json:"time" validate:"required,datetime=15:04"`
	Venue string `json:"venue" validate:"required,max=100"`
}

// CreateMeetingResult reports the persisted meeting and the notification
// outcome. Dispatch failure never rolls the meeting back.
type CreateMeetingResult struct {
	Meeting    *models.Meeting
	Recipients int
	Dispatched bool
}

// MeetingService creates meetings and fans announcements out to the
// creator's department.
type MeetingService struct {
	meetings  meetingRepository
	teachers  meetingTeacherRepository
	mail      mailer.Mailer
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	sweep     bool
	now       Clock
}

// NewMeetingService constructs a MeetingService.
func NewMeetingService(meetings meetingRepository, teachers meetingTeacherRepository, mail mailer.Mailer, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, sweep bool) *MeetingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MeetingService{
		meetings:  meetings,
		teachers:  teachers,
		mail:      mail,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		sweep:     sweep,
		now:       time.Now,
	}
}

// WithClock overrides the service clock. Test hook.
func (s *MeetingService) WithClock(now Clock) *MeetingService {
	s.now = now
	return s
}

// Create persists a meeting for the acting teacher and sends one batched
// notice to the non-admin members of the creator's department. A failed send
// is reported through the result, not as an error.
func (s *MeetingService) Create(ctx context.Context, actorID string, req CreateMeetingRequest) (*CreateMeetingResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid meeting payload")
	}

	date, err := time.ParseInLocation(time.DateOnly, req.Date, time.UTC)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid meeting date")
	}

	actor, err := s.teachers.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load account")
	}

	if s.sweep {
		deleted, sweepErr := s.meetings.DeleteExpired(ctx, dateOf(s.now()))
		if sweepErr != nil {
			return nil, appErrors.Wrap(sweepErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to expire meetings")
		}
		s.metrics.ObserveExpirySweep("meetings", deleted)
	}

	meeting := &models.Meeting{
		CreatedBy: actor.ID,
		Date:      date,
		Time:      req.Time,
		Venue:     strings.TrimSpace(req.Venue),
	}
	if err := s.meetings.Create(ctx, meeting); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create meeting")
	}

	result := &CreateMeetingResult{Meeting: meeting}

	colleagues, err := s.teachers.ListByDepartment(ctx, actor.Department)
	if err != nil {
		s.logger.Warn("recipient lookup failed, meeting kept", zap.Error(err), zap.String("meeting_id", meeting.ID))
		s.metrics.ObserveDispatch(false)
		return result, nil
	}

	recipients := make([]string, 0, len(colleagues))
	for _, colleague := range colleagues {
		if colleague.Email != "" {
			recipients = append(recipients, colleague.Email)
		}
	}
	result.Recipients = len(recipients)
	if len(recipients) == 0 {
		return result, nil
	}

	subject := fmt.Sprintf("Department Meeting Scheduled on %s", req.Date)
	body := fmt.Sprintf(
		"Dear Lecturer,\n\nA department meeting has been scheduled.\n\nDate: %s\nTime: %s\nVenue: %s\nScheduled by: %s\n\nPlease be punctual.\n\nRegards,\nAdmin",
		req.Date, req.Time, meeting.Venue, actor.FullName(),
	)

	if err := s.mail.Send(ctx, subject, body, recipients); err != nil {
		s.logger.Warn("meeting notification failed, meeting kept", zap.Error(err), zap.String("meeting_id", meeting.ID))
		s.metrics.ObserveDispatch(false)
		return result, nil
	}

	result.Dispatched = true
	s.metrics.ObserveDispatch(true)
	return result, nil
}

// Upcoming returns the acting teacher's department meetings dated today or
// later, oldest first, after sweeping out past meetings. The second return
// is today's first meeting, if any.
func (s *MeetingService) Upcoming(ctx context.Context, actorID string) ([]models.Meeting, *models.Meeting, error) {
	actor, err := s.teachers.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load account")
	}

	today := dateOf(s.now())

	if s.sweep {
		deleted, sweepErr := s.meetings.DeleteExpired(ctx, today)
		if sweepErr != nil {
			return nil, nil, appErrors.Wrap(sweepErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to expire meetings")
		}
		s.metrics.ObserveExpirySweep("meetings", deleted)
	}

	meetings, err := s.meetings.ListUpcomingByDepartment(ctx, actor.Department, today)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load meetings")
	}

	var todays *models.Meeting
	for i := range meetings {
		if meetings[i].Date.Equal(today) {
			todays = &meetings[i]
			break
		}
	}

	return meetings, todays, nil
}
