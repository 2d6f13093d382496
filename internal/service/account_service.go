package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campushq/faculty-portal-api/internal/models"
	"github.com/campushq/faculty-portal-api/internal/repository"
	appErrors "github.com/campushq/faculty-portal-api/pkg/errors"
)

type accountRepository interface {
	List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, int, error)
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id string) error
}

// SignupRequest is the account creation payload.
type SignupRequest struct {
	Username   string `json:"username" validate:"required,alphanum,max=150"`
	Email      string `json:"email" validate:"required,email"`
	FirstName  string `json:"first_name" validate:"max=150"`
	LastName   string `json:"last_name" validate:"max=150"`
	Department string `json:"department" validate:"required"`
	Password   string `json:"password" validate:"required,min=6"`
}

// UpdateProfileRequest modifies profile fields of the acting account.
type UpdateProfileRequest struct {
	Username  string `json:"username" validate:"required,alphanum,max=150"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
}

// AccountService manages the account lifecycle: signup with teacher-code
// assignment, directory listing, profile updates, and deletion.
//
// Teacher codes are 3-digit strings drawn from 100-999 by rejection
// sampling, so the space caps out at 900 live accounts. Fine for a single
// institution; a wider space would be the first fix if that ever changes.
type AccountService struct {
	repo         accountRepository
	validator    *validator.Validate
	logger       *zap.Logger
	maxAttempts  int
	generateCode func() string
}

// NewAccountService constructs an AccountService. maxAttempts bounds the
// code-assignment retry loop.
func NewAccountService(repo accountRepository, validate *validator.Validate, logger *zap.Logger, maxAttempts int) *AccountService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxAttempts <= 0 {
		maxAttempts = 100
	}
	return &AccountService{
		repo:        repo,
		validator:   validate,
		logger:      logger,
		maxAttempts: maxAttempts,
		generateCode: func() string {
			return fmt.Sprintf("%d", 100+rand.Intn(900))
		},
	}
}

// Signup registers a new teacher account. The teacher code is assigned here,
// once, and never changes; the store's unique constraint is the final
// arbiter, and a code collision just draws again.
func (s *AccountService) Signup(ctx context.Context, req SignupRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid signup payload")
	}

	if !models.IsValidDepartment(req.Department) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown department code")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	teacher := &models.Teacher{
		Username:     strings.TrimSpace(req.Username),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        strings.TrimSpace(req.Email),
		Department:   strings.ToUpper(req.Department),
		PasswordHash: string(hash),
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		teacher.ID = ""
		teacher.TeacherCode = s.generateCode()

		err := s.repo.Create(ctx, teacher)
		if err == nil {
			return teacher, nil
		}
		if repository.IsUniqueViolation(err, repository.ConstraintTeacherCode) {
			continue
		}
		if repository.IsUniqueViolation(err, "") {
			return nil, appErrors.Clone(appErrors.ErrConflict, "username or email already taken")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create account")
	}

	s.logger.Error("teacher code assignment exhausted", zap.Int("attempts", s.maxAttempts))
	return nil, appErrors.Clone(appErrors.ErrConflict, "no free teacher code available")
}

// Directory lists non-admin teachers with pagination.
func (s *AccountService) Directory(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, *models.Pagination, error) {
	teachers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list accounts")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return teachers, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns one account by ID.
func (s *AccountService) Get(ctx context.Context, id string) (*models.Teacher, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load account")
	}
	return teacher, nil
}

// UpdateProfile modifies the acting account's profile. Department and
// teacher code are immutable here.
func (s *AccountService) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload")
	}

	teacher, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	teacher.Username = strings.TrimSpace(req.Username)
	teacher.Email = strings.TrimSpace(req.Email)
	teacher.FirstName = strings.TrimSpace(req.FirstName)
	teacher.LastName = strings.TrimSpace(req.LastName)

	if err := s.repo.Update(ctx, teacher); err != nil {
		if repository.IsUniqueViolation(err, "") {
			return nil, appErrors.Clone(appErrors.ErrConflict, "username or email already taken")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update account")
	}
	return teacher, nil
}

// Delete permanently removes the acting account. Owned schedules, meetings,
// and leave requests cascade away with it.
func (s *AccountService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete account")
	}
	return nil
}
