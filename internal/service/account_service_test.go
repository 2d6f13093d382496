package service

import (
	"context"
	"database/sql"
	"strconv"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campushq/faculty-portal-api/internal/models"
	"github.com/campushq/faculty-portal-api/internal/repository"
	appErrors "github.com/campushq/faculty-portal-api/pkg/errors"
)

type mockAccountRepo struct {
	items      map[string]*models.Teacher
	takenCodes map[string]bool
	createErrs []error
	creates    int
	deleted    []string
}

func (m *mockAccountRepo) List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, int, error) {
	out := make([]models.Teacher, 0, len(m.items))
	for _, t := range m.items {
		out = append(out, *t)
	}
	return out, len(out), nil
}

func (m *mockAccountRepo) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	if t, ok := m.items[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAccountRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	m.creates++
	if len(m.createErrs) > 0 {
		err := m.createErrs[0]
		m.createErrs = m.createErrs[1:]
		if err != nil {
			return err
		}
	}
	if m.takenCodes[teacher.TeacherCode] {
		return &pq.Error{Code: "23505", Constraint: repository.ConstraintTeacherCode}
	}
	if m.items == nil {
		m.items = make(map[string]*models.Teacher)
	}
	teacher.ID = "t" + strconv.Itoa(len(m.items)+1)
	cp := *teacher
	m.items[teacher.ID] = &cp
	return nil
}

func (m *mockAccountRepo) Update(ctx context.Context, teacher *models.Teacher) error {
	cp := *teacher
	m.items[teacher.ID] = &cp
	return nil
}

func (m *mockAccountRepo) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	delete(m.items, id)
	return nil
}

func signupReq() SignupRequest {
	return SignupRequest{
		Username:   "ana",
		Email:      "ana@college.edu",
		FirstName:  "Ana",
		LastName:   "Shrestha",
		Department: "csit",
		Password:   "secret1",
	}
}

func TestSignupAssignsThreeDigitCode(t *testing.T) {
	repo := &mockAccountRepo{}
	svc := NewAccountService(repo, nil, zap.NewNop(), 100)

	teacher, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	code, convErr := strconv.Atoi(teacher.TeacherCode)
	require.NoError(t, convErr)
	assert.GreaterOrEqual(t, code, 100)
	assert.LessOrEqual(t, code, 999)
	assert.Equal(t, "CSIT", teacher.Department)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(teacher.PasswordHash), []byte("secret1")))
}

func TestSignupRetriesOnCodeCollision(t *testing.T) {
	repo := &mockAccountRepo{takenCodes: map[string]bool{"111": true}}
	svc := NewAccountService(repo, nil, zap.NewNop(), 100)
	codes := []string{"111", "222"}
	svc.generateCode = func() string {
		code := codes[0]
		if len(codes) > 1 {
			codes = codes[1:]
		}
		return code
	}

	teacher, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)
	assert.Equal(t, "222", teacher.TeacherCode)
	assert.Equal(t, 2, repo.creates)
}

func TestSignupExhaustsCodeAttempts(t *testing.T) {
	repo := &mockAccountRepo{takenCodes: map[string]bool{"500": true}}
	svc := NewAccountService(repo, nil, zap.NewNop(), 5)
	svc.generateCode = func() string { return "500" }

	_, err := svc.Signup(context.Background(), signupReq())
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
	assert.Equal(t, 5, repo.creates)
}

func TestSignupUnknownDepartmentFailsBeforeStore(t *testing.T) {
	repo := &mockAccountRepo{}
	svc := NewAccountService(repo, nil, zap.NewNop(), 100)

	req := signupReq()
	req.Department = "PHYS"
	_, err := svc.Signup(context.Background(), req)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Zero(t, repo.creates)
}

func TestSignupDuplicateUsername(t *testing.T) {
	repo := &mockAccountRepo{createErrs: []error{&pq.Error{Code: "23505", Constraint: repository.ConstraintTeacherUsername}}}
	svc := NewAccountService(repo, nil, zap.NewNop(), 100)

	_, err := svc.Signup(context.Background(), signupReq())
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
	// a username conflict never draws another code
	assert.Equal(t, 1, repo.creates)
}

func TestSignupRejectsShortPassword(t *testing.T) {
	repo := &mockAccountRepo{}
	svc := NewAccountService(repo, nil, zap.NewNop(), 100)

	req := signupReq()
	req.Password = "abc"
	_, err := svc.Signup(context.Background(), req)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestUpdateProfileKeepsCodeAndDepartment(t *testing.T) {
	repo := &mockAccountRepo{items: map[string]*models.Teacher{
		"t1": {ID: "t1", Username: "ana", Email: "ana@college.edu", Department: "CSIT", TeacherCode: "123"},
	}}
	svc := NewAccountService(repo, nil, zap.NewNop(), 100)

	teacher, err := svc.UpdateProfile(context.Background(), "t1", UpdateProfileRequest{
		Username:  "ana2",
		Email:     "ana2@college.edu",
		FirstName: "Ana",
		LastName:  "Shrestha",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana2", teacher.Username)
	assert.Equal(t, "CSIT", teacher.Department)
	assert.Equal(t, "123", teacher.TeacherCode)
}

func TestDeleteAccount(t *testing.T) {
	repo := &mockAccountRepo{items: map[string]*models.Teacher{"t1": {ID: "t1"}}}
	svc := NewAccountService(repo, nil, zap.NewNop(), 100)

	require.NoError(t, svc.Delete(context.Background(), "t1"))
	assert.Equal(t, []string{"t1"}, repo.deleted)

	err := svc.Delete(context.Background(), "t1")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}
