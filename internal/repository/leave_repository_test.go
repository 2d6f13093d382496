package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/faculty-portal-api/internal/models"
)

func TestLeaveRepositoryCreateDefaultsToPending(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLeaveRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO leave_requests")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	leave := &models.LeaveRequest{
		TeacherID: "t1",
		Date:      time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		Reason:    "family event",
	}
	require.NoError(t, repo.Create(context.Background(), leave))
	assert.Equal(t, models.LeaveStatusPending, leave.Status)
	assert.NotEmpty(t, leave.ID)
}

func TestLeaveRepositoryListByTeacher(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLeaveRepository(db)

	rows := sqlmock.NewRows([]string{"id", "teacher_id", "date", "reason", "status", "created_at"}).
		AddRow("l2", "t1", time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC), "", "pending", time.Now().UTC()).
		AddRow("l1", "t1", time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), "family event", "approved", time.Now().UTC())

	mock.ExpectQuery(regexp.QuoteMeta("WHERE teacher_id = $1 ORDER BY date DESC")).
		WithArgs("t1").
		WillReturnRows(rows)

	leaves, err := repo.ListByTeacher(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, leaves, 2)
	assert.Equal(t, "l2", leaves[0].ID)
}

func TestLeaveRepositoryApprovedTeacherIDs(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLeaveRepository(db)

	date := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT teacher_id FROM leave_requests WHERE date = $1 AND status = $2")).
		WithArgs(date, models.LeaveStatusApproved).
		WillReturnRows(sqlmock.NewRows([]string{"teacher_id"}).AddRow("t1").AddRow("t2"))

	ids, err := repo.ApprovedTeacherIDs(context.Background(), date)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2"}, ids)
}

func TestLeaveRepositoryDeleteExpired(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLeaveRepository(db)

	asOf := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM leave_requests WHERE date < $1")).
		WithArgs(asOf).
		WillReturnResult(sqlmock.NewResult(0, 2))

	deleted, err := repo.DeleteExpired(context.Background(), asOf)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}
