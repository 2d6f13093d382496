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

func TestMeetingRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMeetingRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO meetings")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	meeting := &models.Meeting{
		CreatedBy: "t1",
		Date:      time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC),
		Time:      "14:00",
		Venue:     "Seminar Hall",
	}
	require.NoError(t, repo.Create(context.Background(), meeting))
	assert.NotEmpty(t, meeting.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMeetingRepositoryListUpcomingByDepartment(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMeetingRepository(db)

	asOf := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "created_by", "date", "time", "venue", "created_at"}).
		AddRow("m1", "t1", asOf, "10:00", "Room 4", time.Now().UTC()).
		AddRow("m2", "t2", asOf.AddDate(0, 0, 1), "09:00", "Hall", time.Now().UTC())

	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.department = $1 AND m.date >= $2")).
		WithArgs("CSIT", asOf).
		WillReturnRows(rows)

	meetings, err := repo.ListUpcomingByDepartment(context.Background(), "CSIT", asOf)
	require.NoError(t, err)
	require.Len(t, meetings, 2)
	assert.Equal(t, "m1", meetings[0].ID)
}

func TestMeetingRepositoryDeleteExpired(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMeetingRepository(db)

	asOf := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM meetings WHERE date < $1")).
		WithArgs(asOf).
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeleteExpired(context.Background(), asOf)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}

func TestMeetingRepositoryDeleteExpiredNothingLeft(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMeetingRepository(db)

	asOf := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM meetings WHERE date < $1")).
		WithArgs(asOf).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteExpired(context.Background(), asOf)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
