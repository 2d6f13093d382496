package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/faculty-portal-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	cleanup := func() {
		_ = sqlxDB.Close()
		db.Close()
	}
	return sqlxDB, mock, cleanup
}

func teacherRows() *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{"id", "username", "first_name", "last_name", "email", "department", "teacher_code", "is_admin", "password_hash", "created_at", "updated_at"}).
		AddRow("t1", "ana", "Ana", "Shrestha", "ana@college.edu", "CSIT", "123", false, "hash", now, now)
}

func TestTeacherRepositoryListFiltersAdmins(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM teachers WHERE is_admin = FALSE")).
		WillReturnRows(teacherRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	teachers, total, err := repo.List(context.Background(), models.TeacherFilter{})
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, "ana", teachers[0].Username)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryListWithSearch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("LOWER(username) LIKE $1")).
		WithArgs("%shre%").
		WillReturnRows(teacherRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs("%shre%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	teachers, _, err := repo.List(context.Background(), models.TeacherFilter{Search: "Shre"})
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryFindByUsernameMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE LOWER(username) = LOWER($1)")).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestTeacherRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO teachers")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	teacher := &models.Teacher{Username: "ana", Email: "ana@college.edu", Department: "CSIT", TeacherCode: "123"}
	require.NoError(t, repo.Create(context.Background(), teacher))
	assert.NotEmpty(t, teacher.ID)
	assert.False(t, teacher.CreatedAt.IsZero())
}

func TestTeacherRepositoryCreateSurfacesConstraint(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO teachers")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: ConstraintTeacherCode})

	err := repo.Create(context.Background(), &models.Teacher{Username: "ana"})
	require.Error(t, err)
	// violation comes back raw so the service can retry on code collisions
	assert.True(t, IsUniqueViolation(err, ConstraintTeacherCode))
	assert.False(t, IsUniqueViolation(err, ConstraintTeacherEmail))
}

func TestTeacherRepositoryExistsByCode(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM teachers WHERE teacher_code = $1")).
		WithArgs("123").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM teachers WHERE teacher_code = $1")).
		WithArgs("999").
		WillReturnError(sql.ErrNoRows)

	taken, err := repo.ExistsByCode(context.Background(), "123")
	require.NoError(t, err)
	assert.True(t, taken)

	free, err := repo.ExistsByCode(context.Background(), "999")
	require.NoError(t, err)
	assert.False(t, free)
}

func TestTeacherRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM teachers WHERE id = $1")).
		WithArgs("t1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "t1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
