package repository

import (
	"errors"

	"github.com/lib/pq"
)

// Unique constraint names enforced by the schema. Services inspect these to
// translate store conflicts into typed errors or retries.
const (
	ConstraintTeacherUsername = "teachers_username_key"
	ConstraintTeacherEmail    = "teachers_email_key"
	ConstraintTeacherCode     = "teachers_teacher_code_key"
	ConstraintCourseTriple    = "department_courses_dept_semester_course_key"
)

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation, optionally narrowed to a named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
