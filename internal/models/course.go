package models

// DepartmentCourse assigns a course name to a department semester, optionally
// bound to a teacher. (department, semester, course name) is unique.
type DepartmentCourse struct {
	ID           string  `db:"id" json:"id"`
	DepartmentID string  `db:"department_id" json:"department_id"`
	Semester     int     `db:"semester" json:"semester"`
	CourseName   string  `db:"course_name" json:"course_name"`
	TeacherID    *string `db:"teacher_id" json:"teacher_id,omitempty"`
}
