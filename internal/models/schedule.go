package models

import "time"

// ScheduleEntry is one weekly class slot. Teacher and department references
// are optional; entries without a teacher still appear on the public
// schedule but are dropped from department rosters.
type ScheduleEntry struct {
	ID           string     `db:"id" json:"id"`
	CourseName   string     `db:"course_name" json:"course_name"`
	TeacherID    *string    `db:"teacher_id" json:"teacher_id,omitempty"`
	DepartmentID *string    `db:"department_id" json:"department_id,omitempty"`
	Day          string     `db:"day" json:"day"`
	Date         *time.Time `db:"date" json:"date,omitempty"`
	StartTime    string     `db:"start_time" json:"start_time"`
	EndTime      string     `db:"end_time" json:"end_time"`
	Room         string     `db:"room" json:"room"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// ScheduleRow is a schedule entry joined with its teacher and department for
// presentation. Join columns are null when the entry has no teacher.
type ScheduleRow struct {
	ScheduleEntry
	TeacherUsername  *string `db:"teacher_username" json:"teacher_username,omitempty"`
	TeacherFirstName *string `db:"teacher_first_name" json:"teacher_first_name,omitempty"`
	TeacherLastName  *string `db:"teacher_last_name" json:"teacher_last_name,omitempty"`
	DepartmentCode   *string `db:"department_code" json:"department_code,omitempty"`
}

// ScheduleView is the weekly schedule plus the on-leave overlay: IDs of
// teachers with approved leave dated exactly on the as-of date.
type ScheduleView struct {
	Entries      []ScheduleRow `json:"entries"`
	OnLeaveToday []string      `json:"on_leave_today"`
}

// RosterCourse is one course occurrence inside a roster group. Semester is
// nil when the course name has no DepartmentCourse row.
type RosterCourse struct {
	Name     string `json:"name"`
	Semester *int   `json:"semester"`
}

// RosterGroup collects one teacher's courses for the department roster.
type RosterGroup struct {
	Teacher RosterTeacher  `json:"teacher"`
	Courses []RosterCourse `json:"courses"`
}

// RosterTeacher is the teacher summary embedded in a roster group.
type RosterTeacher struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
