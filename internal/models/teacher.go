package models

import "time"

// Teacher is a staff account: login identity plus profile and department
// metadata. Administrative accounts carry IsAdmin and are excluded from
// rosters, schedules, and meeting fan-out.
type Teacher struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Email        string    `db:"email" json:"email"`
	Department   string    `db:"department" json:"department"`
	TeacherCode  string    `db:"teacher_code" json:"teacher_code"`
	IsAdmin      bool      `db:"is_admin" json:"-"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// FullName returns "First Last", falling back to the username.
func (t Teacher) FullName() string {
	name := t.FirstName
	if t.LastName != "" {
		if name != "" {
			name += " "
		}
		name += t.LastName
	}
	if name == "" {
		return t.Username
	}
	return name
}

// TeacherFilter narrows teacher directory listings.
type TeacherFilter struct {
	Search   string
	Page     int
	PageSize int
}
