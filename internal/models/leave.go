package models

import "time"

// Leave request statuses. The portal only ever creates pending requests;
// transitions happen through the administrative interface.
const (
	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
	LeaveStatusRejected = "rejected"
)

// LeaveRequest is a dated absence request. Requests are deleted once their
// date has passed.
type LeaveRequest struct {
	ID        string    `db:"id" json:"id"`
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	Date      time.Time `db:"date" json:"date"`
	Reason    string    `db:"reason" json:"reason"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
