package models

import "time"

// Meeting is a department announcement created by a teacher. Meetings belong
// to the creator's department through the creator reference and are deleted
// once their date has passed.
type Meeting struct {
	ID        string    `db:"id" json:"id"`
	CreatedBy string    `db:"created_by" json:"created_by"`
	Date      time.Time `db:"date" json:"date"`
	Time      string    `db:"time" json:"time"`
	Venue     string    `db:"venue" json:"venue"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
