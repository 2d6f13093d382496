// Package mailer delivers meeting notices to department staff. One call
// carries the whole recipient batch; callers treat failures as non-fatal.
package mailer

import "context"

// Mailer sends a plain-text message to a batch of recipients.
type Mailer interface {
	Send(ctx context.Context, subject, body string, recipients []string) error
}

// Options configures mailer construction.
type Options struct {
	Provider      string
	SendgridKey   string
	FromName      string
	FromAddress   string
	SubjectPrefix string
}
