package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendgridMailer delivers mail through the SendGrid v3 API.
type SendgridMailer struct {
	client        *sendgrid.Client
	from          *sgmail.Email
	subjectPrefix string
}

// NewSendgrid constructs a SendGrid-backed mailer.
func NewSendgrid(opts Options) *SendgridMailer {
	return &SendgridMailer{
		client:        sendgrid.NewSendClient(opts.SendgridKey),
		from:          sgmail.NewEmail(opts.FromName, opts.FromAddress),
		subjectPrefix: opts.SubjectPrefix,
	}
}

// Send delivers one message addressed to every recipient at once.
func (m *SendgridMailer) Send(ctx context.Context, subject, body string, recipients []string) error {
	if len(recipients) == 0 {
		return nil
	}

	p := sgmail.NewPersonalization()
	p.Subject = m.subjectPrefix + subject
	for _, addr := range recipients {
		p.AddTos(sgmail.NewEmail("", addr))
	}

	msg := sgmail.NewV3Mail()
	msg.SetFrom(m.from)
	msg.AddPersonalizations(p)
	msg.AddContent(sgmail.NewContent("text/plain", body))

	resp, err := m.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
