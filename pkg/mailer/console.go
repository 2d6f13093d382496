package mailer

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// ConsoleMailer logs outbound messages instead of delivering them. Used in
// development and as the default when no provider is configured. Sent
// messages are retained so tests can assert on them.
type ConsoleMailer struct {
	logger        *zap.Logger
	subjectPrefix string

	mu   sync.Mutex
	sent []ConsoleMessage
}

// ConsoleMessage records one logged send.
type ConsoleMessage struct {
	Subject    string
	Body       string
	Recipients []string
}

// NewConsole constructs a console mailer.
func NewConsole(opts Options, logger *zap.Logger) *ConsoleMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleMailer{logger: logger, subjectPrefix: opts.SubjectPrefix}
}

// Send logs the message and records it.
func (m *ConsoleMailer) Send(ctx context.Context, subject, body string, recipients []string) error {
	if len(recipients) == 0 {
		return nil
	}

	m.logger.Info("outbound_mail",
		zap.String("subject", m.subjectPrefix+subject),
		zap.Strings("recipients", recipients),
		zap.Int("body_bytes", len(body)),
	)

	m.mu.Lock()
	m.sent = append(m.sent, ConsoleMessage{Subject: m.subjectPrefix + subject, Body: body, Recipients: recipients})
	m.mu.Unlock()
	return nil
}

// Sent returns a copy of the messages recorded so far.
func (m *ConsoleMailer) Sent() []ConsoleMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ConsoleMessage, len(m.sent))
	copy(out, m.sent)
	return out
}

// New builds a mailer from options, defaulting to the console backend.
func New(opts Options, logger *zap.Logger) Mailer {
	switch opts.Provider {
	case "sendgrid":
		return NewSendgrid(opts)
	default:
		return NewConsole(opts, logger)
	}
}
