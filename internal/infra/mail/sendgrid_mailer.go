// Package mail implements the outbound email capability on top of SendGrid.
package mail

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"taskman/config"
	"taskman/internal/domain/service"
)

// sendgridMailer is a concrete implementation of the Mailer interface.
type sendgridMailer struct {
	client      *sendgrid.Client
	fromName    string
	fromAddress string
	logger      *slog.Logger
}

// NewSendgridMailer is the constructor for sendgridMailer.
func NewSendgridMailer(cfg *config.Config, logger *slog.Logger) service.Mailer {
	return &sendgridMailer{
		client:      sendgrid.NewSendClient(cfg.Mail.APIKey),
		fromName:    cfg.Mail.FromName,
		fromAddress: cfg.Mail.FromAddress,
		logger:      logger,
	}
}

// Send delivers a single plain-text email. There is no retry or queuing;
// callers decide whether a failure matters.
func (m *sendgridMailer) Send(ctx context.Context, to, subject, body string) error {
	message := sgmail.NewSingleEmail(
		sgmail.NewEmail(m.fromName, m.fromAddress),
		subject,
		sgmail.NewEmail("", to),
		body,
		"",
	)

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return errors.Wrap(err, "failed to send email")
	}
	if resp.StatusCode >= 400 {
		return errors.Errorf("email provider returned status %d", resp.StatusCode)
	}

	m.logger.Debug("Email sent", slog.String("to", to), slog.String("subject", subject))

	return nil
}

// WelcomeSubject and the body builders keep the transactional copy in one place.
const (
	WelcomeSubject  = "Welcome to the Task App"
	FarewellSubject = "Thank you for visiting!"
)

// WelcomeBody builds the registration email body.
func WelcomeBody(name string) string {
	return "Hello " + name + ", it's a pleasure to have you on the Task App!"
}

// FarewellBody builds the account-deletion email body.
func FarewellBody(name string) string {
	return "Hello " + name + ", thanks for trying the Task App. We are sorry to see you go."
}
