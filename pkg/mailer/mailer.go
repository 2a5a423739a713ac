package mailer

import (
	"context"
	"fmt"
	"time"

	"warranty-portal/pkg/utils"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// Mailer delivers the transactional emails of the registration flow.
// Delivery failures are reported to the caller but are never fatal to the
// surrounding database writes.
type Mailer interface {
	SendOTP(ctx context.Context, toName, toEmail, code string, expiresAt time.Time) error
	SendVendorApprovalRequest(ctx context.Context, vendorName, vendorEmail, storeName string) error
	SendVendorWelcome(ctx context.Context, toName, toEmail string) error
	SendVendorApproved(ctx context.Context, toName, toEmail string) error
}

type sendgridMailer struct {
	client *sendgrid.Client
	cfg    utils.EmailConfig
	log    *zap.Logger
}

func NewSendGridMailer(cfg utils.EmailConfig, log *zap.Logger) Mailer {
	return &sendgridMailer{
		client: sendgrid.NewSendClient(cfg.SendGridAPIKey),
		cfg:    cfg,
		log:    log.With(zap.String("component", "mailer")),
	}
}

func (m *sendgridMailer) send(ctx context.Context, toName, toEmail, subject, plain, html string) error {
	from := mail.NewEmail(m.cfg.FromName, m.cfg.FromAddress)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plain, html)

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		m.log.Error("Failed to send email",
			zap.Error(err),
			zap.String("to", toEmail),
			zap.String("subject", subject))
		return fmt.Errorf("send email to %s: %w", toEmail, err)
	}
	if resp.StatusCode >= 400 {
		m.log.Error("Email rejected by provider",
			zap.Int("status", resp.StatusCode),
			zap.String("to", toEmail),
			zap.String("subject", subject))
		return fmt.Errorf("send email to %s: provider status %d", toEmail, resp.StatusCode)
	}

	return nil
}

func (m *sendgridMailer) SendOTP(ctx context.Context, toName, toEmail, code string, expiresAt time.Time) error {
	subject := "Your verification code"
	plain := fmt.Sprintf("Hi %s,\n\nYour one-time verification code is %s. It expires at %s.\n\nIf you did not request this, ignore this email.",
		toName, code, expiresAt.Format("15:04 MST"))
	html := fmt.Sprintf("<p>Hi %s,</p><p>Your one-time verification code is <strong>%s</strong>. It expires at %s.</p><p>If you did not request this, ignore this email.</p>",
		toName, code, expiresAt.Format("15:04 MST"))

	return m.send(ctx, toName, toEmail, subject, plain, html)
}

func (m *sendgridMailer) SendVendorApprovalRequest(ctx context.Context, vendorName, vendorEmail, storeName string) error {
	subject := "New vendor awaiting verification"
	plain := fmt.Sprintf("Vendor %s (%s) registered store %q and is waiting for verification.",
		vendorName, vendorEmail, storeName)
	html := fmt.Sprintf("<p>Vendor <strong>%s</strong> (%s) registered store <strong>%s</strong> and is waiting for verification.</p>",
		vendorName, vendorEmail, storeName)

	return m.send(ctx, "Admin", m.cfg.AdminAddress, subject, plain, html)
}

func (m *sendgridMailer) SendVendorWelcome(ctx context.Context, toName, toEmail string) error {
	subject := "Registration received"
	plain := fmt.Sprintf("Hi %s,\n\nYour vendor registration was received. You will be able to log in once an administrator verifies your account.", toName)
	html := fmt.Sprintf("<p>Hi %s,</p><p>Your vendor registration was received. You will be able to log in once an administrator verifies your account.</p>", toName)

	return m.send(ctx, toName, toEmail, subject, plain, html)
}

func (m *sendgridMailer) SendVendorApproved(ctx context.Context, toName, toEmail string) error {
	subject := "Your vendor account is verified"
	plain := fmt.Sprintf("Hi %s,\n\nYour vendor account has been verified. You can now log in.", toName)
	html := fmt.Sprintf("<p>Hi %s,</p><p>Your vendor account has been verified. You can now log in.</p>", toName)

	return m.send(ctx, toName, toEmail, subject, plain, html)
}
