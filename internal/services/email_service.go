package services

import (
	"fmt"
	"log"

	"booktrack/internal/config"
	"booktrack/internal/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"gopkg.in/gomail.v2"
)

// Mailer delivers one plaintext message to one recipient.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers through a plain SMTP relay.
type SMTPMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	dialer.SSL = cfg.SMTPSecure

	return &SMTPMailer{
		dialer:   dialer,
		from:     cfg.MailFrom,
		fromName: cfg.MailFromName,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}

// SendGridMailer delivers through the SendGrid API.
type SendGridMailer struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

func NewSendGridMailer(cfg *config.Config) *SendGridMailer {
	return &SendGridMailer{
		client:   sendgrid.NewSendClient(cfg.SendGridAPIKey),
		from:     cfg.MailFrom,
		fromName: cfg.MailFromName,
	}
}

func (m *SendGridMailer) Send(to, subject, body string) error {
	from := mail.NewEmail(m.fromName, m.from)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), body, "")

	response, err := m.client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email to %s: %d", to, response.StatusCode)
	}
	return nil
}

// NewMailer picks the provider configured by MAIL_PROVIDER. One mailer
// is constructed at startup and reused for all sends.
func NewMailer(cfg *config.Config) Mailer {
	if cfg.MailProvider == "sendgrid" {
		return NewSendGridMailer(cfg)
	}
	return NewSMTPMailer(cfg)
}

// EmailService formats and sends reminder notifications.
type EmailService struct {
	mailer Mailer
}

func NewEmailService(mailer Mailer) *EmailService {
	return &EmailService{mailer: mailer}
}

// SendReminder emails the record's bookkeeper about the still-open task.
// A record with no resolvable address is a silent no-op, not a failure.
func (s *EmailService) SendReminder(rec models.ReminderRecord) error {
	to := rec.RecipientEmail()
	if to == "" {
		log.Printf("No email address for %s, skipping reminder", rec.CompanyLabel())
		return nil
	}

	subject := fmt.Sprintf("Reminder: bookkeeping task still open for %s", rec.CompanyLabel())

	body := fmt.Sprintf("Hello %s,\n\nThe bookkeeping task for %s is still open.\n\nStatus: %s\nPeriod: %s\n\nPlease complete the task or mark it as done in the tracker.",
		orDash(rec.Bookkeeper), rec.CompanyLabel(), orDash(rec.Status), orDash(rec.Period))

	return s.mailer.Send(to, subject, body)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
