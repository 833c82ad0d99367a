package email

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"
	"time"

	"hearing-care-backend/config"
)

// Message is a single outgoing HTML email.
type Message struct {
	To       []string
	ReplyTo  string
	Subject  string
	HTMLBody string
}

// Mailer sends email messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
	IsConfigured() bool
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService handles sending emails via SMTP
type EmailService struct {
	host     string
	port     string
	username string
	password string
	fromName string
	sendMail sendMailFunc
}

// NewEmailService creates a new email service with Gmail SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.EmailUser,
		password: cfg.EmailAppPassword,
		fromName: cfg.ClinicName,
		sendMail: smtp.SendMail,
	}
}

// Send delivers msg through the configured SMTP relay. Gmail requires the
// authenticated account as the envelope sender.
func (s *EmailService) Send(ctx context.Context, msg Message) error {
	if !s.IsConfigured() {
		return fmt.Errorf("smtp credentials missing")
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	raw := s.buildMIME(msg, time.Now())

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := s.sendMail(addr, auth, s.username, msg.To, raw); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}

func (s *EmailService) buildMIME(msg Message, now time.Time) []byte {
	from := s.username
	if s.fromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", s.fromName), s.username)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	if msg.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", msg.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", now.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTMLBody)

	return []byte(b.String())
}
