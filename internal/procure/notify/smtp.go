package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

// SMTPConfig carries the mail relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string

	// BaseURL is the public address of the platform, used to build the
	// verification link, e.g. "https://procure.example.com".
	BaseURL string
}

// SMTP sends mail through a standard SMTP relay.
type SMTP struct {
	cfg SMTPConfig
}

var _ Notifier = (*SMTP)(nil)

func NewSMTP(cfg SMTPConfig) *SMTP {
	return &SMTP{cfg: cfg}
}

func (s *SMTP) SendVerification(ctx context.Context, to, name, token string) error {
	link := fmt.Sprintf("%s/v1/auth/verify?token=%s", strings.TrimRight(s.cfg.BaseURL, "/"), token)
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\n"+
			"Please confirm your email address by visiting:\r\n\r\n"+
			"  %s\r\n\r\n"+
			"The link expires in 24 hours. After confirming, an administrator\r\n"+
			"will review your registration before you can sign in.\r\n",
		name, link)
	return s.send(ctx, []string{to}, "Confirm your email address", body)
}

func (s *SMTP) SendApprovalNotice(ctx context.Context, to, name, role string) error {
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\n"+
			"Your account has been approved with the role %s.\r\n"+
			"You can now sign in.\r\n",
		name, role)
	return s.send(ctx, []string{to}, "Your account has been approved", body)
}

func (s *SMTP) SendAdminAlert(ctx context.Context, to []string, applicantName, applicantEmail string) error {
	if len(to) == 0 {
		return nil
	}
	body := fmt.Sprintf(
		"A new registration is awaiting approval:\r\n\r\n"+
			"  Name:  %s\r\n"+
			"  Email: %s\r\n",
		applicantName, applicantEmail)
	return s.send(ctx, to, "New registration pending approval", body)
}

func (s *SMTP) SendInvitation(ctx context.Context, to, name, projectTitle string, closingTime time.Time) error {
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\n"+
			"You have been invited to bid on the project:\r\n\r\n"+
			"  %s\r\n\r\n"+
			"Bidding closes at %s. Sign in to submit your bid.\r\n",
		name, projectTitle, closingTime.UTC().Format(time.RFC1123))
	return s.send(ctx, []string{to}, "Invitation to bid: "+projectTitle, body)
}

func (s *SMTP) send(ctx context.Context, to []string, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		s.cfg.From, strings.Join(to, ", "), subject, body)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	if err := smtp.SendMail(addr, auth, s.cfg.From, to, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", strings.Join(to, ", "), err)
	}
	return nil
}
