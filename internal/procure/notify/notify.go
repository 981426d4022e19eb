// Package notify delivers account lifecycle email. Delivery is
// best-effort: callers log failures but never fail the triggering
// request on them.
package notify

import (
	"context"
	"time"
)

// Notifier sends the platform's transactional mail.
type Notifier interface {
	// SendVerification mails the signup confirmation link carrying the
	// raw verification token.
	SendVerification(ctx context.Context, to, name, token string) error

	// SendApprovalNotice tells a user an Admin assigned them a role.
	SendApprovalNotice(ctx context.Context, to, name, role string) error

	// SendAdminAlert tells the Admins a new registration awaits approval.
	SendAdminAlert(ctx context.Context, to []string, applicantName, applicantEmail string) error

	// SendInvitation tells a supplier they were invited to bid on a project.
	SendInvitation(ctx context.Context, to, name, projectTitle string, closingTime time.Time) error
}

// Noop discards all mail. Used in tests and when SMTP is not configured.
type Noop struct{}

var _ Notifier = Noop{}

func (Noop) SendVerification(context.Context, string, string, string) error { return nil }

func (Noop) SendApprovalNotice(context.Context, string, string, string) error { return nil }

func (Noop) SendAdminAlert(context.Context, []string, string, string) error { return nil }

func (Noop) SendInvitation(context.Context, string, string, string, time.Time) error { return nil }
