package notification

import (
	"fmt"
	"strings"

	"worklane/internal/events"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Mailer delivers review notifications. Implementations are best-effort;
// callers log failures and move on.
type Mailer interface {
	SendReviewNotification(to, name string, event events.ReviewCompletedEvent) error
}

type resendMailer struct {
	client *resend.Client
	sender string
	logger *zap.Logger
}

func NewResendMailer(apiKey, sender string, logger ...*zap.Logger) Mailer {
	l := zap.L().Named("notification.mailer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.mailer")
	}
	return &resendMailer{
		client: resend.NewClient(apiKey),
		sender: sender,
		logger: l,
	}
}

func (m *resendMailer) SendReviewNotification(to, name string, event events.ReviewCompletedEvent) error {
	subject, html := renderReviewEmail(name, event)

	sent, err := m.client.Emails.Send(&resend.SendEmailRequest{
		From:    m.sender,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return err
	}

	m.logger.Info("review notification sent",
		zap.String("email_id", sent.Id),
		zap.String("event_type", event.EventType),
		zap.String("entity_id", event.EntityID),
	)
	return nil
}

func renderReviewEmail(name string, event events.ReviewCompletedEvent) (subject, html string) {
	entity := strings.ReplaceAll(event.EntityType, "_", " ")
	subject = fmt.Sprintf("Your %s has been %s", entity, event.Decision)

	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p>", name)
	fmt.Fprintf(&b, "<p>Your %s (<code>%s</code>) has been <strong>%s</strong>.</p>", entity, event.EntityID, event.Decision)
	if event.Comments != "" {
		fmt.Fprintf(&b, "<p>Reviewer comments: %s</p>", event.Comments)
	}
	b.WriteString("<p>— Worklane</p>")
	return subject, b.String()
}
