package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mailersend/mailersend-go"

	"github.com/you/authsvc/domain"
)

// MailerSendServiceImpl implements domain.Notifier using MailerSend
type MailerSendServiceImpl struct {
	client *mailersend.Mailersend
	from   mailersend.From
}

// NewMailerSendService creates a new MailerSend notifier. If no API key is
// configured the service logs codes instead of sending, which keeps local
// development working without credentials.
func NewMailerSendService(apiKey, fromName, fromEmail string) domain.Notifier {
	svc := &MailerSendServiceImpl{
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}
	if apiKey != "" && fromEmail != "" {
		svc.client = mailersend.NewMailersend(apiKey)
	}
	return svc
}

// SendLoginCode implements domain.Notifier
func (m *MailerSendServiceImpl) SendLoginCode(ctx context.Context, email, code string) error {
	if m.client == nil {
		log.Printf("[MOCK EMAIL] To: %s, Login code: %s", email, code)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	subject := "Your login code"
	text := fmt.Sprintf("Your login code is: %s\n\nIt expires in 5 minutes.", code)
	html := fmt.Sprintf(`
		<p>Your login code is: <strong style="font-size: 24px;">%s</strong></p>
		<p>It expires in 5 minutes. If you didn't request it, ignore this email.</p>
	`, code)

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Email: email}})
	msg.SetSubject(subject)
	msg.SetText(text)
	msg.SetHTML(html)

	if _, err := m.client.Email.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send login code: %w", err)
	}
	return nil
}
