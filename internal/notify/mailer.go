package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/wneessen/go-mail"

	"github.com/ariefcatur/go-restaurant-orders.git/internal/orders"
)

// Mailer delivers the customer-facing side of a status change. Delivery is
// best-effort; the event on the bus is the contract.
type Mailer interface {
	SendStatusUpdate(ctx context.Context, to, transactionID string, newStatus orders.Status) error
}

type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (m *SMTPMailer) SendStatusUpdate(ctx context.Context, to, transactionID string, newStatus orders.Status) error {
	msg := mail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Update on your recent order")
	msg.SetBodyString(mail.TypeTextPlain, statusUpdateBody(transactionID, newStatus))

	client, err := mail.NewClient(m.Host,
		mail.WithPort(m.Port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.Username),
		mail.WithPassword(m.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}

// LogMailer is the fallback channel when no SMTP host is configured.
type LogMailer struct{}

func (LogMailer) SendStatusUpdate(_ context.Context, to, transactionID string, newStatus orders.Status) error {
	log.Printf("notify %s: %s", to, statusUpdateBody(transactionID, newStatus))
	return nil
}

func statusUpdateBody(transactionID string, newStatus orders.Status) string {
	return fmt.Sprintf("Your order (ID: %s) has been %s by the restaurant.",
		shortID(transactionID), statusVerb(newStatus))
}

func shortID(transactionID string) string {
	if len(transactionID) > 8 {
		return transactionID[:8] + "..."
	}
	return transactionID
}

func statusVerb(s orders.Status) string {
	switch s {
	case orders.StatusAccepted:
		return "accepted"
	case orders.StatusRemoved:
		return "removed"
	}
	return string(s)
}
