package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/slabworks/cardstand/internal/domain"
)

// Config holds the SMTP settings for outgoing mail.
type Config struct {
	Host          string
	Port          int
	Username      string
	Password      string
	FromAddress   string
	OperatorEmail string
	Currency      string
}

type emailNotifier struct {
	cfg Config
}

// NewEmailNotifier builds an SMTP-backed Notifier. A fresh client is
// dialed per message; order volume is far below the point where a held
// connection would matter.
func NewEmailNotifier(cfg Config) Notifier {
	return &emailNotifier{cfg: cfg}
}

func (n *emailNotifier) SendBuyerConfirmation(ctx context.Context, order *domain.Order, cards []domain.Card) error {
	if order.BuyerEmail == "" {
		return fmt.Errorf("order %s has no buyer email", order.ID)
	}
	subject := "Order confirmed: " + order.ConfirmationCode
	text := buyerConfirmationBody(order, cards, n.cfg.Currency)
	html := buyerConfirmationHTML(order, cards, n.cfg.Currency)
	return n.send(ctx, order.BuyerEmail, subject, text, html)
}

func (n *emailNotifier) SendOperatorNotification(ctx context.Context, order *domain.Order, cards []domain.Card) error {
	subject := "New sale: " + order.ConfirmationCode
	text := operatorNotificationBody(order, cards, n.cfg.Currency)
	html := operatorNotificationHTML(order, cards, n.cfg.Currency)
	return n.send(ctx, n.cfg.OperatorEmail, subject, text, html)
}

func (n *emailNotifier) send(ctx context.Context, to, subject, textBody, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(n.cfg.FromAddress); err != nil {
		return fmt.Errorf("failed to set from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, textBody)
	msg.AddAlternativeString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(n.cfg.Host,
		mail.WithPort(n.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.cfg.Username),
		mail.WithPassword(n.cfg.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}
