package mail

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mailgun/mailgun-go/v5"
	"golang.org/x/time/rate"

	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/config"
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/domain"
	applog "github.com/MattStellino/JnRGamesWebsite-sub000/internal/log"
)

const sendTimeout = 10 * time.Second

// Notifier forwards quote requests to the store inbox through Mailgun.
// Without Mailgun settings it only logs.
type Notifier struct {
	client    mailgun.Mailgun
	domain    string
	sender    string
	recipient string
	enabled   bool
	limiter   *rate.Limiter
}

// NewNotifier accepts a burst of five requests, then one every two minutes.
func NewNotifier(cfg config.Config) *Notifier {
	n := &Notifier{
		domain:    cfg.MailgunDomain,
		sender:    cfg.MailgunSender,
		recipient: cfg.QuoteRecipient,
		enabled:   cfg.MailEnabled(),
		limiter:   rate.NewLimiter(rate.Every(2*time.Minute), 5),
	}
	if n.enabled {
		n.client = mailgun.NewMailgun(cfg.MailgunAPIKey)
	}
	return n
}

func (n *Notifier) IsEnabled() bool { return n.enabled }

func (n *Notifier) Allow() bool { return n.limiter.Allow() }

func (n *Notifier) QuoteRequested(ctx context.Context, q domain.Quote, lines []domain.QuoteItem) error {
	subject, body := QuoteMessage(q, lines)
	if !n.enabled {
		applog.Info(nil, "mail.quote.skipped", map[string]any{"quote_id": q.ID, "reason": "mail disabled"})
		return nil
	}

	msg := mailgun.NewMessage(n.domain, n.sender, subject, body, n.recipient)
	msg.AddHeader("Reply-To", q.Email)

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if _, err := n.client.Send(ctx, msg); err != nil {
		return fmt.Errorf("send quote %s: %w", q.ID, err)
	}
	applog.Info(nil, "mail.quote.sent", map[string]any{"quote_id": q.ID, "to": n.recipient})
	return nil
}

// QuoteMessage renders the plain text notification for a quote.
func QuoteMessage(q domain.Quote, lines []domain.QuoteItem) (string, string) {
	subject := fmt.Sprintf("Quote request from %s", q.Name)

	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\n", q.Name, q.Email)
	if q.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", q.Phone)
	}
	if q.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", q.Message)
	}
	if len(lines) > 0 {
		b.WriteString("\nItems:\n")
		for _, l := range lines {
			fmt.Fprintf(&b, "- %s (%s) x%d @ $%.2f\n", l.Name, l.Condition, l.Qty, l.Price)
		}
		fmt.Fprintf(&b, "\nEstimated total: $%.2f\n", q.Total)
	}
	fmt.Fprintf(&b, "\nQuote ID: %s\n", q.ID)
	return subject, b.String()
}
