package conversion

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/nepaltrails/trip-planner/config"
)

var (
	_ Mailer = (*SMTPMailer)(nil)
	_ Mailer = (*ConsoleMailer)(nil)
)

// Mailer delivers a single HTML email.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, htmlBody string) error
}

// NewMailer picks the delivery backend from config. The console backend is
// the development default and logs the message instead of sending it.
func NewMailer(cfg config.Config, logger *slog.Logger) Mailer {
	if cfg.Mail.Backend == "smtp" {
		return &SMTPMailer{
			addr: fmt.Sprintf("%s:%d", cfg.Mail.Host, cfg.Mail.Port),
			auth: smtp.PlainAuth("", cfg.Mail.Username, cfg.Mail.Password, cfg.Mail.Host),
			from: cfg.Mail.From,
		}
	}
	return &ConsoleMailer{logger: logger, from: cfg.Mail.From}
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

func (m *SMTPMailer) Send(_ context.Context, to []string, subject, htmlBody string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)

	if err := smtp.SendMail(m.addr, m.auth, m.from, to, []byte(b.String())); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

// ConsoleMailer logs the message instead of delivering it.
type ConsoleMailer struct {
	logger *slog.Logger
	from   string
}

func (m *ConsoleMailer) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	m.logger.InfoContext(ctx, "Email (console backend)",
		slog.String("from", m.from),
		slog.String("to", strings.Join(to, ", ")),
		slog.String("subject", subject),
		slog.Int("bodyBytes", len(htmlBody)),
	)
	return nil
}
