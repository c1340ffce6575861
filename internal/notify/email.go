package notify

import (
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"

	"github.com/repowatch/repowatch/internal/config"
)

// TokenEnv names the environment variable holding the SMTP account password.
const TokenEnv = "REPOWATCH_EMAIL_TOKEN"

// EmailNotifier delivers the report over SMTP. Delivery is best-effort:
// when the token is absent the send is skipped with a log line instead of
// failing the run.
type EmailNotifier struct {
	cfg config.EmailConfig
}

// NewEmailNotifier creates an email notifier for the given settings.
func NewEmailNotifier(cfg config.EmailConfig) *EmailNotifier {
	return &EmailNotifier{cfg: cfg}
}

// SelectRecipients returns the addresses a report goes to. With
// only_maintainers set, only the maintainer list receives mail; otherwise
// the default address does.
func SelectRecipients(cfg config.EmailConfig) []string {
	if cfg.OnlyMaintainers {
		return cfg.Maintainers
	}
	if cfg.DefaultTo == "" {
		return nil
	}
	return []string{cfg.DefaultTo}
}

// Message renders the RFC 2822 message for the report.
func Message(from string, to []string, r Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", r.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(r.Body)
	return b.String()
}

// Send delivers the report to the configured recipients.
func (e *EmailNotifier) Send(r Report) error {
	token, ok := os.LookupEnv(TokenEnv)
	if !ok {
		log.Printf("missing %s, skipping email", TokenEnv)
		return nil
	}

	recipients := SelectRecipients(e.cfg)
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients configured")
	}

	addr := fmt.Sprintf("%s:%d", e.cfg.Server, e.cfg.Port)
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("smtp dial %s: %w", addr, err)
	}
	defer client.Quit()

	if e.cfg.StartTLS {
		if err := client.StartTLS(&tls.Config{ServerName: e.cfg.Server}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}

	auth := smtp.PlainAuth("", e.cfg.User, token, e.cfg.Server)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := client.Mail(e.cfg.User); err != nil {
		return fmt.Errorf("smtp mail: %w", err)
	}
	for _, rcpt := range recipients {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp rcpt %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write([]byte(Message(e.cfg.User, recipients, r))); err != nil {
		return fmt.Errorf("writing message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing message: %w", err)
	}

	log.Printf("sent report to %s", strings.Join(recipients, ", "))
	return nil
}
