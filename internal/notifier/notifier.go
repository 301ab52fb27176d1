package notifier

import (
	"fmt"
	"log"

	"github.com/go-gomail/gomail"
)

// Notifier delivers a single message to a recipient address. Implementations
// must treat delivery as best-effort; callers never fail on a returned error.
type Notifier interface {
	Notify(to, subject, body string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type SMTPNotifier struct {
	cfg SMTPConfig
}

func NewSMTP(cfg SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg}
}

func (n *SMTPNotifier) Notify(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.User, n.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}

// ConsoleNotifier logs instead of sending. Used when SMTP is not configured.
type ConsoleNotifier struct{}

func NewConsole() *ConsoleNotifier {
	return &ConsoleNotifier{}
}

func (c *ConsoleNotifier) Notify(to, subject, body string) error {
	log.Printf("[notify] to=%s subject=%q\n%s", to, subject, body)
	return nil
}
