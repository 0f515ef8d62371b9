// Package email sends workflow notifications over SMTP.
package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/opsdesk/opsdesk/internal/shared/config"
)

// SMTPNotifier delivers ticket notifications. It satisfies the use case
// Notifier interface; NoopNotifier stands in when email is disabled.
type SMTPNotifier struct {
	cfg    config.EmailConfig
	dialer *gomail.Dialer
}

func NewSMTPNotifier(cfg config.EmailConfig) *SMTPNotifier {
	return &SMTPNotifier{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
	}
}

func (n *SMTPNotifier) NotifyTicketAssigned(to, ticketNumber, title string) error {
	subject := fmt.Sprintf("[%s] Ticket assigned to you", ticketNumber)
	body := fmt.Sprintf(`
		<html>
		<body>
			<p>Ticket <strong>%s</strong> has been assigned to you:</p>
			<p>%s</p>
		</body>
		</html>
	`, ticketNumber, title)

	return n.send(to, subject, body)
}

func (n *SMTPNotifier) NotifyDecisionRecorded(to, ticketNumber, decision, note string) error {
	subject := fmt.Sprintf("[%s] Decision recorded: %s", ticketNumber, decision)
	body := fmt.Sprintf(`
		<html>
		<body>
			<p>A decision was recorded on ticket <strong>%s</strong>.</p>
			<p>Decision: <strong>%s</strong></p>
			<p>%s</p>
		</body>
		</html>
	`, ticketNumber, decision, note)

	return n.send(to, subject, body)
}

func (n *SMTPNotifier) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", n.cfg.FromAddress, n.cfg.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	return nil
}
