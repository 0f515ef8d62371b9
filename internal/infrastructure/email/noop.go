package email

import (
	"github.com/opsdesk/opsdesk/internal/shared/logger"
)

// NoopNotifier satisfies the notifier contract when email delivery is
// disabled. Notifications are logged at debug level and dropped.
type NoopNotifier struct {
	logger logger.Interface
}

func NewNoopNotifier() *NoopNotifier {
	return &NoopNotifier{logger: logger.NewLogger().With("component", "email.noop")}
}

func (n *NoopNotifier) NotifyTicketAssigned(to, ticketNumber, title string) error {
	n.logger.Debugw("email disabled, dropping assignment notification", "to", to, "ticket", ticketNumber)
	return nil
}

func (n *NoopNotifier) NotifyDecisionRecorded(to, ticketNumber, decision, note string) error {
	n.logger.Debugw("email disabled, dropping decision notification", "to", to, "ticket", ticketNumber, "decision", decision)
	return nil
}
