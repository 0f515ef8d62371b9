// Package audit wires domain events into the persistent audit trail.
package audit

import (
	"context"
	"encoding/json"

	"github.com/opsdesk/opsdesk/internal/domain/audit"
	"github.com/opsdesk/opsdesk/internal/domain/shared/events"
	"github.com/opsdesk/opsdesk/internal/domain/ticket"
	"github.com/opsdesk/opsdesk/internal/shared/logger"
)

// recordedEventTypes is the set of events that land in the audit trail.
var recordedEventTypes = map[string]bool{
	ticket.EventTicketCreated:       true,
	ticket.EventTicketUpdated:       true,
	ticket.EventTicketAssigned:      true,
	ticket.EventTicketStatusChanged: true,
	ticket.EventApprovalRecorded:    true,
	ticket.EventCommentAdded:        true,
	ticket.EventAttachmentUploaded:  true,
}

// Recorder subscribes to the dispatcher and persists every workflow event
// as an audit entry with the full event payload as JSON.
type Recorder struct {
	repo   audit.LogRepository
	logger logger.Interface
}

func NewRecorder(repo audit.LogRepository, logger logger.Interface) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

// Register subscribes the recorder to every recorded event type.
func (r *Recorder) Register(dispatcher events.EventDispatcher) error {
	for eventType := range recordedEventTypes {
		if err := dispatcher.Subscribe(eventType, r); err != nil {
			return err
		}
	}
	return nil
}

func (r *Recorder) CanHandle(eventType string) bool {
	return recordedEventTypes[eventType]
}

func (r *Recorder) Handle(event events.DomainEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		r.logger.Warnw("failed to marshal event payload", "event_type", event.GetEventType(), "error", err)
		payload = nil
	}

	entry, err := audit.NewLogEntry(event.GetAggregateID(), event.GetEventType(), payload, event.GetOccurredAt())
	if err != nil {
		return err
	}

	if err := r.repo.Save(context.Background(), entry); err != nil {
		r.logger.Errorw("failed to persist audit entry", "event_type", event.GetEventType(), "error", err)
		return err
	}

	return nil
}
