package ticket

import (
	"strconv"
	"time"

	"github.com/opsdesk/opsdesk/internal/domain/shared/events"
	vo "github.com/opsdesk/opsdesk/internal/domain/ticket/valueobjects"
)

const (
	EventTicketCreated       = "ticket.created"
	EventTicketUpdated       = "ticket.updated"
	EventTicketAssigned      = "ticket.assigned"
	EventTicketStatusChanged = "ticket.status_changed"
	EventApprovalRecorded    = "ticket.approval_recorded"
	EventCommentAdded        = "ticket.comment_added"
	EventAttachmentUploaded  = "ticket.attachment_uploaded"
)

type TicketCreatedEvent struct {
	events.BaseEvent
	TicketID  uint   `json:"ticket_id"`
	Number    string `json:"number"`
	CreatorID uint   `json:"creator_id"`
	Priority  string `json:"priority"`
}

func NewTicketCreatedEvent(t *Ticket) *TicketCreatedEvent {
	return &TicketCreatedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: strconv.FormatUint(uint64(t.ID()), 10),
			EventType:   EventTicketCreated,
			OccurredAt:  time.Now(),
		},
		TicketID:  t.ID(),
		Number:    t.Number(),
		CreatorID: t.CreatorID(),
		Priority:  t.Priority().String(),
	}
}

type TicketAssignedEvent struct {
	events.BaseEvent
	TicketID   uint `json:"ticket_id"`
	AssigneeID uint `json:"assignee_id"`
	AssignedBy uint `json:"assigned_by"`
}

func NewTicketAssignedEvent(ticketID, assigneeID, assignedBy uint) *TicketAssignedEvent {
	return &TicketAssignedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: strconv.FormatUint(uint64(ticketID), 10),
			EventType:   EventTicketAssigned,
			OccurredAt:  time.Now(),
		},
		TicketID:   ticketID,
		AssigneeID: assigneeID,
		AssignedBy: assignedBy,
	}
}

type TicketUpdatedEvent struct {
	events.BaseEvent
	TicketID  uint `json:"ticket_id"`
	UpdatedBy uint `json:"updated_by"`
}

func NewTicketUpdatedEvent(ticketID, updatedBy uint) *TicketUpdatedEvent {
	return &TicketUpdatedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: strconv.FormatUint(uint64(ticketID), 10),
			EventType:   EventTicketUpdated,
			OccurredAt:  time.Now(),
		},
		TicketID:  ticketID,
		UpdatedBy: updatedBy,
	}
}

// TicketStatusChangedEvent captures a completed workflow transition,
// including forced admin overrides.
type TicketStatusChangedEvent struct {
	events.BaseEvent
	TicketID  uint   `json:"ticket_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	ChangedBy uint   `json:"changed_by"`
	Forced    bool   `json:"forced"`
}

func NewTicketStatusChangedEvent(ticketID uint, outcome *TransitionOutcome, changedBy uint) *TicketStatusChangedEvent {
	return &TicketStatusChangedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: strconv.FormatUint(uint64(ticketID), 10),
			EventType:   EventTicketStatusChanged,
			OccurredAt:  time.Now(),
		},
		TicketID:  ticketID,
		From:      outcome.From.String(),
		To:        outcome.To.String(),
		ChangedBy: changedBy,
		Forced:    outcome.Forced,
	}
}

type ApprovalRecordedEvent struct {
	events.BaseEvent
	TicketID   uint   `json:"ticket_id"`
	ApproverID uint   `json:"approver_id"`
	Decision   string `json:"decision"`
}

func NewApprovalRecordedEvent(ticketID, approverID uint, decision vo.Decision) *ApprovalRecordedEvent {
	return &ApprovalRecordedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: strconv.FormatUint(uint64(ticketID), 10),
			EventType:   EventApprovalRecorded,
			OccurredAt:  time.Now(),
		},
		TicketID:   ticketID,
		ApproverID: approverID,
		Decision:   decision.String(),
	}
}

type CommentAddedEvent struct {
	events.BaseEvent
	TicketID  uint `json:"ticket_id"`
	CommentID uint `json:"comment_id"`
	AuthorID  uint `json:"author_id"`
}

func NewCommentAddedEvent(ticketID, commentID, authorID uint) *CommentAddedEvent {
	return &CommentAddedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: strconv.FormatUint(uint64(ticketID), 10),
			EventType:   EventCommentAdded,
			OccurredAt:  time.Now(),
		},
		TicketID:  ticketID,
		CommentID: commentID,
		AuthorID:  authorID,
	}
}

type AttachmentUploadedEvent struct {
	events.BaseEvent
	TicketID     uint   `json:"ticket_id"`
	AttachmentID uint   `json:"attachment_id"`
	UploaderID   uint   `json:"uploader_id"`
	FileName     string `json:"file_name"`
}

func NewAttachmentUploadedEvent(ticketID, attachmentID, uploaderID uint, fileName string) *AttachmentUploadedEvent {
	return &AttachmentUploadedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: strconv.FormatUint(uint64(ticketID), 10),
			EventType:   EventAttachmentUploaded,
			OccurredAt:  time.Now(),
		},
		TicketID:     ticketID,
		AttachmentID: attachmentID,
		UploaderID:   uploaderID,
		FileName:     fileName,
	}
}
