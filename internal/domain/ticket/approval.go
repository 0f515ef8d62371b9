package ticket

import (
	"fmt"
	"time"

	vo "github.com/opsdesk/opsdesk/internal/domain/ticket/valueobjects"
)

// ApprovalRecord is the immutable audit entry for one approve/reject
// decision on a ticket. Records are append-only; there are no mutators
// beyond SetID after insert.
type ApprovalRecord struct {
	id         uint
	ticketID   uint
	approverID uint
	decision   vo.Decision
	note       string
	createdAt  time.Time
}

func NewApprovalRecord(
	ticketID uint,
	approverID uint,
	decision vo.Decision,
	note string,
) (*ApprovalRecord, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if approverID == 0 {
		return nil, fmt.Errorf("approver ID is required")
	}
	if !decision.IsValid() {
		return nil, fmt.Errorf("invalid decision: %s", decision)
	}
	if len(note) > 2000 {
		return nil, fmt.Errorf("note exceeds maximum length of 2000 characters")
	}

	return &ApprovalRecord{
		ticketID:   ticketID,
		approverID: approverID,
		decision:   decision,
		note:       note,
		createdAt:  time.Now(),
	}, nil
}

func ReconstructApprovalRecord(
	id uint,
	ticketID uint,
	approverID uint,
	decision vo.Decision,
	note string,
	createdAt time.Time,
) (*ApprovalRecord, error) {
	if id == 0 {
		return nil, fmt.Errorf("approval record ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if approverID == 0 {
		return nil, fmt.Errorf("approver ID is required")
	}
	if !decision.IsValid() {
		return nil, fmt.Errorf("invalid decision: %s", decision)
	}

	return &ApprovalRecord{
		id:         id,
		ticketID:   ticketID,
		approverID: approverID,
		decision:   decision,
		note:       note,
		createdAt:  createdAt,
	}, nil
}

func (r *ApprovalRecord) ID() uint {
	return r.id
}

func (r *ApprovalRecord) TicketID() uint {
	return r.ticketID
}

func (r *ApprovalRecord) ApproverID() uint {
	return r.approverID
}

func (r *ApprovalRecord) Decision() vo.Decision {
	return r.decision
}

func (r *ApprovalRecord) Note() string {
	return r.note
}

func (r *ApprovalRecord) CreatedAt() time.Time {
	return r.createdAt
}

func (r *ApprovalRecord) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("approval record ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("approval record ID cannot be zero")
	}
	r.id = id
	return nil
}
