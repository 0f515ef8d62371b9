package ticket

import (
	"context"
	"errors"

	vo "github.com/opsdesk/opsdesk/internal/domain/ticket/valueobjects"
)

// Repository sentinel errors.
var (
	// ErrNotFound is returned when a ticket id or number does not resolve.
	ErrNotFound = errors.New("ticket not found")

	// ErrStatusConflict is returned by UpdateStatus when the ticket's
	// stored status no longer matches the expected one: a concurrent
	// transition won the compare-and-swap.
	ErrStatusConflict = errors.New("ticket status changed concurrently")

	// ErrHasReferences is returned by Delete when comments, attachments,
	// or approval records still reference the ticket.
	ErrHasReferences = errors.New("ticket is referenced by child records")
)

type TicketRepository interface {
	Save(ctx context.Context, ticket *Ticket) error
	Update(ctx context.Context, ticket *Ticket) error

	// UpdateStatus persists the ticket's current (already transitioned)
	// state with a compare-and-swap on the previous status. It returns
	// ErrStatusConflict when zero rows match, which serializes concurrent
	// transitions on the same ticket.
	UpdateStatus(ctx context.Context, ticket *Ticket, expected vo.TicketStatus) error

	// Delete removes the ticket unless child records reference it.
	Delete(ctx context.Context, ticketID uint) error

	GetByID(ctx context.Context, ticketID uint) (*Ticket, error)
	GetByNumber(ctx context.Context, number string) (*Ticket, error)
	List(ctx context.Context, filters TicketFilter) ([]*Ticket, int64, error)

	// CountByStatus returns ticket counts keyed by status for reporting.
	CountByStatus(ctx context.Context) (map[vo.TicketStatus]int64, error)
}

type TicketFilter struct {
	Status     *vo.TicketStatus
	Priority   *vo.Priority
	Category   *vo.Category
	CreatorID  *uint
	AssigneeID *uint

	// InvolvedUserID matches tickets the user created or is assigned to.
	// Used to scope listings for requesters.
	InvolvedUserID *uint

	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}

type CommentRepository interface {
	Save(ctx context.Context, comment *Comment) error
	GetByTicketID(ctx context.Context, ticketID uint) ([]*Comment, error)
	CountByTicketID(ctx context.Context, ticketID uint) (int64, error)
}

type ApprovalRepository interface {
	// Save appends an approval record; records are never updated.
	Save(ctx context.Context, record *ApprovalRecord) error
	GetByTicketID(ctx context.Context, ticketID uint) ([]*ApprovalRecord, error)
	CountByTicketID(ctx context.Context, ticketID uint) (int64, error)
}

type AttachmentRepository interface {
	Save(ctx context.Context, attachment *Attachment) error
	GetByTicketID(ctx context.Context, ticketID uint) ([]*Attachment, error)
	CountByTicketID(ctx context.Context, ticketID uint) (int64, error)
}
