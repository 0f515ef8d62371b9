package usecases

import (
	"context"

	"github.com/opsdesk/opsdesk/internal/application/ticket/dto"
)

// TransactionRunner executes a function inside a database transaction.
// Implemented by the shared transaction manager; mocked in tests.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier delivers best-effort notifications for workflow events.
// Failures are logged by the caller and never fail the operation.
type Notifier interface {
	NotifyTicketAssigned(to, ticketNumber, title string) error
	NotifyDecisionRecorded(to, ticketNumber, decision, note string) error
}

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error)
}

type AssignTicketExecutor interface {
	Execute(ctx context.Context, cmd AssignTicketCommand) (*AssignTicketResult, error)
}

type TransitionTicketExecutor interface {
	Execute(ctx context.Context, cmd TransitionTicketCommand) (*TransitionTicketResult, error)
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, cmd DeleteTicketCommand) (*DeleteTicketResult, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error)
}

type AddCommentExecutor interface {
	Execute(ctx context.Context, cmd AddCommentCommand) (*AddCommentResult, error)
}

type ListCommentsExecutor interface {
	Execute(ctx context.Context, query ListCommentsQuery) ([]dto.CommentDTO, error)
}

type AddAttachmentExecutor interface {
	Execute(ctx context.Context, cmd AddAttachmentCommand) (*AddAttachmentResult, error)
}

type ListPendingApprovalsExecutor interface {
	Execute(ctx context.Context, query ListPendingApprovalsQuery) (*ListPendingApprovalsResult, error)
}

type ListApprovalHistoryExecutor interface {
	Execute(ctx context.Context, query ListApprovalHistoryQuery) ([]dto.ApprovalRecordDTO, error)
}

type GetTicketStatsExecutor interface {
	Execute(ctx context.Context, query GetTicketStatsQuery) (*GetTicketStatsResult, error)
}
