package usecases

import (
	"context"
	stderrors "errors"

	"github.com/opsdesk/opsdesk/internal/domain/ticket"
	"github.com/opsdesk/opsdesk/internal/shared/errors"
	"github.com/opsdesk/opsdesk/internal/shared/logger"
)

type DeleteTicketCommand struct {
	TicketID uint
	ActorID  uint
}

type DeleteTicketResult struct {
	TicketID uint
}

// DeleteTicketUseCase removes a ticket. Admin-only at the routing layer;
// the repository refuses deletion while child records reference the ticket.
type DeleteTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewDeleteTicketUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{ticketRepo: ticketRepo, logger: logger}
}

func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) (*DeleteTicketResult, error) {
	if _, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID); err != nil {
		if stderrors.Is(err, ticket.ErrNotFound) {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to load ticket")
	}

	if err := uc.ticketRepo.Delete(ctx, cmd.TicketID); err != nil {
		if stderrors.Is(err, ticket.ErrHasReferences) {
			return nil, errors.NewConflictError("ticket has comments, attachments, or approvals and cannot be deleted")
		}
		uc.logger.Errorw("failed to delete ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to delete ticket")
	}

	uc.logger.Infow("ticket deleted", "ticket_id", cmd.TicketID, "admin_id", cmd.ActorID)

	return &DeleteTicketResult{TicketID: cmd.TicketID}, nil
}
