package usecases

import (
	"context"
	stderrors "errors"

	"github.com/opsdesk/opsdesk/internal/application/ticket/dto"
	"github.com/opsdesk/opsdesk/internal/domain/shared/events"
	"github.com/opsdesk/opsdesk/internal/domain/ticket"
	vo "github.com/opsdesk/opsdesk/internal/domain/ticket/valueobjects"
	"github.com/opsdesk/opsdesk/internal/shared/authorization"
	"github.com/opsdesk/opsdesk/internal/shared/errors"
	"github.com/opsdesk/opsdesk/internal/shared/logger"
)

type UpdateTicketCommand struct {
	TicketID    uint
	ActorID     uint
	ActorRole   authorization.UserRole
	Title       string
	Description string
	Priority    string
	Tags        []string
}

type UpdateTicketResult struct {
	Ticket *dto.TicketDTO
}

type UpdateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	dispatcher events.EventDispatcher
	logger     logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	dispatcher events.EventDispatcher,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo: ticketRepo,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error) {
	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return nil, errors.NewValidationError("invalid priority", cmd.Priority)
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		if stderrors.Is(err, ticket.ErrNotFound) {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to load ticket")
	}

	// Only the creator, the assignee, or an admin may edit ticket fields.
	if !cmd.ActorRole.IsAdmin() && t.CreatorID() != cmd.ActorID && !t.IsAssignedTo(cmd.ActorID) {
		return nil, errors.NewForbiddenError("you cannot edit this ticket")
	}

	if err := t.UpdateDetails(cmd.Title, cmd.Description, priority, cmd.Tags); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to update ticket")
	}

	if err := uc.dispatcher.Publish(ticket.NewTicketUpdatedEvent(t.ID(), cmd.ActorID)); err != nil {
		uc.logger.Warnw("failed to publish ticket updated event", "ticket_id", t.ID(), "error", err)
	}

	return &UpdateTicketResult{Ticket: dto.ToTicketDTO(t, nil, nil, cmd.ActorRole.CanApprove())}, nil
}
