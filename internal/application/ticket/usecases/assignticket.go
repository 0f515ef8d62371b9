package usecases

import (
	"context"
	stderrors "errors"

	"github.com/opsdesk/opsdesk/internal/application/ticket/dto"
	"github.com/opsdesk/opsdesk/internal/domain/shared/events"
	"github.com/opsdesk/opsdesk/internal/domain/ticket"
	"github.com/opsdesk/opsdesk/internal/domain/user"
	"github.com/opsdesk/opsdesk/internal/shared/authorization"
	"github.com/opsdesk/opsdesk/internal/shared/errors"
	"github.com/opsdesk/opsdesk/internal/shared/logger"
)

type AssignTicketCommand struct {
	TicketID   uint
	AssigneeID uint
	ActorID    uint
	ActorRole  authorization.UserRole
}

type AssignTicketResult struct {
	Ticket *dto.TicketDTO
}

type AssignTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	userRepo   user.UserRepository
	dispatcher events.EventDispatcher
	notifier   Notifier
	logger     logger.Interface
}

func NewAssignTicketUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.UserRepository,
	dispatcher events.EventDispatcher,
	notifier Notifier,
	logger logger.Interface,
) *AssignTicketUseCase {
	return &AssignTicketUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		dispatcher: dispatcher,
		notifier:   notifier,
		logger:     logger,
	}
}

func (uc *AssignTicketUseCase) Execute(ctx context.Context, cmd AssignTicketCommand) (*AssignTicketResult, error) {
	if cmd.AssigneeID == 0 {
		return nil, errors.NewValidationError("assignee ID is required")
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		if stderrors.Is(err, ticket.ErrNotFound) {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to load ticket")
	}

	// Admins may assign anyone; others may only pick up a ticket themselves.
	if !cmd.ActorRole.IsAdmin() && cmd.AssigneeID != cmd.ActorID {
		return nil, errors.NewForbiddenError("only admins can assign tickets to other users")
	}

	assignee, err := uc.userRepo.GetByID(ctx, cmd.AssigneeID)
	if err != nil {
		if stderrors.Is(err, user.ErrNotFound) {
			return nil, errors.NewValidationError("assignee does not exist")
		}
		uc.logger.Errorw("failed to load assignee", "assignee_id", cmd.AssigneeID, "error", err)
		return nil, errors.NewInternalError("failed to load assignee")
	}
	if !assignee.CanAuthenticate() {
		return nil, errors.NewValidationError("assignee account is disabled")
	}

	if err := t.AssignTo(cmd.AssigneeID); err != nil {
		return nil, errors.NewConflictError(err.Error())
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to update ticket")
	}

	if err := uc.dispatcher.Publish(ticket.NewTicketAssignedEvent(t.ID(), cmd.AssigneeID, cmd.ActorID)); err != nil {
		uc.logger.Warnw("failed to publish ticket assigned event", "ticket_id", t.ID(), "error", err)
	}

	if uc.notifier != nil && cmd.AssigneeID != cmd.ActorID {
		if err := uc.notifier.NotifyTicketAssigned(assignee.Email().String(), t.Number(), t.Title()); err != nil {
			uc.logger.Warnw("failed to send assignment notification", "ticket_id", t.ID(), "error", err)
		}
	}

	return &AssignTicketResult{Ticket: dto.ToTicketDTO(t, nil, nil, cmd.ActorRole.CanApprove())}, nil
}
