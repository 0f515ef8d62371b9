package usecases

import (
	"context"
	stderrors "errors"

	"github.com/opsdesk/opsdesk/internal/application/ticket/dto"
	"github.com/opsdesk/opsdesk/internal/domain/shared/events"
	"github.com/opsdesk/opsdesk/internal/domain/ticket"
	vo "github.com/opsdesk/opsdesk/internal/domain/ticket/valueobjects"
	"github.com/opsdesk/opsdesk/internal/domain/user"
	"github.com/opsdesk/opsdesk/internal/shared/authorization"
	"github.com/opsdesk/opsdesk/internal/shared/errors"
	"github.com/opsdesk/opsdesk/internal/shared/logger"
)

type CreateTicketCommand struct {
	Title       string
	Description string
	Category    string
	Priority    string
	CreatorID   uint
	ActorRole   authorization.UserRole
	AssigneeID  *uint
	Tags        []string
}

type CreateTicketResult struct {
	Ticket *dto.TicketDTO
}

type CreateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	userRepo   user.UserRepository
	numberGen  ticket.NumberGenerator
	dispatcher events.EventDispatcher
	logger     logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.UserRepository,
	numberGen ticket.NumberGenerator,
	dispatcher events.EventDispatcher,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		numberGen:  numberGen,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	category, err := vo.NewCategory(cmd.Category)
	if err != nil {
		return nil, errors.NewValidationError("invalid category", cmd.Category)
	}

	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return nil, errors.NewValidationError("invalid priority", cmd.Priority)
	}

	t, err := ticket.NewTicket(cmd.Title, cmd.Description, category, priority, cmd.CreatorID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if cmd.AssigneeID != nil {
		// Same rule as AssignTicket: admins may assign anyone, everyone
		// else may only pick the ticket up themselves.
		if !cmd.ActorRole.IsAdmin() && *cmd.AssigneeID != cmd.CreatorID {
			return nil, errors.NewForbiddenError("only admins can assign tickets to other users")
		}
		if err := uc.ensureAssignable(ctx, *cmd.AssigneeID); err != nil {
			return nil, err
		}
		if err := t.AssignTo(*cmd.AssigneeID); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if len(cmd.Tags) > 0 {
		if err := t.UpdateDetails(t.Title(), t.Description(), t.Priority(), cmd.Tags); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	number, err := uc.numberGen.Generate(ctx)
	if err != nil {
		uc.logger.Errorw("failed to generate ticket number", "error", err)
		return nil, errors.NewInternalError("failed to generate ticket number")
	}
	if err := t.SetNumber(number); err != nil {
		return nil, errors.NewInternalError("failed to set ticket number")
	}

	if err := uc.ticketRepo.Save(ctx, t); err != nil {
		uc.logger.Errorw("failed to save ticket", "number", number, "error", err)
		return nil, errors.NewInternalError("failed to save ticket")
	}

	if err := uc.dispatcher.Publish(ticket.NewTicketCreatedEvent(t)); err != nil {
		uc.logger.Warnw("failed to publish ticket created event", "ticket_id", t.ID(), "error", err)
	}

	uc.logger.Infow("ticket created", "ticket_id", t.ID(), "number", t.Number(), "creator_id", cmd.CreatorID)

	return &CreateTicketResult{Ticket: dto.ToTicketDTO(t, nil, nil, false)}, nil
}

// ensureAssignable verifies the assignee exists and can log in.
func (uc *CreateTicketUseCase) ensureAssignable(ctx context.Context, assigneeID uint) error {
	assignee, err := uc.userRepo.GetByID(ctx, assigneeID)
	if err != nil {
		if stderrors.Is(err, user.ErrNotFound) {
			return errors.NewValidationError("assignee does not exist")
		}
		return errors.NewInternalError("failed to load assignee")
	}
	if !assignee.CanAuthenticate() {
		return errors.NewValidationError("assignee account is disabled")
	}
	return nil
}
