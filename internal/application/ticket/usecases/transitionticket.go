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

type TransitionTicketCommand struct {
	TicketID     uint
	TargetStatus string
	ActorID      uint
	ActorRole    authorization.UserRole
	Decision     string
	Note         string
	Force        bool
}

type TransitionTicketResult struct {
	Ticket *dto.TicketDTO
}

// TransitionTicketUseCase drives the ticket workflow. The domain table
// authorizes the move; this use case persists the status update and the
// approval record in one transaction, with a compare-and-swap on the
// previous status so concurrent transitions cannot both win.
type TransitionTicketUseCase struct {
	ticketRepo   ticket.TicketRepository
	approvalRepo ticket.ApprovalRepository
	userRepo     user.UserRepository
	txManager    TransactionRunner
	dispatcher   events.EventDispatcher
	notifier     Notifier
	logger       logger.Interface
}

func NewTransitionTicketUseCase(
	ticketRepo ticket.TicketRepository,
	approvalRepo ticket.ApprovalRepository,
	userRepo user.UserRepository,
	txManager TransactionRunner,
	dispatcher events.EventDispatcher,
	notifier Notifier,
	logger logger.Interface,
) *TransitionTicketUseCase {
	return &TransitionTicketUseCase{
		ticketRepo:   ticketRepo,
		approvalRepo: approvalRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		dispatcher:   dispatcher,
		notifier:     notifier,
		logger:       logger,
	}
}

func (uc *TransitionTicketUseCase) Execute(ctx context.Context, cmd TransitionTicketCommand) (*TransitionTicketResult, error) {
	target, err := vo.NewTicketStatus(cmd.TargetStatus)
	if err != nil {
		return nil, errors.NewValidationError("invalid target status", cmd.TargetStatus)
	}

	var decision vo.Decision
	if cmd.Decision != "" {
		decision, err = vo.NewDecision(cmd.Decision)
		if err != nil {
			return nil, errors.NewValidationError("invalid decision", cmd.Decision)
		}
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		if stderrors.Is(err, ticket.ErrNotFound) {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		uc.logger.Errorw("failed to load ticket for transition", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to load ticket")
	}

	principal := ticket.Principal{UserID: cmd.ActorID, Role: cmd.ActorRole}

	outcome, err := t.ApplyTransition(target, principal, decision, cmd.Force)
	if err != nil {
		return nil, mapWorkflowError(err)
	}

	var record *ticket.ApprovalRecord
	if outcome.RecordsApproval() {
		record, err = ticket.NewApprovalRecord(t.ID(), cmd.ActorID, outcome.Decision, cmd.Note)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	// Status update and approval record land together or not at all. The
	// compare-and-swap on the previous status rejects a ticket that moved
	// underneath us since the read above.
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.UpdateStatus(txCtx, t, outcome.From); err != nil {
			return err
		}
		if record != nil {
			if err := uc.approvalRepo.Save(txCtx, record); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if stderrors.Is(err, ticket.ErrStatusConflict) {
			return nil, errors.NewConflictError("ticket status changed concurrently, retry the transition")
		}
		uc.logger.Errorw("failed to persist transition",
			"ticket_id", t.ID(), "from", outcome.From, "to", outcome.To, "error", err)
		return nil, errors.NewInternalError("failed to persist transition")
	}

	if outcome.Forced {
		uc.logger.Warnw("forced status override applied",
			"ticket_id", t.ID(), "number", t.Number(),
			"from", outcome.From.String(), "to", outcome.To.String(),
			"admin_id", cmd.ActorID)
	}

	uc.publishEvents(t, outcome, cmd.ActorID)
	uc.notifyCreator(ctx, t, outcome, cmd.Note)

	ticketDTO := dto.ToTicketDTO(t, nil, nil, cmd.ActorRole.CanApprove())
	return &TransitionTicketResult{Ticket: ticketDTO}, nil
}

func (uc *TransitionTicketUseCase) publishEvents(t *ticket.Ticket, outcome *ticket.TransitionOutcome, actorID uint) {
	if err := uc.dispatcher.Publish(ticket.NewTicketStatusChangedEvent(t.ID(), outcome, actorID)); err != nil {
		uc.logger.Warnw("failed to publish status change event", "ticket_id", t.ID(), "error", err)
	}
	if outcome.RecordsApproval() {
		if err := uc.dispatcher.Publish(ticket.NewApprovalRecordedEvent(t.ID(), actorID, outcome.Decision)); err != nil {
			uc.logger.Warnw("failed to publish approval event", "ticket_id", t.ID(), "error", err)
		}
	}
}

// notifyCreator emails the ticket creator when a decision is recorded.
// Delivery failures are logged, never surfaced.
func (uc *TransitionTicketUseCase) notifyCreator(ctx context.Context, t *ticket.Ticket, outcome *ticket.TransitionOutcome, note string) {
	if uc.notifier == nil || !outcome.RecordsApproval() {
		return
	}

	creator, err := uc.userRepo.GetByID(ctx, t.CreatorID())
	if err != nil {
		uc.logger.Warnw("failed to resolve creator for notification", "ticket_id", t.ID(), "error", err)
		return
	}

	if err := uc.notifier.NotifyDecisionRecorded(creator.Email().String(), t.Number(), outcome.Decision.String(), note); err != nil {
		uc.logger.Warnw("failed to send decision notification", "ticket_id", t.ID(), "error", err)
	}
}

// mapWorkflowError translates workflow sentinels onto the API error
// taxonomy: unknown edge is a conflict, failed guard is forbidden, and
// decision problems are validation failures.
func mapWorkflowError(err error) error {
	switch {
	case stderrors.Is(err, ticket.ErrInvalidTransition):
		return errors.NewConflictError(err.Error())
	case stderrors.Is(err, ticket.ErrTransitionForbidden):
		return errors.NewForbiddenError(err.Error())
	case stderrors.Is(err, ticket.ErrDecisionRequired),
		stderrors.Is(err, ticket.ErrDecisionMismatch),
		stderrors.Is(err, ticket.ErrDecisionNotAllowed):
		return errors.NewValidationError(err.Error())
	default:
		return errors.NewInternalError("transition failed")
	}
}
