package usecases

import (
	"context"
	stderrors "errors"

	"github.com/opsdesk/opsdesk/internal/application/ticket/dto"
	"github.com/opsdesk/opsdesk/internal/domain/ticket"
	"github.com/opsdesk/opsdesk/internal/shared/authorization"
	"github.com/opsdesk/opsdesk/internal/shared/errors"
	"github.com/opsdesk/opsdesk/internal/shared/logger"
)

type GetTicketQuery struct {
	TicketID  uint
	ActorID   uint
	ActorRole authorization.UserRole
}

type GetTicketUseCase struct {
	ticketRepo     ticket.TicketRepository
	commentRepo    ticket.CommentRepository
	attachmentRepo ticket.AttachmentRepository
	logger         logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	attachmentRepo ticket.AttachmentRepository,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo:     ticketRepo,
		commentRepo:    commentRepo,
		attachmentRepo: attachmentRepo,
		logger:         logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	t, err := uc.ticketRepo.GetByID(ctx, query.TicketID)
	if err != nil {
		if stderrors.Is(err, ticket.ErrNotFound) {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		uc.logger.Errorw("failed to load ticket", "ticket_id", query.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to load ticket")
	}

	if !t.CanBeViewedBy(query.ActorID, query.ActorRole) {
		return nil, errors.NewForbiddenError("you cannot view this ticket")
	}

	comments, err := uc.commentRepo.GetByTicketID(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to load comments", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to load comments")
	}

	attachments, err := uc.attachmentRepo.GetByTicketID(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to load attachments", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to load attachments")
	}

	// Internal comments stay hidden from plain requesters.
	includeInternal := query.ActorRole.CanApprove() || t.IsAssignedTo(query.ActorID)

	return dto.ToTicketDTO(t, comments, attachments, includeInternal), nil
}
