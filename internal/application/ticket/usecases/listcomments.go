package usecases

import (
	"context"
	stderrors "errors"

	"github.com/opsdesk/opsdesk/internal/application/ticket/dto"
	"github.com/opsdesk/opsdesk/internal/domain/ticket"
	"github.com/opsdesk/opsdesk/internal/shared/authorization"
	"github.com/opsdesk/opsdesk/internal/shared/errors"
	"github.com/opsdesk/opsdesk/internal/shared/logger"
	"github.com/opsdesk/opsdesk/internal/shared/services/markdown"
)

type ListCommentsQuery struct {
	TicketID  uint
	ActorID   uint
	ActorRole authorization.UserRole
}

type ListCommentsUseCase struct {
	ticketRepo  ticket.TicketRepository
	commentRepo ticket.CommentRepository
	markdownSvc markdown.MarkdownService
	logger      logger.Interface
}

func NewListCommentsUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	markdownSvc markdown.MarkdownService,
	logger logger.Interface,
) *ListCommentsUseCase {
	return &ListCommentsUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		markdownSvc: markdownSvc,
		logger:      logger,
	}
}

func (uc *ListCommentsUseCase) Execute(ctx context.Context, query ListCommentsQuery) ([]dto.CommentDTO, error) {
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

	comments, err := uc.commentRepo.GetByTicketID(ctx, query.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load comments", "ticket_id", query.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to load comments")
	}

	includeInternal := query.ActorRole.CanApprove() || t.IsAssignedTo(query.ActorID)

	result := make([]dto.CommentDTO, 0, len(comments))
	for _, c := range comments {
		if c.IsInternal() && !includeInternal {
			continue
		}
		contentHTML, err := uc.markdownSvc.ToHTMLSanitized(c.Content())
		if err != nil {
			uc.logger.Warnw("failed to render comment markdown", "comment_id", c.ID(), "error", err)
			contentHTML = ""
		}
		result = append(result, dto.ToCommentDTO(c, contentHTML))
	}

	return result, nil
}
