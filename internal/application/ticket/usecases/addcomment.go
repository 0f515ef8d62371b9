package usecases

import (
	"context"
	stderrors "errors"

	"github.com/opsdesk/opsdesk/internal/application/ticket/dto"
	"github.com/opsdesk/opsdesk/internal/domain/shared/events"
	"github.com/opsdesk/opsdesk/internal/domain/ticket"
	"github.com/opsdesk/opsdesk/internal/shared/authorization"
	"github.com/opsdesk/opsdesk/internal/shared/errors"
	"github.com/opsdesk/opsdesk/internal/shared/logger"
	"github.com/opsdesk/opsdesk/internal/shared/services/markdown"
)

type AddCommentCommand struct {
	TicketID   uint
	AuthorID   uint
	ActorRole  authorization.UserRole
	Content    string
	IsInternal bool
}

type AddCommentResult struct {
	Comment dto.CommentDTO
}

// AddCommentUseCase appends a comment to a ticket. Comment bodies are
// markdown; the rendered HTML is sanitized before it reaches clients.
type AddCommentUseCase struct {
	ticketRepo  ticket.TicketRepository
	commentRepo ticket.CommentRepository
	markdownSvc markdown.MarkdownService
	dispatcher  events.EventDispatcher
	logger      logger.Interface
}

func NewAddCommentUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	markdownSvc markdown.MarkdownService,
	dispatcher events.EventDispatcher,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		markdownSvc: markdownSvc,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*AddCommentResult, error) {
	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		if stderrors.Is(err, ticket.ErrNotFound) {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to load ticket")
	}

	if !t.CanBeViewedBy(cmd.AuthorID, cmd.ActorRole) {
		return nil, errors.NewForbiddenError("you cannot comment on this ticket")
	}

	// Internal comments are staff-only notes.
	if cmd.IsInternal && !cmd.ActorRole.CanApprove() && !t.IsAssignedTo(cmd.AuthorID) {
		return nil, errors.NewForbiddenError("only staff can add internal comments")
	}

	if t.Status().IsClosed() {
		return nil, errors.NewConflictError("cannot comment on a closed ticket")
	}

	comment, err := ticket.NewComment(cmd.TicketID, cmd.AuthorID, cmd.Content, cmd.IsInternal)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.commentRepo.Save(ctx, comment); err != nil {
		uc.logger.Errorw("failed to save comment", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to save comment")
	}

	if err := uc.dispatcher.Publish(ticket.NewCommentAddedEvent(t.ID(), comment.ID(), cmd.AuthorID)); err != nil {
		uc.logger.Warnw("failed to publish comment added event", "ticket_id", t.ID(), "error", err)
	}

	contentHTML, err := uc.markdownSvc.ToHTMLSanitized(comment.Content())
	if err != nil {
		uc.logger.Warnw("failed to render comment markdown", "comment_id", comment.ID(), "error", err)
		contentHTML = ""
	}

	return &AddCommentResult{Comment: dto.ToCommentDTO(comment, contentHTML)}, nil
}
