package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/opsdesk/opsdesk/internal/application/ticket/dto"
	"github.com/opsdesk/opsdesk/internal/domain/shared/events"
	"github.com/opsdesk/opsdesk/internal/domain/ticket"
	"github.com/opsdesk/opsdesk/internal/shared/authorization"
	"github.com/opsdesk/opsdesk/internal/shared/errors"
	"github.com/opsdesk/opsdesk/internal/shared/logger"
)

type AddAttachmentCommand struct {
	TicketID    uint
	UploaderID  uint
	ActorRole   authorization.UserRole
	FileName    string
	ContentType string
	SizeBytes   int64
}

type AddAttachmentResult struct {
	Attachment dto.AttachmentDTO
}

// AddAttachmentUseCase records attachment metadata against a ticket. The
// binary itself lands under a generated storage path; only metadata goes to
// the database.
type AddAttachmentUseCase struct {
	ticketRepo     ticket.TicketRepository
	attachmentRepo ticket.AttachmentRepository
	dispatcher     events.EventDispatcher
	maxBytes       int64
	logger         logger.Interface
}

func NewAddAttachmentUseCase(
	ticketRepo ticket.TicketRepository,
	attachmentRepo ticket.AttachmentRepository,
	dispatcher events.EventDispatcher,
	maxBytes int64,
	logger logger.Interface,
) *AddAttachmentUseCase {
	return &AddAttachmentUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		dispatcher:     dispatcher,
		maxBytes:       maxBytes,
		logger:         logger,
	}
}

func (uc *AddAttachmentUseCase) Execute(ctx context.Context, cmd AddAttachmentCommand) (*AddAttachmentResult, error) {
	if uc.maxBytes > 0 && cmd.SizeBytes > uc.maxBytes {
		return nil, errors.NewValidationError(fmt.Sprintf("attachment exceeds the %d byte limit", uc.maxBytes))
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		if stderrors.Is(err, ticket.ErrNotFound) {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to load ticket")
	}

	if !t.CanBeViewedBy(cmd.UploaderID, cmd.ActorRole) {
		return nil, errors.NewForbiddenError("you cannot attach files to this ticket")
	}

	if t.Status().IsClosed() {
		return nil, errors.NewConflictError("cannot attach files to a closed ticket")
	}

	storagePath := buildStoragePath(t.ID(), cmd.FileName)

	attachment, err := ticket.NewAttachment(cmd.TicketID, cmd.UploaderID, cmd.FileName, cmd.ContentType, cmd.SizeBytes, storagePath)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.attachmentRepo.Save(ctx, attachment); err != nil {
		uc.logger.Errorw("failed to save attachment", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to save attachment")
	}

	if err := uc.dispatcher.Publish(ticket.NewAttachmentUploadedEvent(t.ID(), attachment.ID(), cmd.UploaderID, cmd.FileName)); err != nil {
		uc.logger.Warnw("failed to publish attachment event", "ticket_id", t.ID(), "error", err)
	}

	return &AddAttachmentResult{Attachment: dto.ToAttachmentDTO(attachment)}, nil
}

// buildStoragePath keys attachments by ticket and upload time so names
// never collide across uploads of the same file.
func buildStoragePath(ticketID uint, fileName string) string {
	base := filepath.Base(fileName)
	return fmt.Sprintf("tickets/%d/%d_%s", ticketID, time.Now().UnixNano(), base)
}
