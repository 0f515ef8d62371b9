package mappers

import (
	"time"

	"github.com/opsdesk/opsdesk/internal/domain/ticket"
	"github.com/opsdesk/opsdesk/internal/infrastructure/persistence/models"
)

type AttachmentMapper interface {
	ToModel(a *ticket.Attachment) *models.AttachmentModel
	ToDomain(model *models.AttachmentModel) (*ticket.Attachment, error)
}

type AttachmentMapperImpl struct{}

func NewAttachmentMapper() AttachmentMapper {
	return &AttachmentMapperImpl{}
}

func (m *AttachmentMapperImpl) ToModel(a *ticket.Attachment) *models.AttachmentModel {
	return &models.AttachmentModel{
		ID:          a.ID(),
		TicketID:    a.TicketID(),
		UploaderID:  a.UploaderID(),
		FileName:    a.FileName(),
		ContentType: a.ContentType(),
		SizeBytes:   a.SizeBytes(),
		StoragePath: a.StoragePath(),
		CreatedAt:   a.CreatedAt().UnixMilli(),
	}
}

func (m *AttachmentMapperImpl) ToDomain(model *models.AttachmentModel) (*ticket.Attachment, error) {
	return ticket.ReconstructAttachment(
		model.ID,
		model.TicketID,
		model.UploaderID,
		model.FileName,
		model.ContentType,
		model.SizeBytes,
		model.StoragePath,
		time.UnixMilli(model.CreatedAt),
	)
}
