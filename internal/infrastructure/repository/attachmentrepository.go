package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/opsdesk/opsdesk/internal/domain/ticket"
	"github.com/opsdesk/opsdesk/internal/infrastructure/persistence/mappers"
	"github.com/opsdesk/opsdesk/internal/infrastructure/persistence/models"
	db "github.com/opsdesk/opsdesk/internal/shared/db"
)

type AttachmentRepository struct {
	db     *gorm.DB
	mapper mappers.AttachmentMapper
}

func NewAttachmentRepository(gdb *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{
		db:     gdb,
		mapper: mappers.NewAttachmentMapper(),
	}
}

func (r *AttachmentRepository) Save(ctx context.Context, a *ticket.Attachment) error {
	model := r.mapper.ToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save attachment: %w", err)
	}

	return a.SetID(model.ID)
}

func (r *AttachmentRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
	var attachmentModels []models.AttachmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&attachmentModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load attachments: %w", err)
	}

	attachments := make([]*ticket.Attachment, 0, len(attachmentModels))
	for i := range attachmentModels {
		a, err := r.mapper.ToDomain(&attachmentModels[i])
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, a)
	}

	return attachments, nil
}

func (r *AttachmentRepository) CountByTicketID(ctx context.Context, ticketID uint) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Model(&models.AttachmentModel{}).
		Where("ticket_id = ?", ticketID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count attachments: %w", err)
	}

	return count, nil
}
