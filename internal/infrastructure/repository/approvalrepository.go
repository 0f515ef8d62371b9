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

// ApprovalRepository is append-only: approval records are inserted inside
// the same transaction as the status update and never modified after.
type ApprovalRepository struct {
	db     *gorm.DB
	mapper mappers.ApprovalMapper
}

func NewApprovalRepository(gdb *gorm.DB) *ApprovalRepository {
	return &ApprovalRepository{
		db:     gdb,
		mapper: mappers.NewApprovalMapper(),
	}
}

func (r *ApprovalRepository) Save(ctx context.Context, record *ticket.ApprovalRecord) error {
	model := r.mapper.ToModel(record)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save approval record: %w", err)
	}

	return record.SetID(model.ID)
}

func (r *ApprovalRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.ApprovalRecord, error) {
	var recordModels []models.ApprovalRecordModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&recordModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load approval records: %w", err)
	}

	records := make([]*ticket.ApprovalRecord, 0, len(recordModels))
	for i := range recordModels {
		record, err := r.mapper.ToDomain(&recordModels[i])
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func (r *ApprovalRepository) CountByTicketID(ctx context.Context, ticketID uint) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Model(&models.ApprovalRecordModel{}).
		Where("ticket_id = ?", ticketID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count approval records: %w", err)
	}

	return count, nil
}
