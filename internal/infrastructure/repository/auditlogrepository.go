package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/opsdesk/opsdesk/internal/domain/audit"
	"github.com/opsdesk/opsdesk/internal/infrastructure/persistence/mappers"
	"github.com/opsdesk/opsdesk/internal/infrastructure/persistence/models"
	db "github.com/opsdesk/opsdesk/internal/shared/db"
)

type AuditLogRepository struct {
	db     *gorm.DB
	mapper mappers.AuditLogMapper
}

func NewAuditLogRepository(gdb *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{
		db:     gdb,
		mapper: mappers.NewAuditLogMapper(),
	}
}

func (r *AuditLogRepository) Save(ctx context.Context, entry *audit.LogEntry) error {
	model := r.mapper.ToModel(entry)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save audit entry: %w", err)
	}

	return entry.SetID(model.ID)
}

func (r *AuditLogRepository) List(ctx context.Context, filter audit.LogFilter) ([]*audit.LogEntry, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).Model(&models.AuditLogModel{})

	if filter.AggregateID != "" {
		tx = tx.Where("aggregate_id = ?", filter.AggregateID)
	}
	if filter.EventType != "" {
		tx = tx.Where("event_type = ?", filter.EventType)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit entries: %w", err)
	}

	tx = tx.Order("occurred_at DESC")
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		tx = tx.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var entryModels []models.AuditLogModel
	if err := tx.Find(&entryModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list audit entries: %w", err)
	}

	entries := make([]*audit.LogEntry, 0, len(entryModels))
	for i := range entryModels {
		entry, err := r.mapper.ToDomain(&entryModels[i])
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}

	return entries, total, nil
}
