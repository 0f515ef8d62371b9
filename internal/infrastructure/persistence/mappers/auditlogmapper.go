package mappers

import (
	"time"

	"gorm.io/datatypes"

	"github.com/opsdesk/opsdesk/internal/domain/audit"
	"github.com/opsdesk/opsdesk/internal/infrastructure/persistence/models"
)

type AuditLogMapper interface {
	ToModel(e *audit.LogEntry) *models.AuditLogModel
	ToDomain(model *models.AuditLogModel) (*audit.LogEntry, error)
}

type AuditLogMapperImpl struct{}

func NewAuditLogMapper() AuditLogMapper {
	return &AuditLogMapperImpl{}
}

func (m *AuditLogMapperImpl) ToModel(e *audit.LogEntry) *models.AuditLogModel {
	return &models.AuditLogModel{
		ID:          e.ID(),
		AggregateID: e.AggregateID(),
		EventType:   e.EventType(),
		Payload:     datatypes.JSON(e.Payload()),
		OccurredAt:  e.OccurredAt().UnixMilli(),
		CreatedAt:   e.CreatedAt().UnixMilli(),
	}
}

func (m *AuditLogMapperImpl) ToDomain(model *models.AuditLogModel) (*audit.LogEntry, error) {
	return audit.ReconstructLogEntry(
		model.ID,
		model.AggregateID,
		model.EventType,
		[]byte(model.Payload),
		time.UnixMilli(model.OccurredAt),
		time.UnixMilli(model.CreatedAt),
	)
}
