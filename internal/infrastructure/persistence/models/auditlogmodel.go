package models

import "gorm.io/datatypes"

type AuditLogModel struct {
	ID          uint           `gorm:"primaryKey"`
	AggregateID string         `gorm:"size:50;index"`
	EventType   string         `gorm:"size:100;not null;index"`
	Payload     datatypes.JSON `gorm:"type:json"`
	OccurredAt  int64          `gorm:"not null;index"`
	CreatedAt   int64          `gorm:"autoCreateTime:milli;not null"`
}

func (AuditLogModel) TableName() string {
	return "audit_log"
}
