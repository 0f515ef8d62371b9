package migration

import (
	"github.com/opsdesk/opsdesk/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.TicketModel{},
		&models.CommentModel{},
		&models.ApprovalRecordModel{},
		&models.AttachmentModel{},
		&models.AuditLogModel{},
	}
}
