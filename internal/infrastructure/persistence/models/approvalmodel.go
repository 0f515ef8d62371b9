package models

type ApprovalRecordModel struct {
	ID         uint   `gorm:"primaryKey"`
	TicketID   uint   `gorm:"not null;index"`
	ApproverID uint   `gorm:"not null;index"`
	Decision   string `gorm:"size:20;not null"`
	Note       string `gorm:"size:2000"`
	CreatedAt  int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (ApprovalRecordModel) TableName() string {
	return "ticket_approvals"
}
