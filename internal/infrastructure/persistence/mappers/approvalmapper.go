package mappers

import (
	"fmt"
	"time"

	"github.com/opsdesk/opsdesk/internal/domain/ticket"
	vo "github.com/opsdesk/opsdesk/internal/domain/ticket/valueobjects"
	"github.com/opsdesk/opsdesk/internal/infrastructure/persistence/models"
)

type ApprovalMapper interface {
	ToModel(r *ticket.ApprovalRecord) *models.ApprovalRecordModel
	ToDomain(model *models.ApprovalRecordModel) (*ticket.ApprovalRecord, error)
}

type ApprovalMapperImpl struct{}

func NewApprovalMapper() ApprovalMapper {
	return &ApprovalMapperImpl{}
}

func (m *ApprovalMapperImpl) ToModel(r *ticket.ApprovalRecord) *models.ApprovalRecordModel {
	return &models.ApprovalRecordModel{
		ID:         r.ID(),
		TicketID:   r.TicketID(),
		ApproverID: r.ApproverID(),
		Decision:   r.Decision().String(),
		Note:       r.Note(),
		CreatedAt:  r.CreatedAt().UnixMilli(),
	}
}

func (m *ApprovalMapperImpl) ToDomain(model *models.ApprovalRecordModel) (*ticket.ApprovalRecord, error) {
	decision, err := vo.NewDecision(model.Decision)
	if err != nil {
		return nil, fmt.Errorf("invalid stored decision (id=%d): %w", model.ID, err)
	}

	return ticket.ReconstructApprovalRecord(
		model.ID,
		model.TicketID,
		model.ApproverID,
		decision,
		model.Note,
		time.UnixMilli(model.CreatedAt),
	)
}
