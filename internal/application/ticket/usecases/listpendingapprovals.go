package usecases

import (
	"context"
	stderrors "errors"

	"github.com/opsdesk/opsdesk/internal/application/ticket/dto"
	"github.com/opsdesk/opsdesk/internal/domain/ticket"
	vo "github.com/opsdesk/opsdesk/internal/domain/ticket/valueobjects"
	"github.com/opsdesk/opsdesk/internal/shared/errors"
	"github.com/opsdesk/opsdesk/internal/shared/logger"
)

type ListPendingApprovalsQuery struct {
	Page     int
	PageSize int
}

type ListPendingApprovalsResult struct {
	Tickets  []dto.TicketListItemDTO
	Total    int64
	Page     int
	PageSize int
}

// ListPendingApprovalsUseCase returns the approver work queue: every ticket
// waiting on a decision, oldest first so nothing starves.
type ListPendingApprovalsUseCase struct {
	ticketRepo      ticket.TicketRepository
	defaultPageSize int
	logger          logger.Interface
}

func NewListPendingApprovalsUseCase(
	ticketRepo ticket.TicketRepository,
	defaultPageSize int,
	logger logger.Interface,
) *ListPendingApprovalsUseCase {
	return &ListPendingApprovalsUseCase{
		ticketRepo:      ticketRepo,
		defaultPageSize: defaultPageSize,
		logger:          logger,
	}
}

func (uc *ListPendingApprovalsUseCase) Execute(ctx context.Context, query ListPendingApprovalsQuery) (*ListPendingApprovalsResult, error) {
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = uc.defaultPageSize
	}
	page := query.Page
	if page <= 0 {
		page = 1
	}

	pending := vo.StatusPending
	filter := ticket.TicketFilter{
		Status:    &pending,
		Page:      page,
		PageSize:  pageSize,
		SortBy:    "updated_at",
		SortOrder: "asc",
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list pending approvals", "error", err)
		return nil, errors.NewInternalError("failed to list pending approvals")
	}

	return &ListPendingApprovalsResult{
		Tickets:  dto.ToTicketListItemDTOs(tickets),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

type ListApprovalHistoryQuery struct {
	TicketID uint
}

// ListApprovalHistoryUseCase returns every decision ever recorded for a
// ticket, in insertion order.
type ListApprovalHistoryUseCase struct {
	ticketRepo   ticket.TicketRepository
	approvalRepo ticket.ApprovalRepository
	logger       logger.Interface
}

func NewListApprovalHistoryUseCase(
	ticketRepo ticket.TicketRepository,
	approvalRepo ticket.ApprovalRepository,
	logger logger.Interface,
) *ListApprovalHistoryUseCase {
	return &ListApprovalHistoryUseCase{
		ticketRepo:   ticketRepo,
		approvalRepo: approvalRepo,
		logger:       logger,
	}
}

func (uc *ListApprovalHistoryUseCase) Execute(ctx context.Context, query ListApprovalHistoryQuery) ([]dto.ApprovalRecordDTO, error) {
	if _, err := uc.ticketRepo.GetByID(ctx, query.TicketID); err != nil {
		if stderrors.Is(err, ticket.ErrNotFound) {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		uc.logger.Errorw("failed to load ticket", "ticket_id", query.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to load ticket")
	}

	records, err := uc.approvalRepo.GetByTicketID(ctx, query.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load approval history", "ticket_id", query.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to load approval history")
	}

	result := make([]dto.ApprovalRecordDTO, 0, len(records))
	for _, r := range records {
		result = append(result, dto.ToApprovalRecordDTO(r))
	}

	return result, nil
}
