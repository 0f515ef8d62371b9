package usecases

import (
	"context"

	"github.com/opsdesk/opsdesk/internal/application/ticket/dto"
	"github.com/opsdesk/opsdesk/internal/domain/ticket"
	vo "github.com/opsdesk/opsdesk/internal/domain/ticket/valueobjects"
	"github.com/opsdesk/opsdesk/internal/shared/authorization"
	"github.com/opsdesk/opsdesk/internal/shared/errors"
	"github.com/opsdesk/opsdesk/internal/shared/logger"
)

type ListTicketsQuery struct {
	Status     string
	Priority   string
	Category   string
	CreatorID  *uint
	AssigneeID *uint
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
	ActorID    uint
	ActorRole  authorization.UserRole
}

type ListTicketsResult struct {
	Tickets  []dto.TicketListItemDTO
	Total    int64
	Page     int
	PageSize int
}

type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewListTicketsUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{ticketRepo: ticketRepo, logger: logger}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error) {
	filter := ticket.TicketFilter{
		CreatorID:  query.CreatorID,
		AssigneeID: query.AssigneeID,
		Page:       query.Page,
		PageSize:   query.PageSize,
		SortBy:     query.SortBy,
		SortOrder:  query.SortOrder,
	}

	if query.Status != "" {
		status, err := vo.NewTicketStatus(query.Status)
		if err != nil {
			return nil, errors.NewValidationError("invalid status filter", query.Status)
		}
		filter.Status = &status
	}
	if query.Priority != "" {
		priority, err := vo.NewPriority(query.Priority)
		if err != nil {
			return nil, errors.NewValidationError("invalid priority filter", query.Priority)
		}
		filter.Priority = &priority
	}
	if query.Category != "" {
		category, err := vo.NewCategory(query.Category)
		if err != nil {
			return nil, errors.NewValidationError("invalid category filter", query.Category)
		}
		filter.Category = &category
	}

	// Requesters only see tickets they created or are assigned to;
	// approvers and admins see everything the filter matches.
	if !query.ActorRole.CanApprove() {
		actorID := query.ActorID
		filter.InvolvedUserID = &actorID
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, errors.NewInternalError("failed to list tickets")
	}

	return &ListTicketsResult{
		Tickets:  dto.ToTicketListItemDTOs(tickets),
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}
