package usecases

import (
	"context"

	"github.com/opsdesk/opsdesk/internal/domain/ticket"
	vo "github.com/opsdesk/opsdesk/internal/domain/ticket/valueobjects"
	"github.com/opsdesk/opsdesk/internal/shared/errors"
	"github.com/opsdesk/opsdesk/internal/shared/logger"
)

type GetTicketStatsQuery struct{}

type GetTicketStatsResult struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

type GetTicketStatsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewGetTicketStatsUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *GetTicketStatsUseCase {
	return &GetTicketStatsUseCase{ticketRepo: ticketRepo, logger: logger}
}

func (uc *GetTicketStatsUseCase) Execute(ctx context.Context, _ GetTicketStatsQuery) (*GetTicketStatsResult, error) {
	counts, err := uc.ticketRepo.CountByStatus(ctx)
	if err != nil {
		uc.logger.Errorw("failed to count tickets by status", "error", err)
		return nil, errors.NewInternalError("failed to compute ticket stats")
	}

	// Every status shows up in the result, zero counts included.
	byStatus := make(map[string]int64, len(vo.AllStatuses()))
	var total int64
	for _, status := range vo.AllStatuses() {
		n := counts[status]
		byStatus[status.String()] = n
		total += n
	}

	return &GetTicketStatsResult{Total: total, ByStatus: byStatus}, nil
}
