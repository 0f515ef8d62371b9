package approval

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opsdesk/opsdesk/internal/application/ticket/usecases"
	"github.com/opsdesk/opsdesk/internal/shared/logger"
	"github.com/opsdesk/opsdesk/internal/shared/utils"
)

// ApprovalHandler serves the approver work queue and per-ticket decision
// history. Decisions themselves are recorded through the ticket
// transition endpoint.
type ApprovalHandler struct {
	pendingUC usecases.ListPendingApprovalsExecutor
	historyUC usecases.ListApprovalHistoryExecutor
	logger    logger.Interface
}

func NewApprovalHandler(
	pendingUC usecases.ListPendingApprovalsExecutor,
	historyUC usecases.ListApprovalHistoryExecutor,
) *ApprovalHandler {
	return &ApprovalHandler{
		pendingUC: pendingUC,
		historyUC: historyUC,
		logger:    logger.NewLogger(),
	}
}

// ListPending handles GET /approvals/pending
func (h *ApprovalHandler) ListPending(c *gin.Context) {
	page, pageSize := utils.ParsePagination(c)

	result, err := h.pendingUC.Execute(c.Request.Context(), usecases.ListPendingApprovalsQuery{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, result.Page, result.PageSize)
}

// ListHistory handles GET /tickets/:id/approvals
func (h *ApprovalHandler) ListHistory(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.historyUC.Execute(c.Request.Context(), usecases.ListApprovalHistoryQuery{
		TicketID: ticketID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
