package ticket

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ticketdto "github.com/opsdesk/opsdesk/internal/application/ticket/dto"
	"github.com/opsdesk/opsdesk/internal/application/ticket/usecases"
	"github.com/opsdesk/opsdesk/internal/interfaces/http/handlers/testutil"
	"github.com/opsdesk/opsdesk/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockCreateTicketUC struct {
	result *usecases.CreateTicketResult
	err    error
}

func (m *mockCreateTicketUC) Execute(_ context.Context, _ usecases.CreateTicketCommand) (*usecases.CreateTicketResult, error) {
	return m.result, m.err
}

type mockUpdateTicketUC struct {
	result *usecases.UpdateTicketResult
	err    error
}

func (m *mockUpdateTicketUC) Execute(_ context.Context, _ usecases.UpdateTicketCommand) (*usecases.UpdateTicketResult, error) {
	return m.result, m.err
}

type mockAssignTicketUC struct {
	result *usecases.AssignTicketResult
	err    error
}

func (m *mockAssignTicketUC) Execute(_ context.Context, _ usecases.AssignTicketCommand) (*usecases.AssignTicketResult, error) {
	return m.result, m.err
}

type mockTransitionTicketUC struct {
	result  *usecases.TransitionTicketResult
	err     error
	lastCmd usecases.TransitionTicketCommand
}

func (m *mockTransitionTicketUC) Execute(_ context.Context, cmd usecases.TransitionTicketCommand) (*usecases.TransitionTicketResult, error) {
	m.lastCmd = cmd
	return m.result, m.err
}

type mockDeleteTicketUC struct {
	result *usecases.DeleteTicketResult
	err    error
}

func (m *mockDeleteTicketUC) Execute(_ context.Context, _ usecases.DeleteTicketCommand) (*usecases.DeleteTicketResult, error) {
	return m.result, m.err
}

type mockGetTicketUC struct {
	result *ticketdto.TicketDTO
	err    error
}

func (m *mockGetTicketUC) Execute(_ context.Context, _ usecases.GetTicketQuery) (*ticketdto.TicketDTO, error) {
	return m.result, m.err
}

type mockListTicketsUC struct {
	result    *usecases.ListTicketsResult
	err       error
	lastQuery usecases.ListTicketsQuery
}

func (m *mockListTicketsUC) Execute(_ context.Context, query usecases.ListTicketsQuery) (*usecases.ListTicketsResult, error) {
	m.lastQuery = query
	return m.result, m.err
}

type mockAddCommentUC struct {
	result *usecases.AddCommentResult
	err    error
}

func (m *mockAddCommentUC) Execute(_ context.Context, _ usecases.AddCommentCommand) (*usecases.AddCommentResult, error) {
	return m.result, m.err
}

type mockListCommentsUC struct {
	result []ticketdto.CommentDTO
	err    error
}

func (m *mockListCommentsUC) Execute(_ context.Context, _ usecases.ListCommentsQuery) ([]ticketdto.CommentDTO, error) {
	return m.result, m.err
}

type mockAddAttachmentUC struct {
	result *usecases.AddAttachmentResult
	err    error
}

func (m *mockAddAttachmentUC) Execute(_ context.Context, _ usecases.AddAttachmentCommand) (*usecases.AddAttachmentResult, error) {
	return m.result, m.err
}

type mockGetStatsUC struct {
	result *usecases.GetTicketStatsResult
	err    error
}

func (m *mockGetStatsUC) Execute(_ context.Context, _ usecases.GetTicketStatsQuery) (*usecases.GetTicketStatsResult, error) {
	return m.result, m.err
}

// =====================================================================
// Test helper
// =====================================================================

type testDeps struct {
	createTicketUC  usecases.CreateTicketExecutor
	updateTicketUC  usecases.UpdateTicketExecutor
	assignTicketUC  usecases.AssignTicketExecutor
	transitionUC    usecases.TransitionTicketExecutor
	deleteTicketUC  usecases.DeleteTicketExecutor
	getTicketUC     usecases.GetTicketExecutor
	listTicketsUC   usecases.ListTicketsExecutor
	addCommentUC    usecases.AddCommentExecutor
	listCommentsUC  usecases.ListCommentsExecutor
	addAttachmentUC usecases.AddAttachmentExecutor
	statsUC         usecases.GetTicketStatsExecutor
}

func newTestTicketHandler(deps testDeps) *TicketHandler {
	return NewTicketHandler(
		deps.createTicketUC,
		deps.updateTicketUC,
		deps.assignTicketUC,
		deps.transitionUC,
		deps.deleteTicketUC,
		deps.getTicketUC,
		deps.listTicketsUC,
		deps.addCommentUC,
		deps.listCommentsUC,
		deps.addAttachmentUC,
		deps.statsUC,
	)
}

func sampleTicketDTO() *ticketdto.TicketDTO {
	now := time.Now().UTC()
	return &ticketdto.TicketDTO{
		ID:          1,
		Number:      "TKT-20240101-0001",
		Title:       "Printer on fire",
		Description: "The office printer is on fire",
		Category:    "incident",
		Priority:    "high",
		Status:      "open",
		CreatorID:   1,
		Tags:        []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
		Comments:    []ticketdto.CommentDTO{},
		Attachments: []ticketdto.AttachmentDTO{},
	}
}

// =====================================================================
// TestTicketHandler_CreateTicket
// =====================================================================

func TestTicketHandler_CreateTicket_Success(t *testing.T) {
	mockUC := &mockCreateTicketUC{
		result: &usecases.CreateTicketResult{Ticket: sampleTicketDTO()},
	}
	handler := newTestTicketHandler(testDeps{createTicketUC: mockUC})

	reqBody := CreateTicketRequest{
		Title:       "Printer on fire",
		Description: "The office printer is on fire",
		Category:    "incident",
		Priority:    "high",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets", reqBody)
	testutil.SetAuthContext(c, 1, "requester")

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestTicketHandler_CreateTicket_BindError(t *testing.T) {
	handler := newTestTicketHandler(testDeps{})

	// Missing required fields
	reqBody := map[string]string{"title": "only title"}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets", reqBody)
	testutil.SetAuthContext(c, 1, "requester")

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.False(t, resp.Success)
}

func TestTicketHandler_CreateTicket_UseCaseError(t *testing.T) {
	mockUC := &mockCreateTicketUC{
		err: errors.NewValidationError("invalid category"),
	}
	handler := newTestTicketHandler(testDeps{createTicketUC: mockUC})

	reqBody := CreateTicketRequest{
		Title:       "Printer on fire",
		Description: "The office printer is on fire",
		Category:    "not_a_category",
		Priority:    "high",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets", reqBody)
	testutil.SetAuthContext(c, 1, "requester")

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.False(t, resp.Success)
}

// =====================================================================
// TestTicketHandler_GetTicket
// =====================================================================

func TestTicketHandler_GetTicket_Success(t *testing.T) {
	mockUC := &mockGetTicketUC{result: sampleTicketDTO()}
	handler := newTestTicketHandler(testDeps{getTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/1", nil)
	testutil.SetAuthContext(c, 1, "requester")
	testutil.SetURLParam(c, "id", "1")

	handler.GetTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestTicketHandler_GetTicket_InvalidID(t *testing.T) {
	handler := newTestTicketHandler(testDeps{})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/abc", nil)
	testutil.SetAuthContext(c, 1, "requester")
	testutil.SetURLParam(c, "id", "abc")

	handler.GetTicket(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestTicketHandler_GetTicket_NotFound(t *testing.T) {
	mockUC := &mockGetTicketUC{
		err: errors.NewNotFoundError("ticket not found"),
	}
	handler := newTestTicketHandler(testDeps{getTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/999", nil)
	testutil.SetAuthContext(c, 1, "requester")
	testutil.SetURLParam(c, "id", "999")

	handler.GetTicket(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.False(t, resp.Success)
}

// =====================================================================
// TestTicketHandler_ListTickets
// =====================================================================

func TestTicketHandler_ListTickets_Success(t *testing.T) {
	mockUC := &mockListTicketsUC{
		result: &usecases.ListTicketsResult{
			Tickets: []ticketdto.TicketListItemDTO{
				{ID: 1, Number: "TKT-20240101-0001", Title: "Printer on fire", Status: "open", Priority: "high", Category: "incident"},
			},
			Total:    1,
			Page:     1,
			PageSize: 20,
		},
	}
	handler := newTestTicketHandler(testDeps{listTicketsUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets", nil)
	testutil.SetAuthContext(c, 1, "requester")

	handler.ListTickets(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestTicketHandler_ListTickets_WithFilters(t *testing.T) {
	mockUC := &mockListTicketsUC{
		result: &usecases.ListTicketsResult{
			Tickets:  []ticketdto.TicketListItemDTO{},
			Total:    0,
			Page:     1,
			PageSize: 20,
		},
	}
	handler := newTestTicketHandler(testDeps{listTicketsUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets", nil)
	testutil.SetAuthContext(c, 1, "requester")
	testutil.SetQueryParams(c, map[string]string{
		"status":   "open",
		"priority": "high",
		"page":     "1",
	})

	handler.ListTickets(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "open", mockUC.lastQuery.Status)
	assert.Equal(t, "high", mockUC.lastQuery.Priority)
}

func TestTicketHandler_ListTickets_InvalidStatusFilter(t *testing.T) {
	handler := newTestTicketHandler(testDeps{})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets", nil)
	testutil.SetAuthContext(c, 1, "requester")
	testutil.SetQueryParams(c, map[string]string{"status": "not_a_status"})

	handler.ListTickets(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestTicketHandler_ListTickets_InvalidAssigneeID(t *testing.T) {
	handler := newTestTicketHandler(testDeps{})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets", nil)
	testutil.SetAuthContext(c, 1, "requester")
	testutil.SetQueryParams(c, map[string]string{"assignee_id": "not_a_number"})

	handler.ListTickets(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestTicketHandler_ListTickets_UseCaseError(t *testing.T) {
	mockUC := &mockListTicketsUC{
		err: errors.NewInternalError("database error"),
	}
	handler := newTestTicketHandler(testDeps{listTicketsUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets", nil)
	testutil.SetAuthContext(c, 1, "requester")

	handler.ListTickets(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// =====================================================================
// TestTicketHandler_TransitionTicket
// =====================================================================

func TestTicketHandler_TransitionTicket_Success(t *testing.T) {
	dto := sampleTicketDTO()
	dto.Status = "in_progress"
	mockUC := &mockTransitionTicketUC{
		result: &usecases.TransitionTicketResult{Ticket: dto},
	}
	handler := newTestTicketHandler(testDeps{transitionUC: mockUC})

	reqBody := TransitionTicketRequest{TargetStatus: "in_progress"}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/1/transition", reqBody)
	testutil.SetAuthContext(c, 2, "approver")
	testutil.SetURLParam(c, "id", "1")

	handler.TransitionTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(1), mockUC.lastCmd.TicketID)
	assert.Equal(t, uint(2), mockUC.lastCmd.ActorID)
	assert.Equal(t, "in_progress", mockUC.lastCmd.TargetStatus)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestTicketHandler_TransitionTicket_WithDecision(t *testing.T) {
	dto := sampleTicketDTO()
	dto.Status = "resolved"
	mockUC := &mockTransitionTicketUC{
		result: &usecases.TransitionTicketResult{Ticket: dto},
	}
	handler := newTestTicketHandler(testDeps{transitionUC: mockUC})

	reqBody := TransitionTicketRequest{
		TargetStatus: "resolved",
		Decision:     "approved",
		Note:         "looks good",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/1/transition", reqBody)
	testutil.SetAuthContext(c, 2, "approver")
	testutil.SetURLParam(c, "id", "1")

	handler.TransitionTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "approved", mockUC.lastCmd.Decision)
	assert.Equal(t, "looks good", mockUC.lastCmd.Note)
}

func TestTicketHandler_TransitionTicket_BindError(t *testing.T) {
	handler := newTestTicketHandler(testDeps{})

	// Missing target_status
	reqBody := map[string]string{"note": "no target"}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/1/transition", reqBody)
	testutil.SetAuthContext(c, 2, "approver")
	testutil.SetURLParam(c, "id", "1")

	handler.TransitionTicket(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestTicketHandler_TransitionTicket_InvalidTransition(t *testing.T) {
	mockUC := &mockTransitionTicketUC{
		err: errors.NewConflictError("transition from closed to in_progress is not allowed"),
	}
	handler := newTestTicketHandler(testDeps{transitionUC: mockUC})

	reqBody := TransitionTicketRequest{TargetStatus: "in_progress"}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/1/transition", reqBody)
	testutil.SetAuthContext(c, 2, "approver")
	testutil.SetURLParam(c, "id", "1")

	handler.TransitionTicket(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTicketHandler_TransitionTicket_Forbidden(t *testing.T) {
	mockUC := &mockTransitionTicketUC{
		err: errors.NewForbiddenError("only the assignee may start work on a ticket"),
	}
	handler := newTestTicketHandler(testDeps{transitionUC: mockUC})

	reqBody := TransitionTicketRequest{TargetStatus: "in_progress"}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/1/transition", reqBody)
	testutil.SetAuthContext(c, 5, "requester")
	testutil.SetURLParam(c, "id", "1")

	handler.TransitionTicket(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

// =====================================================================
// TestTicketHandler_AssignTicket
// =====================================================================

func TestTicketHandler_AssignTicket_Success(t *testing.T) {
	dto := sampleTicketDTO()
	assignee := uint(2)
	dto.AssigneeID = &assignee
	mockUC := &mockAssignTicketUC{
		result: &usecases.AssignTicketResult{Ticket: dto},
	}
	handler := newTestTicketHandler(testDeps{assignTicketUC: mockUC})

	reqBody := AssignTicketRequest{AssigneeID: 2}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/1/assign", reqBody)
	testutil.SetAuthContext(c, 1, "approver")
	testutil.SetURLParam(c, "id", "1")

	handler.AssignTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTicketHandler_AssignTicket_BindError(t *testing.T) {
	handler := newTestTicketHandler(testDeps{})

	// Missing required assignee_id
	reqBody := map[string]interface{}{}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/1/assign", reqBody)
	testutil.SetAuthContext(c, 1, "approver")
	testutil.SetURLParam(c, "id", "1")

	handler.AssignTicket(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestTicketHandler_AssignTicket_AssigneeNotFound(t *testing.T) {
	mockUC := &mockAssignTicketUC{
		err: errors.NewNotFoundError("assignee not found"),
	}
	handler := newTestTicketHandler(testDeps{assignTicketUC: mockUC})

	reqBody := AssignTicketRequest{AssigneeID: 999}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/1/assign", reqBody)
	testutil.SetAuthContext(c, 1, "approver")
	testutil.SetURLParam(c, "id", "1")

	handler.AssignTicket(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// =====================================================================
// TestTicketHandler_AddComment
// =====================================================================

func TestTicketHandler_AddComment_Success(t *testing.T) {
	mockUC := &mockAddCommentUC{
		result: &usecases.AddCommentResult{
			Comment: ticketdto.CommentDTO{
				ID:        10,
				UserID:    1,
				Content:   "This is a comment",
				CreatedAt: time.Now().UTC(),
			},
		},
	}
	handler := newTestTicketHandler(testDeps{addCommentUC: mockUC})

	reqBody := AddCommentRequest{Content: "This is a comment"}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/1/comments", reqBody)
	testutil.SetAuthContext(c, 1, "requester")
	testutil.SetURLParam(c, "id", "1")

	handler.AddComment(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestTicketHandler_AddComment_BindError(t *testing.T) {
	handler := newTestTicketHandler(testDeps{})

	// Missing required "content" field
	reqBody := map[string]interface{}{"is_internal": true}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/1/comments", reqBody)
	testutil.SetAuthContext(c, 1, "requester")
	testutil.SetURLParam(c, "id", "1")

	handler.AddComment(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestTicketHandler_AddComment_TicketNotFound(t *testing.T) {
	mockUC := &mockAddCommentUC{
		err: errors.NewNotFoundError("ticket not found"),
	}
	handler := newTestTicketHandler(testDeps{addCommentUC: mockUC})

	reqBody := AddCommentRequest{Content: "This is a comment"}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/999/comments", reqBody)
	testutil.SetAuthContext(c, 1, "requester")
	testutil.SetURLParam(c, "id", "999")

	handler.AddComment(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// =====================================================================
// TestTicketHandler_DeleteTicket
// =====================================================================

func TestTicketHandler_DeleteTicket_Success(t *testing.T) {
	mockUC := &mockDeleteTicketUC{
		result: &usecases.DeleteTicketResult{TicketID: 1},
	}
	handler := newTestTicketHandler(testDeps{deleteTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodDelete, "/tickets/1", nil)
	testutil.SetAuthContext(c, 1, "admin")
	testutil.SetURLParam(c, "id", "1")

	handler.DeleteTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTicketHandler_DeleteTicket_InvalidID(t *testing.T) {
	handler := newTestTicketHandler(testDeps{})

	c, w := testutil.NewTestContext(http.MethodDelete, "/tickets/abc", nil)
	testutil.SetAuthContext(c, 1, "admin")
	testutil.SetURLParam(c, "id", "abc")

	handler.DeleteTicket(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestTicketHandler_DeleteTicket_UseCaseError(t *testing.T) {
	mockUC := &mockDeleteTicketUC{
		err: errors.NewInternalError("failed to delete ticket"),
	}
	handler := newTestTicketHandler(testDeps{deleteTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodDelete, "/tickets/1", nil)
	testutil.SetAuthContext(c, 1, "admin")
	testutil.SetURLParam(c, "id", "1")

	handler.DeleteTicket(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
