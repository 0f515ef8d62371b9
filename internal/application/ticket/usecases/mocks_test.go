package usecases

import (
	"context"

	"github.com/opsdesk/opsdesk/internal/domain/shared/events"
	"github.com/opsdesk/opsdesk/internal/domain/ticket"
	vo "github.com/opsdesk/opsdesk/internal/domain/ticket/valueobjects"
	"github.com/opsdesk/opsdesk/internal/domain/user"
	"github.com/opsdesk/opsdesk/internal/shared/logger"
)

type mockTicketRepository struct {
	SaveFunc          func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc        func(ctx context.Context, t *ticket.Ticket) error
	UpdateStatusFunc  func(ctx context.Context, t *ticket.Ticket, expected vo.TicketStatus) error
	DeleteFunc        func(ctx context.Context, ticketID uint) error
	GetByIDFunc       func(ctx context.Context, ticketID uint) (*ticket.Ticket, error)
	GetByNumberFunc   func(ctx context.Context, number string) (*ticket.Ticket, error)
	ListFunc          func(ctx context.Context, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error)
	CountByStatusFunc func(ctx context.Context) (map[vo.TicketStatus]int64, error)
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) UpdateStatus(ctx context.Context, t *ticket.Ticket, expected vo.TicketStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, t, expected)
	}
	return nil
}

func (m *mockTicketRepository) Delete(ctx context.Context, ticketID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ticketID)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockTicketRepository) GetByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	return nil, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filters)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) CountByStatus(ctx context.Context) (map[vo.TicketStatus]int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx)
	}
	return map[vo.TicketStatus]int64{}, nil
}

type mockCommentRepository struct {
	SaveFunc            func(ctx context.Context, c *ticket.Comment) error
	GetByTicketIDFunc   func(ctx context.Context, ticketID uint) ([]*ticket.Comment, error)
	CountByTicketIDFunc func(ctx context.Context, ticketID uint) (int64, error)
}

func (m *mockCommentRepository) Save(ctx context.Context, c *ticket.Comment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, c)
	}
	return nil
}

func (m *mockCommentRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	if m.GetByTicketIDFunc != nil {
		return m.GetByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockCommentRepository) CountByTicketID(ctx context.Context, ticketID uint) (int64, error) {
	if m.CountByTicketIDFunc != nil {
		return m.CountByTicketIDFunc(ctx, ticketID)
	}
	return 0, nil
}

type mockApprovalRepository struct {
	SaveFunc            func(ctx context.Context, r *ticket.ApprovalRecord) error
	GetByTicketIDFunc   func(ctx context.Context, ticketID uint) ([]*ticket.ApprovalRecord, error)
	CountByTicketIDFunc func(ctx context.Context, ticketID uint) (int64, error)
}

func (m *mockApprovalRepository) Save(ctx context.Context, r *ticket.ApprovalRecord) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, r)
	}
	return nil
}

func (m *mockApprovalRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.ApprovalRecord, error) {
	if m.GetByTicketIDFunc != nil {
		return m.GetByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockApprovalRepository) CountByTicketID(ctx context.Context, ticketID uint) (int64, error) {
	if m.CountByTicketIDFunc != nil {
		return m.CountByTicketIDFunc(ctx, ticketID)
	}
	return 0, nil
}

type mockAttachmentRepository struct {
	SaveFunc            func(ctx context.Context, a *ticket.Attachment) error
	GetByTicketIDFunc   func(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error)
	CountByTicketIDFunc func(ctx context.Context, ticketID uint) (int64, error)
}

func (m *mockAttachmentRepository) Save(ctx context.Context, a *ticket.Attachment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, a)
	}
	return nil
}

func (m *mockAttachmentRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
	if m.GetByTicketIDFunc != nil {
		return m.GetByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockAttachmentRepository) CountByTicketID(ctx context.Context, ticketID uint) (int64, error) {
	if m.CountByTicketIDFunc != nil {
		return m.CountByTicketIDFunc(ctx, ticketID)
	}
	return 0, nil
}

type mockUserRepository struct {
	SaveFunc       func(ctx context.Context, u *user.User) error
	UpdateFunc     func(ctx context.Context, u *user.User) error
	GetByIDFunc    func(ctx context.Context, userID uint) (*user.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*user.User, error)
	ListFunc       func(ctx context.Context, filter user.UserFilter) ([]*user.User, int64, error)
}

func (m *mockUserRepository) Save(ctx context.Context, u *user.User) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, userID uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepository) List(ctx context.Context, filter user.UserFilter) ([]*user.User, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

// mockTransactionRunner runs the callback inline, no real transaction.
type mockTransactionRunner struct {
	RunFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTransactionRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunFunc != nil {
		return m.RunFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockEventDispatcher struct {
	Published []events.DomainEvent
}

func (m *mockEventDispatcher) Publish(event events.DomainEvent) error {
	m.Published = append(m.Published, event)
	return nil
}

func (m *mockEventDispatcher) PublishAll(evts []events.DomainEvent) error {
	m.Published = append(m.Published, evts...)
	return nil
}

func (m *mockEventDispatcher) Subscribe(eventType string, handler events.EventHandler) error {
	return nil
}

func (m *mockEventDispatcher) Start() error { return nil }
func (m *mockEventDispatcher) Stop() error  { return nil }

type mockNotifier struct {
	AssignedCalls []string
	DecisionCalls []string
	Err           error
}

func (m *mockNotifier) NotifyTicketAssigned(to, ticketNumber, title string) error {
	m.AssignedCalls = append(m.AssignedCalls, to)
	return m.Err
}

func (m *mockNotifier) NotifyDecisionRecorded(to, ticketNumber, decision, note string) error {
	m.DecisionCalls = append(m.DecisionCalls, decision)
	return m.Err
}

type mockNumberGenerator struct {
	GenerateFunc func(ctx context.Context) (string, error)
}

func (m *mockNumberGenerator) Generate(ctx context.Context) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx)
	}
	return "TKT-20260101-0001", nil
}

func newTestLogger() logger.Interface {
	return logger.NewLogger()
}
