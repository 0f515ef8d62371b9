package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/opsdesk/internal/domain/ticket"
	"github.com/opsdesk/opsdesk/internal/domain/user"
	"github.com/opsdesk/opsdesk/internal/shared/authorization"
	"github.com/opsdesk/opsdesk/internal/shared/errors"
)

func TestCreateTicket_Success(t *testing.T) {
	var saved *ticket.Ticket
	repo := &mockTicketRepository{
		SaveFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			saved = tk
			return tk.SetID(42)
		},
	}
	dispatcher := &mockEventDispatcher{}
	uc := NewCreateTicketUseCase(repo, &mockUserRepository{}, &mockNumberGenerator{}, dispatcher, newTestLogger())

	result, err := uc.Execute(context.Background(), CreateTicketCommand{
		Title:       "Laptop will not boot",
		Description: "Black screen since the last update",
		Category:    "it_support",
		Priority:    "high",
		CreatorID:   1,
		Tags:        []string{"hardware"},
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "open", result.Ticket.Status)
	assert.Equal(t, "TKT-20260101-0001", result.Ticket.Number)
	assert.Equal(t, []string{"hardware"}, result.Ticket.Tags)
	assert.NotNil(t, result.Ticket.SLADueTime)
	require.Len(t, dispatcher.Published, 1)
	assert.Equal(t, ticket.EventTicketCreated, dispatcher.Published[0].GetEventType())
}

func TestCreateTicket_InvalidCategory(t *testing.T) {
	uc := NewCreateTicketUseCase(&mockTicketRepository{}, &mockUserRepository{}, &mockNumberGenerator{}, &mockEventDispatcher{}, newTestLogger())

	_, err := uc.Execute(context.Background(), CreateTicketCommand{
		Title:       "Laptop will not boot",
		Description: "Black screen",
		Category:    "gardening",
		Priority:    "high",
		CreatorID:   1,
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestCreateTicket_MissingTitle(t *testing.T) {
	uc := NewCreateTicketUseCase(&mockTicketRepository{}, &mockUserRepository{}, &mockNumberGenerator{}, &mockEventDispatcher{}, newTestLogger())

	_, err := uc.Execute(context.Background(), CreateTicketCommand{
		Description: "Black screen",
		Category:    "it_support",
		Priority:    "high",
		CreatorID:   1,
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestCreateTicket_UnknownAssignee(t *testing.T) {
	users := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, userID uint) (*user.User, error) {
			return nil, user.ErrNotFound
		},
	}
	uc := NewCreateTicketUseCase(&mockTicketRepository{}, users, &mockNumberGenerator{}, &mockEventDispatcher{}, newTestLogger())

	assigneeID := uint(99)
	_, err := uc.Execute(context.Background(), CreateTicketCommand{
		Title:       "Laptop will not boot",
		Description: "Black screen",
		Category:    "it_support",
		Priority:    "high",
		CreatorID:   1,
		ActorRole:   authorization.RoleAdmin,
		AssigneeID:  &assigneeID,
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestCreateTicket_AssignOtherUserForbiddenForRequester(t *testing.T) {
	repo := &mockTicketRepository{
		SaveFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			t.Fatal("ticket must not be saved when the assignment guard fails")
			return nil
		},
	}
	uc := NewCreateTicketUseCase(repo, &mockUserRepository{}, &mockNumberGenerator{}, &mockEventDispatcher{}, newTestLogger())

	assigneeID := uint(7)
	_, err := uc.Execute(context.Background(), CreateTicketCommand{
		Title:       "Laptop will not boot",
		Description: "Black screen",
		Category:    "it_support",
		Priority:    "high",
		CreatorID:   1,
		ActorRole:   authorization.RoleRequester,
		AssigneeID:  &assigneeID,
	})

	require.Error(t, err)
	assert.True(t, errors.IsForbiddenError(err))
}

func TestCreateTicket_SelfAssignAllowedForRequester(t *testing.T) {
	var saved *ticket.Ticket
	repo := &mockTicketRepository{
		SaveFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			saved = tk
			return tk.SetID(43)
		},
	}
	users := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, userID uint) (*user.User, error) {
			return reconstructTestUser(t, userID, "assignee@example.com"), nil
		},
	}
	uc := NewCreateTicketUseCase(repo, users, &mockNumberGenerator{}, &mockEventDispatcher{}, newTestLogger())

	assigneeID := uint(1)
	result, err := uc.Execute(context.Background(), CreateTicketCommand{
		Title:       "Laptop will not boot",
		Description: "Black screen",
		Category:    "it_support",
		Priority:    "high",
		CreatorID:   1,
		ActorRole:   authorization.RoleRequester,
		AssigneeID:  &assigneeID,
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.True(t, saved.IsAssignedTo(1))
	require.NotNil(t, result.Ticket.AssigneeID)
	assert.Equal(t, uint(1), *result.Ticket.AssigneeID)
}

func TestCreateTicket_AdminMayAssignOtherUser(t *testing.T) {
	var saved *ticket.Ticket
	repo := &mockTicketRepository{
		SaveFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			saved = tk
			return tk.SetID(44)
		},
	}
	users := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, userID uint) (*user.User, error) {
			return reconstructTestUser(t, userID, "assignee@example.com"), nil
		},
	}
	uc := NewCreateTicketUseCase(repo, users, &mockNumberGenerator{}, &mockEventDispatcher{}, newTestLogger())

	assigneeID := uint(7)
	_, err := uc.Execute(context.Background(), CreateTicketCommand{
		Title:       "Laptop will not boot",
		Description: "Black screen",
		Category:    "it_support",
		Priority:    "high",
		CreatorID:   1,
		ActorRole:   authorization.RoleAdmin,
		AssigneeID:  &assigneeID,
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.True(t, saved.IsAssignedTo(7))
}
