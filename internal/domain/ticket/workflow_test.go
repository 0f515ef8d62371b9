package ticket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/opsdesk/opsdesk/internal/domain/ticket/valueobjects"
	"github.com/opsdesk/opsdesk/internal/shared/authorization"
)

func buildTicket(t *testing.T, status vo.TicketStatus, creatorID uint, assigneeID *uint) *Ticket {
	t.Helper()
	now := time.Now()
	tk, err := ReconstructTicket(
		1, "TKT-20260101-0001", "Printer jam", "Third floor printer keeps jamming",
		vo.CategoryITSupport, vo.PriorityMedium, status,
		creatorID, assigneeID, nil, nil, nil, 1, now, now, nil,
	)
	require.NoError(t, err)
	return tk
}

var (
	creator  = Principal{UserID: 1, Role: authorization.RoleRequester}
	assignee = Principal{UserID: 2, Role: authorization.RoleRequester}
	approver = Principal{UserID: 3, Role: authorization.RoleApprover}
	admin    = Principal{UserID: 4, Role: authorization.RoleAdmin}
	stranger = Principal{UserID: 9, Role: authorization.RoleRequester}
)

func TestApplyTransition_Table(t *testing.T) {
	assigneeID := uint(2)

	tests := []struct {
		name     string
		from     vo.TicketStatus
		to       vo.TicketStatus
		actor    Principal
		decision vo.Decision
		wantErr  error
	}{
		{"assignee starts progress", vo.StatusOpen, vo.StatusInProgress, assignee, "", nil},
		{"admin starts progress", vo.StatusOpen, vo.StatusInProgress, admin, "", nil},
		{"creator cannot start progress", vo.StatusOpen, vo.StatusInProgress, creator, "", ErrTransitionForbidden},
		{"stranger cannot start progress", vo.StatusOpen, vo.StatusInProgress, stranger, "", ErrTransitionForbidden},

		{"assignee submits for approval", vo.StatusInProgress, vo.StatusPending, assignee, "", nil},
		{"admin is not the assignee", vo.StatusInProgress, vo.StatusPending, admin, "", ErrTransitionForbidden},

		{"approver approves", vo.StatusPending, vo.StatusResolved, approver, vo.DecisionApprove, nil},
		{"admin approves", vo.StatusPending, vo.StatusResolved, admin, vo.DecisionApprove, nil},
		{"requester cannot approve", vo.StatusPending, vo.StatusResolved, assignee, vo.DecisionApprove, ErrTransitionForbidden},
		{"approve requires decision", vo.StatusPending, vo.StatusResolved, approver, "", ErrDecisionRequired},
		{"approve rejects wrong decision", vo.StatusPending, vo.StatusResolved, approver, vo.DecisionReject, ErrDecisionMismatch},

		{"approver rejects back to open", vo.StatusPending, vo.StatusOpen, approver, vo.DecisionReject, nil},
		{"reject requires decision", vo.StatusPending, vo.StatusOpen, approver, "", ErrDecisionRequired},
		{"reject rejects wrong decision", vo.StatusPending, vo.StatusOpen, approver, vo.DecisionApprove, ErrDecisionMismatch},
		{"requester cannot reject", vo.StatusPending, vo.StatusOpen, creator, vo.DecisionReject, ErrTransitionForbidden},

		{"creator closes resolved", vo.StatusResolved, vo.StatusClosed, creator, "", nil},
		{"admin closes resolved", vo.StatusResolved, vo.StatusClosed, admin, "", nil},
		{"assignee cannot close", vo.StatusResolved, vo.StatusClosed, assignee, "", ErrTransitionForbidden},

		{"no edge open to resolved", vo.StatusOpen, vo.StatusResolved, admin, vo.DecisionApprove, ErrInvalidTransition},
		{"no edge open to closed", vo.StatusOpen, vo.StatusClosed, admin, "", ErrInvalidTransition},
		{"no edge closed to open", vo.StatusClosed, vo.StatusOpen, admin, "", ErrInvalidTransition},
		{"no edge resolved to pending", vo.StatusResolved, vo.StatusPending, admin, "", ErrInvalidTransition},

		{"decision on decision-free edge", vo.StatusOpen, vo.StatusInProgress, assignee, vo.DecisionApprove, ErrDecisionNotAllowed},
		{"same status is invalid", vo.StatusOpen, vo.StatusOpen, admin, "", ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := buildTicket(t, tt.from, creator.UserID, &assigneeID)

			outcome, err := tk.ApplyTransition(tt.to, tt.actor, tt.decision, false)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, tk.Status(), "failed transition must not mutate the ticket")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, tk.Status())
			assert.Equal(t, tt.from, outcome.From)
			assert.Equal(t, tt.to, outcome.To)
			assert.False(t, outcome.Forced)
		})
	}
}

func TestApplyTransition_ApprovalOutcomes(t *testing.T) {
	assigneeID := uint(2)

	t.Run("approve records decision", func(t *testing.T) {
		tk := buildTicket(t, vo.StatusPending, 1, &assigneeID)
		outcome, err := tk.ApplyTransition(vo.StatusResolved, approver, vo.DecisionApprove, false)
		require.NoError(t, err)
		assert.True(t, outcome.RecordsApproval())
		assert.Equal(t, vo.DecisionApprove, outcome.Decision)
		assert.NotNil(t, tk.ResolvedTime())
	})

	t.Run("reject records decision and clears resolution", func(t *testing.T) {
		tk := buildTicket(t, vo.StatusPending, 1, &assigneeID)
		outcome, err := tk.ApplyTransition(vo.StatusOpen, approver, vo.DecisionReject, false)
		require.NoError(t, err)
		assert.True(t, outcome.RecordsApproval())
		assert.Equal(t, vo.DecisionReject, outcome.Decision)
		assert.Nil(t, tk.ResolvedTime())
		assert.Nil(t, tk.ClosedAt())
	})

	t.Run("decision-free edges record nothing", func(t *testing.T) {
		tk := buildTicket(t, vo.StatusOpen, 1, &assigneeID)
		outcome, err := tk.ApplyTransition(vo.StatusInProgress, assignee, "", false)
		require.NoError(t, err)
		assert.False(t, outcome.RecordsApproval())
	})
}

func TestApplyTransition_ForcedOverride(t *testing.T) {
	assigneeID := uint(2)

	t.Run("admin forces any edge", func(t *testing.T) {
		tk := buildTicket(t, vo.StatusOpen, 1, &assigneeID)
		outcome, err := tk.ApplyTransition(vo.StatusClosed, admin, "", true)
		require.NoError(t, err)
		assert.True(t, outcome.Forced)
		assert.Equal(t, vo.StatusClosed, tk.Status())
		assert.NotNil(t, tk.ClosedAt())
	})

	t.Run("forced resolve still carries an approval", func(t *testing.T) {
		tk := buildTicket(t, vo.StatusOpen, 1, &assigneeID)
		outcome, err := tk.ApplyTransition(vo.StatusResolved, admin, "", true)
		require.NoError(t, err)
		assert.True(t, outcome.Forced)
		assert.True(t, outcome.RecordsApproval())
		assert.Equal(t, vo.DecisionApprove, outcome.Decision)
	})

	t.Run("non-admin cannot force", func(t *testing.T) {
		tk := buildTicket(t, vo.StatusOpen, 1, &assigneeID)
		_, err := tk.ApplyTransition(vo.StatusClosed, approver, "", true)
		assert.ErrorIs(t, err, ErrTransitionForbidden)
		assert.Equal(t, vo.StatusOpen, tk.Status())
	})

	t.Run("force cannot target the current status", func(t *testing.T) {
		tk := buildTicket(t, vo.StatusOpen, 1, &assigneeID)
		_, err := tk.ApplyTransition(vo.StatusOpen, admin, "", true)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestApplyTransition_VersionAdvances(t *testing.T) {
	assigneeID := uint(2)
	tk := buildTicket(t, vo.StatusOpen, 1, &assigneeID)

	before := tk.Version()
	_, err := tk.ApplyTransition(vo.StatusInProgress, assignee, "", false)
	require.NoError(t, err)
	assert.Equal(t, before+1, tk.Version())
}

func TestRuleFor(t *testing.T) {
	_, ok := RuleFor(vo.StatusOpen, vo.StatusInProgress)
	assert.True(t, ok)

	_, ok = RuleFor(vo.StatusOpen, vo.StatusClosed)
	assert.False(t, ok)

	rule, ok := RuleFor(vo.StatusPending, vo.StatusResolved)
	require.True(t, ok)
	assert.Equal(t, vo.DecisionApprove, rule.Decision)
}
