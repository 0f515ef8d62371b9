package ticket

import (
	"errors"
	"fmt"

	vo "github.com/opsdesk/opsdesk/internal/domain/ticket/valueobjects"
	"github.com/opsdesk/opsdesk/internal/shared/authorization"
)

// Workflow errors. The application layer maps these onto the API error
// taxonomy (conflict, forbidden, validation).
var (
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrTransitionForbidden = errors.New("actor is not allowed to perform this transition")
	ErrDecisionRequired    = errors.New("transition requires an approval decision")
	ErrDecisionMismatch    = errors.New("decision does not match the requested status")
	ErrDecisionNotAllowed  = errors.New("transition does not take an approval decision")
)

// Principal is the authenticated actor applying a transition.
type Principal struct {
	UserID uint
	Role   authorization.UserRole
}

func (p Principal) IsAdmin() bool {
	return p.Role.IsAdmin()
}

// TransitionKey identifies one edge of the status graph.
type TransitionKey struct {
	From vo.TicketStatus
	To   vo.TicketStatus
}

// TransitionRule is one entry of the workflow table: who may move a ticket
// along this edge and whether the move consumes an approval decision.
type TransitionRule struct {
	// Guard decides whether the principal may apply this transition to
	// the given ticket. Guards only read the ticket; they never mutate.
	Guard func(p Principal, t *Ticket) bool

	// Decision is the approval decision this transition consumes, or ""
	// when the transition is decision-free.
	Decision vo.Decision
}

// transitionRules is the workflow table keyed by (from, to). Keeping the
// guards in one table keeps the rule set exhaustively testable instead of
// scattering role checks across handlers.
var transitionRules = map[TransitionKey]TransitionRule{
	{vo.StatusOpen, vo.StatusInProgress}: {
		Guard: func(p Principal, t *Ticket) bool {
			return p.IsAdmin() || t.IsAssignedTo(p.UserID)
		},
	},
	{vo.StatusInProgress, vo.StatusPending}: {
		Guard: func(p Principal, t *Ticket) bool {
			return t.IsAssignedTo(p.UserID)
		},
	},
	{vo.StatusPending, vo.StatusResolved}: {
		Guard: func(p Principal, t *Ticket) bool {
			return p.Role.CanApprove()
		},
		Decision: vo.DecisionApprove,
	},
	{vo.StatusPending, vo.StatusOpen}: {
		Guard: func(p Principal, t *Ticket) bool {
			return p.Role.CanApprove()
		},
		Decision: vo.DecisionReject,
	},
	{vo.StatusResolved, vo.StatusClosed}: {
		Guard: func(p Principal, t *Ticket) bool {
			return p.IsAdmin() || t.CreatorID() == p.UserID
		},
	},
}

// RuleFor returns the workflow rule for a (from, to) edge.
func RuleFor(from, to vo.TicketStatus) (TransitionRule, bool) {
	rule, ok := transitionRules[TransitionKey{From: from, To: to}]
	return rule, ok
}

// TransitionOutcome describes an authorized transition so the application
// layer can persist its side effects atomically.
type TransitionOutcome struct {
	From vo.TicketStatus
	To   vo.TicketStatus

	// Forced is true for an admin override outside the transition table.
	Forced bool

	// Decision is the approval decision to record, "" when none. A forced
	// move into resolved records an approval so the resolved-implies-
	// approved invariant survives overrides.
	Decision vo.Decision
}

// RecordsApproval reports whether the outcome must persist an
// ApprovalRecord together with the status update.
func (o *TransitionOutcome) RecordsApproval() bool {
	return o.Decision != ""
}

// ApplyTransition authorizes and applies a status transition on the
// ticket. On success the aggregate is mutated (status, timestamps,
// version) and the outcome describes what else must be persisted. On
// failure the ticket is left untouched.
//
// force requests an admin override for edges outside the table; it is
// rejected for non-admins.
func (t *Ticket) ApplyTransition(target vo.TicketStatus, p Principal, decision vo.Decision, force bool) (*TransitionOutcome, error) {
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, target)
	}
	if decision != "" && !decision.IsValid() {
		return nil, fmt.Errorf("%w: unknown decision %q", ErrDecisionMismatch, decision)
	}
	if target == t.status {
		return nil, fmt.Errorf("%w: ticket is already %s", ErrInvalidTransition, target)
	}

	if force {
		return t.applyForced(target, p, decision)
	}

	rule, ok := RuleFor(t.status, target)
	if !ok {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.status, target)
	}

	switch {
	case rule.Decision == "" && decision != "":
		return nil, fmt.Errorf("%w: %s -> %s", ErrDecisionNotAllowed, t.status, target)
	case rule.Decision != "" && decision == "":
		return nil, fmt.Errorf("%w: %s -> %s expects decision=%s", ErrDecisionRequired, t.status, target, rule.Decision)
	case rule.Decision != "" && decision != rule.Decision:
		return nil, fmt.Errorf("%w: %s -> %s expects decision=%s", ErrDecisionMismatch, t.status, target, rule.Decision)
	}

	if !rule.Guard(p, t) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrTransitionForbidden, t.status, target)
	}

	outcome := &TransitionOutcome{
		From:     t.status,
		To:       target,
		Decision: rule.Decision,
	}
	t.applyStatus(target)

	return outcome, nil
}

func (t *Ticket) applyForced(target vo.TicketStatus, p Principal, decision vo.Decision) (*TransitionOutcome, error) {
	if !p.IsAdmin() {
		return nil, fmt.Errorf("%w: override requires admin role", ErrTransitionForbidden)
	}

	outcome := &TransitionOutcome{
		From:     t.status,
		To:       target,
		Forced:   true,
		Decision: decision,
	}
	// An override into resolved must still leave an approval trail.
	if target.IsResolved() && outcome.Decision == "" {
		outcome.Decision = vo.DecisionApprove
	}

	t.applyStatus(target)

	return outcome, nil
}
