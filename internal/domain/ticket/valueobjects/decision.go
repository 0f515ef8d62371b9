package valueobjects

import "fmt"

// Decision is the outcome recorded by an approver on a pending ticket.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

func (d Decision) String() string {
	return string(d)
}

func (d Decision) IsValid() bool {
	return d == DecisionApprove || d == DecisionReject
}

func (d Decision) IsApprove() bool {
	return d == DecisionApprove
}

func (d Decision) IsReject() bool {
	return d == DecisionReject
}

func NewDecision(s string) (Decision, error) {
	d := Decision(s)
	if !d.IsValid() {
		return "", fmt.Errorf("invalid decision: %s", s)
	}
	return d, nil
}
