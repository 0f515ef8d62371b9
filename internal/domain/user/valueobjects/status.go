package valueobjects

import "fmt"

// Status is the account state. Users are never hard-deleted: disabling an
// account preserves the referential history of tickets and approvals.
type Status string

const (
	StatusActive   Status = "active"
	StatusDisabled Status = "disabled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusDisabled
}

func (s Status) IsActive() bool {
	return s == StatusActive
}

func (s Status) IsDisabled() bool {
	return s == StatusDisabled
}

func NewStatus(value string) (Status, error) {
	s := Status(value)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid user status: %s", value)
	}
	return s, nil
}
