package valueobjects

import (
	"fmt"
	"strings"
)

// Name represents a user display name value object
type Name struct {
	value string
}

func NewName(value string) (*Name, error) {
	trimmed := strings.TrimSpace(value)

	if trimmed == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}

	if len(trimmed) > 100 {
		return nil, fmt.Errorf("name cannot exceed 100 characters")
	}

	return &Name{value: trimmed}, nil
}

func (n *Name) String() string {
	return n.value
}

func (n *Name) Equals(other *Name) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.value == other.value
}
