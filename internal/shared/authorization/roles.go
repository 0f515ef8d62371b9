// Package authorization defines the role model and request-level role
// checks. Domain-level guards (creator/assignee relationships) live in the
// ticket workflow table; this package only covers coarse role gating.
package authorization

type UserRole string

const (
	RoleRequester UserRole = "requester"
	RoleApprover  UserRole = "approver"
	RoleAdmin     UserRole = "admin"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// CanApprove reports whether the role may record approval decisions.
func (r UserRole) CanApprove() bool {
	return r == RoleApprover || r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleRequester, RoleApprover, RoleAdmin:
		return true
	}
	return false
}

// ParseUserRole maps a string onto a role, defaulting to requester for
// unknown values.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleRequester
}
