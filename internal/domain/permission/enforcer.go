package permission

// PermissionEnforcer checks and manages role/resource/action policies.
type PermissionEnforcer interface {
	Enforce(subject string, resource string, action string) (bool, error)
	AddPolicy(role string, resource string, action string) error
	RemovePolicy(role string, resource string, action string) error
	GetPermissionsForRole(role string) ([][]string, error)
	LoadPolicy() error
}
