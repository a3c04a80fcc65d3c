package model

type UserRole string

const (
	UserRoleAdministrator UserRole = "ADMINISTRATOR"
	UserRoleDispatcher    UserRole = "DISPATCHER"
	UserRoleDriver        UserRole = "DRIVER"
	UserRoleClient        UserRole = "CLIENT"
)

// Principal is the authenticated console operator.
type Principal struct {
	UserID   int64
	FullName string
	Role     UserRole
}

// CanDispatch reports whether the principal may use the order screens.
func (p Principal) CanDispatch() bool {
	return p.Role == UserRoleDispatcher || p.Role == UserRoleAdministrator
}
