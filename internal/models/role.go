package models

// Role is the permission level attached to an Employee.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	default:
		return false
	}
}

// CanApproveAdjustments reports whether the role may approve stock adjustments.
func (r Role) CanApproveAdjustments() bool {
	return r == RoleAdmin || r == RoleManager
}

func (r Role) String() string {
	return string(r)
}
