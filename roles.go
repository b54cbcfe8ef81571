package auth

// UserRole is the user's role
type UserRole string

const (
	// RoleGuest is a guest role (ie. view)
	RoleGuest UserRole = "guest"
	// RoleMember is a member (i.e. view, edit)
	RoleMember UserRole = "member"
	// RoleAdmin is an admin role (i.e. view, edit, create)
	RoleAdmin UserRole = "admin"
	// RoleOwner is an owner role (i.e. view, edit, create, delete)
	RoleOwner UserRole = "owner"
)

// IsValid checks if the role is one of the predefined valid roles
func (r UserRole) IsValid() bool {
	switch r {
	case RoleGuest, RoleMember, RoleAdmin, RoleOwner:
		return true
	default:
		return false
	}
}

// IsAtLeast checks if this role meets the minimum required level
func (r UserRole) IsAtLeast(minRole UserRole) bool {
	roleHierarchy := map[UserRole]int{
		RoleGuest:  0,
		RoleMember: 1,
		RoleAdmin:  2,
		RoleOwner:  3,
	}

	currentLevel, exists := roleHierarchy[r]
	if !exists {
		return false
	}

	minLevel, exists := roleHierarchy[minRole]
	if !exists {
		return false
	}

	return currentLevel >= minLevel
}

// GetAllRoles returns all predefined roles in hierarchical order
func GetAllRoles() []UserRole {
	return []UserRole{
		RoleGuest,
		RoleMember,
		RoleAdmin,
		RoleOwner,
	}
}

// ParseRole safely parses a string into a UserRole type
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	return role, role.IsValid()
}
