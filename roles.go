package session

// IsValidRole checks if the role is one of the two platform roles
func IsValidRole(r UserRole) bool {
	switch r {
	case RoleCandidate, RoleRecruiter:
		return true
	default:
		return false
	}
}

// ParseRole safely parses a string into a UserRole
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	return role, IsValidRole(role)
}

// AllRoles returns the closed set of platform roles
func AllRoles() []UserRole {
	return []UserRole{RoleCandidate, RoleRecruiter}
}

// RoleAllowed reports whether role is in the allow-list. An empty allow-list
// permits any valid role.
func RoleAllowed(role UserRole, allowed []UserRole) bool {
	if !IsValidRole(role) {
		return false
	}
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == role {
			return true
		}
	}
	return false
}
