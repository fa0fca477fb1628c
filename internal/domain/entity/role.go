// Package entity contains the core business objects of the project.
package entity

import "strings"

// Role represents the marketplace role a token or account acts as.
type Role string

const (
	// RoleTrader books container capacity.
	RoleTrader Role = "trader"
	// RoleLSP supplies containers.
	RoleLSP Role = "lsp"
	// RoleAdmin approves LSPs and containers. Admins are not stored as users.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleTrader, RoleLSP, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole normalises role spellings found in older clients:
// "user" is a trader and the admin role may arrive upper-cased.
func ParseRole(s string) (Role, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "user" {
		return RoleTrader, true
	}

	role := Role(normalized)

	return role, role.IsValid()
}
