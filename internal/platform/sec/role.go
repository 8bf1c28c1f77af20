// Copyright (c) 2026 TimesNews Media. All rights reserved.

package sec

import "strings"

// # User Roles

// Role represents the authorization level granted to an account.
//
// It is a closed enumeration: exactly four values exist, and every
// role-based branch in the codebase must handle all four.
type Role string

const (
	// Unrestricted system access, including user management
	RoleAdmin Role = "admin"

	// Can publish, edit, and delete any content
	RoleEditor Role = "editor"

	// Can create and edit their own articles (drafts only)
	RoleReporter Role = "reporter"

	// Default role for standard registered users: read and comment
	RoleReader Role = "reader"
)

// Roles returns all valid role values, ordered by privilege (highest first).
func Roles() []Role {
	return []Role{RoleAdmin, RoleEditor, RoleReporter, RoleReader}
}

// RoleNames returns the valid role values as plain strings for validation messages.
func RoleNames() []string {
	roles := Roles()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return names
}

// ParseRole converts a raw string into a [Role].
//
// # Returns
//   - The matching Role and true when the input is one of the four valid values.
//   - The zero Role and false otherwise.
func ParseRole(raw string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	switch role {
	case RoleAdmin, RoleEditor, RoleReporter, RoleReader:
		return role, true
	}
	return "", false
}

// Valid reports whether the role is one of the four enumerated values.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// # Capability Groups

// Capability is a named group of actions granted to a set of roles.
//
// Capabilities are static: they are derived from the role at check time and
// never stored per-account.
type Capability string

const (
	// CapabilityPublish covers publishing and editing ANY content
	// (articles, categories, pages) as well as deleting it.
	CapabilityPublish Capability = "publish"

	// CapabilityManageUsers covers the whole account surface: listing
	// and inspecting users, creating them, blocking accounts, and
	// changing roles.
	CapabilityManageUsers Capability = "manage_users"

	// CapabilityStaffDashboard covers read access to the staff/admin
	// dashboard surfaces (stats, unfiltered article lists, messages).
	CapabilityStaffDashboard Capability = "staff_dashboard"
)

// capabilityGrants is the single source of truth for the role → capability mapping.
var capabilityGrants = map[Capability][]Role{
	CapabilityPublish:        {RoleAdmin, RoleEditor},
	CapabilityManageUsers:    {RoleAdmin},
	CapabilityStaffDashboard: {RoleAdmin, RoleEditor, RoleReporter},
}

// Can reports whether the role is a member of the capability's grant set.
func (r Role) Can(capability Capability) bool {
	for _, granted := range capabilityGrants[capability] {
		if r == granted {
			return true
		}
	}
	return false
}

// IsStaff reports whether the role belongs to the editorial staff.
func (r Role) IsStaff() bool {
	return r.Can(CapabilityStaffDashboard)
}
