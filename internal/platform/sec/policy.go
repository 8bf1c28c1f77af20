// Copyright (c) 2026 TimesNews Media. All rights reserved.

/*
Package sec isolates the security-sensitive core of the TimesNews API:
role and capability definitions, the declarative authorization policy,
password hashing, and JWT token management.

Architecture:

  - Roles/Capabilities: A closed four-role enum mapped to static capability groups.
  - Policy: One evaluator applied uniformly by every protected operation,
    replacing per-handler inline role checks that drift out of sync.
  - Tokens: HMAC-signed access and refresh tokens with independent secrets.

Domain services depend on this package; it depends on nothing but apperr.
*/
package sec

import "github.com/timesnews/api/internal/platform/apperr"

// # Principal

// Principal is the freshly-loaded, sanitized identity attached to a request.
//
// It is populated by the authentication gate from the account's CURRENT
// database row, never solely from token claims, so role and blocked-status
// checks can not act on stale data.
type Principal struct {
	UserID    string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      Role   `json:"role"`
	IsBlocked bool   `json:"-"`
}

// # Authorization Policy
//
// Every check runs the same fixed order: authentication presence, then
// blocked status, then role/ownership. The first failing step determines
// the error; later steps are never consulted.

// Authorize gates an action on a pure capability check.
//
// # Returns
//   - nil when the actor holds the capability.
//   - apperr.Unauthorized / apperr.Forbidden otherwise.
func Authorize(actor *Principal, capability Capability) error {
	if err := checkPresence(actor); err != nil {
		return err
	}
	if !actor.Role.Can(capability) {
		return apperr.Forbidden("Insufficient permissions")
	}
	return nil
}

// AuthorizeOwnerOr gates an action on a role-OR-ownership rule: the actor
// passes when they hold the capability, or when they own the resource.
//
// Destructive actions must NOT use this rule — deletion is capability-only,
// so an owner without the capability can edit but never delete their own
// resource. Use [Authorize] for those.
func AuthorizeOwnerOr(actor *Principal, ownerID string, capability Capability) error {
	if err := checkPresence(actor); err != nil {
		return err
	}
	if actor.Role.Can(capability) {
		return nil
	}
	if actor.UserID == ownerID {
		return nil
	}
	return apperr.Forbidden("You can only modify your own content")
}

// RequireActor gates an action on authentication alone, with no capability.
//
// Used by operations open to every signed-in account, such as commenting or
// voting. Blocked accounts are still rejected.
func RequireActor(actor *Principal) error {
	return checkPresence(actor)
}

// checkPresence applies the first two steps shared by every rule.
func checkPresence(actor *Principal) error {
	if actor == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if actor.IsBlocked {
		return apperr.Forbidden("Your account has been blocked. Please contact support.")
	}
	return nil
}

// # Protected Accounts

// CheckAdminImmunity forbids blocking or demoting an administrator.
//
// No actor, regardless of their own role, may set blocked=true or change the
// role of an account whose current role is admin. This is a confirmed product
// decision (the conservative resolution of an ambiguity in earlier releases).
func CheckAdminImmunity(targetRole Role) error {
	if targetRole == RoleAdmin {
		return apperr.Forbidden("Admin accounts can not be blocked or demoted")
	}
	return nil
}
