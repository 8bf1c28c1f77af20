// Copyright (c) 2026 TimesNews Media. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timesnews/api/internal/platform/apperr"
	"github.com/timesnews/api/internal/platform/sec"
)

// # Role Parsing

/*
TestParseRole verifies the closed role set and input normalization.
*/
func TestParseRole(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  sec.Role
		ok    bool
	}{
		{"admin", "admin", sec.RoleAdmin, true},
		{"editor", "editor", sec.RoleEditor, true},
		{"reporter", "reporter", sec.RoleReporter, true},
		{"reader", "reader", sec.RoleReader, true},
		{"uppercase", "ADMIN", sec.RoleAdmin, true},
		{"padded", "  editor ", sec.RoleEditor, true},
		{"unknown", "superuser", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, ok := sec.ParseRole(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, role)
			}
		})
	}
}

// # Capability Grants

/*
TestRole_Can verifies the capability grant table.
*/
func TestRole_Can(t *testing.T) {
	// Publishing is for admins and editors only
	assert.True(t, sec.RoleAdmin.Can(sec.CapabilityPublish))
	assert.True(t, sec.RoleEditor.Can(sec.CapabilityPublish))
	assert.False(t, sec.RoleReporter.Can(sec.CapabilityPublish))
	assert.False(t, sec.RoleReader.Can(sec.CapabilityPublish))

	// User management is admin only
	assert.True(t, sec.RoleAdmin.Can(sec.CapabilityManageUsers))
	assert.False(t, sec.RoleEditor.Can(sec.CapabilityManageUsers))

	// The staff dashboard is open to every staff role
	assert.True(t, sec.RoleReporter.Can(sec.CapabilityStaffDashboard))
	assert.False(t, sec.RoleReader.Can(sec.CapabilityStaffDashboard))
}

// # Policy Evaluation Order

/*
TestAuthorize verifies the fixed evaluation order: presence, then blocked
state, then capability.
*/
func TestAuthorize(t *testing.T) {
	// 1. Missing principal is 401 regardless of capability
	err := sec.Authorize(nil, sec.CapabilityPublish)
	requireStatus(t, err, 401)

	// 2. A blocked admin is 403 even though the role would grant everything
	blockedAdmin := &sec.Principal{UserID: "a1", Role: sec.RoleAdmin, IsBlocked: true}
	err = sec.Authorize(blockedAdmin, sec.CapabilityPublish)
	requireStatus(t, err, 403)

	// 3. An unblocked principal without the capability is 403
	reader := &sec.Principal{UserID: "r1", Role: sec.RoleReader}
	err = sec.Authorize(reader, sec.CapabilityPublish)
	requireStatus(t, err, 403)

	// 4. Granted capability passes
	editor := &sec.Principal{UserID: "e1", Role: sec.RoleEditor}
	assert.NoError(t, sec.Authorize(editor, sec.CapabilityPublish))
}

/*
TestAuthorizeOwnerOr verifies that ownership substitutes for a missing
capability, but never for presence or blocked checks.
*/
func TestAuthorizeOwnerOr(t *testing.T) {
	reporter := &sec.Principal{UserID: "rep1", Role: sec.RoleReporter}

	// 1. Owner may act without the capability
	assert.NoError(t, sec.AuthorizeOwnerOr(reporter, "rep1", sec.CapabilityPublish))

	// 2. Non-owner without the capability is 403
	err := sec.AuthorizeOwnerOr(reporter, "someone-else", sec.CapabilityPublish)
	requireStatus(t, err, 403)

	// 3. Non-owner with the capability passes
	editor := &sec.Principal{UserID: "e1", Role: sec.RoleEditor}
	assert.NoError(t, sec.AuthorizeOwnerOr(editor, "someone-else", sec.CapabilityPublish))

	// 4. A blocked owner is still 403
	blockedOwner := &sec.Principal{UserID: "rep1", Role: sec.RoleReporter, IsBlocked: true}
	err = sec.AuthorizeOwnerOr(blockedOwner, "rep1", sec.CapabilityPublish)
	requireStatus(t, err, 403)

	// 5. Anonymous is 401
	err = sec.AuthorizeOwnerOr(nil, "rep1", sec.CapabilityPublish)
	requireStatus(t, err, 401)
}

/*
TestCheckAdminImmunity verifies that only the admin role triggers immunity.
*/
func TestCheckAdminImmunity(t *testing.T) {
	err := sec.CheckAdminImmunity(sec.RoleAdmin)
	requireStatus(t, err, 403)

	assert.NoError(t, sec.CheckAdminImmunity(sec.RoleEditor))
	assert.NoError(t, sec.CheckAdminImmunity(sec.RoleReporter))
	assert.NoError(t, sec.CheckAdminImmunity(sec.RoleReader))
}

// # Password Hashing

/*
TestPasswordHashing verifies the bcrypt round trip.
*/
func TestPasswordHashing(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, sec.CheckPasswordHash("wrong password", hash))
}

// requireStatus asserts that err is an AppError with the given HTTP status.
func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected AppError, got %v", err)
	assert.Equal(t, status, appError.HTTPStatus)
}
