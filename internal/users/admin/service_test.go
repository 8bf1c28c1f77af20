// Copyright (c) 2026 TimesNews Media. All rights reserved.

package admin

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timesnews/api/internal/platform/apperr"
	"github.com/timesnews/api/internal/platform/sec"
	"github.com/timesnews/api/internal/users/auth"
)

// # Test Doubles

// memoryUserRepository is a minimal in-memory auth.UserRepository for tests.
type memoryUserRepository struct {
	users map[string]*auth.User

	// setRefreshTokenErr, when set, makes every SetRefreshToken call fail.
	setRefreshTokenErr error
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]*auth.User)}
}

func (repo *memoryUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := repo.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range repo.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range repo.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryUserRepository) Create(_ context.Context, user *auth.User) error {
	repo.users[user.ID] = user
	return nil
}

func (repo *memoryUserRepository) Update(_ context.Context, user *auth.User) error {
	repo.users[user.ID] = user
	return nil
}

func (repo *memoryUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	repo.users[userID].PasswordHash = newHash
	return nil
}

func (repo *memoryUserRepository) SetRefreshToken(_ context.Context, userID, token string) error {
	if repo.setRefreshTokenErr != nil {
		return repo.setRefreshTokenErr
	}
	repo.users[userID].RefreshToken = token
	return nil
}

func (repo *memoryUserRepository) RotateRefreshToken(_ context.Context, userID, oldToken, newToken string) (bool, error) {
	user := repo.users[userID]
	if user.RefreshToken != oldToken {
		return false, nil
	}
	user.RefreshToken = newToken
	return true, nil
}

func (repo *memoryUserRepository) SetBlocked(_ context.Context, userID string, blocked bool) error {
	repo.users[userID].IsBlocked = blocked
	return nil
}

func (repo *memoryUserRepository) SetRole(_ context.Context, userID string, role sec.Role) error {
	repo.users[userID].Role = role
	return nil
}

func (repo *memoryUserRepository) Delete(_ context.Context, id string) error {
	delete(repo.users, id)
	return nil
}

func (repo *memoryUserRepository) List(_ context.Context, filter auth.ListFilter) ([]*auth.User, int, error) {
	users := make([]*auth.User, 0, len(repo.users))
	for _, user := range repo.users {
		users = append(users, user)
	}
	return users, len(users), nil
}

func (repo *memoryUserRepository) Count(_ context.Context) (int, error) {
	return len(repo.users), nil
}

type staticCounter int

func (counter staticCounter) Count(_ context.Context) (int, error) {
	return int(counter), nil
}

// # Helpers

func newTestService() (*Service, *memoryUserRepository) {
	repo := newMemoryUserRepository()
	logger := slog.Default()
	counters := map[string]Counter{"articles": staticCounter(12)}
	return NewService(repo, counters, logger), repo
}

func seedAccount(repo *memoryUserRepository, id string, role sec.Role) *auth.User {
	user := &auth.User{
		ID:       id,
		Username: "user-" + id,
		Email:    id + "@example.com",
		Role:     role,
	}
	repo.users[id] = user
	return user
}

func adminActor() *sec.Principal {
	return &sec.Principal{UserID: "admin-1", Role: sec.RoleAdmin}
}

// # Authorization Boundaries

/*
TestService_ListUsers_Authorization verifies that only admins can list accounts.
*/
func TestService_ListUsers_Authorization(t *testing.T) {
	service, repo := newTestService()
	seedAccount(repo, "u1", sec.RoleReader)

	// 1. Anonymous actor yields 401
	_, _, err := service.ListUsers(context.Background(), nil, auth.ListFilter{})
	requireStatus(t, err, 401)

	// 2. Editors are staff but cannot manage users
	editor := &sec.Principal{UserID: "e1", Role: sec.RoleEditor}
	_, _, err = service.ListUsers(context.Background(), editor, auth.ListFilter{})
	requireStatus(t, err, 403)

	// 3. Admins succeed
	users, total, err := service.ListUsers(context.Background(), adminActor(), auth.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, users, 1)
}

/*
TestService_CreateUser verifies role validation on staff-created accounts.
*/
func TestService_CreateUser(t *testing.T) {
	service, repo := newTestService()

	// 1. Unknown role name is a validation error
	_, err := service.CreateUser(context.Background(), adminActor(), CreateUserInput{
		Username: "scribe",
		Email:    "scribe@example.com",
		Password: "password123",
		Role:     "superuser",
	})
	requireStatus(t, err, 400)

	// 2. A valid staff role is assigned at creation
	user, err := service.CreateUser(context.Background(), adminActor(), CreateUserInput{
		Username: "scribe",
		Email:    "scribe@example.com",
		Password: "password123",
		Role:     "reporter",
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleReporter, user.Role)
	assert.Contains(t, repo.users, user.ID)
}

// # Admin Immunity

/*
TestService_SetBlocked verifies blocking, unblocking, and admin immunity.
*/
func TestService_SetBlocked(t *testing.T) {
	service, repo := newTestService()
	reader := seedAccount(repo, "r1", sec.RoleReader)
	reader.RefreshToken = "live-token"
	otherAdmin := seedAccount(repo, "a2", sec.RoleAdmin)

	// 1. Blocking a reader succeeds and revokes their refresh token
	blocked, err := service.SetBlocked(context.Background(), adminActor(), reader.ID, true)
	require.NoError(t, err)
	assert.True(t, blocked.IsBlocked)
	assert.Empty(t, repo.users[reader.ID].RefreshToken)

	// 2. Unblocking restores access
	unblocked, err := service.SetBlocked(context.Background(), adminActor(), reader.ID, false)
	require.NoError(t, err)
	assert.False(t, unblocked.IsBlocked)

	// 3. Admin accounts can never be blocked, even by another admin
	_, err = service.SetBlocked(context.Background(), adminActor(), otherAdmin.ID, true)
	requireStatus(t, err, 403)
	assert.False(t, repo.users[otherAdmin.ID].IsBlocked)
}

/*
TestService_SetBlocked_TokenRevokeFailureStillBlocks verifies that the block
holds even when the refresh token clear fails; the request gate rejects the
account either way.
*/
func TestService_SetBlocked_TokenRevokeFailureStillBlocks(t *testing.T) {
	service, repo := newTestService()
	reader := seedAccount(repo, "r1", sec.RoleReader)
	reader.RefreshToken = "live-token"
	repo.setRefreshTokenErr = errors.New("connection reset")

	blocked, err := service.SetBlocked(context.Background(), adminActor(), reader.ID, true)

	require.NoError(t, err)
	assert.True(t, blocked.IsBlocked)
	assert.True(t, repo.users[reader.ID].IsBlocked)
}

/*
TestService_UpdateRole verifies promotion, role validation, and admin immunity.
*/
func TestService_UpdateRole(t *testing.T) {
	service, repo := newTestService()
	reader := seedAccount(repo, "r1", sec.RoleReader)
	otherAdmin := seedAccount(repo, "a2", sec.RoleAdmin)

	// 1. Promoting a reader to editor succeeds
	updated, err := service.UpdateRole(context.Background(), adminActor(), reader.ID, "editor")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleEditor, updated.Role)

	// 2. Unknown role names are rejected before any lookup
	_, err = service.UpdateRole(context.Background(), adminActor(), reader.ID, "owner")
	requireStatus(t, err, 400)

	// 3. Admin accounts can never be demoted
	_, err = service.UpdateRole(context.Background(), adminActor(), otherAdmin.ID, "reader")
	requireStatus(t, err, 403)
	assert.Equal(t, sec.RoleAdmin, repo.users[otherAdmin.ID].Role)
}

/*
TestService_DeleteUser verifies deletion and that immunity extends to it.
*/
func TestService_DeleteUser(t *testing.T) {
	service, repo := newTestService()
	reader := seedAccount(repo, "r1", sec.RoleReader)
	otherAdmin := seedAccount(repo, "a2", sec.RoleAdmin)

	// 1. Deleting a reader succeeds
	require.NoError(t, service.DeleteUser(context.Background(), adminActor(), reader.ID))
	assert.NotContains(t, repo.users, reader.ID)

	// 2. Admin accounts cannot be deleted
	err := service.DeleteUser(context.Background(), adminActor(), otherAdmin.ID)
	requireStatus(t, err, 403)
	assert.Contains(t, repo.users, otherAdmin.ID)
}

// # Dashboard

/*
TestService_DashboardStats verifies staff access and counter aggregation.
*/
func TestService_DashboardStats(t *testing.T) {
	service, repo := newTestService()
	seedAccount(repo, "r1", sec.RoleReader)

	// 1. Readers cannot see the dashboard
	reader := &sec.Principal{UserID: "r1", Role: sec.RoleReader}
	_, err := service.DashboardStats(context.Background(), reader)
	requireStatus(t, err, 403)

	// 2. Reporters can; the stats include users and wired counters
	reporter := &sec.Principal{UserID: "rep1", Role: sec.RoleReporter}
	stats, err := service.DashboardStats(context.Background(), reporter)
	require.NoError(t, err)
	assert.Equal(t, 1, stats["users"])
	assert.Equal(t, 12, stats["articles"])
}

// # Promotion Scenario

/*
TestService_PromotionGrantsPublish walks a reader through promotion: before
the role change the account lacks the publish capability, afterwards it
holds it.
*/
func TestService_PromotionGrantsPublish(t *testing.T) {
	service, repo := newTestService()
	seedAccount(repo, "alice", sec.RoleReader)

	// 1. A freshly registered reader cannot publish
	alice, err := repo.FindByID(context.Background(), "alice")
	require.NoError(t, err)
	assert.False(t, alice.Role.Can(sec.CapabilityPublish))

	// 2. An admin promotes the account to editor
	promoted, err := service.UpdateRole(context.Background(), adminActor(), "alice", "editor")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleEditor, promoted.Role)

	// 3. The next request reloads the account and the capability holds
	alice, err = repo.FindByID(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, alice.Role.Can(sec.CapabilityPublish))
}

// requireStatus asserts that err is an AppError with the given HTTP status.
func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an AppError, got %v", err)
	assert.Equal(t, status, appError.HTTPStatus)
}
