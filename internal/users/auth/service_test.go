// Copyright (c) 2026 TimesNews Media. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timesnews/api/internal/platform/apperr"
	"github.com/timesnews/api/internal/platform/sec"
)

// # Test Doubles

// fakeUserRepository is an in-memory UserRepository for service tests.
type fakeUserRepository struct {
	users map[string]*User // keyed by ID

	// setRefreshTokenErr, when set, makes every SetRefreshToken call fail.
	setRefreshTokenErr error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*User)}
}

func (repo *fakeUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	if user, ok := repo.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, user := range repo.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	for _, user := range repo.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) Create(_ context.Context, user *User) error {
	repo.users[user.ID] = user
	return nil
}

func (repo *fakeUserRepository) Update(_ context.Context, user *User) error {
	stored, ok := repo.users[user.ID]
	if !ok {
		return apperr.NotFound("User")
	}
	stored.Username = user.Username
	stored.FullName = user.FullName
	stored.Bio = user.Bio
	stored.AvatarURL = user.AvatarURL
	return nil
}

func (repo *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	if user, ok := repo.users[userID]; ok {
		user.PasswordHash = newHash
		return nil
	}
	return apperr.NotFound("User")
}

func (repo *fakeUserRepository) SetRefreshToken(_ context.Context, userID, token string) error {
	if repo.setRefreshTokenErr != nil {
		return repo.setRefreshTokenErr
	}
	if user, ok := repo.users[userID]; ok {
		user.RefreshToken = token
		return nil
	}
	return apperr.NotFound("User")
}

func (repo *fakeUserRepository) RotateRefreshToken(_ context.Context, userID, oldToken, newToken string) (bool, error) {
	user, ok := repo.users[userID]
	if !ok || user.RefreshToken != oldToken {
		return false, nil
	}
	user.RefreshToken = newToken
	return true, nil
}

func (repo *fakeUserRepository) SetBlocked(_ context.Context, userID string, blocked bool) error {
	if user, ok := repo.users[userID]; ok {
		user.IsBlocked = blocked
		return nil
	}
	return apperr.NotFound("User")
}

func (repo *fakeUserRepository) SetRole(_ context.Context, userID string, role sec.Role) error {
	if user, ok := repo.users[userID]; ok {
		user.Role = role
		return nil
	}
	return apperr.NotFound("User")
}

func (repo *fakeUserRepository) Delete(_ context.Context, id string) error {
	delete(repo.users, id)
	return nil
}

func (repo *fakeUserRepository) List(_ context.Context, filter ListFilter) ([]*User, int, error) {
	users := make([]*User, 0, len(repo.users))
	for _, user := range repo.users {
		users = append(users, user)
	}
	return users, len(users), nil
}

func (repo *fakeUserRepository) Count(_ context.Context) (int, error) {
	return len(repo.users), nil
}

// fakeTokenProvider issues deterministic tokens for testing.
type fakeTokenProvider struct {
	counter int
}

func (provider *fakeTokenProvider) GenerateAccessToken(identity sec.Identity) (string, error) {
	return "access-" + identity.UserID, nil
}

func (provider *fakeTokenProvider) GenerateRefreshToken(userID string) (string, error) {
	provider.counter++
	return fmt.Sprintf("refresh-%s-%d", userID, provider.counter), nil
}

func (provider *fakeTokenProvider) VerifyRefreshToken(tokenStr string) (*sec.RefreshClaims, error) {
	if !strings.HasPrefix(tokenStr, "refresh-") {
		return nil, fmt.Errorf("malformed token")
	}
	// Strip the "refresh-" prefix and the trailing counter suffix.
	userID := strings.TrimPrefix(tokenStr, "refresh-")
	if i := strings.LastIndex(userID, "-"); i >= 0 {
		userID = userID[:i]
	}
	return &sec.RefreshClaims{UserID: userID}, nil
}

func (provider *fakeTokenProvider) AccessTokenTTL() time.Duration  { return 15 * time.Minute }
func (provider *fakeTokenProvider) RefreshTokenTTL() time.Duration { return 30 * 24 * time.Hour }

// # Helpers

func newTestService(t *testing.T) (*Service, *fakeUserRepository) {
	t.Helper()
	repo := newFakeUserRepository()
	return NewService(repo, &fakeTokenProvider{}), repo
}

func seedUser(t *testing.T, service *Service, repo *fakeUserRepository, username, email, password string) *User {
	t.Helper()
	user, err := service.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
		FullName: "Test Person",
	})
	require.NoError(t, err)
	return repo.users[user.ID]
}

// # Registration

/*
TestService_Register verifies enrollment, default role assignment, and
identity conflict detection.
*/
func TestService_Register(t *testing.T) {
	service, repo := newTestService(t)

	// 1. First registration succeeds with the reader role
	user, err := service.Register(context.Background(), RegisterInput{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Password: "password123",
		FullName: "Jane Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleReader, user.Role)
	assert.False(t, user.IsBlocked)
	assert.NotEqual(t, "password123", user.PasswordHash)

	// 2. Duplicate email is rejected with 409
	_, err = service.Register(context.Background(), RegisterInput{
		Username: "other",
		Email:    "jdoe@example.com",
		Password: "password123",
	})
	requireAppErrorStatus(t, err, 409)

	// 3. Duplicate username is rejected with 409
	_, err = service.Register(context.Background(), RegisterInput{
		Username: "jdoe",
		Email:    "fresh@example.com",
		Password: "password123",
	})
	requireAppErrorStatus(t, err, 409)

	assert.Len(t, repo.users, 1)
}

/*
TestService_Register_NormalizesIdentity verifies that username and email are
stored lowercase and that case-variant duplicates are rejected.
*/
func TestService_Register_NormalizesIdentity(t *testing.T) {
	service, repo := newTestService(t)

	// 1. Mixed-case, padded identity fields are stored normalized
	user, err := service.Register(context.Background(), RegisterInput{
		Username: "  JDoe ",
		Email:    "JDoe@Example.COM",
		Password: "password123",
		FullName: "Jane Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, "jdoe", user.Username)
	assert.Equal(t, "jdoe@example.com", user.Email)

	// 2. A case-variant of a taken identity is a duplicate, not a new account
	_, err = service.Register(context.Background(), RegisterInput{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Password: "password123",
	})
	requireAppErrorStatus(t, err, 409)
	assert.Len(t, repo.users, 1)

	// 3. Login succeeds regardless of the case the client types
	_, err = service.Login(context.Background(), LoginInput{Login: "JDOE", Password: "password123"})
	require.NoError(t, err)
	_, err = service.Login(context.Background(), LoginInput{Login: "jdoe@EXAMPLE.com", Password: "password123"})
	require.NoError(t, err)
}

// # Login

/*
TestService_Login exercises the three distinct login failure classes and the
refresh token side effect of a successful login.
*/
func TestService_Login(t *testing.T) {
	service, repo := newTestService(t)
	stored := seedUser(t, service, repo, "jdoe", "jdoe@example.com", "password123")

	// 1. Unknown identity yields 404
	_, err := service.Login(context.Background(), LoginInput{Login: "ghost", Password: "password123"})
	requireAppErrorStatus(t, err, 404)

	// 2. Wrong password yields 401
	_, err = service.Login(context.Background(), LoginInput{Login: "jdoe", Password: "wrongpass"})
	requireAppErrorStatus(t, err, 401)

	// 3. Blocked account yields 403 even with the correct password
	stored.IsBlocked = true
	_, err = service.Login(context.Background(), LoginInput{Login: "jdoe", Password: "password123"})
	requireAppErrorStatus(t, err, 403)
	stored.IsBlocked = false

	// 4. Username login succeeds and persists the refresh token
	session, err := service.Login(context.Background(), LoginInput{Login: "jdoe", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, session.RefreshToken, stored.RefreshToken)

	// 5. Email login resolves the same account
	emailSession, err := service.Login(context.Background(), LoginInput{Login: "jdoe@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, emailSession.User.ID)

	// 6. A second login overwrites the previous stored token
	assert.NotEqual(t, session.RefreshToken, stored.RefreshToken)
}

// # Token Rotation

/*
TestService_Refresh verifies rotation-on-use: each refresh token is
single-use, and a replayed token is rejected.
*/
func TestService_Refresh(t *testing.T) {
	service, repo := newTestService(t)
	stored := seedUser(t, service, repo, "jdoe", "jdoe@example.com", "password123")

	session, err := service.Login(context.Background(), LoginInput{Login: "jdoe", Password: "password123"})
	require.NoError(t, err)

	// 1. A fresh token rotates successfully
	rotated, err := service.Refresh(context.Background(), session.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)
	assert.Equal(t, rotated.RefreshToken, stored.RefreshToken)

	// 2. Replaying the consumed token fails with 401
	_, err = service.Refresh(context.Background(), session.RefreshToken)
	requireAppErrorStatus(t, err, 401)

	// 3. The rotated token still works
	_, err = service.Refresh(context.Background(), rotated.RefreshToken)
	require.NoError(t, err)
}

/*
TestService_Refresh_BlockedAccount verifies that a blocked account cannot
rotate tokens even when the presented token matches the stored one.
*/
func TestService_Refresh_BlockedAccount(t *testing.T) {
	service, repo := newTestService(t)
	stored := seedUser(t, service, repo, "jdoe", "jdoe@example.com", "password123")

	session, err := service.Login(context.Background(), LoginInput{Login: "jdoe", Password: "password123"})
	require.NoError(t, err)

	stored.IsBlocked = true

	_, err = service.Refresh(context.Background(), session.RefreshToken)
	requireAppErrorStatus(t, err, 403)
}

/*
TestService_Logout verifies that logout clears the stored token, revokes
outstanding refresh tokens, and is idempotent.
*/
func TestService_Logout(t *testing.T) {
	service, repo := newTestService(t)
	stored := seedUser(t, service, repo, "jdoe", "jdoe@example.com", "password123")

	session, err := service.Login(context.Background(), LoginInput{Login: "jdoe", Password: "password123"})
	require.NoError(t, err)

	// 1. Logout clears the stored token
	require.NoError(t, service.Logout(context.Background(), stored.ID))
	assert.Empty(t, stored.RefreshToken)

	// 2. The previously issued refresh token is now rejected
	_, err = service.Refresh(context.Background(), session.RefreshToken)
	requireAppErrorStatus(t, err, 401)

	// 3. Logging out again succeeds (idempotent)
	require.NoError(t, service.Logout(context.Background(), stored.ID))
}

// # Profile Management

/*
TestService_ChangePassword verifies current-password enforcement and the
session invalidation side effect.
*/
func TestService_ChangePassword(t *testing.T) {
	service, repo := newTestService(t)
	stored := seedUser(t, service, repo, "jdoe", "jdoe@example.com", "password123")

	_, err := service.Login(context.Background(), LoginInput{Login: "jdoe", Password: "password123"})
	require.NoError(t, err)

	// 1. Wrong current password is rejected with 401
	err = service.ChangePassword(context.Background(), stored.ID, "wrongpass", "newpassword1")
	requireAppErrorStatus(t, err, 401)

	// 2. Correct current password succeeds and clears the stored token
	err = service.ChangePassword(context.Background(), stored.ID, "password123", "newpassword1")
	require.NoError(t, err)
	assert.Empty(t, stored.RefreshToken)

	// 3. The new password now authenticates
	_, err = service.Login(context.Background(), LoginInput{Login: "jdoe", Password: "newpassword1"})
	require.NoError(t, err)
}

/*
TestService_ChangePassword_RevokeFailureSurfaces verifies that a failed
refresh token clear is reported instead of silently leaving sessions alive.
*/
func TestService_ChangePassword_RevokeFailureSurfaces(t *testing.T) {
	service, repo := newTestService(t)
	stored := seedUser(t, service, repo, "jdoe", "jdoe@example.com", "password123")

	session, err := service.Login(context.Background(), LoginInput{Login: "jdoe", Password: "password123"})
	require.NoError(t, err)

	repo.setRefreshTokenErr = errors.New("connection reset")

	err = service.ChangePassword(context.Background(), stored.ID, "password123", "newpassword1")
	require.Error(t, err)

	// The stored token was never cleared, which is exactly why the caller
	// must hear about it.
	assert.Equal(t, session.RefreshToken, stored.RefreshToken)
}

/*
TestService_UpdateProfile verifies partial updates and username conflict detection.
*/
func TestService_UpdateProfile(t *testing.T) {
	service, repo := newTestService(t)
	stored := seedUser(t, service, repo, "jdoe", "jdoe@example.com", "password123")
	seedUser(t, service, repo, "taken", "taken@example.com", "password123")

	// 1. Renaming to a taken username is rejected with 409
	taken := "taken"
	_, err := service.UpdateProfile(context.Background(), stored.ID, UpdateProfileInput{Username: &taken})
	requireAppErrorStatus(t, err, 409)

	// 2. Partial update only touches provided fields
	bio := "Staff reporter covering local politics."
	updated, err := service.UpdateProfile(context.Background(), stored.ID, UpdateProfileInput{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, bio, updated.Bio)
	assert.Equal(t, "jdoe", updated.Username)
}

// requireAppErrorStatus asserts that err is an AppError with the given HTTP status.
func requireAppErrorStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an AppError, got %v", err)
	assert.Equal(t, status, appError.HTTPStatus)
}
