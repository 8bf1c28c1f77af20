// Copyright (c) 2026 TimesNews Media. All rights reserved.

/*
Package auth implements the core identity and access management (IAM) system.

It handles everything from user registration and secure password hashing to the
access/refresh token lifecycle with rotation-on-use.

Architecture:

  - Service: Orchestrates business logic (Register, Login, Refresh).
  - Repository: Abstracted interface for PostgreSQL account storage.
  - Security: Leverages Bcrypt hashing and HMAC-signed JWTs.

The package ensures that identity data remains consistent and secure throughout
the platform's lifecycle.
*/
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/timesnews/api/internal/platform/apperr"
	"github.com/timesnews/api/internal/platform/sec"
	"github.com/timesnews/api/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for issuing and verifying security tokens.
type TokenProvider interface {

	// GenerateAccessToken creates a signed, short-lived JWT for the identity.
	GenerateAccessToken(identity sec.Identity) (string, error)

	// GenerateRefreshToken creates a signed, long-lived JWT carrying only the user id.
	GenerateRefreshToken(userID string) (string, error)

	// VerifyRefreshToken checks signature and expiry of a refresh token.
	VerifyRefreshToken(tokenStr string) (*sec.RefreshClaims, error)

	// AccessTokenTTL reports the configured access token lifetime.
	AccessTokenTTL() time.Duration

	// RefreshTokenTTL reports the configured refresh token lifetime.
	RefreshTokenTTL() time.Duration
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, tokenProv TokenProvider) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
	}
}

// LoadPrincipal resolves a user id to its current identity snapshot.
//
// This is the fresh-state lookup used by the authentication gate on every
// request, so role changes and blocks take effect without waiting for token
// expiry.
func (service *Service) LoadPrincipal(context context.Context, userID string) (*sec.Principal, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return user.Principal(), nil
}

// # Identity Normalization

// NormalizeIdentity lowercases and trims a username or email so identity
// fields are stored and looked up case-insensitively. "JDoe" and "jdoe"
// are the same account.
func NormalizeIdentity(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Deep-enrollment of a new member. Every self-registered account
starts as a reader; staff roles are only granted through the admin module.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - err: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Case-insensitive identity: stored lowercase, compared lowercase.
	input.Username = NormalizeIdentity(input.Username)
	input.Email = NormalizeIdentity(input.Email)

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Verify username uniqueness. Return a client-safe Conflict err.
	_, err = service.userRepository.FindByUsername(context, input.Username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		FullName:     input.FullName,
		Role:         sec.RoleReader,
		IsBlocked:    false,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string // Can be Username or Email
	Password string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login validates user credentials and issues a fresh token pair.

Description: Resolves the account by username or email, enforces the block
policy, performs constant-time password comparison, and stores the newly
issued refresh token on the account row. Any refresh token issued by an
earlier login is overwritten and therefore invalidated.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session credentials
  - err: NotFound, Forbidden, Unauthorized or internal failures

# Error Contract

The three failure classes are deliberately distinct: an unknown identity is
404, a blocked account is 403, and a wrong password is 401.
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {

	// Flexible login: look up by Username or Email
	login := NormalizeIdentity(input.Login)
	user, err := service.userRepository.FindByUsername(context, login)
	if err != nil {
		user, err = service.userRepository.FindByEmail(context, login)
	}

	if err != nil {
		return nil, apperr.NotFound("User")
	}

	// Blocked accounts are rejected before the password is even checked.
	if user.IsBlocked {
		return nil, apperr.Forbidden("Your account has been blocked. Please contact support.")
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	return service.issueSession(context, user)
}

// issueSession mints a token pair and stores the refresh token on the account.
func (service *Service) issueSession(context context.Context, user *User) (*LoginSession, error) {
	currentTime := time.Now()

	accessToken, err := service.tokenProvider.GenerateAccessToken(user.Identity())
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	refreshToken, err := service.tokenProvider.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	// Last-write-wins here: a fresh login replaces whatever token was stored.
	if err := service.userRepository.SetRefreshToken(context, user.ID, refreshToken); err != nil {
		return nil, fmt.Errorf("auth_service_store_refresh_token_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  currentTime.Add(service.tokenProvider.AccessTokenTTL()),
		RefreshTokenExpiresAt: currentTime.Add(service.tokenProvider.RefreshTokenTTL()),
		User:                  user,
	}, nil
}

/*
Logout clears the stored refresh token for the account.

Description: After logout no refresh token can mint new access tokens for
this account. The operation is idempotent: logging out an already
logged-out account succeeds.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - err: Storage failures
*/
func (service *Service) Logout(context context.Context, userID string) error {
	if err := service.userRepository.SetRefreshToken(context, userID, ""); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

// # Token Rotation

/*
Refresh implements the Refresh Token Rotation mechanism.

Description: A presented refresh token must pass three gates: a valid
signature, a live non-blocked account, and equality with the token currently
stored on the account row. The stored value is then atomically swapped for a
new token, making every refresh token single-use.

Parameters:
  - context: context.Context
  - presentedToken: string

Returns:
  - *LoginSession: Rotated session credentials
  - err: Unauthorized, Forbidden or storage failures
*/
func (service *Service) Refresh(context context.Context, presentedToken string) (*LoginSession, error) {

	// Gate 1: Cryptographic validity
	claims, err := service.tokenProvider.VerifyRefreshToken(presentedToken)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Gate 2: Account state
	user, err := service.userRepository.FindByID(context, claims.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	if user.IsBlocked {
		return nil, apperr.Forbidden("Your account has been blocked. Please contact support.")
	}

	// Gate 3: Stored-token equality. A token that was already rotated away
	// (or cleared by logout) is treated as stolen and rejected.
	if user.RefreshToken == "" || user.RefreshToken != presentedToken {
		return nil, apperr.Unauthorized("Refresh token has been revoked")
	}

	// Rotation: mint the replacement before swapping so the account is never
	// left without a valid token mid-flight.
	newRefreshToken, err := service.tokenProvider.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_mint_failed: %w", err)
	}

	// Compare-and-swap: exactly one concurrent refresh with the same
	// presented token can win this UPDATE.
	swapped, err := service.userRepository.RotateRefreshToken(context, user.ID, presentedToken, newRefreshToken)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_rotate_failed: %w", err)
	}
	if !swapped {
		return nil, apperr.Unauthorized("Refresh token has been revoked")
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(user.Identity())
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_access_token_failed: %w", err)
	}

	currentTime := time.Now()
	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          newRefreshToken,
		AccessTokenExpiresAt:  currentTime.Add(service.tokenProvider.AccessTokenTTL()),
		RefreshTokenExpiresAt: currentTime.Add(service.tokenProvider.RefreshTokenTTL()),
		User:                  user,
	}, nil
}

// # Profile Management

/*
Me returns the full profile of the authenticated user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: Hydrated profile
  - err: NotFound or storage failures
*/
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

// UpdateProfileInput holds the mutable profile fields.
//
// Nil pointers mean "leave unchanged" so partial updates are possible.
type UpdateProfileInput struct {
	Username  *string
	FullName  *string
	Bio       *string
	AvatarURL *string
}

/*
UpdateProfile applies partial changes to the authenticated user's profile.

Description: A changed username is re-checked for uniqueness before the
update is applied.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *User: Updated profile
  - err: Conflict or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		if requested := NormalizeIdentity(*input.Username); requested != user.Username {
			if _, err := service.userRepository.FindByUsername(context, requested); err == nil {
				return nil, apperr.Conflict("Username is already taken")
			}
			user.Username = requested
		}
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_update_profile_failed: %w", err)
	}

	return user, nil
}

/*
ChangePassword allows an authenticated user to update their credentials.

Description: Verifies the current password, stores the new hash, and clears
the stored refresh token so every other device must log in again.

Parameters:
  - context: context.Context
  - userID: string
  - currentPassword: string
  - newPassword: string

Returns:
  - err: Unauthorized or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword string) error {

	// Fetch user by ID
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	// Verify the current password before allowing change
	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	// Hash the brand new password
	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	// Update the database with the new hash
	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_change_password_update_failed: %w", err)
	}

	// Security Side Effect: clear the stored refresh token to force re-login.
	// A failed clear leaves old sessions alive, so it surfaces as an error
	// even though the new hash is already stored.
	if err := service.userRepository.SetRefreshToken(context, userID, ""); err != nil {
		return fmt.Errorf("auth_service_change_password_revoke_failed: %w", err)
	}

	return nil
}
