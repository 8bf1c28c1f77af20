// Copyright (c) 2026 TimesNews Media. All rights reserved.

/*
Package admin implements the staff-facing account moderation layer.

It covers everything a newsroom administrator does with accounts: listing and
searching members, creating staff accounts with an explicit role, blocking
misbehaving users, and promoting or demoting roles.

# Authorization

Every operation takes the acting principal and evaluates the authorization
policy before touching storage. Admin accounts are immune to blocking and
demotion, so the newsroom can never lock itself out.
*/
package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/timesnews/api/internal/platform/apperr"
	"github.com/timesnews/api/internal/platform/sec"
	"github.com/timesnews/api/internal/users/auth"
	"github.com/timesnews/api/pkg/uuid"
)

// # Service Layer

// Counter reports the total number of rows for a domain resource.
//
// The dashboard aggregates counters from several domains without this
// package importing any of them.
type Counter interface {
	Count(context context.Context) (int, error)
}

// Service orchestrates account moderation for newsroom staff.
type Service struct {
	userRepository auth.UserRepository
	counters       map[string]Counter
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
//
// The counters map keys become the JSON field names of the dashboard stats.
func NewService(userRepo auth.UserRepository, counters map[string]Counter, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		counters:       counters,
		logger:         logger,
	}
}

// # Account Listing

/*
ListUsers returns a moderation page of accounts matching the filter.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - filter: auth.ListFilter

Returns:
  - []*auth.User: Matching accounts
  - int: Total count
  - error: Forbidden or storage failures
*/
func (service *Service) ListUsers(context context.Context, actor *sec.Principal, filter auth.ListFilter) ([]*auth.User, int, error) {
	if err := sec.Authorize(actor, sec.CapabilityManageUsers); err != nil {
		return nil, 0, err
	}

	users, total, err := service.userRepository.List(context, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("admin_service_list_users_failed: %w", err)
	}

	return users, total, nil
}

/*
GetUser returns a single account for the moderation detail view.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - userID: string

Returns:
  - *auth.User: Hydrated account
  - error: Forbidden, NotFound or storage failures
*/
func (service *Service) GetUser(context context.Context, actor *sec.Principal, userID string) (*auth.User, error) {
	if err := sec.Authorize(actor, sec.CapabilityManageUsers); err != nil {
		return nil, err
	}
	return service.userRepository.FindByID(context, userID)
}

// # Account Creation

// CreateUserInput holds the data for a staff-created account.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Role     string
}

/*
CreateUser creates an account with an explicit role.

Description: Unlike self-registration, this path allows the admin to assign
any role at creation time, including staff roles.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - input: CreateUserInput

Returns:
  - *auth.User: Created account
  - error: Forbidden, Validation, Conflict or storage failures
*/
func (service *Service) CreateUser(context context.Context, actor *sec.Principal, input CreateUserInput) (*auth.User, error) {
	if err := sec.Authorize(actor, sec.CapabilityManageUsers); err != nil {
		return nil, err
	}

	role, ok := sec.ParseRole(input.Role)
	if !ok {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   auth.FieldRole,
			Message: fmt.Sprintf("Must be one of: %v", sec.RoleNames()),
		})
	}

	// Identity normalization and uniqueness, same contract as self-registration.
	input.Username = auth.NormalizeIdentity(input.Username)
	input.Email = auth.NormalizeIdentity(input.Email)

	if _, err := service.userRepository.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}
	if _, err := service.userRepository.FindByUsername(context, input.Username); err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("admin_service_hash_failed: %w", err)
	}

	user := &auth.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		FullName:     input.FullName,
		Role:         role,
		IsBlocked:    false,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("admin_service_create_user_failed: %w", err)
	}

	service.logger.Info("admin_user_created",
		slog.String("actor_id", actor.UserID),
		slog.String("user_id", user.ID),
		slog.String("role", string(role)),
	)

	return user, nil
}

// # Moderation

/*
SetBlocked blocks or unblocks a target account.

Description: Blocking takes effect on the target's very next request because
the authentication gate reloads account state per request. Admin accounts
can never be blocked.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - targetID: string
  - blocked: bool

Returns:
  - *auth.User: Updated account
  - error: Forbidden, NotFound or storage failures
*/
func (service *Service) SetBlocked(context context.Context, actor *sec.Principal, targetID string, blocked bool) (*auth.User, error) {
	if err := sec.Authorize(actor, sec.CapabilityManageUsers); err != nil {
		return nil, err
	}

	target, err := service.userRepository.FindByID(context, targetID)
	if err != nil {
		return nil, err
	}

	if err := sec.CheckAdminImmunity(target.Role); err != nil {
		return nil, err
	}

	if err := service.userRepository.SetBlocked(context, targetID, blocked); err != nil {
		return nil, fmt.Errorf("admin_service_set_blocked_failed: %w", err)
	}

	// A blocked account must not keep a live refresh token around. The
	// block itself already holds (both the request gate and Refresh check
	// the flag), so a failed clear is logged rather than fatal.
	if blocked {
		if err := service.userRepository.SetRefreshToken(context, targetID, ""); err != nil {
			service.logger.Error("admin_block_token_revoke_failed",
				slog.String("user_id", targetID),
				slog.String("error", err.Error()),
			)
		}
	}

	target.IsBlocked = blocked

	service.logger.Warn("admin_user_block_changed",
		slog.String("actor_id", actor.UserID),
		slog.String("user_id", targetID),
		slog.Bool("blocked", blocked),
	)

	return target, nil
}

/*
UpdateRole changes the role of a target account.

Description: The raw role string is validated against the closed role set.
Admin accounts can never be demoted.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - targetID: string
  - rawRole: string

Returns:
  - *auth.User: Updated account
  - error: Forbidden, Validation, NotFound or storage failures
*/
func (service *Service) UpdateRole(context context.Context, actor *sec.Principal, targetID, rawRole string) (*auth.User, error) {
	if err := sec.Authorize(actor, sec.CapabilityManageUsers); err != nil {
		return nil, err
	}

	role, ok := sec.ParseRole(rawRole)
	if !ok {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   auth.FieldRole,
			Message: fmt.Sprintf("Must be one of: %v", sec.RoleNames()),
		})
	}

	target, err := service.userRepository.FindByID(context, targetID)
	if err != nil {
		return nil, err
	}

	if err := sec.CheckAdminImmunity(target.Role); err != nil {
		return nil, err
	}

	if err := service.userRepository.SetRole(context, targetID, role); err != nil {
		return nil, fmt.Errorf("admin_service_update_role_failed: %w", err)
	}

	target.Role = role

	service.logger.Info("admin_user_role_changed",
		slog.String("actor_id", actor.UserID),
		slog.String("user_id", targetID),
		slog.String("role", string(role)),
	)

	return target, nil
}

/*
DeleteUser permanently removes a target account.

Description: Admin accounts are covered by the same immunity as blocking
and demotion; deletion is strictly stronger than either.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - targetID: string

Returns:
  - error: Forbidden, NotFound or storage failures
*/
func (service *Service) DeleteUser(context context.Context, actor *sec.Principal, targetID string) error {
	if err := sec.Authorize(actor, sec.CapabilityManageUsers); err != nil {
		return err
	}

	target, err := service.userRepository.FindByID(context, targetID)
	if err != nil {
		return err
	}

	if err := sec.CheckAdminImmunity(target.Role); err != nil {
		return err
	}

	if err := service.userRepository.Delete(context, targetID); err != nil {
		return fmt.Errorf("admin_service_delete_user_failed: %w", err)
	}

	service.logger.Warn("admin_user_deleted",
		slog.String("actor_id", actor.UserID),
		slog.String("user_id", targetID),
	)

	return nil
}

// # Dashboard

/*
DashboardStats aggregates resource counts for the staff dashboard.

Description: Available to all staff roles, not just admins. A failing
counter zeroes its field rather than failing the whole dashboard.

Parameters:
  - context: context.Context
  - actor: *sec.Principal

Returns:
  - map[string]int: Resource name to total count
  - error: Forbidden failures
*/
func (service *Service) DashboardStats(context context.Context, actor *sec.Principal) (map[string]int, error) {
	if err := sec.Authorize(actor, sec.CapabilityStaffDashboard); err != nil {
		return nil, err
	}

	stats := make(map[string]int, len(service.counters)+1)

	userCount, err := service.userRepository.Count(context)
	if err == nil {
		stats["users"] = userCount
	}

	for name, counter := range service.counters {
		count, err := counter.Count(context)
		if err != nil {
			service.logger.Error("admin_dashboard_counter_failed",
				slog.String("counter", name),
				slog.String("error", err.Error()),
			)
			continue
		}
		stats[name] = count
	}

	return stats, nil
}
