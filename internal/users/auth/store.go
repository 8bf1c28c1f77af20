// Copyright (c) 2026 TimesNews Media. All rights reserved.

package auth

import (
	"context"

	"github.com/timesnews/api/internal/platform/sec"
	"github.com/timesnews/api/pkg/pagination"
)

// # User Data Access

// ListFilter narrows and pages the account listing for moderation views.
type ListFilter struct {
	Search string // Matches username, email, or fullname.
	Role   string // Optional role filter. Empty means all roles.
	Params pagination.Params
}

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists changes to mutable profile fields.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, user *User) error

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, userID, newHash string) error

	/*
		SetRefreshToken overwrites the stored refresh token for the account.

		An empty token clears the stored value, which invalidates every
		outstanding refresh token for the account.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - token: string

		Returns:
		  - error: Persistence failures
	*/
	SetRefreshToken(context context.Context, userID, token string) error

	/*
		RotateRefreshToken atomically replaces the stored refresh token, but
		only if the currently stored value matches oldToken.

		This compare-and-swap semantics makes each refresh token single-use:
		two concurrent refreshes with the same token cannot both succeed.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - oldToken: string
		  - newToken: string

		Returns:
		  - bool: Whether the swap was applied
		  - error: Persistence failures
	*/
	RotateRefreshToken(context context.Context, userID, oldToken, newToken string) (bool, error)

	/*
		SetBlocked updates the blocked flag on the account.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - blocked: bool

		Returns:
		  - error: Persistence failures
	*/
	SetBlocked(context context.Context, userID string, blocked bool) error

	/*
		SetRole updates the role of the account.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - role: sec.Role

		Returns:
		  - error: Persistence failures
	*/
	SetRole(context context.Context, userID string, role sec.Role) error

	/*
		Delete permanently removes the account row.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, id string) error

	/*
		List returns a page of accounts matching the filter plus the total count.

		Parameters:
		  - context: context.Context
		  - filter: ListFilter

		Returns:
		  - []*User: Matching accounts
		  - int: Total count across all pages
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter ListFilter) ([]*User, int, error)

	/*
		Count returns the total number of accounts.

		Parameters:
		  - context: context.Context

		Returns:
		  - int: Account count
		  - error: Database retrieval failures
	*/
	Count(context context.Context) (int, error)
}
