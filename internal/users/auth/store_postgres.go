// Copyright (c) 2026 TimesNews Media. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/timesnews/api/internal/platform/apperr"
	"github.com/timesnews/api/internal/platform/dberr"
	"github.com/timesnews/api/internal/platform/sec"
)

// # User Repository

const userColumns = `id, username, email, passwordhash, fullname, avatarurl, bio, role, isblocked, refreshtoken, createdat, updatedat`

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// scanUser hydrates a single account row.
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.AvatarURL,
		&user.Bio,
		&user.Role,
		&user.IsBlocked,
		&user.RefreshToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
Create persists a new user record into the users.account table.

Description: Deep-persists account metadata, ensuring timestamps are initialized
if not provided.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, username, email, passwordhash, fullname, avatarurl, bio, role, isblocked, refreshtoken, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.AvatarURL,
		user.Bio,
		user.Role,
		user.IsBlocked,
		user.RefreshToken,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "user_create")
	}

	return nil
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users.account
		WHERE email = $1`

	user, err := scanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_email_failed: %w", err)
	}

	return user, nil
}

/*
FindByUsername retrieves a user record by their unique username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users.account
		WHERE username = $1`

	user, err := scanUser(repository.pool.QueryRow(context, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_username_failed: %w", err)
	}

	return user, nil
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: Not found or execution errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users.account
		WHERE id = $1`

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
Update persists changes to a user's mutable profile fields.

Description: Synchronizes the in-memory user state with the database,
refreshing the updatedat timestamp.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: Update failures
*/
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	const query = `
		UPDATE users.account
		SET username = $2, fullname = $3, avatarurl = $4, bio = $5, updatedat = $6
		WHERE id = $1`

	user.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.FullName,
		user.AvatarURL,
		user.Bio,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "user_update")
	}

	return nil
}

/*
UpdatePassword updates only the password hash for a specific user.

Parameters:
  - context: context.Context
  - userID: string
  - newHash: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	const query = `
		UPDATE users.account
		SET passwordhash = $2, updatedat = $3
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, newHash, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_password_failed: %w", err)
	}

	return nil
}

/*
SetRefreshToken overwrites the stored refresh token for the account.

Parameters:
  - context: context.Context
  - userID: string
  - token: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) SetRefreshToken(context context.Context, userID, token string) error {
	const query = `
		UPDATE users.account
		SET refreshtoken = $2, updatedat = $3
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, token, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_set_refresh_token_failed: %w", err)
	}

	return nil
}

/*
RotateRefreshToken atomically swaps the stored refresh token if it matches oldToken.

Description: Compare-and-swap in a single UPDATE. The WHERE clause carries the
expected old value so that concurrent refreshes with the same token race on
the row and exactly one wins.

Parameters:
  - context: context.Context
  - userID: string
  - oldToken: string
  - newToken: string

Returns:
  - bool: Whether this call won the swap
  - error: Execution errors
*/
func (repository *PostgresUserRepository) RotateRefreshToken(context context.Context, userID, oldToken, newToken string) (bool, error) {
	const query = `
		UPDATE users.account
		SET refreshtoken = $3, updatedat = $4
		WHERE id = $1 AND refreshtoken = $2`

	tag, err := repository.pool.Exec(context, query, userID, oldToken, newToken, time.Now())
	if err != nil {
		return false, fmt.Errorf("postgres_user_repo_rotate_refresh_token_failed: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

/*
SetBlocked updates the blocked flag on the account.

Parameters:
  - context: context.Context
  - userID: string
  - blocked: bool

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) SetBlocked(context context.Context, userID string, blocked bool) error {
	const query = "UPDATE users.account SET isblocked = $2, updatedat = $3 WHERE id = $1"
	_, err := repository.pool.Exec(context, query, userID, blocked, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_set_blocked_failed: %w", err)
	}
	return nil
}

/*
SetRole updates the role of the account.

Parameters:
  - context: context.Context
  - userID: string
  - role: sec.Role

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) SetRole(context context.Context, userID string, role sec.Role) error {
	const query = "UPDATE users.account SET role = $2, updatedat = $3 WHERE id = $1"
	_, err := repository.pool.Exec(context, query, userID, role, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_set_role_failed: %w", err)
	}
	return nil
}

/*
Delete permanently removes the account row.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) Delete(context context.Context, id string) error {
	const query = "DELETE FROM users.account WHERE id = $1"
	_, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_delete_failed: %w", err)
	}
	return nil
}

/*
List returns a page of accounts matching the filter plus the total count.

Description: Builds a dynamic WHERE clause for the optional search and role
filters, then runs a COUNT and a page query with the same conditions.

Parameters:
  - context: context.Context
  - filter: ListFilter

Returns:
  - []*User: Matching accounts
  - int: Total count across all pages
  - error: Database retrieval failures
*/
func (repository *PostgresUserRepository) List(context context.Context, filter ListFilter) ([]*User, int, error) {

	// Dynamic WHERE clause construction
	var whereBuilder strings.Builder
	whereBuilder.WriteString(" WHERE 1=1")
	args := []interface{}{}
	argID := 0

	if filter.Search != "" {
		argID++
		whereBuilder.WriteString(fmt.Sprintf(" AND (username ILIKE $%d OR email ILIKE $%d OR fullname ILIKE $%d)", argID, argID, argID))
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.Role != "" {
		argID++
		whereBuilder.WriteString(fmt.Sprintf(" AND role = $%d", argID))
		args = append(args, filter.Role)
	}

	whereClause := whereBuilder.String()

	countQuery := "SELECT COUNT(*) FROM users.account" + whereClause
	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_user_repo_count_failed: %w", err)
	}

	pageQuery := fmt.Sprintf(
		"SELECT "+userColumns+" FROM users.account%s ORDER BY createdat DESC LIMIT $%d OFFSET $%d",
		whereClause, argID+1, argID+2,
	)
	args = append(args, filter.Params.Limit, filter.Params.Offset())

	rows, err := repository.pool.Query(context, pageQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_user_repo_list_failed: %w", err)
	}
	defer rows.Close()

	users := make([]*User, 0, filter.Params.Limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_user_repo_list_scan_failed: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_user_repo_list_rows_failed: %w", err)
	}

	return users, total, nil
}

/*
Count returns the total number of accounts.

Parameters:
  - context: context.Context

Returns:
  - int: Account count
  - error: Execution errors
*/
func (repository *PostgresUserRepository) Count(context context.Context) (int, error) {
	var total int
	err := repository.pool.QueryRow(context, "SELECT COUNT(*) FROM users.account").Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("postgres_user_repo_count_all_failed: %w", err)
	}
	return total, nil
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepository)(nil)
