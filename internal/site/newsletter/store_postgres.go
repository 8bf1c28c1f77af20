// Copyright (c) 2026 TimesNews Media. All rights reserved.

package newsletter

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/timesnews/api/internal/platform/apperr"
	"github.com/timesnews/api/internal/platform/dberr"
	"github.com/timesnews/api/pkg/pagination"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var _ Repository = (*PostgresRepository)(nil)

const subscriptionColumns = `id, email, isactive, createdat, updatedat`

func scanSubscription(row pgx.Row) (*Subscription, error) {
	subscription := &Subscription{}
	err := row.Scan(
		&subscription.ID,
		&subscription.Email,
		&subscription.IsActive,
		&subscription.CreatedAt,
		&subscription.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return subscription, nil
}

// FindByEmail retrieves a subscription by its address.
func (repository *PostgresRepository) FindByEmail(context context.Context, email string) (*Subscription, error) {
	const query = `SELECT ` + subscriptionColumns + ` FROM site.newsletter WHERE email = $1`

	subscription, err := scanSubscription(repository.pool.QueryRow(context, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Subscription")
		}
		return nil, fmt.Errorf("postgres_newsletter_repo_find_by_email_failed: %w", err)
	}

	return subscription, nil
}

// List returns a page of active subscriptions, newest first.
func (repository *PostgresRepository) List(context context.Context, params pagination.Params) ([]*Subscription, int, error) {
	const query = `SELECT ` + subscriptionColumns + ` FROM site.newsletter
		WHERE isactive = TRUE
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_newsletter_repo_list_failed: %w", err)
	}
	defer rows.Close()

	subscriptions := []*Subscription{}
	for rows.Next() {
		subscription, err := scanSubscription(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_newsletter_repo_list_scan_failed: %w", err)
		}
		subscriptions = append(subscriptions, subscription)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_newsletter_repo_list_rows_failed: %w", err)
	}

	total, err := repository.Count(context)
	if err != nil {
		return nil, 0, err
	}

	return subscriptions, total, nil
}

// Create persists a new subscription.
func (repository *PostgresRepository) Create(context context.Context, subscription *Subscription) error {
	const query = `
		INSERT INTO site.newsletter (id, email, isactive, createdat, updatedat)
		VALUES ($1, $2, TRUE, NOW(), NOW())
		RETURNING createdat, updatedat`

	err := repository.pool.QueryRow(context, query,
		subscription.ID,
		subscription.Email,
	).Scan(&subscription.CreatedAt, &subscription.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "postgres_newsletter_repo_create")
	}

	return nil
}

// SetActive activates or deactivates a subscription by email.
func (repository *PostgresRepository) SetActive(context context.Context, email string, active bool) error {
	const query = `UPDATE site.newsletter SET isactive = $2, updatedat = NOW() WHERE email = $1`

	tag, err := repository.pool.Exec(context, query, email, active)
	if err != nil {
		return fmt.Errorf("postgres_newsletter_repo_set_active_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Subscription")
	}

	return nil
}

// Count returns the number of active subscriptions.
func (repository *PostgresRepository) Count(context context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM site.newsletter WHERE isactive = TRUE`

	var total int
	if err := repository.pool.QueryRow(context, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("postgres_newsletter_repo_count_failed: %w", err)
	}

	return total, nil
}
