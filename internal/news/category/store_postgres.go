// Copyright (c) 2026 TimesNews Media. All rights reserved.

package category

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/timesnews/api/internal/platform/apperr"
	"github.com/timesnews/api/internal/platform/dberr"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const categoryColumns = `id, name, slug, description, isarchived, createdat, updatedat`

func scanCategory(row pgx.Row) (*Category, error) {
	category := &Category{}
	err := row.Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.Description,
		&category.IsArchived,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return category, nil
}

// FindByID retrieves a category by its primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Category, error) {
	const query = `SELECT ` + categoryColumns + ` FROM news.category WHERE id = $1`

	category, err := scanCategory(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Category")
		}
		return nil, fmt.Errorf("postgres_category_repo_find_by_id_failed: %w", err)
	}

	return category, nil
}

// FindBySlug retrieves an active category by its URL slug.
//
// Archived sections are invisible on the slug path, which only serves the
// public site.
func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Category, error) {
	const query = `SELECT ` + categoryColumns + ` FROM news.category WHERE slug = $1 AND isarchived = FALSE`

	category, err := scanCategory(repository.pool.QueryRow(context, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Category")
		}
		return nil, fmt.Errorf("postgres_category_repo_find_by_slug_failed: %w", err)
	}

	return category, nil
}

// List returns every active category ordered by name.
func (repository *PostgresRepository) List(context context.Context) ([]*Category, error) {
	const query = `SELECT ` + categoryColumns + ` FROM news.category WHERE isarchived = FALSE ORDER BY name ASC`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_category_repo_list_failed: %w", err)
	}
	defer rows.Close()

	categories := []*Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_category_repo_list_scan_failed: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_category_repo_list_rows_failed: %w", err)
	}

	return categories, nil
}

// Create persists a new category row.
func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	const query = `
		INSERT INTO news.category (id, name, slug, description, isarchived, createdat, updatedat)
		VALUES ($1, $2, $3, $4, FALSE, $5, $6)`

	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		category.ID,
		category.Name,
		category.Slug,
		category.Description,
		category.CreatedAt,
		category.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "category_create")
	}

	return nil
}

// Update persists changes to a category row.
func (repository *PostgresRepository) Update(context context.Context, category *Category) error {
	const query = `
		UPDATE news.category
		SET name = $2, slug = $3, description = $4, updatedat = $5
		WHERE id = $1`

	category.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		category.ID,
		category.Name,
		category.Slug,
		category.Description,
		category.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "category_update")
	}

	return nil
}

// SetArchived flips the archive flag on a category row.
func (repository *PostgresRepository) SetArchived(context context.Context, id string, archived bool) error {
	const query = "UPDATE news.category SET isarchived = $2, updatedat = NOW() WHERE id = $1"

	tag, err := repository.pool.Exec(context, query, id, archived)
	if err != nil {
		return dberr.Wrap(err, "category_set_archived")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}

	return nil
}

// Count returns the number of active categories.
func (repository *PostgresRepository) Count(context context.Context) (int, error) {
	var total int
	err := repository.pool.QueryRow(context, "SELECT COUNT(*) FROM news.category WHERE isarchived = FALSE").Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("postgres_category_repo_count_failed: %w", err)
	}
	return total, nil
}

var _ Repository = (*PostgresRepository)(nil)
