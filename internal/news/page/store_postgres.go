// Copyright (c) 2026 TimesNews Media. All rights reserved.

package page

import (
	"context"
	"errors"
	"fmt"

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

var _ Repository = (*PostgresRepository)(nil)

const pageColumns = `id, title, slug, content, createdat, updatedat`

func scanPage(row pgx.Row) (*Page, error) {
	page := &Page{}
	err := row.Scan(
		&page.ID,
		&page.Title,
		&page.Slug,
		&page.Content,
		&page.CreatedAt,
		&page.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return page, nil
}

// FindByID retrieves a page by its primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Page, error) {
	const query = `SELECT ` + pageColumns + ` FROM news.page WHERE id = $1`

	page, err := scanPage(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Page")
		}
		return nil, fmt.Errorf("postgres_page_repo_find_by_id_failed: %w", err)
	}

	return page, nil
}

// FindBySlug retrieves a page by its URL slug.
func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Page, error) {
	const query = `SELECT ` + pageColumns + ` FROM news.page WHERE slug = $1`

	page, err := scanPage(repository.pool.QueryRow(context, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Page")
		}
		return nil, fmt.Errorf("postgres_page_repo_find_by_slug_failed: %w", err)
	}

	return page, nil
}

// SlugExists reports whether any page already uses the slug.
func (repository *PostgresRepository) SlugExists(context context.Context, slug string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM news.page WHERE slug = $1)`

	var exists bool
	if err := repository.pool.QueryRow(context, query, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_page_repo_slug_exists_failed: %w", err)
	}

	return exists, nil
}

// List returns every page ordered by title.
func (repository *PostgresRepository) List(context context.Context) ([]*Page, error) {
	const query = `SELECT ` + pageColumns + ` FROM news.page ORDER BY title ASC`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_page_repo_list_failed: %w", err)
	}
	defer rows.Close()

	pages := []*Page{}
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_page_repo_list_scan_failed: %w", err)
		}
		pages = append(pages, page)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_page_repo_list_rows_failed: %w", err)
	}

	return pages, nil
}

// Create persists a new page.
func (repository *PostgresRepository) Create(context context.Context, page *Page) error {
	const query = `
		INSERT INTO news.page (id, title, slug, content, createdat, updatedat)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING createdat, updatedat`

	err := repository.pool.QueryRow(context, query,
		page.ID,
		page.Title,
		page.Slug,
		page.Content,
	).Scan(&page.CreatedAt, &page.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "postgres_page_repo_create")
	}

	return nil
}

// Update persists changes to a page.
func (repository *PostgresRepository) Update(context context.Context, page *Page) error {
	const query = `
		UPDATE news.page
		SET title = $2, slug = $3, content = $4, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat`

	err := repository.pool.QueryRow(context, query,
		page.ID,
		page.Title,
		page.Slug,
		page.Content,
	).Scan(&page.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("Page")
		}
		return dberr.Wrap(err, "postgres_page_repo_update")
	}

	return nil
}

// Delete removes a page.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM news.page WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_page_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Page")
	}

	return nil
}
