// Copyright (c) 2026 TimesNews Media. All rights reserved.

package setting

import (
	"context"
	"fmt"

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

// List returns every setting ordered by key.
func (repository *PostgresRepository) List(context context.Context) ([]*Setting, error) {
	const query = `SELECT key, value, updatedat FROM site.setting ORDER BY key ASC`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_setting_repo_list_failed: %w", err)
	}
	defer rows.Close()

	settings := []*Setting{}
	for rows.Next() {
		setting := &Setting{}
		if err := rows.Scan(&setting.Key, &setting.Value, &setting.UpdatedAt); err != nil {
			return nil, fmt.Errorf("postgres_setting_repo_list_scan_failed: %w", err)
		}
		settings = append(settings, setting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_setting_repo_list_rows_failed: %w", err)
	}

	return settings, nil
}

// Upsert inserts or overwrites a setting by key.
func (repository *PostgresRepository) Upsert(context context.Context, setting *Setting) error {
	const query = `
		INSERT INTO site.setting (key, value, updatedat)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updatedat = NOW()
		RETURNING updatedat`

	err := repository.pool.QueryRow(context, query, setting.Key, setting.Value).Scan(&setting.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "postgres_setting_repo_upsert")
	}

	return nil
}

// Delete removes a setting by key.
func (repository *PostgresRepository) Delete(context context.Context, key string) error {
	const query = `DELETE FROM site.setting WHERE key = $1`

	tag, err := repository.pool.Exec(context, query, key)
	if err != nil {
		return fmt.Errorf("postgres_setting_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Setting")
	}

	return nil
}
