package store

import (
	"context"
	"fmt"

	"github.com/rpggio/portfolio/internal/domain/setting"
)

// SettingRepository implements setting.Repository.
type SettingRepository struct {
	db *DB
}

// NewSettingRepository creates a new SettingRepository
func NewSettingRepository(db *DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// List returns every stored setting ordered by key.
func (r *SettingRepository) List(ctx context.Context) ([]setting.Setting, error) {
	rows, err := r.db.query(ctx, `SELECT key, value, updated_at FROM site_settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	settings := []setting.Setting{}
	for rows.Next() {
		var s setting.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings = append(settings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settings: %w", err)
	}
	return settings, nil
}

// Upsert writes all settings in one transaction.
func (r *SettingRepository) Upsert(ctx context.Context, settings []setting.Setting) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := r.db.Rebind(`
		INSERT INTO site_settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`)
	for _, s := range settings {
		if _, err := tx.ExecContext(ctx, query, s.Key, s.Value, s.UpdatedAt); err != nil {
			return fmt.Errorf("failed to upsert setting %s: %w", s.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settings: %w", err)
	}
	return nil
}
