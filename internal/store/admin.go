package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/portfolio/internal/domain/admin"
	"github.com/rpggio/portfolio/internal/repository"
)

// AdminRepository implements admin.Repository.
type AdminRepository struct {
	db *DB
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(db *DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// GetByUsername retrieves an admin account by its unique username.
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*admin.User, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM admin_users
		WHERE username = ?
	`

	var u admin.User
	err := r.db.queryRow(ctx, query, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin user: %w", err)
	}
	return &u, nil
}

// Upsert creates the account or replaces its password hash, and sets user.ID.
func (r *AdminRepository) Upsert(ctx context.Context, user *admin.User) error {
	query := `
		INSERT INTO admin_users (username, password_hash, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (username) DO UPDATE SET password_hash = excluded.password_hash
		RETURNING id
	`

	if err := r.db.queryRow(ctx, query, user.Username, user.PasswordHash, user.CreatedAt).Scan(&user.ID); err != nil {
		return fmt.Errorf("failed to upsert admin user: %w", err)
	}
	return nil
}
