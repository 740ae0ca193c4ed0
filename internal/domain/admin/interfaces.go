package admin

import "context"

// Repository looks up admin accounts.
type Repository interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	Upsert(ctx context.Context, user *User) error
}
