package repository

import (
	"context"

	"github.com/communitydesk/bulletin-board/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// Create inserts a local-credential user. A duplicate email is
	// reported as ErrEmailTaken.
	Create(ctx context.Context, u *entity.User) error
	// Upsert inserts the user if the id is unseen and returns the stored
	// row either way. Safe under concurrent first logins.
	Upsert(ctx context.Context, u *entity.User) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
