package repository

import (
	"context"

	"github.com/communitydesk/bulletin-board/internal/domain/entity"
)

// PostRepository defines the interface for post-related database operations.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	// ListByOwner returns the owner's posts newest first; an empty slice
	// when there are none.
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Post, error)
	// ListAll returns every post joined with the owner's display name,
	// newest first.
	ListAll(ctx context.Context) ([]entity.Post, error)
	// DeleteOwned deletes the post only when it exists and belongs to
	// requesterID, as a single statement. Zero rows affected is reported
	// as ErrNotFound.
	DeleteOwned(ctx context.Context, postID int64, requesterID string) error
}
