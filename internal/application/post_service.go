package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/communitydesk/bulletin-board/internal/domain/entity"
	repo "github.com/communitydesk/bulletin-board/internal/domain/repository"
)

// PostService owns the post lifecycle. Ownership is enforced inside the
// delete statement itself, not as a separate check.
type PostService struct {
	Posts  repo.PostRepository
	Logger *logrus.Logger
}

func NewPostService(posts repo.PostRepository, logger *logrus.Logger) *PostService {
	return &PostService{Posts: posts, Logger: logger}
}

// CreatePostInput carries the six required text fields of a post.
type CreatePostInput struct {
	Title       string
	ContactName string
	EventDate   string
	ContactInfo string
	Timeline    string
	Description string
}

// Create validates the input before any store access and inserts the post.
func (s *PostService) Create(ctx context.Context, ownerID string, in CreatePostInput) (*entity.Post, error) {
	fields := []string{in.Title, in.ContactName, in.EventDate, in.ContactInfo, in.Timeline, in.Description}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return nil, ErrMissingFields
		}
	}
	p := &entity.Post{
		OwnerID:     ownerID,
		Title:       in.Title,
		ContactName: in.ContactName,
		EventDate:   in.EventDate,
		ContactInfo: in.ContactInfo,
		Timeline:    in.Timeline,
		Description: in.Description,
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListMine returns the caller's posts newest first.
func (s *PostService) ListMine(ctx context.Context, ownerID string) ([]entity.Post, error) {
	return s.Posts.ListByOwner(ctx, ownerID)
}

// ListAll returns the public feed with each owner's display name.
func (s *PostService) ListAll(ctx context.Context) ([]entity.Post, error) {
	return s.Posts.ListAll(ctx)
}

// Delete removes the post when the requester owns it. A missing post and
// someone else's post both come back as repository.ErrNotFound.
func (s *PostService) Delete(ctx context.Context, postID int64, requesterID string) error {
	return s.Posts.DeleteOwned(ctx, postID, requesterID)
}
