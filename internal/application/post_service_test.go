package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communitydesk/bulletin-board/internal/domain/repository"
)

func validPostInput() CreatePostInput {
	return CreatePostInput{
		Title:       "Food Drive",
		ContactName: "Ann",
		EventDate:   "2026-09-12",
		ContactInfo: "ann@x.com",
		Timeline:    "9am-1pm",
		Description: "Canned goods collection.",
	}
}

func TestPostCreate(t *testing.T) {
	ctx := context.Background()
	repo := newFakePostRepo()
	svc := NewPostService(repo, nil)

	t.Run("Valid", func(t *testing.T) {
		p, err := svc.Create(ctx, "user-1", validPostInput())
		require.NoError(t, err)
		assert.Equal(t, int64(1), p.ID)
		assert.Equal(t, "user-1", p.OwnerID)
		assert.False(t, p.CreatedAt.IsZero())
	})

	t.Run("EmptyFieldInsertsNothing", func(t *testing.T) {
		in := validPostInput()
		in.Description = ""
		_, err := svc.Create(ctx, "user-1", in)
		assert.ErrorIs(t, err, ErrMissingFields)

		in = validPostInput()
		in.Timeline = "   "
		_, err = svc.Create(ctx, "user-1", in)
		assert.ErrorIs(t, err, ErrMissingFields)

		assert.Equal(t, 1, repo.count())
	})
}

func TestPostListing(t *testing.T) {
	ctx := context.Background()
	repo := newFakePostRepo()
	repo.names["user-1"] = "Ann"
	repo.names["user-2"] = "Ben"
	svc := NewPostService(repo, nil)

	first, err := svc.Create(ctx, "user-1", validPostInput())
	require.NoError(t, err)

	in := validPostInput()
	in.Title = "Park Cleanup"
	second, err := svc.Create(ctx, "user-1", in)
	require.NoError(t, err)

	in = validPostInput()
	in.Title = "Bake Sale"
	_, err = svc.Create(ctx, "user-2", in)
	require.NoError(t, err)

	t.Run("ListMineIsOwnerScopedAndNewestFirst", func(t *testing.T) {
		mine, err := svc.ListMine(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, mine, 2)
		assert.Equal(t, second.ID, mine[0].ID)
		assert.Equal(t, first.ID, mine[1].ID)

		other, err := svc.ListMine(ctx, "user-3")
		require.NoError(t, err)
		assert.Empty(t, other, "unknown owner gets an empty list, not an error")
	})

	t.Run("ListAllJoinsAuthorName", func(t *testing.T) {
		all, err := svc.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "Bake Sale", all[0].Title)
		assert.Equal(t, "Ben", all[0].PostedBy)
		assert.Equal(t, "Ann", all[1].PostedBy)
	})
}

func TestPostDelete(t *testing.T) {
	ctx := context.Background()
	repo := newFakePostRepo()
	svc := NewPostService(repo, nil)

	p, err := svc.Create(ctx, "user-1", validPostInput())
	require.NoError(t, err)

	t.Run("NonOwnerCannotDelete", func(t *testing.T) {
		err := svc.Delete(ctx, p.ID, "user-2")
		assert.ErrorIs(t, err, repository.ErrNotFound)

		mine, err := svc.ListMine(ctx, "user-1")
		require.NoError(t, err)
		assert.Len(t, mine, 1, "post must survive a non-owner delete")
	})

	t.Run("OwnerDeletes", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, p.ID, "user-1"))

		mine, err := svc.ListMine(ctx, "user-1")
		require.NoError(t, err)
		assert.Empty(t, mine)
	})

	t.Run("SecondDeleteCollapsesToNotFound", func(t *testing.T) {
		err := svc.Delete(ctx, p.ID, "user-1")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("MissingPostSameAsForeignPost", func(t *testing.T) {
		missing := svc.Delete(ctx, 9999, "user-1")
		assert.ErrorIs(t, missing, repository.ErrNotFound)
	})
}
