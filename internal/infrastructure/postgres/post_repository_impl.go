package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/communitydesk/bulletin-board/internal/domain/entity"
	"github.com/communitydesk/bulletin-board/internal/domain/repository"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (owner_id, title, contact_name, event_date, contact_info, timeline, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, p.OwnerID, p.Title, p.ContactName, p.EventDate, p.ContactInfo, p.Timeline, p.Description)

	return row.Scan(&p.ID, &p.CreatedAt)
}

func (r *PostRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Post, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, title, contact_name, event_date, contact_info, timeline, description, created_at
		FROM posts
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]entity.Post, 0)
	for rows.Next() {
		var p entity.Post
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Title, &p.ContactName, &p.EventDate,
			&p.ContactInfo, &p.Timeline, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *PostRepository) ListAll(ctx context.Context) ([]entity.Post, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.owner_id, p.title, p.contact_name, p.event_date, p.contact_info, p.timeline, p.description, p.created_at,
		       u.name AS posted_by
		FROM posts p
		INNER JOIN users u ON p.owner_id = u.id
		ORDER BY p.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]entity.Post, 0)
	for rows.Next() {
		var p entity.Post
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Title, &p.ContactName, &p.EventDate,
			&p.ContactInfo, &p.Timeline, &p.Description, &p.CreatedAt, &p.PostedBy); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// DeleteOwned checks ownership and deletes in one statement so the two can
// never be observed separately. Zero rows affected covers both "no such
// post" and "someone else's post".
func (r *PostRepository) DeleteOwned(ctx context.Context, postID int64, requesterID string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM posts
		WHERE id = $1 AND owner_id = $2
	`, postID, requesterID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
