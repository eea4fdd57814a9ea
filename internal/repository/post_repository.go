package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"blog-service/internal/model"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	List(ctx context.Context, limit, offset int) ([]model.Post, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]model.Post, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, post *model.Post) (*model.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresPostRepository struct {
	db *sqlx.DB
}

func NewPostgresPostRepository(db *sqlx.DB) PostRepository {
	return &postgresPostRepository{db: db}
}

func (r *postgresPostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	query := `
		INSERT INTO posts (title, content, image_url, creator_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query, post.Title, post.Content, post.ImageURL, post.CreatorID).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		return nil, err
	}

	return post, nil
}

func (r *postgresPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	query := `SELECT id, title, content, image_url, creator_id, created_at, updated_at FROM posts WHERE id = $1`
	err := r.db.GetContext(ctx, &post, query, id)

	if err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postgresPostRepository) List(ctx context.Context, limit, offset int) ([]model.Post, error) {
	posts := []model.Post{}
	query := `
		SELECT id, title, content, image_url, creator_id, created_at, updated_at
		FROM posts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &posts, query, limit, offset)

	if err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postgresPostRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]model.Post, error) {
	posts := []model.Post{}
	query := `
		SELECT id, title, content, image_url, creator_id, created_at, updated_at
		FROM posts
		WHERE creator_id = $1
		ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &posts, query, creatorID)

	if err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postgresPostRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts`)

	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *postgresPostRepository) Update(ctx context.Context, post *model.Post) (*model.Post, error) {
	query := `
		UPDATE posts
		SET title = $1, content = $2, image_url = $3, updated_at = now()
		WHERE id = $4
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query, post.Title, post.Content, post.ImageURL, post.ID).
		Scan(&post.UpdatedAt)

	if err != nil {
		return nil, err
	}

	return post, nil
}

func (r *postgresPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	return err
}
