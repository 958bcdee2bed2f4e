package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/post"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/database"
	"blog-backend/pkg/logger"
)

const cacheTTL = time.Minute

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache) post.Repository {
	return &postgresRepository{pool: pool, cache: c}
}

func cacheKey(id uuid.UUID) string {
	return "post:" + id.String()
}

const postSelect = `
	SELECT p.id, p.title, p.content, p.author_id, u.username,
	       p.category_id, c.name, p.created_at, p.updated_at
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN categories c ON c.id = p.category_id`

func scanPost(row pgx.Row) (*post.Post, error) {
	var p post.Post
	err := row.Scan(
		&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.AuthorUsername,
		&p.CategoryID, &p.CategoryName, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.ErrPostNotFound
		}
		return nil, fmt.Errorf("scan post: %w", err)
	}
	return &p, nil
}

func (r *postgresRepository) Create(ctx context.Context, p *post.Post) error {
	query := `
		INSERT INTO posts (id, title, content, author_id, category_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, p.ID, p.Title, p.Content, p.AuthorID, p.CategoryID).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	var cached post.Post
	found, err := r.cache.Get(ctx, cacheKey(id), &cached)
	if err != nil {
		logger.Warn().Err(err).Msg("post cache read failed")
	}
	if found {
		return &cached, nil
	}

	p, err := scanPost(r.pool.QueryRow(ctx, postSelect+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, cacheKey(id), p, cacheTTL); err != nil {
		logger.Warn().Err(err).Msg("post cache write failed")
	}
	return p, nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check post exists: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) List(ctx context.Context, req post.ListRequest) ([]post.Post, int, error) {
	where := ""
	args := []interface{}{}
	addFilter := func(column string, value interface{}) {
		if where == "" {
			where = "WHERE "
		} else {
			where += " AND "
		}
		args = append(args, value)
		where += fmt.Sprintf("p.%s = $%d", column, len(args))
	}
	if req.CategoryID != nil {
		addFilter("category_id", *req.CategoryID)
	}
	if req.AuthorID != nil {
		addFilter("author_id", *req.AuthorID)
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM posts p %s`, where)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	listQuery := fmt.Sprintf(
		`%s %s ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d`,
		postSelect, where, len(args)+1, len(args)+2,
	)
	args = append(args, req.Limit, (req.Page-1)*req.Limit)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []post.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, *p)
	}
	return posts, total, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, p *post.Post) error {
	query := `
		UPDATE posts
		SET title = $1, content = $2, category_id = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query, p.Title, p.Content, p.CategoryID, p.ID).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return post.ErrPostNotFound
		}
		return fmt.Errorf("update post: %w", err)
	}

	r.invalidate(ctx, p.ID)
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		// Comments never outlive their post.
		if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE post_id = $1`, id); err != nil {
			return fmt.Errorf("delete post comments: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete post: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return post.ErrPostNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, cacheKey(id)); err != nil {
		logger.Warn().Err(err).Msg("post cache invalidation failed")
	}
}
