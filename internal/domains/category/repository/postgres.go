package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/category"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/database"
	"blog-backend/pkg/logger"
)

const (
	uniqueViolationCode = "23505"
	cacheTTL            = 5 * time.Minute
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache) category.Repository {
	return &postgresRepository{pool: pool, cache: c}
}

func cacheKey(id uuid.UUID) string {
	return "category:" + id.String()
}

func (r *postgresRepository) Create(ctx context.Context, cat *category.Category) error {
	query := `
		INSERT INTO categories (id, name, slug)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, cat.ID, cat.Name, cat.Slug).
		Scan(&cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return category.ErrDuplicateSlug
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	var cached category.Category
	found, err := r.cache.Get(ctx, cacheKey(id), &cached)
	if err != nil {
		logger.Warn().Err(err).Msg("category cache read failed")
	}
	if found {
		return &cached, nil
	}

	query := `SELECT id, name, slug, created_at, updated_at FROM categories WHERE id = $1`

	var cat category.Category
	err = r.pool.QueryRow(ctx, query, id).
		Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("select category: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey(id), cat, cacheTTL); err != nil {
		logger.Warn().Err(err).Msg("category cache write failed")
	}
	return &cat, nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check category exists: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) List(ctx context.Context, req category.ListRequest) ([]category.Category, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	query := `
		SELECT id, name, slug, created_at, updated_at
		FROM categories
		ORDER BY name ASC
		LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, req.Limit, (req.Page-1)*req.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []category.Category{}
	for rows.Next() {
		var cat category.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	return categories, total, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, cat *category.Category) error {
	query := `
		UPDATE categories
		SET name = $1, slug = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query, cat.Name, cat.Slug, cat.ID).Scan(&cat.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return category.ErrCategoryNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return category.ErrDuplicateSlug
		}
		return fmt.Errorf("update category: %w", err)
	}

	r.invalidate(ctx, cat.ID)
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		// Posts keep existing without a category.
		if _, err := tx.Exec(ctx, `UPDATE posts SET category_id = NULL WHERE category_id = $1`, id); err != nil {
			return fmt.Errorf("detach posts: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return category.ErrCategoryNotFound
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
		logger.Warn().Err(err).Msg("category cache invalidation failed")
	}
}
