package post

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	// List returns posts newest first.
	List(ctx context.Context, req ListRequest) ([]Post, int, error)
	Update(ctx context.Context, p *Post) error
	// Delete removes the post and all of its comments.
	Delete(ctx context.Context, id uuid.UUID) error
}
