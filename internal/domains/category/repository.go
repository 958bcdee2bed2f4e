package category

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, cat *Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, req ListRequest) ([]Category, int, error)
	Update(ctx context.Context, cat *Category) error
	// Delete removes the category and detaches it from any posts that
	// reference it.
	Delete(ctx context.Context, id uuid.UUID) error
}
