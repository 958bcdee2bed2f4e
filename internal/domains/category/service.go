package category

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/auth"
)

type Service interface {
	// Create requires a staff actor.
	Create(ctx context.Context, actor *auth.Identity, req CreateRequest) (*Category, error)
	Get(ctx context.Context, id uuid.UUID) (*Category, error)
	List(ctx context.Context, req ListRequest) ([]Category, int, error)
	// Update and Delete require a staff actor.
	Update(ctx context.Context, actor *auth.Identity, id uuid.UUID, req UpdateRequest) (*Category, error)
	Delete(ctx context.Context, actor *auth.Identity, id uuid.UUID) error
}
