package post

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/auth"
)

type Service interface {
	// Create publishes a post authored by the actor.
	Create(ctx context.Context, actor *auth.Identity, req CreateRequest) (*Post, error)
	// Get returns a post with its comments embedded.
	Get(ctx context.Context, id uuid.UUID) (*DetailResponse, error)
	List(ctx context.Context, req ListRequest) ([]Post, int, error)
	// Update applies a partial update. Only the author may edit.
	Update(ctx context.Context, actor *auth.Identity, id uuid.UUID, req UpdateRequest) (*Post, error)
	// Delete removes the post and its comments. The author or staff
	// may delete.
	Delete(ctx context.Context, actor *auth.Identity, id uuid.UUID) error
}
