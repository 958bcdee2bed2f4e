package comment

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/auth"
)

type Service interface {
	// Create adds a comment to an existing post. The actor becomes
	// the author.
	Create(ctx context.Context, actor *auth.Identity, postID uuid.UUID, req CreateRequest) (*Comment, error)
	// Update replaces the content. Only the author may edit.
	Update(ctx context.Context, actor *auth.Identity, id uuid.UUID, req UpdateRequest) (*Comment, error)
	// Delete removes the comment. The author or staff may delete.
	Delete(ctx context.Context, actor *auth.Identity, id uuid.UUID) error
}
