package comment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, cm *Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	// ListByPost returns every comment on a post, newest first.
	ListByPost(ctx context.Context, postID uuid.UUID) ([]Comment, error)
	Update(ctx context.Context, cm *Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
}
