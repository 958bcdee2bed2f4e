package user

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByToken(ctx context.Context, token string) (*User, error)
	UpdateToken(ctx context.Context, id uuid.UUID, token string) error
	UpdateFlags(ctx context.Context, id uuid.UUID, isActive, isStaff *bool) error
	List(ctx context.Context, req ListRequest) ([]User, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
