package user

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	// Register creates an account and returns its first API token.
	Register(ctx context.Context, req RegisterRequest) (string, error)

	// Login verifies credentials and returns a fresh API token,
	// invalidating the previous one.
	Login(ctx context.Context, req LoginRequest) (string, error)

	// IssueJWT verifies credentials and returns an access/refresh pair.
	IssueJWT(ctx context.Context, req JWTRequest) (*JWTResponse, error)

	// RefreshJWT exchanges a valid refresh token for a new access token.
	RefreshJWT(ctx context.Context, refreshToken string) (*JWTResponse, error)

	// VerifyJWT reports whether the given access token is valid.
	VerifyJWT(token string) bool

	List(ctx context.Context, req ListRequest) ([]UserResponse, int, error)
	Get(ctx context.Context, id uuid.UUID) (*UserResponse, error)
	UpdateFlags(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*UserResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
