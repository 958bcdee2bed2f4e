package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"blog-backend/internal/auth"
	"blog-backend/internal/domains/user"
	"blog-backend/internal/shared/audit"
	pkgjwt "blog-backend/pkg/jwt"
)

const bcryptCost = 12

type userService struct {
	repo  user.Repository
	jwt   *pkgjwt.Manager
	audit audit.Recorder
}

func NewUserService(repo user.Repository, jwtManager *pkgjwt.Manager, recorder audit.Recorder) user.Service {
	return &userService{
		repo:  repo,
		jwt:   jwtManager,
		audit: recorder,
	}
}

func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return "", err
	}

	token, err := s.issueToken(ctx, u.ID)
	if err != nil {
		return "", err
	}

	s.audit.Record(ctx, audit.Event{
		Action:   audit.ActionRegister,
		Entity:   "user",
		EntityID: u.ID.String(),
		Actor:    u.Username,
	})
	return token, nil
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	u, err := s.authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return "", err
	}

	// Rotate the API token on every login.
	token, err := s.issueToken(ctx, u.ID)
	if err != nil {
		return "", err
	}

	s.audit.Record(ctx, audit.Event{
		Action:   audit.ActionLogin,
		Entity:   "user",
		EntityID: u.ID.String(),
		Actor:    u.Username,
	})
	return token, nil
}

func (s *userService) IssueJWT(ctx context.Context, req user.JWTRequest) (*user.JWTResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	access, expiresAt, err := s.jwt.GenerateAccessToken(u.ID.String(), u.Username, u.IsStaff)
	if err != nil {
		return nil, err
	}
	refresh, _, err := s.jwt.GenerateRefreshToken(u.ID.String(), u.Username, u.IsStaff)
	if err != nil {
		return nil, err
	}

	return &user.JWTResponse{
		Access:    access,
		Refresh:   refresh,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *userService) RefreshJWT(ctx context.Context, refreshToken string) (*user.JWTResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, pkgjwt.ErrInvalidToken
	}

	// The account must still exist and be active.
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, pkgjwt.ErrInvalidToken
	}
	if !u.IsActive {
		return nil, pkgjwt.ErrInvalidToken
	}

	access, expiresAt, err := s.jwt.GenerateAccessToken(u.ID.String(), u.Username, u.IsStaff)
	if err != nil {
		return nil, err
	}

	return &user.JWTResponse{
		Access:    access,
		Refresh:   refreshToken,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *userService) VerifyJWT(token string) bool {
	_, err := s.jwt.ValidateAccessToken(token)
	return err == nil
}

func (s *userService) List(ctx context.Context, req user.ListRequest) ([]user.UserResponse, int, error) {
	req.SetDefaults()

	users, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]user.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, user.ToResponse(&users[i]))
	}
	return responses, total, nil
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*user.UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := user.ToResponse(u)
	return &resp, nil
}

func (s *userService) UpdateFlags(ctx context.Context, id uuid.UUID, req user.UpdateStatusRequest) (*user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateFlags(ctx, id, req.IsActive, req.IsStaff); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Event{
		Action:   audit.ActionUpdate,
		Entity:   "user",
		EntityID: id.String(),
	})
	return s.Get(ctx, id)
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Event{
		Action:   audit.ActionDelete,
		Entity:   "user",
		EntityID: id.String(),
	})
	return nil
}

// authenticate resolves username/password into an active account.
// All failure modes collapse into ErrInvalidCredentials so responses
// never reveal whether the username exists.
func (s *userService) authenticate(ctx context.Context, username, password string) (*user.User, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, user.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}
	return u, nil
}

func (s *userService) issueToken(ctx context.Context, id uuid.UUID) (string, error) {
	token, err := auth.NewOpaqueToken()
	if err != nil {
		return "", err
	}
	if err := s.repo.UpdateToken(ctx, id, token); err != nil {
		return "", err
	}
	return token, nil
}
