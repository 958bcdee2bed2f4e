package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"blog-backend/internal/domains/user"
	"blog-backend/pkg/jwt"
	"blog-backend/pkg/logger"
)

// Identity is the authenticated principal attached to a request.
type Identity struct {
	ID       uuid.UUID
	Username string
	IsStaff  bool
}

// UserSource looks up accounts during credential resolution.
type UserSource interface {
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByToken(ctx context.Context, token string) (*user.User, error)
}

// CredentialVerifier tries to resolve a credential string into an
// identity. A (nil, nil) return means the credential is not of this
// verifier's kind, or matched no active account; the resolver moves on
// to the next verifier. A non-nil error means the lookup itself failed.
type CredentialVerifier interface {
	Verify(ctx context.Context, credential string) (*Identity, error)
}

// Resolver tries each verifier in order and returns the first identity
// produced. Every failure mode resolves to anonymous (nil).
type Resolver struct {
	verifiers []CredentialVerifier
}

func NewResolver(verifiers ...CredentialVerifier) *Resolver {
	return &Resolver{verifiers: verifiers}
}

func (r *Resolver) Resolve(ctx context.Context, credential string) *Identity {
	if credential == "" {
		return nil
	}
	for _, v := range r.verifiers {
		identity, err := v.Verify(ctx, credential)
		if err != nil {
			logger.Error().Err(err).Msg("credential verification failed")
			continue
		}
		if identity != nil {
			return identity
		}
	}
	return nil
}

// JWTVerifier resolves signed access tokens.
type JWTVerifier struct {
	manager *jwt.Manager
	users   UserSource
}

func NewJWTVerifier(manager *jwt.Manager, users UserSource) *JWTVerifier {
	return &JWTVerifier{manager: manager, users: users}
}

func (v *JWTVerifier) Verify(ctx context.Context, credential string) (*Identity, error) {
	claims, err := v.manager.ValidateAccessToken(credential)
	if err != nil {
		// Not a valid JWT. Let the next verifier have a go.
		return nil, nil
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, nil
	}

	u, err := v.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return identityOf(u), nil
}

// OpaqueTokenVerifier resolves stored API tokens by exact match.
type OpaqueTokenVerifier struct {
	users UserSource
}

func NewOpaqueTokenVerifier(users UserSource) *OpaqueTokenVerifier {
	return &OpaqueTokenVerifier{users: users}
}

func (v *OpaqueTokenVerifier) Verify(ctx context.Context, credential string) (*Identity, error) {
	// Stored tokens have a fixed length, skip the lookup otherwise.
	if len(credential) != TokenLength {
		return nil, nil
	}

	u, err := v.users.FindByToken(ctx, credential)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return identityOf(u), nil
}

func identityOf(u *user.User) *Identity {
	if u == nil || !u.IsActive {
		return nil
	}
	return &Identity{
		ID:       u.ID,
		Username: u.Username,
		IsStaff:  u.IsStaff,
	}
}
