package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/user"
	"blog-backend/pkg/jwt"
)

type fakeUserSource struct {
	byID    map[uuid.UUID]*user.User
	byToken map[string]*user.User
}

func newFakeUserSource(users ...*user.User) *fakeUserSource {
	s := &fakeUserSource{
		byID:    make(map[uuid.UUID]*user.User),
		byToken: make(map[string]*user.User),
	}
	for _, u := range users {
		s.byID[u.ID] = u
		if u.Token != nil {
			s.byToken[*u.Token] = u
		}
	}
	return s
}

func (s *fakeUserSource) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func (s *fakeUserSource) FindByToken(_ context.Context, token string) (*user.User, error) {
	if u, ok := s.byToken[token]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func testUser(active bool) *user.User {
	token := strings.Repeat("a", TokenLength)
	return &user.User{
		ID:       uuid.New(),
		Username: "alice",
		IsActive: active,
		Token:    &token,
	}
}

func newTestResolver(manager *jwt.Manager, users UserSource) *Resolver {
	return NewResolver(
		NewJWTVerifier(manager, users),
		NewOpaqueTokenVerifier(users),
	)
}

func TestResolveJWT(t *testing.T) {
	manager := jwt.NewManager("secret", time.Minute, time.Hour)
	u := testUser(true)
	resolver := newTestResolver(manager, newFakeUserSource(u))

	access, _, err := manager.GenerateAccessToken(u.ID.String(), u.Username, false)
	require.NoError(t, err)

	identity := resolver.Resolve(context.Background(), access)
	require.NotNil(t, identity)
	assert.Equal(t, u.ID, identity.ID)
	assert.Equal(t, "alice", identity.Username)
}

func TestResolveOpaqueToken(t *testing.T) {
	manager := jwt.NewManager("secret", time.Minute, time.Hour)
	u := testUser(true)
	resolver := newTestResolver(manager, newFakeUserSource(u))

	identity := resolver.Resolve(context.Background(), *u.Token)
	require.NotNil(t, identity)
	assert.Equal(t, u.ID, identity.ID)
}

func TestResolveUnknownCredential(t *testing.T) {
	manager := jwt.NewManager("secret", time.Minute, time.Hour)
	resolver := newTestResolver(manager, newFakeUserSource(testUser(true)))

	assert.Nil(t, resolver.Resolve(context.Background(), "bogus"))
	assert.Nil(t, resolver.Resolve(context.Background(), strings.Repeat("b", TokenLength)))
	assert.Nil(t, resolver.Resolve(context.Background(), ""))
}

func TestResolveInactiveUser(t *testing.T) {
	manager := jwt.NewManager("secret", time.Minute, time.Hour)
	u := testUser(false)
	resolver := newTestResolver(manager, newFakeUserSource(u))

	access, _, err := manager.GenerateAccessToken(u.ID.String(), u.Username, false)
	require.NoError(t, err)

	assert.Nil(t, resolver.Resolve(context.Background(), access))
	assert.Nil(t, resolver.Resolve(context.Background(), *u.Token))
}

func TestResolveExpiredJWTFallsThrough(t *testing.T) {
	expired := jwt.NewManager("secret", -time.Minute, -time.Minute)
	u := testUser(true)
	resolver := newTestResolver(expired, newFakeUserSource(u))

	access, _, err := expired.GenerateAccessToken(u.ID.String(), u.Username, false)
	require.NoError(t, err)

	// The expired JWT resolves to anonymous, but the stored token
	// still works.
	assert.Nil(t, resolver.Resolve(context.Background(), access))
	assert.NotNil(t, resolver.Resolve(context.Background(), *u.Token))
}
