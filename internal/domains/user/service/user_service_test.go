package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"blog-backend/internal/auth"
	"blog-backend/internal/domains/user"
	"blog-backend/internal/shared/audit"
	pkgjwt "blog-backend/pkg/jwt"
)

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*user.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uuid.UUID]*user.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return user.ErrDuplicateUser
		}
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, user.ErrUserNotFound
}

func (r *memoryUserRepo) FindByUsername(_ context.Context, username string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *memoryUserRepo) FindByToken(_ context.Context, token string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Token != nil && *u.Token == token {
			copied := *u
			return &copied, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *memoryUserRepo) UpdateToken(_ context.Context, id uuid.UUID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Token = &token
	return nil
}

func (r *memoryUserRepo) UpdateFlags(_ context.Context, id uuid.UUID, isActive, isStaff *bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	if isActive != nil {
		u.IsActive = *isActive
	}
	if isStaff != nil {
		u.IsStaff = *isStaff
	}
	return nil
}

func (r *memoryUserRepo) List(_ context.Context, req user.ListRequest) ([]user.User, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []user.User
	for _, u := range r.users {
		if req.IsStaff != nil && u.IsStaff != *req.IsStaff {
			continue
		}
		if req.IsActive != nil && u.IsActive != *req.IsActive {
			continue
		}
		users = append(users, *u)
	}
	return users, len(users), nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func newTestUserService(t *testing.T) (user.Service, *memoryUserRepo) {
	t.Helper()
	repo := newMemoryUserRepo()
	manager := pkgjwt.NewManager("test-secret", 15*time.Minute, 24*time.Hour)
	return NewUserService(repo, manager, audit.NewDispatcher()), repo
}

func register(t *testing.T, svc user.Service, username string) string {
	t.Helper()
	token, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "s3cret-password",
	})
	require.NoError(t, err)
	return token
}

func TestRegister(t *testing.T) {
	svc, repo := newTestUserService(t)

	token := register(t, svc, "alice")
	assert.Len(t, token, auth.TokenLength)

	stored, err := repo.FindByToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Username)
	assert.True(t, stored.IsActive)
	assert.False(t, stored.IsStaff)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-password")))
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _ := newTestUserService(t)
	register(t, svc, "alice")

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "s3cret-password",
	})
	assert.ErrorIs(t, err, user.ErrDuplicateUser)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: "al",
		Email:    "not-an-email",
		Password: "short",
	})
	assert.Error(t, err)
}

func TestLoginRotatesToken(t *testing.T) {
	svc, repo := newTestUserService(t)
	first := register(t, svc, "alice")

	second, err := svc.Login(context.Background(), user.LoginRequest{
		Username: "alice",
		Password: "s3cret-password",
	})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Len(t, second, auth.TokenLength)

	// The old token no longer resolves.
	_, err = repo.FindByToken(context.Background(), first)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestUserService(t)
	register(t, svc, "alice")

	_, err := svc.Login(context.Background(), user.LoginRequest{
		Username: "alice",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.Login(context.Background(), user.LoginRequest{
		Username: "ghost",
		Password: "whatever!",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	svc, repo := newTestUserService(t)
	token := register(t, svc, "alice")

	stored, err := repo.FindByToken(context.Background(), token)
	require.NoError(t, err)
	inactive := false
	require.NoError(t, repo.UpdateFlags(context.Background(), stored.ID, &inactive, nil))

	_, err = svc.Login(context.Background(), user.LoginRequest{
		Username: "alice",
		Password: "s3cret-password",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestIssueAndRefreshJWT(t *testing.T) {
	svc, _ := newTestUserService(t)
	register(t, svc, "alice")

	pair, err := svc.IssueJWT(context.Background(), user.JWTRequest{
		Username: "alice",
		Password: "s3cret-password",
	})
	require.NoError(t, err)
	assert.True(t, svc.VerifyJWT(pair.Access))
	assert.False(t, svc.VerifyJWT(pair.Refresh))

	refreshed, err := svc.RefreshJWT(context.Background(), pair.Refresh)
	require.NoError(t, err)
	assert.True(t, svc.VerifyJWT(refreshed.Access))

	// An access token cannot be used as a refresh token.
	_, err = svc.RefreshJWT(context.Background(), pair.Access)
	assert.Error(t, err)
}

func TestListUsersFilters(t *testing.T) {
	svc, repo := newTestUserService(t)
	aliceToken := register(t, svc, "alice")
	bobToken := register(t, svc, "bob")

	bob, err := repo.FindByToken(context.Background(), bobToken)
	require.NoError(t, err)
	staff := true
	require.NoError(t, repo.UpdateFlags(context.Background(), bob.ID, nil, &staff))

	alice, err := repo.FindByToken(context.Background(), aliceToken)
	require.NoError(t, err)
	inactive := false
	require.NoError(t, repo.UpdateFlags(context.Background(), alice.ID, &inactive, nil))

	staffOnly, total, err := svc.List(context.Background(), user.ListRequest{IsStaff: &staff})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, "bob", staffOnly[0].Username)

	inactiveOnly, total, err := svc.List(context.Background(), user.ListRequest{IsActive: &inactive})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, "alice", inactiveOnly[0].Username)
}

func TestUpdateFlagsAndDelete(t *testing.T) {
	svc, repo := newTestUserService(t)
	token := register(t, svc, "alice")

	stored, err := repo.FindByToken(context.Background(), token)
	require.NoError(t, err)

	staff := true
	updated, err := svc.UpdateFlags(context.Background(), stored.ID, user.UpdateStatusRequest{IsStaff: &staff})
	require.NoError(t, err)
	assert.True(t, updated.IsStaff)

	require.NoError(t, svc.Delete(context.Background(), stored.ID))
	_, err = svc.Get(context.Background(), stored.ID)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
