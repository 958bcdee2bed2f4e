package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/auth"
	"blog-backend/internal/domains/comment"
	"blog-backend/internal/domains/post"
	"blog-backend/internal/shared/audit"
)

type memoryCommentRepo struct {
	mu       sync.Mutex
	comments map[uuid.UUID]*comment.Comment
}

func newMemoryCommentRepo() *memoryCommentRepo {
	return &memoryCommentRepo{comments: make(map[uuid.UUID]*comment.Comment)}
}

func (r *memoryCommentRepo) Create(_ context.Context, cm *comment.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cm.CreatedAt = time.Now()
	cm.UpdatedAt = cm.CreatedAt
	copied := *cm
	r.comments[cm.ID] = &copied
	return nil
}

func (r *memoryCommentRepo) GetByID(_ context.Context, id uuid.UUID) (*comment.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cm, ok := r.comments[id]; ok {
		copied := *cm
		return &copied, nil
	}
	return nil, comment.ErrCommentNotFound
}

func (r *memoryCommentRepo) ListByPost(_ context.Context, postID uuid.UUID) ([]comment.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []comment.Comment{}
	for _, cm := range r.comments {
		if cm.PostID == postID {
			out = append(out, *cm)
		}
	}
	return out, nil
}

func (r *memoryCommentRepo) Update(_ context.Context, cm *comment.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[cm.ID]; !ok {
		return comment.ErrCommentNotFound
	}
	cm.UpdatedAt = time.Now()
	copied := *cm
	r.comments[cm.ID] = &copied
	return nil
}

func (r *memoryCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return comment.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

type fakePostSource struct {
	existing map[uuid.UUID]bool
}

func (s *fakePostSource) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	return s.existing[id], nil
}

type commentFixture struct {
	svc    comment.Service
	postID uuid.UUID

	author *auth.Identity
	staff  *auth.Identity
	other  *auth.Identity
}

func newCommentFixture(t *testing.T) *commentFixture {
	t.Helper()
	postID := uuid.New()
	posts := &fakePostSource{existing: map[uuid.UUID]bool{postID: true}}

	return &commentFixture{
		svc:    NewCommentService(newMemoryCommentRepo(), posts, audit.NewDispatcher()),
		postID: postID,
		author: &auth.Identity{ID: uuid.New(), Username: "author"},
		staff:  &auth.Identity{ID: uuid.New(), Username: "moderator", IsStaff: true},
		other:  &auth.Identity{ID: uuid.New(), Username: "stranger"},
	}
}

func (f *commentFixture) createComment(t *testing.T) *comment.Comment {
	t.Helper()
	cm, err := f.svc.Create(context.Background(), f.author, f.postID, comment.CreateRequest{Content: "nice post"})
	require.NoError(t, err)
	return cm
}

func TestCreateComment(t *testing.T) {
	f := newCommentFixture(t)

	cm := f.createComment(t)
	assert.Equal(t, f.postID, cm.PostID)
	assert.Equal(t, f.author.ID, cm.AuthorID)
	assert.Equal(t, "author", cm.AuthorUsername)
	assert.Equal(t, "nice post", cm.Content)
}

func TestCreateCommentRequiresActor(t *testing.T) {
	f := newCommentFixture(t)

	_, err := f.svc.Create(context.Background(), nil, f.postID, comment.CreateRequest{Content: "hi"})
	assert.ErrorIs(t, err, comment.ErrNotAllowed)
}

func TestCreateCommentUnknownPost(t *testing.T) {
	f := newCommentFixture(t)

	_, err := f.svc.Create(context.Background(), f.author, uuid.New(), comment.CreateRequest{Content: "hi"})
	assert.ErrorIs(t, err, post.ErrPostNotFound)
}

func TestCreateCommentEmptyContent(t *testing.T) {
	f := newCommentFixture(t)

	_, err := f.svc.Create(context.Background(), f.author, f.postID, comment.CreateRequest{})
	assert.Error(t, err)
}

func TestUpdateCommentOnlyAuthor(t *testing.T) {
	f := newCommentFixture(t)
	cm := f.createComment(t)

	updated, err := f.svc.Update(context.Background(), f.author, cm.ID, comment.UpdateRequest{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	_, err = f.svc.Update(context.Background(), f.other, cm.ID, comment.UpdateRequest{Content: "nope"})
	assert.ErrorIs(t, err, comment.ErrNotAllowed)

	// Staff cannot edit other people's comments.
	_, err = f.svc.Update(context.Background(), f.staff, cm.ID, comment.UpdateRequest{Content: "nope"})
	assert.ErrorIs(t, err, comment.ErrNotAllowed)
}

func TestDeleteCommentPermissions(t *testing.T) {
	f := newCommentFixture(t)

	cm := f.createComment(t)
	require.ErrorIs(t, f.svc.Delete(context.Background(), f.other, cm.ID), comment.ErrNotAllowed)
	require.NoError(t, f.svc.Delete(context.Background(), f.author, cm.ID))

	cm2 := f.createComment(t)
	require.NoError(t, f.svc.Delete(context.Background(), f.staff, cm2.ID))

	assert.ErrorIs(t, f.svc.Delete(context.Background(), f.staff, uuid.New()), comment.ErrCommentNotFound)
}
