package service

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/auth"
	"blog-backend/internal/domains/comment"
	"blog-backend/internal/domains/post"
	"blog-backend/internal/shared/audit"
)

// PostSource tells the service whether a post exists. The post
// repository satisfies it.
type PostSource interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

type commentService struct {
	repo  comment.Repository
	posts PostSource
	audit audit.Recorder
}

func NewCommentService(repo comment.Repository, posts PostSource, recorder audit.Recorder) comment.Service {
	return &commentService{
		repo:  repo,
		posts: posts,
		audit: recorder,
	}
}

func (s *commentService) Create(ctx context.Context, actor *auth.Identity, postID uuid.UUID, req comment.CreateRequest) (*comment.Comment, error) {
	if actor == nil {
		return nil, comment.ErrNotAllowed
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.posts.ExistsByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, post.ErrPostNotFound
	}

	cm := &comment.Comment{
		ID:             uuid.New(),
		PostID:         postID,
		AuthorID:       actor.ID,
		AuthorUsername: actor.Username,
		Content:        req.Content,
	}
	if err := s.repo.Create(ctx, cm); err != nil {
		return nil, err
	}

	s.record(ctx, audit.ActionCreate, cm.ID, actor)
	return cm, nil
}

func (s *commentService) Update(ctx context.Context, actor *auth.Identity, id uuid.UUID, req comment.UpdateRequest) (*comment.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanModify(actor, cm.AuthorID) {
		return nil, comment.ErrNotAllowed
	}

	cm.Content = req.Content
	if err := s.repo.Update(ctx, cm); err != nil {
		return nil, err
	}

	s.record(ctx, audit.ActionUpdate, cm.ID, actor)
	return cm, nil
}

func (s *commentService) Delete(ctx context.Context, actor *auth.Identity, id uuid.UUID) error {
	cm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanDelete(actor, cm.AuthorID) {
		return comment.ErrNotAllowed
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.record(ctx, audit.ActionDelete, id, actor)
	return nil
}

func (s *commentService) record(ctx context.Context, action audit.Action, id uuid.UUID, actor *auth.Identity) {
	event := audit.Event{
		Action:   action,
		Entity:   "comment",
		EntityID: id.String(),
	}
	if actor != nil {
		event.Actor = actor.Username
	}
	s.audit.Record(ctx, event)
}
