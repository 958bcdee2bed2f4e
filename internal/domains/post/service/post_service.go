package service

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/auth"
	"blog-backend/internal/domains/category"
	"blog-backend/internal/domains/comment"
	"blog-backend/internal/domains/post"
	"blog-backend/internal/shared/audit"
)

// CategorySource tells the service whether a category exists. The
// category repository satisfies it.
type CategorySource interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

type postService struct {
	repo       post.Repository
	comments   comment.Repository
	categories CategorySource
	audit      audit.Recorder
}

func NewPostService(
	repo post.Repository,
	comments comment.Repository,
	categories CategorySource,
	recorder audit.Recorder,
) post.Service {
	return &postService{
		repo:       repo,
		comments:   comments,
		categories: categories,
		audit:      recorder,
	}
}

func (s *postService) Create(ctx context.Context, actor *auth.Identity, req post.CreateRequest) (*post.Post, error) {
	if actor == nil {
		return nil, post.ErrNotAllowed
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	p := &post.Post{
		ID:             uuid.New(),
		Title:          req.Title,
		Content:        req.Content,
		AuthorID:       actor.ID,
		AuthorUsername: actor.Username,
		CategoryID:     req.CategoryID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.record(ctx, audit.ActionCreate, p.ID, actor)
	return p, nil
}

func (s *postService) Get(ctx context.Context, id uuid.UUID) (*post.DetailResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByPost(ctx, id)
	if err != nil {
		return nil, err
	}

	return &post.DetailResponse{Post: *p, Comments: comments}, nil
}

func (s *postService) List(ctx context.Context, req post.ListRequest) ([]post.Post, int, error) {
	req.SetDefaults()
	posts, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, 0, err
	}
	// Empty pages serialize as [] rather than null.
	if posts == nil {
		posts = []post.Post{}
	}
	return posts, total, nil
}

func (s *postService) Update(ctx context.Context, actor *auth.Identity, id uuid.UUID, req post.UpdateRequest) (*post.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanModify(actor, p.AuthorID) {
		return nil, post.ErrNotAllowed
	}

	// A supplied-but-empty field counts as omitted.
	if req.Title != nil && *req.Title != "" {
		p.Title = *req.Title
	}
	if req.Content != nil && *req.Content != "" {
		p.Content = *req.Content
	}
	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, req.CategoryID); err != nil {
			return nil, err
		}
		p.CategoryID = req.CategoryID
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.record(ctx, audit.ActionUpdate, p.ID, actor)
	return p, nil
}

func (s *postService) Delete(ctx context.Context, actor *auth.Identity, id uuid.UUID) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanDelete(actor, p.AuthorID) {
		return post.ErrNotAllowed
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.record(ctx, audit.ActionDelete, id, actor)
	return nil
}

func (s *postService) checkCategory(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	exists, err := s.categories.ExistsByID(ctx, *id)
	if err != nil {
		return err
	}
	if !exists {
		return category.ErrCategoryNotFound
	}
	return nil
}

func (s *postService) record(ctx context.Context, action audit.Action, id uuid.UUID, actor *auth.Identity) {
	event := audit.Event{
		Action:   action,
		Entity:   "post",
		EntityID: id.String(),
	}
	if actor != nil {
		event.Actor = actor.Username
	}
	s.audit.Record(ctx, event)
}
