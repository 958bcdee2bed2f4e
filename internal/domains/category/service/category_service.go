package service

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/auth"
	"blog-backend/internal/domains/category"
	"blog-backend/internal/shared/audit"
	"blog-backend/internal/shared/utils"
)

type categoryService struct {
	repo  category.Repository
	audit audit.Recorder
}

func NewCategoryService(repo category.Repository, recorder audit.Recorder) category.Service {
	return &categoryService{repo: repo, audit: recorder}
}

func (s *categoryService) Create(ctx context.Context, actor *auth.Identity, req category.CreateRequest) (*category.Category, error) {
	if !auth.CanCreateCategory(actor) {
		return nil, category.ErrStaffOnly
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.GenerateSlug(req.Name)
	}

	cat := &category.Category{
		ID:   uuid.New(),
		Name: req.Name,
		Slug: slug,
	}
	if err := s.repo.Create(ctx, cat); err != nil {
		return nil, err
	}

	s.record(ctx, audit.ActionCreate, cat.ID, actor)
	return cat, nil
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *categoryService) List(ctx context.Context, req category.ListRequest) ([]category.Category, int, error) {
	req.SetDefaults()
	categories, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, 0, err
	}
	// Empty pages serialize as [] rather than null.
	if categories == nil {
		categories = []category.Category{}
	}
	return categories, total, nil
}

func (s *categoryService) Update(ctx context.Context, actor *auth.Identity, id uuid.UUID, req category.UpdateRequest) (*category.Category, error) {
	if !auth.CanCreateCategory(actor) {
		return nil, category.ErrStaffOnly
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// A supplied-but-empty field counts as omitted.
	if req.Name != nil && *req.Name != "" {
		cat.Name = *req.Name
	}
	if req.Slug != nil && *req.Slug != "" {
		cat.Slug = *req.Slug
	}
	if err := s.repo.Update(ctx, cat); err != nil {
		return nil, err
	}

	s.record(ctx, audit.ActionUpdate, cat.ID, actor)
	return cat, nil
}

func (s *categoryService) Delete(ctx context.Context, actor *auth.Identity, id uuid.UUID) error {
	if !auth.CanCreateCategory(actor) {
		return category.ErrStaffOnly
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.record(ctx, audit.ActionDelete, id, actor)
	return nil
}

func (s *categoryService) record(ctx context.Context, action audit.Action, id uuid.UUID, actor *auth.Identity) {
	event := audit.Event{
		Action:   action,
		Entity:   "category",
		EntityID: id.String(),
	}
	if actor != nil {
		event.Actor = actor.Username
	}
	s.audit.Record(ctx, event)
}
