package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/auth"
	"blog-backend/internal/domains/category"
	"blog-backend/internal/shared/audit"
)

type memoryCategoryRepo struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*category.Category
}

func newMemoryCategoryRepo() *memoryCategoryRepo {
	return &memoryCategoryRepo{categories: make(map[uuid.UUID]*category.Category)}
}

func (r *memoryCategoryRepo) Create(_ context.Context, cat *category.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.categories {
		if existing.Slug == cat.Slug {
			return category.ErrDuplicateSlug
		}
	}
	copied := *cat
	r.categories[cat.ID] = &copied
	return nil
}

func (r *memoryCategoryRepo) GetByID(_ context.Context, id uuid.UUID) (*category.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cat, ok := r.categories[id]; ok {
		copied := *cat
		return &copied, nil
	}
	return nil, category.ErrCategoryNotFound
}

func (r *memoryCategoryRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.categories[id]
	return ok, nil
}

func (r *memoryCategoryRepo) List(_ context.Context, _ category.ListRequest) ([]category.Category, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []category.Category
	for _, cat := range r.categories {
		out = append(out, *cat)
	}
	return out, len(out), nil
}

func (r *memoryCategoryRepo) Update(_ context.Context, cat *category.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[cat.ID]; !ok {
		return category.ErrCategoryNotFound
	}
	for id, existing := range r.categories {
		if id != cat.ID && existing.Slug == cat.Slug {
			return category.ErrDuplicateSlug
		}
	}
	copied := *cat
	r.categories[cat.ID] = &copied
	return nil
}

func (r *memoryCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return category.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

var (
	staffActor  = &auth.Identity{ID: uuid.New(), Username: "admin", IsStaff: true}
	normalActor = &auth.Identity{ID: uuid.New(), Username: "reader"}
)

func newTestCategoryService() category.Service {
	return NewCategoryService(newMemoryCategoryRepo(), audit.NewDispatcher())
}

func TestCreateCategoryGeneratesSlug(t *testing.T) {
	svc := newTestCategoryService()

	cat, err := svc.Create(context.Background(), staffActor, category.CreateRequest{Name: "Go Web Development"})
	require.NoError(t, err)
	assert.Equal(t, "go-web-development", cat.Slug)
	assert.Equal(t, "Go Web Development", cat.Name)
}

func TestCreateCategoryExplicitSlug(t *testing.T) {
	svc := newTestCategoryService()

	cat, err := svc.Create(context.Background(), staffActor, category.CreateRequest{Name: "News", Slug: "latest-news"})
	require.NoError(t, err)
	assert.Equal(t, "latest-news", cat.Slug)
}

func TestCreateCategoryStaffOnly(t *testing.T) {
	svc := newTestCategoryService()

	_, err := svc.Create(context.Background(), normalActor, category.CreateRequest{Name: "News"})
	assert.ErrorIs(t, err, category.ErrStaffOnly)

	_, err = svc.Create(context.Background(), nil, category.CreateRequest{Name: "News"})
	assert.ErrorIs(t, err, category.ErrStaffOnly)
}

func TestCreateCategoryDuplicateSlug(t *testing.T) {
	svc := newTestCategoryService()

	_, err := svc.Create(context.Background(), staffActor, category.CreateRequest{Name: "News"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), staffActor, category.CreateRequest{Name: "news"})
	assert.ErrorIs(t, err, category.ErrDuplicateSlug)
}

func TestUpdateCategoryPartial(t *testing.T) {
	svc := newTestCategoryService()

	cat, err := svc.Create(context.Background(), staffActor, category.CreateRequest{Name: "News"})
	require.NoError(t, err)

	name := "Tech News"
	updated, err := svc.Update(context.Background(), staffActor, cat.ID, category.UpdateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Tech News", updated.Name)
	// The slug is untouched unless explicitly set.
	assert.Equal(t, "news", updated.Slug)
}

func TestUpdateCategoryEmptyFieldsLeftUntouched(t *testing.T) {
	svc := newTestCategoryService()

	cat, err := svc.Create(context.Background(), staffActor, category.CreateRequest{Name: "News"})
	require.NoError(t, err)

	empty := ""
	updated, err := svc.Update(context.Background(), staffActor, cat.ID, category.UpdateRequest{
		Name: &empty,
		Slug: &empty,
	})
	require.NoError(t, err)
	assert.Equal(t, "News", updated.Name)
	assert.Equal(t, "news", updated.Slug)
}

func TestUpdateCategoryStaffOnly(t *testing.T) {
	svc := newTestCategoryService()

	cat, err := svc.Create(context.Background(), staffActor, category.CreateRequest{Name: "News"})
	require.NoError(t, err)

	name := "Other"
	_, err = svc.Update(context.Background(), normalActor, cat.ID, category.UpdateRequest{Name: &name})
	assert.ErrorIs(t, err, category.ErrStaffOnly)
}

func TestListCategoriesEmptyPageIsNotNil(t *testing.T) {
	svc := newTestCategoryService()

	categories, total, err := svc.List(context.Background(), category.ListRequest{})
	require.NoError(t, err)
	assert.Zero(t, total)
	require.NotNil(t, categories)
	assert.Empty(t, categories)
}

func TestDeleteCategory(t *testing.T) {
	svc := newTestCategoryService()

	cat, err := svc.Create(context.Background(), staffActor, category.CreateRequest{Name: "News"})
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(context.Background(), normalActor, cat.ID), category.ErrStaffOnly)
	require.NoError(t, svc.Delete(context.Background(), staffActor, cat.ID))

	_, err = svc.Get(context.Background(), cat.ID)
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), staffActor, uuid.New()), category.ErrCategoryNotFound)
}
