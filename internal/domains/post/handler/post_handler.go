package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"blog-backend/internal/domains/category"
	"blog-backend/internal/domains/post"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
)

type PostHandler struct {
	service post.Service
}

func NewPostHandler(service post.Service) *PostHandler {
	return &PostHandler{service: service}
}

// Create handles POST /posts
func (h *PostHandler) Create(c *gin.Context) {
	var req post.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	p, err := h.service.Create(c.Request.Context(), middleware.CurrentIdentity(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, p)
}

// Get handles GET /posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	detail, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, detail)
}

// List handles GET /posts
func (h *PostHandler) List(c *gin.Context) {
	var req post.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	req.SetDefaults()

	posts, total, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.SuccessWithMeta(c, posts, response.Meta{
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: (total + req.Limit - 1) / req.Limit,
	})
}

// Update handles PUT /posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	var req post.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	p, err := h.service.Update(c.Request.Context(), middleware.CurrentIdentity(c), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, p)
}

// Delete handles DELETE /posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.CurrentIdentity(c), id); err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, gin.H{"success": true})
}

func (h *PostHandler) respondError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.ValidationFailed(c, validationErrs)
		return
	}

	switch {
	case errors.Is(err, post.ErrPostNotFound), errors.Is(err, category.ErrCategoryNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, post.ErrNotAllowed):
		response.Forbidden(c, err.Error())
	default:
		response.InternalServerError(c, "something went wrong")
	}
}
