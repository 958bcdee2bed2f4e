package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"blog-backend/internal/domains/category"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
)

type CategoryHandler struct {
	service category.Service
}

func NewCategoryHandler(service category.Service) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// Create handles POST /categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req category.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	cat, err := h.service.Create(c.Request.Context(), middleware.CurrentIdentity(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, cat)
}

// Get handles GET /categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	cat, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, cat)
}

// List handles GET /categories
func (h *CategoryHandler) List(c *gin.Context) {
	var req category.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	req.SetDefaults()

	categories, total, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.SuccessWithMeta(c, categories, response.Meta{
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: (total + req.Limit - 1) / req.Limit,
	})
}

// Update handles PUT /categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	var req category.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	cat, err := h.service.Update(c.Request.Context(), middleware.CurrentIdentity(c), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, cat)
}

// Delete handles DELETE /categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.CurrentIdentity(c), id); err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, gin.H{"success": true})
}

func (h *CategoryHandler) respondError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.ValidationFailed(c, validationErrs)
		return
	}

	switch {
	case errors.Is(err, category.ErrCategoryNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, category.ErrDuplicateSlug):
		response.Conflict(c, err.Error())
	case errors.Is(err, category.ErrStaffOnly):
		response.Forbidden(c, err.Error())
	default:
		response.InternalServerError(c, "something went wrong")
	}
}
