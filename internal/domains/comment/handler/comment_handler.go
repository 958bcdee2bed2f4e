package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"blog-backend/internal/domains/comment"
	"blog-backend/internal/domains/post"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
)

type CommentHandler struct {
	service comment.Service
}

func NewCommentHandler(service comment.Service) *CommentHandler {
	return &CommentHandler{service: service}
}

// Create handles POST /posts/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	var req comment.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	cm, err := h.service.Create(c.Request.Context(), middleware.CurrentIdentity(c), postID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, cm)
}

// Update handles PUT /comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	var req comment.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	cm, err := h.service.Update(c.Request.Context(), middleware.CurrentIdentity(c), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, cm)
}

// Delete handles DELETE /comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.CurrentIdentity(c), id); err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, gin.H{"success": true})
}

func (h *CommentHandler) respondError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.ValidationFailed(c, validationErrs)
		return
	}

	switch {
	case errors.Is(err, comment.ErrCommentNotFound), errors.Is(err, post.ErrPostNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, comment.ErrNotAllowed):
		response.Forbidden(c, err.Error())
	default:
		response.InternalServerError(c, "something went wrong")
	}
}
