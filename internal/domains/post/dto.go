package post

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"blog-backend/internal/domains/comment"
)

type CreateRequest struct {
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	CategoryID *uuid.UUID `json:"category_id"`
}

func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Content, validation.Required),
	)
}

// UpdateRequest carries a partial update. Omitted and empty fields are
// left as they are. The author can never be changed.
type UpdateRequest struct {
	Title      *string    `json:"title"`
	Content    *string    `json:"content"`
	CategoryID *uuid.UUID `json:"category_id"`
}

func (r UpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(1, 200)),
	)
}

type ListRequest struct {
	Page       int        `form:"page"`
	Limit      int        `form:"limit"`
	CategoryID *uuid.UUID `form:"category_id"`
	AuthorID   *uuid.UUID `form:"author_id"`
}

func (r *ListRequest) SetDefaults() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = 20
	}
	if r.Limit > 100 {
		r.Limit = 100
	}
}

// DetailResponse is a post together with its comments, newest first.
type DetailResponse struct {
	Post
	Comments []comment.Comment `json:"comments"`
}
