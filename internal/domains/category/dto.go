package category

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Slug, validation.Length(0, 100)),
	)
}

// UpdateRequest carries a partial update. Omitted and empty fields are
// left as they are.
type UpdateRequest struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

func (r UpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 100)),
		validation.Field(&r.Slug, validation.Length(1, 100)),
	)
}

type ListRequest struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
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
