package comment

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateRequest struct {
	Content string `json:"content"`
}

func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required, validation.Length(1, 10000)),
	)
}

type UpdateRequest struct {
	Content string `json:"content"`
}

func (r UpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required, validation.Length(1, 10000)),
	)
}
