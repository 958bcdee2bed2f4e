package category

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrDuplicateSlug    = errors.New("category slug already exists")
	ErrStaffOnly        = errors.New("only staff can manage categories")
)
