package post

import "errors"

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotAllowed   = errors.New("not allowed to modify this post")
)
