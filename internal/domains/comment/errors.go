package comment

import "errors"

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotAllowed      = errors.New("not allowed to modify this comment")
)
