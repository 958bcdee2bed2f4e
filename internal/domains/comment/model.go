package comment

import (
	"time"

	"github.com/google/uuid"
)

// Comment belongs to a post. AuthorUsername is filled by joins when
// reading, it is not a column on the comments table.
type Comment struct {
	ID             uuid.UUID `json:"id"`
	PostID         uuid.UUID `json:"post_id"`
	AuthorID       uuid.UUID `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
