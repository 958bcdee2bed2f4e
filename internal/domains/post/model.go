package post

import (
	"time"

	"github.com/google/uuid"
)

// Post is a blog entry. AuthorID is set once at creation and never
// changes. CategoryID is optional and becomes nil when the category
// is deleted. AuthorUsername and CategoryName come from joins.
type Post struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	AuthorID       uuid.UUID  `json:"author_id"`
	AuthorUsername string     `json:"author_username"`
	CategoryID     *uuid.UUID `json:"category_id,omitempty"`
	CategoryName   *string    `json:"category_name,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
