package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Technology", "technology"},
		{"spaces", "Go Web Development", "go-web-development"},
		{"punctuation", "News & Updates!", "news-updates"},
		{"leading and trailing", "  --Hello World--  ", "hello-world"},
		{"digits", "Top 10 Tips", "top-10-tips"},
		{"already a slug", "already-a-slug", "already-a-slug"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.in))
		})
	}
}
