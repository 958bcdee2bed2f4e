package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPolicy(t *testing.T) {
	ownerID := uuid.New()
	owner := &Identity{ID: ownerID, Username: "owner"}
	staff := &Identity{ID: uuid.New(), Username: "staff", IsStaff: true}
	staffOwner := &Identity{ID: ownerID, Username: "owner", IsStaff: true}
	other := &Identity{ID: uuid.New(), Username: "other"}

	tests := []struct {
		name      string
		actor     *Identity
		canModify bool
		canDelete bool
	}{
		{"anonymous", nil, false, false},
		{"owner", owner, true, true},
		{"staff non-owner", staff, false, true},
		{"staff owner", staffOwner, true, true},
		{"unrelated user", other, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.canModify, CanModify(tt.actor, ownerID))
			assert.Equal(t, tt.canDelete, CanDelete(tt.actor, ownerID))
		})
	}
}

func TestCanCreateCategory(t *testing.T) {
	assert.False(t, CanCreateCategory(nil))
	assert.False(t, CanCreateCategory(&Identity{ID: uuid.New()}))
	assert.True(t, CanCreateCategory(&Identity{ID: uuid.New(), IsStaff: true}))
}
