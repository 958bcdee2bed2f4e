package auth

import "github.com/google/uuid"

// Authorization rules for user-owned content. A nil actor is an
// anonymous request and can never pass any of these checks.

// CanModify reports whether actor may edit content owned by authorID.
// Only the owner may edit, staff included.
func CanModify(actor *Identity, authorID uuid.UUID) bool {
	return actor != nil && actor.ID == authorID
}

// CanDelete reports whether actor may delete content owned by authorID.
// Owners and staff may delete.
func CanDelete(actor *Identity, authorID uuid.UUID) bool {
	if actor == nil {
		return false
	}
	return actor.ID == authorID || actor.IsStaff
}

// CanCreateCategory reports whether actor may create categories.
func CanCreateCategory(actor *Identity) bool {
	return actor != nil && actor.IsStaff
}
