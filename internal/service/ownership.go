package service

import "artspace/internal/models"

// Ownable is content that belongs to a single user.
type Ownable interface {
	OwnerID() uint
}

// authorizeOwner allows only the owner of resource to mutate it. Callers
// look the record up first, so a missing record is reported as 404 before
// ownership is considered.
func authorizeOwner(resource Ownable, userID uint, action string) error {
	if resource.OwnerID() != userID {
		return models.NewForbiddenError("Not allowed to " + action + " content owned by another user")
	}
	return nil
}
