package utils

import (
	"tracker/src/models"

	"github.com/google/uuid"
)

// IsAuthorized reports whether a requester may act on a resource owned by
// ownerID. Owners may act on their own resources, admins on anyone's.
func IsAuthorized(requesterID uuid.UUID, role models.UserRole, ownerID uuid.UUID) bool {
	return requesterID == ownerID || role == models.UserRoleAdmin
}
