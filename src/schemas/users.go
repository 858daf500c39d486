package schemas

import (
	"time"

	"tracker/src/models"

	"github.com/google/uuid"
)

// UserOut is the outward projection of a user. The password hash never
// leaves the persistence layer through this shape.
type UserOut struct {
	ID        uuid.UUID       `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	IsActive  bool            `json:"is_active"`
	Role      models.UserRole `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func NewUserOut(u *models.User) *UserOut {
	return &UserOut{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsActive:  u.IsActive,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserUpdateRequest is a partial patch: only non-nil fields overwrite.
type UserUpdateRequest struct {
	Username *string          `json:"username"`
	Email    *string          `json:"email"`
	IsActive *bool            `json:"is_active"`
	Role     *models.UserRole `json:"role"`
}
