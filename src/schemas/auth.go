package schemas

import (
	"tracker/src/utils"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Validate() error {
	if len(r.Username) < 3 || len(r.Username) > 50 {
		return utils.UnprocessableEntity("username must be between 3 and 50 characters")
	}
	if r.Email == "" {
		return utils.UnprocessableEntity("email is required")
	}
	if len(r.Password) < 8 {
		return utils.UnprocessableEntity("password must be at least 8 characters")
	}
	return nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	UserID      uuid.UUID `json:"user_id"`
}
