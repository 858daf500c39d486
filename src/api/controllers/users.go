package controllers

import (
	"context"

	"tracker/src/models"
	"tracker/src/repositories"
	"tracker/src/schemas"
	"tracker/src/services"
	"tracker/src/utils"

	"github.com/google/uuid"
)

type UserControllerI interface {
	Register(ctx context.Context, req *schemas.RegisterRequest) (*schemas.TokenResponse, error)
	Authenticate(ctx context.Context, username, password string) (*schemas.TokenResponse, error)
	GetCurrent(ctx context.Context, userID uuid.UUID) (*schemas.UserOut, error)
	GetByID(ctx context.Context, id uuid.UUID) (*schemas.UserOut, error)
	GetAll(ctx context.Context, params schemas.PageParams) (*schemas.Page[schemas.UserOut], error)
	Update(ctx context.Context, id uuid.UUID, req *schemas.UserUpdateRequest, requesterRole models.UserRole) (*schemas.UserOut, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserController struct {
	users repositories.UserRepository
	auth  services.AuthServiceI
}

func NewUserController(users repositories.UserRepository, auth services.AuthServiceI) *UserController {
	return &UserController{users: users, auth: auth}
}

// Register creates a new user with the non-privileged role and returns a
// fresh token for it. Roles are only ever escalated by an existing admin.
func (c *UserController) Register(ctx context.Context, req *schemas.RegisterRequest) (*schemas.TokenResponse, error) {
	exists, err := c.users.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, utils.BadRequest("failed to create user")
	}
	if exists {
		return nil, utils.Conflict("username or email already exists")
	}

	hashed, err := c.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hashed,
		IsActive:       true,
		Role:           models.UserRoleUser,
	}
	if err := c.users.Create(ctx, user); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, utils.Conflict("username or email already exists")
		}
		return nil, utils.BadRequest("failed to create user")
	}

	token, err := c.auth.IssueToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &schemas.TokenResponse{AccessToken: token, TokenType: "bearer", UserID: user.ID}, nil
}

func (c *UserController) Authenticate(ctx context.Context, username, password string) (*schemas.TokenResponse, error) {
	user, err := c.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, utils.BadRequest("failed to retrieve user")
	}
	if user == nil {
		return nil, utils.NotFound("user not found")
	}
	if !c.auth.VerifyPassword(password, user.HashedPassword) {
		return nil, utils.Unauthorized("incorrect password")
	}

	token, err := c.auth.IssueToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &schemas.TokenResponse{AccessToken: token, TokenType: "bearer", UserID: user.ID}, nil
}

// GetCurrent resolves the requester behind a verified token. A vanished or
// deactivated account invalidates the credentials rather than surfacing as
// a missing resource.
func (c *UserController) GetCurrent(ctx context.Context, userID uuid.UUID) (*schemas.UserOut, error) {
	user, err := c.users.GetByID(ctx, userID)
	if err != nil {
		return nil, utils.BadRequest("failed to retrieve user")
	}
	if user == nil {
		return nil, utils.Unauthorized("Access denied. Invalid credentials")
	}
	if !user.IsActive {
		return nil, utils.Unauthorized("inactive user")
	}
	return schemas.NewUserOut(user), nil
}

func (c *UserController) GetByID(ctx context.Context, id uuid.UUID) (*schemas.UserOut, error) {
	user, err := c.users.GetByID(ctx, id)
	if err != nil {
		return nil, utils.BadRequest("failed to retrieve user")
	}
	if user == nil {
		return nil, utils.NotFound("user not found")
	}
	return schemas.NewUserOut(user), nil
}

func (c *UserController) GetAll(ctx context.Context, params schemas.PageParams) (*schemas.Page[schemas.UserOut], error) {
	users, err := c.users.GetAll(ctx, params.Skip(), params.Limit())
	if err != nil {
		return nil, utils.BadRequest("failed to retrieve users")
	}
	total, err := c.users.CountAll(ctx)
	if err != nil {
		return nil, utils.BadRequest("failed to retrieve users")
	}

	items := make([]schemas.UserOut, 0, len(users))
	for i := range users {
		items = append(items, *schemas.NewUserOut(&users[i]))
	}
	return schemas.NewPage(items, params, total), nil
}

func (c *UserController) Update(ctx context.Context, id uuid.UUID, req *schemas.UserUpdateRequest, requesterRole models.UserRole) (*schemas.UserOut, error) {
	user, err := c.users.GetByID(ctx, id)
	if err != nil {
		return nil, utils.BadRequest("failed to retrieve user")
	}
	if user == nil {
		return nil, utils.NotFound("user not found")
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Role != nil {
		if requesterRole != models.UserRoleAdmin {
			return nil, utils.Forbidden("only admins may change roles")
		}
		if !req.Role.IsValid() {
			return nil, utils.BadRequest("invalid role")
		}
		user.Role = *req.Role
	}

	if err := c.users.Update(ctx, user); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, utils.Conflict("username or email already exists")
		}
		return nil, utils.BadRequest("failed to update user")
	}
	return schemas.NewUserOut(user), nil
}

func (c *UserController) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := c.users.Delete(ctx, id)
	if err != nil {
		return utils.BadRequest("failed to delete user")
	}
	if !deleted {
		return utils.NotFound("user not found")
	}
	return nil
}
