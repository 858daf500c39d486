package controllers_test

import (
	"context"
	"testing"

	"tracker/src/api/controllers"
	"tracker/src/models"
	"tracker/src/schemas"
	"tracker/src/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func httpCode(t *testing.T, err error) int {
	t.Helper()
	httpErr, ok := err.(*utils.HTTPError)
	require.True(t, ok, "expected an HTTPError, got %T: %v", err, err)
	return httpErr.Code
}

func TestUserRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the user and returns a bearer token", func(t *testing.T) {
		users := newMemUserRepo()
		controller := controllers.NewUserController(users, &authStub{})

		token, err := controller.Register(ctx, &schemas.RegisterRequest{
			Username: "alice", Email: "alice@example.com", Password: "s3cret-pass",
		})
		require.NoError(t, err)
		assert.Equal(t, "bearer", token.TokenType)
		assert.NotEmpty(t, token.AccessToken)

		stored, err := users.GetByID(ctx, token.UserID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, models.UserRoleUser, stored.Role)
		assert.True(t, stored.IsActive)
		assert.NotEqual(t, "s3cret-pass", stored.HashedPassword)
	})

	t.Run("duplicate username is a conflict", func(t *testing.T) {
		users := newMemUserRepo()
		users.add(&models.User{Username: "alice", Email: "alice@example.com"})
		controller := controllers.NewUserController(users, &authStub{})

		_, err := controller.Register(ctx, &schemas.RegisterRequest{
			Username: "alice", Email: "other@example.com", Password: "s3cret-pass",
		})
		require.Error(t, err)
		assert.Equal(t, 409, httpCode(t, err))
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		users := newMemUserRepo()
		users.add(&models.User{Username: "alice", Email: "alice@example.com"})
		controller := controllers.NewUserController(users, &authStub{})

		_, err := controller.Register(ctx, &schemas.RegisterRequest{
			Username: "bob", Email: "alice@example.com", Password: "s3cret-pass",
		})
		require.Error(t, err)
		assert.Equal(t, 409, httpCode(t, err))
	})
}

func TestUserAuthenticate(t *testing.T) {
	ctx := context.Background()

	users := newMemUserRepo()
	alice := users.add(&models.User{
		Username:       "alice",
		Email:          "alice@example.com",
		HashedPassword: "hashed:s3cret-pass",
		IsActive:       true,
		Role:           models.UserRoleUser,
	})
	controller := controllers.NewUserController(users, &authStub{})

	t.Run("valid credentials yield a token", func(t *testing.T) {
		token, err := controller.Authenticate(ctx, "alice", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, token.UserID)
		assert.NotEmpty(t, token.AccessToken)
	})

	t.Run("unknown username is not found", func(t *testing.T) {
		_, err := controller.Authenticate(ctx, "nobody", "s3cret-pass")
		require.Error(t, err)
		assert.Equal(t, 404, httpCode(t, err))
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		_, err := controller.Authenticate(ctx, "alice", "wrong-pass")
		require.Error(t, err)
		assert.Equal(t, 401, httpCode(t, err))
	})
}

func TestUserGetCurrent(t *testing.T) {
	ctx := context.Background()

	users := newMemUserRepo()
	active := users.add(&models.User{Username: "alice", Email: "a@example.com", IsActive: true})
	inactive := users.add(&models.User{Username: "bob", Email: "b@example.com", IsActive: false})
	controller := controllers.NewUserController(users, &authStub{})

	t.Run("active user resolves", func(t *testing.T) {
		out, err := controller.GetCurrent(ctx, active.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", out.Username)
	})

	t.Run("vanished account invalidates the credentials", func(t *testing.T) {
		_, err := controller.GetCurrent(ctx, uuid.New())
		require.Error(t, err)
		assert.Equal(t, 401, httpCode(t, err))
	})

	t.Run("deactivated account invalidates the credentials", func(t *testing.T) {
		_, err := controller.GetCurrent(ctx, inactive.ID)
		require.Error(t, err)
		assert.Equal(t, 401, httpCode(t, err))
	})
}

func TestUserUpdate(t *testing.T) {
	ctx := context.Background()
	admin := models.UserRoleAdmin

	t.Run("non-admins cannot change roles", func(t *testing.T) {
		users := newMemUserRepo()
		alice := users.add(&models.User{Username: "alice", Email: "a@example.com", Role: models.UserRoleUser})
		controller := controllers.NewUserController(users, &authStub{})

		_, err := controller.Update(ctx, alice.ID, &schemas.UserUpdateRequest{Role: &admin}, models.UserRoleUser)
		require.Error(t, err)
		assert.Equal(t, 403, httpCode(t, err))

		stored, _ := users.GetByID(ctx, alice.ID)
		assert.Equal(t, models.UserRoleUser, stored.Role)
	})

	t.Run("admins may change roles", func(t *testing.T) {
		users := newMemUserRepo()
		alice := users.add(&models.User{Username: "alice", Email: "a@example.com", Role: models.UserRoleUser})
		controller := controllers.NewUserController(users, &authStub{})

		out, err := controller.Update(ctx, alice.ID, &schemas.UserUpdateRequest{Role: &admin}, models.UserRoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, models.UserRoleAdmin, out.Role)
	})

	t.Run("renaming onto a taken username is a conflict", func(t *testing.T) {
		users := newMemUserRepo()
		users.add(&models.User{Username: "alice", Email: "a@example.com"})
		bob := users.add(&models.User{Username: "bob", Email: "b@example.com"})
		controller := controllers.NewUserController(users, &authStub{})

		taken := "alice"
		_, err := controller.Update(ctx, bob.ID, &schemas.UserUpdateRequest{Username: &taken}, models.UserRoleUser)
		require.Error(t, err)
		assert.Equal(t, 409, httpCode(t, err))
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		controller := controllers.NewUserController(newMemUserRepo(), &authStub{})

		name := "ghost"
		_, err := controller.Update(ctx, uuid.New(), &schemas.UserUpdateRequest{Username: &name}, models.UserRoleAdmin)
		require.Error(t, err)
		assert.Equal(t, 404, httpCode(t, err))
	})
}

func TestUserDelete(t *testing.T) {
	ctx := context.Background()

	users := newMemUserRepo()
	alice := users.add(&models.User{Username: "alice", Email: "a@example.com"})
	controller := controllers.NewUserController(users, &authStub{})

	require.NoError(t, controller.Delete(ctx, alice.ID))

	err := controller.Delete(ctx, alice.ID)
	require.Error(t, err)
	assert.Equal(t, 404, httpCode(t, err))
}
