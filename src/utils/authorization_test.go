package utils_test

import (
	"testing"

	"tracker/src/models"
	"tracker/src/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIsAuthorized(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	assert.True(t, utils.IsAuthorized(owner, models.UserRoleUser, owner))
	assert.True(t, utils.IsAuthorized(stranger, models.UserRoleAdmin, owner))
	assert.False(t, utils.IsAuthorized(stranger, models.UserRoleUser, owner))
}
