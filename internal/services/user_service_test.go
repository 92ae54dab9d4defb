// internal/services/user_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sokoline/soko-backend/internal/models"
)

func TestUpdateProfilePatchesOnlyProvidedFields(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)
	user := createTestUser(t, db, "jane@example.com", models.UserRoleCustomer)

	phone := "+237670000001"
	updated, err := service.UpdateProfile(user.ID, &UpdateProfileRequest{Phone: &phone})

	assert.NoError(t, err)
	assert.Equal(t, "+237670000001", updated.Phone)
	assert.Equal(t, "Test", updated.FirstName)
}

func TestUpdateProfileChangesPassword(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)
	user := createTestUser(t, db, "jane@example.com", models.UserRoleCustomer)

	password := "newsecret9"
	_, err := service.UpdateProfile(user.ID, &UpdateProfileRequest{Password: &password})
	assert.NoError(t, err)

	var reloaded models.User
	assert.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.NoError(t, reloaded.CheckPassword("newsecret9"))
	assert.Error(t, reloaded.CheckPassword("password1"))
}

func TestUpdateProfileRejectsWeakPassword(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)
	user := createTestUser(t, db, "jane@example.com", models.UserRoleCustomer)

	password := "short"
	_, err := service.UpdateProfile(user.ID, &UpdateProfileRequest{Password: &password})
	assert.Error(t, err)
}

func TestDeactivateAccount(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)
	user := createTestUser(t, db, "jane@example.com", models.UserRoleCustomer)

	assert.NoError(t, service.DeactivateAccount(user.ID))

	var reloaded models.User
	assert.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.False(t, reloaded.IsActive)

	assert.Error(t, service.DeactivateAccount(99999))
}
