// internal/services/admin_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sokoline/soko-backend/internal/models"
)

func TestListUsersFilters(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdminService(db)

	createTestUser(t, db, "customer@example.com", models.UserRoleCustomer)
	createTestUser(t, db, "owner@example.com", models.UserRoleShopOwner)

	users, total, err := service.ListUsers(UserSearchParams{Role: "shop_owner"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "owner@example.com", users[0].Email)

	params := UserSearchParams{}
	params.Search = "customer"
	_, total, err = service.ListUsers(params)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestUpdateUserStatus(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdminService(db)

	admin := createTestUser(t, db, "admin@example.com", models.UserRoleAdmin)
	user := createTestUser(t, db, "jane@example.com", models.UserRoleCustomer)

	inactive := false
	updated, err := service.UpdateUserStatus(user.ID, admin.ID, &UpdateUserStatusRequest{IsActive: &inactive})
	assert.NoError(t, err)
	assert.False(t, updated.IsActive)

	// Admins cannot lock themselves out
	_, err = service.UpdateUserStatus(admin.ID, admin.ID, &UpdateUserStatusRequest{IsActive: &inactive})
	assert.Error(t, err)
}

func TestVerifyShop(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdminService(db)

	owner := createTestUser(t, db, "owner@example.com", models.UserRoleShopOwner)
	shop := createTestShop(t, db, owner.ID, "Red Mug Store", "red-mug-store")

	verified, err := service.VerifyShop(shop.ID, true)
	assert.NoError(t, err)
	assert.True(t, verified.IsVerified)

	unverified, err := service.VerifyShop(shop.ID, false)
	assert.NoError(t, err)
	assert.False(t, unverified.IsVerified)

	_, err = service.VerifyShop(99999, true)
	assert.Error(t, err)
}
