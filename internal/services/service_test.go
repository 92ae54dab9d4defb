// internal/services/service_test.go
package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sokoline/soko-backend/internal/models"
)

// setupTestDB opens a fresh in-memory database per test. TranslateError
// makes unique index violations surface as gorm.ErrDuplicatedKey, the
// same way the postgres driver reports them.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Shop{},
		&models.Product{},
		&models.ProductImage{},
		&models.ShopReview{},
		&models.ShopFollower{},
		&models.AuditLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		IsActive:  true,
	}
	if err := user.SetPassword("password1"); err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

func createTestShop(t *testing.T, db *gorm.DB, ownerID uint, name, slug string) *models.Shop {
	t.Helper()

	shop := &models.Shop{
		OwnerID:  ownerID,
		Name:     name,
		Slug:     slug,
		Country:  "Cameroon",
		IsActive: true,
	}
	if err := db.Create(shop).Error; err != nil {
		t.Fatalf("failed to create test shop: %v", err)
	}

	return shop
}
