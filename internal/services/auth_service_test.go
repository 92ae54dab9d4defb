// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/sokoline/soko-backend/internal/config"
	"github.com/sokoline/soko-backend/internal/models"
	"github.com/sokoline/soko-backend/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())

	cfg := &config.Config{
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
	}
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	shopService := NewShopService(suite.db, nil)
	suite.service = NewAuthService(suite.db, cfg, shopService, nil)
}

func (suite *AuthServiceTestSuite) TestRegisterCustomer() {
	resp, err := suite.service.Register(&RegisterRequest{
		Email:     "Jane@Example.com",
		Password:  "secret123",
		FirstName: "Jane",
		LastName:  "Doe",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "jane@example.com", resp.User.Email)
	assert.Equal(suite.T(), models.UserRoleCustomer, resp.User.Role)
	assert.Nil(suite.T(), resp.Shop)
	assert.NotEmpty(suite.T(), resp.AccessToken)
	assert.NotEmpty(suite.T(), resp.RefreshToken)
	assert.Equal(suite.T(), "Bearer", resp.TokenType)
	assert.Equal(suite.T(), 3600, resp.ExpiresIn)
}

func (suite *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	req := &RegisterRequest{
		Email:     "jane@example.com",
		Password:  "secret123",
		FirstName: "Jane",
		LastName:  "Doe",
	}

	_, err := suite.service.Register(req)
	assert.NoError(suite.T(), err)

	_, err = suite.service.Register(req)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "already registered")
}

func (suite *AuthServiceTestSuite) TestRegisterWeakPasswordRejected() {
	_, err := suite.service.Register(&RegisterRequest{
		Email:     "jane@example.com",
		Password:  "short1",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	assert.Error(suite.T(), err)

	_, err = suite.service.Register(&RegisterRequest{
		Email:     "jane@example.com",
		Password:  "lettersonly",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	assert.Error(suite.T(), err)
}

func (suite *AuthServiceTestSuite) TestRegisterShopOwnerWithShop() {
	resp, err := suite.service.Register(&RegisterRequest{
		Email:     "owner@example.com",
		Password:  "secret123",
		FirstName: "Paul",
		LastName:  "Biya",
		Role:      "shop_owner",
		Shop:      &CreateShopRequest{Name: "Mama Africa Kitchen", City: "Douala"},
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.UserRoleShopOwner, resp.User.Role)
	assert.NotNil(suite.T(), resp.Shop)
	assert.Equal(suite.T(), "mama-africa-kitchen", resp.Shop.Slug)
	assert.Equal(suite.T(), resp.User.ID, resp.Shop.OwnerID)
}

func (suite *AuthServiceTestSuite) TestRegisterResolvesShopNameCollision() {
	first, err := suite.service.Register(&RegisterRequest{
		Email:     "first@example.com",
		Password:  "secret123",
		FirstName: "Ama",
		LastName:  "Nkemta",
		Role:      "shop_owner",
		Shop:      &CreateShopRequest{Name: "Mama Africa Kitchen"},
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "mama-africa-kitchen", first.Shop.Slug)

	// A taken slug during registration advances the counter instead of
	// failing the whole transaction.
	second, err := suite.service.Register(&RegisterRequest{
		Email:     "second@example.com",
		Password:  "secret123",
		FirstName: "Bi",
		LastName:  "Fondo",
		Role:      "shop_owner",
		Shop:      &CreateShopRequest{Name: "Mama Africa Kitchen"},
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "mama-africa-kitchen-1", second.Shop.Slug)

	var count int64
	suite.db.Model(&models.User{}).Count(&count)
	assert.Equal(suite.T(), int64(2), count)
}

func (suite *AuthServiceTestSuite) TestRegisterCustomerWithShopRejected() {
	_, err := suite.service.Register(&RegisterRequest{
		Email:     "jane@example.com",
		Password:  "secret123",
		FirstName: "Jane",
		LastName:  "Doe",
		Shop:      &CreateShopRequest{Name: "Side Hustle"},
	})

	assert.Error(suite.T(), err)

	var count int64
	suite.db.Model(&models.User{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *AuthServiceTestSuite) TestRegisterRollsBackWhenShopFails() {
	_, err := suite.service.Register(&RegisterRequest{
		Email:     "owner@example.com",
		Password:  "secret123",
		FirstName: "Paul",
		LastName:  "Biya",
		Role:      "shop_owner",
		Shop:      &CreateShopRequest{Name: "???"},
	})

	assert.Error(suite.T(), err)

	// User creation must not survive the failed shop insert
	var count int64
	suite.db.Model(&models.User{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *AuthServiceTestSuite) TestLogin() {
	_, err := suite.service.Register(&RegisterRequest{
		Email:     "jane@example.com",
		Password:  "secret123",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	assert.NoError(suite.T(), err)

	resp, err := suite.service.Login(&LoginRequest{
		Email:    "jane@example.com",
		Password: "secret123",
	})
	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), resp.AccessToken)

	claims, err := utils.ValidateJWT(resp.AccessToken)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), resp.User.ID, claims.UserID)

	_, err = suite.service.Login(&LoginRequest{
		Email:    "jane@example.com",
		Password: "wrongpass1",
	})
	assert.Error(suite.T(), err)
}

func (suite *AuthServiceTestSuite) TestLoginDeactivatedAccount() {
	resp, err := suite.service.Register(&RegisterRequest{
		Email:     "jane@example.com",
		Password:  "secret123",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	assert.NoError(suite.T(), err)

	suite.db.Model(&models.User{}).Where("id = ?", resp.User.ID).Update("is_active", false)

	_, err = suite.service.Login(&LoginRequest{
		Email:    "jane@example.com",
		Password: "secret123",
	})
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "deactivated")
}

func (suite *AuthServiceTestSuite) TestRefreshToken() {
	registered, err := suite.service.Register(&RegisterRequest{
		Email:     "jane@example.com",
		Password:  "secret123",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	assert.NoError(suite.T(), err)

	resp, err := suite.service.RefreshToken(&RefreshTokenRequest{
		RefreshToken: registered.RefreshToken,
	})
	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), resp.AccessToken)
	assert.Equal(suite.T(), registered.User.ID, resp.User.ID)

	_, err = suite.service.RefreshToken(&RefreshTokenRequest{
		RefreshToken: "not-a-token",
	})
	assert.Error(suite.T(), err)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
