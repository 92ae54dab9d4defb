// internal/services/review_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/sokoline/soko-backend/internal/models"
)

type ReviewServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	service  *ReviewService
	owner    *models.User
	customer *models.User
	shop     *models.Shop
}

func (suite *ReviewServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.service = NewReviewService(suite.db, nil)
	suite.owner = createTestUser(suite.T(), suite.db, "owner@example.com", models.UserRoleShopOwner)
	suite.customer = createTestUser(suite.T(), suite.db, "customer@example.com", models.UserRoleCustomer)
	suite.shop = createTestShop(suite.T(), suite.db, suite.owner.ID, "Red Mug Store", "red-mug-store")
}

func (suite *ReviewServiceTestSuite) createProduct(name, slug string) *models.Product {
	product := &models.Product{
		ShopID:   suite.shop.ID,
		Name:     name,
		Slug:     slug,
		Price:    9.99,
		IsActive: true,
	}
	assert.NoError(suite.T(), suite.db.Create(product).Error)
	return product
}

func (suite *ReviewServiceTestSuite) TestCreateShopLevelReview() {
	review, err := suite.service.CreateReview(suite.shop.ID, suite.customer.ID, &CreateReviewRequest{
		Rating:  5,
		Title:   "Great shop",
		Comment: "Fast delivery",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 5, review.Rating)
	assert.Nil(suite.T(), review.ProductID)
}

func (suite *ReviewServiceTestSuite) TestShopLevelReviewDuplicateRejected() {
	_, err := suite.service.CreateReview(suite.shop.ID, suite.customer.ID, &CreateReviewRequest{Rating: 5})
	assert.NoError(suite.T(), err)

	_, err = suite.service.CreateReview(suite.shop.ID, suite.customer.ID, &CreateReviewRequest{Rating: 3})
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "duplicate review")
}

func (suite *ReviewServiceTestSuite) TestProductReviewDuplicateRejected() {
	product := suite.createProduct("Red Mug", "red-mug")

	_, err := suite.service.CreateReview(suite.shop.ID, suite.customer.ID, &CreateReviewRequest{
		ProductID: &product.ID,
		Rating:    4,
	})
	assert.NoError(suite.T(), err)

	_, err = suite.service.CreateReview(suite.shop.ID, suite.customer.ID, &CreateReviewRequest{
		ProductID: &product.ID,
		Rating:    2,
	})
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "duplicate review")
}

func (suite *ReviewServiceTestSuite) TestShopAndProductReviewsCoexist() {
	product := suite.createProduct("Red Mug", "red-mug")
	other := suite.createProduct("Blue Mug", "blue-mug")

	_, err := suite.service.CreateReview(suite.shop.ID, suite.customer.ID, &CreateReviewRequest{Rating: 5})
	assert.NoError(suite.T(), err)

	_, err = suite.service.CreateReview(suite.shop.ID, suite.customer.ID, &CreateReviewRequest{
		ProductID: &product.ID,
		Rating:    4,
	})
	assert.NoError(suite.T(), err)

	_, err = suite.service.CreateReview(suite.shop.ID, suite.customer.ID, &CreateReviewRequest{
		ProductID: &other.ID,
		Rating:    3,
	})
	assert.NoError(suite.T(), err)

	_, total, err := suite.service.GetShopReviews(suite.shop.ID, ReviewSearchParams{})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(3), total)
}

func (suite *ReviewServiceTestSuite) TestOwnerCannotReviewOwnShop() {
	_, err := suite.service.CreateReview(suite.shop.ID, suite.owner.ID, &CreateReviewRequest{Rating: 5})

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "unauthorized")
}

func (suite *ReviewServiceTestSuite) TestReviewRejectsForeignProduct() {
	otherShop := createTestShop(suite.T(), suite.db, suite.owner.ID, "Blue Store", "blue-store")
	foreign := &models.Product{
		ShopID:   otherShop.ID,
		Name:     "Blue Mug",
		Slug:     "blue-mug",
		Price:    9.99,
		IsActive: true,
	}
	assert.NoError(suite.T(), suite.db.Create(foreign).Error)

	_, err := suite.service.CreateReview(suite.shop.ID, suite.customer.ID, &CreateReviewRequest{
		ProductID: &foreign.ID,
		Rating:    4,
	})

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "not found")
}

func (suite *ReviewServiceTestSuite) TestRatingOutOfRangeRejected() {
	_, err := suite.service.CreateReview(suite.shop.ID, suite.customer.ID, &CreateReviewRequest{Rating: 6})
	assert.Error(suite.T(), err)

	_, err = suite.service.CreateReview(suite.shop.ID, suite.customer.ID, &CreateReviewRequest{Rating: 0})
	assert.Error(suite.T(), err)
}

func (suite *ReviewServiceTestSuite) TestGetShopReviewsRatingFilter() {
	second := createTestUser(suite.T(), suite.db, "friend@example.com", models.UserRoleCustomer)

	_, err := suite.service.CreateReview(suite.shop.ID, suite.customer.ID, &CreateReviewRequest{Rating: 5})
	assert.NoError(suite.T(), err)
	_, err = suite.service.CreateReview(suite.shop.ID, second.ID, &CreateReviewRequest{Rating: 2})
	assert.NoError(suite.T(), err)

	rating := 5
	reviews, total, err := suite.service.GetShopReviews(suite.shop.ID, ReviewSearchParams{Rating: &rating})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), total)
	assert.Equal(suite.T(), 5, reviews[0].Rating)
}

func (suite *ReviewServiceTestSuite) TestMarkReviewHelpful() {
	review, err := suite.service.CreateReview(suite.shop.ID, suite.customer.ID, &CreateReviewRequest{Rating: 5})
	assert.NoError(suite.T(), err)

	assert.NoError(suite.T(), suite.service.MarkReviewHelpful(review.ID))
	assert.NoError(suite.T(), suite.service.MarkReviewHelpful(review.ID))

	var reloaded models.ShopReview
	assert.NoError(suite.T(), suite.db.First(&reloaded, review.ID).Error)
	assert.Equal(suite.T(), 2, reloaded.HelpfulCount)

	err = suite.service.MarkReviewHelpful(99999)
	assert.Error(suite.T(), err)
}

func TestReviewServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReviewServiceTestSuite))
}
