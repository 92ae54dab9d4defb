// internal/services/product_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/sokoline/soko-backend/internal/models"
)

type ProductServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ProductService
	owner   *models.User
	shop    *models.Shop
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.service = NewProductService(suite.db)
	suite.owner = createTestUser(suite.T(), suite.db, "owner@example.com", models.UserRoleShopOwner)
	suite.shop = createTestShop(suite.T(), suite.db, suite.owner.ID, "Red Mug Store", "red-mug-store")
}

func (suite *ProductServiceTestSuite) TestCreateProductGeneratesSlug() {
	product, err := suite.service.CreateProduct(suite.shop.ID, suite.owner.ID, &CreateProductRequest{
		Name:  "Red Mug",
		Price: 9.99,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "red-mug", product.Slug)
	assert.Equal(suite.T(), suite.shop.ID, product.ShopID)
}

func (suite *ProductServiceTestSuite) TestCreateProductResolvesCollisionsWithinShop() {
	first, err := suite.service.CreateProduct(suite.shop.ID, suite.owner.ID, &CreateProductRequest{
		Name:  "Red Mug",
		Price: 9.99,
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "red-mug", first.Slug)

	second, err := suite.service.CreateProduct(suite.shop.ID, suite.owner.ID, &CreateProductRequest{
		Name:  "Red  Mug",
		Price: 10.99,
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "red-mug-1", second.Slug)
}

func (suite *ProductServiceTestSuite) TestSameSlugAllowedAcrossShops() {
	other := createTestShop(suite.T(), suite.db, suite.owner.ID, "Blue Mug Store", "blue-mug-store")

	first, err := suite.service.CreateProduct(suite.shop.ID, suite.owner.ID, &CreateProductRequest{
		Name:  "Red Mug",
		Price: 9.99,
	})
	assert.NoError(suite.T(), err)

	second, err := suite.service.CreateProduct(other.ID, suite.owner.ID, &CreateProductRequest{
		Name:  "Red Mug",
		Price: 9.99,
	})
	assert.NoError(suite.T(), err)

	assert.Equal(suite.T(), "red-mug", first.Slug)
	assert.Equal(suite.T(), "red-mug", second.Slug)
}

func (suite *ProductServiceTestSuite) TestCreateProductRejectsNonOwner() {
	other := createTestUser(suite.T(), suite.db, "other@example.com", models.UserRoleShopOwner)

	_, err := suite.service.CreateProduct(suite.shop.ID, other.ID, &CreateProductRequest{
		Name:  "Red Mug",
		Price: 9.99,
	})

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "unauthorized")
}

func (suite *ProductServiceTestSuite) TestUpdateProductWithoutRenameKeepsSlug() {
	product, err := suite.service.CreateProduct(suite.shop.ID, suite.owner.ID, &CreateProductRequest{
		Name:  "Red Mug",
		Price: 9.99,
	})
	assert.NoError(suite.T(), err)

	price := 14.99
	updated, err := suite.service.UpdateProduct(product.ID, suite.owner.ID, &UpdateProductRequest{Price: &price})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "red-mug", updated.Slug)
	assert.Equal(suite.T(), 14.99, updated.Price)
}

func (suite *ProductServiceTestSuite) TestUpdateProductRenameResolvesSlug() {
	_, err := suite.service.CreateProduct(suite.shop.ID, suite.owner.ID, &CreateProductRequest{
		Name:  "Blue Mug",
		Price: 9.99,
	})
	assert.NoError(suite.T(), err)

	product, err := suite.service.CreateProduct(suite.shop.ID, suite.owner.ID, &CreateProductRequest{
		Name:  "Red Mug",
		Price: 9.99,
	})
	assert.NoError(suite.T(), err)

	name := "Blue Mug"
	updated, err := suite.service.UpdateProduct(product.ID, suite.owner.ID, &UpdateProductRequest{Name: &name})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "blue-mug-1", updated.Slug)
}

func (suite *ProductServiceTestSuite) TestDeleteProductHidesIt() {
	product, err := suite.service.CreateProduct(suite.shop.ID, suite.owner.ID, &CreateProductRequest{
		Name:  "Red Mug",
		Price: 9.99,
	})
	assert.NoError(suite.T(), err)

	err = suite.service.DeleteProduct(product.ID, suite.owner.ID)
	assert.NoError(suite.T(), err)

	_, err = suite.service.GetProduct(product.ID)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "not found")
}

func (suite *ProductServiceTestSuite) TestGetShopProductsFilters() {
	_, err := suite.service.CreateProduct(suite.shop.ID, suite.owner.ID, &CreateProductRequest{
		Name:     "Red Mug",
		Price:    9.99,
		Category: "Kitchen",
	})
	assert.NoError(suite.T(), err)

	_, err = suite.service.CreateProduct(suite.shop.ID, suite.owner.ID, &CreateProductRequest{
		Name:     "Leather Sandals",
		Price:    24.99,
		Category: "Footwear",
	})
	assert.NoError(suite.T(), err)

	products, total, err := suite.service.GetShopProducts(suite.shop.ID, ProductSearchParams{Category: "kitchen"})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), total)
	assert.Equal(suite.T(), "Red Mug", products[0].Name)

	params := ProductSearchParams{}
	params.Search = "sandals"
	products, total, err = suite.service.GetShopProducts(suite.shop.ID, params)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), total)
	assert.Equal(suite.T(), "Leather Sandals", products[0].Name)
}

func (suite *ProductServiceTestSuite) TestGetFeaturedProducts() {
	_, err := suite.service.CreateProduct(suite.shop.ID, suite.owner.ID, &CreateProductRequest{
		Name:       "Red Mug",
		Price:      9.99,
		IsFeatured: true,
	})
	assert.NoError(suite.T(), err)

	_, err = suite.service.CreateProduct(suite.shop.ID, suite.owner.ID, &CreateProductRequest{
		Name:  "Plain Mug",
		Price: 5.99,
	})
	assert.NoError(suite.T(), err)

	products, err := suite.service.GetFeaturedProducts(10)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), products, 1)
	assert.Equal(suite.T(), "Red Mug", products[0].Name)
}

func (suite *ProductServiceTestSuite) TestProductImages() {
	product, err := suite.service.CreateProduct(suite.shop.ID, suite.owner.ID, &CreateProductRequest{
		Name:  "Red Mug",
		Price: 9.99,
	})
	assert.NoError(suite.T(), err)

	first, err := suite.service.AddProductImage(product.ID, suite.owner.ID, &AddProductImageRequest{
		ImageURL:  "https://cdn.example.com/red-mug-front.jpg",
		IsPrimary: true,
	})
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), first.IsPrimary)

	second, err := suite.service.AddProductImage(product.ID, suite.owner.ID, &AddProductImageRequest{
		ImageURL:  "https://cdn.example.com/red-mug-back.jpg",
		IsPrimary: true,
	})
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), second.IsPrimary)

	// The first image lost its primary flag to the second
	var reloaded models.ProductImage
	assert.NoError(suite.T(), suite.db.First(&reloaded, first.ID).Error)
	assert.False(suite.T(), reloaded.IsPrimary)

	err = suite.service.RemoveProductImage(product.ID, second.ID, suite.owner.ID)
	assert.NoError(suite.T(), err)

	err = suite.service.RemoveProductImage(product.ID, second.ID, suite.owner.ID)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "not found")
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
