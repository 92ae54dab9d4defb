// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/sokoline/soko-backend/internal/models"
	"github.com/sokoline/soko-backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Name          string   `json:"name" validate:"required,max=255"`
	Description   string   `json:"description,omitempty"`
	Price         float64  `json:"price" validate:"required,min=0.01"`
	OriginalPrice *float64 `json:"original_price,omitempty" validate:"omitempty,min=0.01"`
	StockQuantity int      `json:"stock_quantity" validate:"min=0"`
	Category      string   `json:"category,omitempty" validate:"omitempty,max=100"`
	Subcategory   string   `json:"subcategory,omitempty" validate:"omitempty,max=100"`
	Brand         string   `json:"brand,omitempty" validate:"omitempty,max=100"`
	SKU           string   `json:"sku,omitempty" validate:"omitempty,max=100"`
	Weight        *float64 `json:"weight,omitempty" validate:"omitempty,min=0"`
	Dimensions    string   `json:"dimensions,omitempty" validate:"omitempty,max=100"`
	Tags          []string `json:"tags,omitempty"`
	IsFeatured    bool     `json:"is_featured,omitempty"`
}

// UpdateProductRequest carries one optional field per mutable
// attribute; nil means "leave unchanged".
type UpdateProductRequest struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description   *string  `json:"description,omitempty"`
	Price         *float64 `json:"price,omitempty" validate:"omitempty,min=0.01"`
	OriginalPrice *float64 `json:"original_price,omitempty" validate:"omitempty,min=0.01"`
	StockQuantity *int     `json:"stock_quantity,omitempty" validate:"omitempty,min=0"`
	Category      *string  `json:"category,omitempty" validate:"omitempty,max=100"`
	Subcategory   *string  `json:"subcategory,omitempty" validate:"omitempty,max=100"`
	Brand         *string  `json:"brand,omitempty" validate:"omitempty,max=100"`
	SKU           *string  `json:"sku,omitempty" validate:"omitempty,max=100"`
	Weight        *float64 `json:"weight,omitempty" validate:"omitempty,min=0"`
	Dimensions    *string  `json:"dimensions,omitempty" validate:"omitempty,max=100"`
	Tags          []string `json:"tags,omitempty"`
	IsFeatured    *bool    `json:"is_featured,omitempty"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

type AddProductImageRequest struct {
	ImageURL  string `json:"image_url" validate:"required,max=500"`
	AltText   string `json:"alt_text,omitempty" validate:"omitempty,max=255"`
	IsPrimary bool   `json:"is_primary,omitempty"`
	SortOrder int    `json:"sort_order,omitempty" validate:"min=0"`
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// resolveSlug resolves a product slug inside its shop. The uniqueness
// scope is (shop_id, slug): the same name in another shop yields the
// same slug. excludeID skips the product's own row on rename.
func (s *ProductService) resolveSlug(tx *gorm.DB, shopID uint, name string, excludeID uint) (string, error) {
	base := utils.Slugify(name)
	if base == "" {
		return "", errors.New("product name must contain at least one letter or digit")
	}

	return utils.ResolveUniqueSlug(base, func(candidate string) (bool, error) {
		query := tx.Model(&models.Product{}).
			Where("shop_id = ? AND slug = ?", shopID, candidate)
		if excludeID != 0 {
			query = query.Where("id <> ?", excludeID)
		}
		var count int64
		if err := query.Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	})
}

func (s *ProductService) CreateProduct(shopID uint, ownerID uint, req *CreateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.getOwnedShop(shopID, ownerID); err != nil {
		return nil, err
	}

	product := &models.Product{
		ShopID:        shopID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		StockQuantity: req.StockQuantity,
		Category:      req.Category,
		Subcategory:   req.Subcategory,
		Brand:         req.Brand,
		SKU:           req.SKU,
		Weight:        req.Weight,
		Dimensions:    req.Dimensions,
		Tags:          req.Tags,
		IsFeatured:    req.IsFeatured,
		IsActive:      true,
	}

	for attempt := 0; attempt < maxSlugInsertAttempts; attempt++ {
		slug, err := s.resolveSlug(s.db, shopID, req.Name, 0)
		if err != nil {
			return nil, err
		}
		product.Slug = slug

		err = s.db.Create(product).Error
		if err == nil {
			s.db.Preload("Images").First(product, product.ID)
			return product, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("failed to create product: %w", err)
		}
	}

	return nil, errors.New("could not allocate a unique product slug, please retry")
}

func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).Preload("Shop").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !product.IsActive {
		return nil, errors.New("product not found")
	}

	return &product, nil
}

func (s *ProductService) UpdateProduct(id uint, ownerID uint, req *UpdateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.getOwnedProduct(id, ownerID)
	if err != nil {
		return nil, err
	}

	renamed := req.Name != nil && *req.Name != product.Name

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.OriginalPrice != nil {
		updates["original_price"] = *req.OriginalPrice
	}
	if req.StockQuantity != nil {
		updates["stock_quantity"] = *req.StockQuantity
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Subcategory != nil {
		updates["subcategory"] = *req.Subcategory
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}
	if req.Weight != nil {
		updates["weight"] = *req.Weight
	}
	if req.Dimensions != nil {
		updates["dimensions"] = *req.Dimensions
	}
	if req.Tags != nil {
		updates["tags"] = pq.StringArray(req.Tags)
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}

	if !renamed {
		if len(updates) > 0 {
			if err := s.db.Model(product).Updates(updates).Error; err != nil {
				return nil, fmt.Errorf("failed to update product: %w", err)
			}
		}
		s.db.Preload("Images").First(product, id)
		return product, nil
	}

	for attempt := 0; attempt < maxSlugInsertAttempts; attempt++ {
		slug, err := s.resolveSlug(s.db, product.ShopID, *req.Name, id)
		if err != nil {
			return nil, err
		}
		updates["slug"] = slug

		err = s.db.Model(product).Updates(updates).Error
		if err == nil {
			s.db.Preload("Images").First(product, id)
			return product, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	return nil, errors.New("could not allocate a unique product slug, please retry")
}

func (s *ProductService) DeleteProduct(id uint, ownerID uint) error {
	product, err := s.getOwnedProduct(id, ownerID)
	if err != nil {
		return err
	}

	if err := s.db.Model(product).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

func (s *ProductService) GetShopProducts(shopID uint, params ProductSearchParams) ([]models.Product, int64, error) {
	var shop models.Shop
	if err := s.db.First(&shop, shopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, errors.New("shop not found")
		}
		return nil, 0, fmt.Errorf("database error: %w", err)
	}
	if !shop.IsActive {
		return nil, 0, errors.New("shop not found")
	}

	query := s.db.Model(&models.Product{}).
		Where("shop_id = ? AND is_active = ?", shopID, true)

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	if params.Category != "" {
		query = query.Where("LOWER(category) LIKE ?", "%"+strings.ToLower(params.Category)+"%")
	}

	if len(params.Tags) > 0 {
		query = query.Where("tags && ?", pq.StringArray(params.Tags))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "name", "price", "rating"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) GetFeaturedProducts(limit int) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("is_active = ? AND is_featured = ?", true, true).
		Order("created_at DESC").
		Limit(limit).
		Preload("Images").Preload("Shop").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch featured products: %w", err)
	}

	return products, nil
}

func (s *ProductService) AddProductImage(productID uint, ownerID uint, req *AddProductImageRequest) (*models.ProductImage, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.getOwnedProduct(productID, ownerID)
	if err != nil {
		return nil, err
	}

	image := &models.ProductImage{
		ProductID: product.ID,
		ImageURL:  req.ImageURL,
		AltText:   req.AltText,
		IsPrimary: req.IsPrimary,
		SortOrder: req.SortOrder,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if req.IsPrimary {
			// Only one primary image per product.
			if err := tx.Model(&models.ProductImage{}).
				Where("product_id = ?", product.ID).
				Update("is_primary", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(image).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add product image: %w", err)
	}

	return image, nil
}

func (s *ProductService) RemoveProductImage(productID uint, imageID uint, ownerID uint) error {
	if _, err := s.getOwnedProduct(productID, ownerID); err != nil {
		return err
	}

	result := s.db.Where("id = ? AND product_id = ?", imageID, productID).
		Delete(&models.ProductImage{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove product image: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("product image not found")
	}

	return nil
}

func (s *ProductService) getOwnedProduct(id uint, ownerID uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Shop").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !product.IsActive {
		return nil, errors.New("product not found")
	}

	if product.Shop == nil || product.Shop.OwnerID != ownerID {
		return nil, errors.New("unauthorized: you do not own this product")
	}

	return &product, nil
}

func (s *ProductService) getOwnedShop(shopID uint, ownerID uint) (*models.Shop, error) {
	var shop models.Shop
	if err := s.db.First(&shop, shopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("shop not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !shop.IsActive {
		return nil, errors.New("shop not found")
	}

	if shop.OwnerID != ownerID {
		return nil, errors.New("unauthorized: you do not own this shop")
	}

	return &shop, nil
}
