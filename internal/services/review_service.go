// internal/services/review_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sokoline/soko-backend/internal/models"
	"github.com/sokoline/soko-backend/internal/utils"
)

type ReviewService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

type CreateReviewRequest struct {
	ProductID *uint  `json:"product_id,omitempty"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Title     string `json:"title,omitempty" validate:"omitempty,max=255"`
	Comment   string `json:"comment,omitempty"`
}

type ReviewSearchParams struct {
	utils.PaginationParams
	Rating *int `json:"rating,omitempty"`
}

func NewReviewService(db *gorm.DB, notificationService *NotificationService) *ReviewService {
	return &ReviewService{db: db, notificationService: notificationService}
}

// CreateReview records a customer's review of a shop, optionally tied
// to one of the shop's products. A customer may leave one shop-level
// review plus one review per product.
func (s *ReviewService) CreateReview(shopID uint, customerID uint, req *CreateReviewRequest) (*models.ShopReview, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

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

	if shop.OwnerID == customerID {
		return nil, errors.New("unauthorized: you cannot review your own shop")
	}

	if req.ProductID != nil {
		var product models.Product
		if err := s.db.Where("id = ? AND shop_id = ?", *req.ProductID, shopID).
			First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("product not found in this shop")
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
	}

	// The composite unique index lets every NULL product_id row
	// through, so the shop-level duplicate needs an explicit check.
	dupQuery := s.db.Model(&models.ShopReview{}).
		Where("shop_id = ? AND customer_id = ?", shopID, customerID)
	if req.ProductID != nil {
		dupQuery = dupQuery.Where("product_id = ?", *req.ProductID)
	} else {
		dupQuery = dupQuery.Where("product_id IS NULL")
	}
	var count int64
	if err := dupQuery.Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, errors.New("duplicate review: you have already reviewed this")
	}

	review := &models.ShopReview{
		ShopID:     shopID,
		CustomerID: customerID,
		ProductID:  req.ProductID,
		Rating:     req.Rating,
		Title:      req.Title,
		Comment:    req.Comment,
	}

	if err := s.db.Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New("duplicate review: you have already reviewed this")
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.db.Preload("Customer").First(review, review.ID)

	// Notify the shop owner asynchronously
	if s.notificationService != nil {
		go s.notificationService.SendNewReviewNotification(&shop, review)
	}

	return review, nil
}

func (s *ReviewService) GetShopReviews(shopID uint, params ReviewSearchParams) ([]models.ShopReview, int64, error) {
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

	query := s.db.Model(&models.ShopReview{}).Where("shop_id = ?", shopID)

	if params.Rating != nil {
		query = query.Where("rating = ?", *params.Rating)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	allowedSortFields := []string{"created_at", "rating", "helpful_count"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var reviews []models.ShopReview
	if err := query.Preload("Customer").Find(&reviews).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch reviews: %w", err)
	}

	return reviews, total, nil
}

func (s *ReviewService) MarkReviewHelpful(reviewID uint) error {
	result := s.db.Model(&models.ShopReview{}).
		Where("id = ?", reviewID).
		UpdateColumn("helpful_count", gorm.Expr("helpful_count + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to update review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("review not found")
	}

	return nil
}
