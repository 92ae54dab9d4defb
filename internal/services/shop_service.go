// internal/services/shop_service.go
package services

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/sokoline/soko-backend/internal/models"
	"github.com/sokoline/soko-backend/internal/utils"
)

// maxSlugInsertAttempts caps how often a create/update retries after
// losing a slug race to a concurrent writer. The existence probe is
// not atomic with the insert, so the unique index is the final word.
const maxSlugInsertAttempts = 5

type ShopService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

type CreateShopRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description,omitempty"`
	LogoURL     string `json:"logo_url,omitempty" validate:"omitempty,max=500"`
	BannerURL   string `json:"banner_url,omitempty" validate:"omitempty,max=500"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty" validate:"omitempty,max=100"`
	Country     string `json:"country,omitempty" validate:"omitempty,max=100"`
	Phone       string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Website     string `json:"website,omitempty" validate:"omitempty,max=255"`
}

// UpdateShopRequest carries one optional field per mutable attribute;
// nil means "leave unchanged".
type UpdateShopRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	LogoURL     *string `json:"logo_url,omitempty" validate:"omitempty,max=500"`
	BannerURL   *string `json:"banner_url,omitempty" validate:"omitempty,max=500"`
	Address     *string `json:"address,omitempty"`
	City        *string `json:"city,omitempty" validate:"omitempty,max=100"`
	Country     *string `json:"country,omitempty" validate:"omitempty,max=100"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Website     *string `json:"website,omitempty" validate:"omitempty,max=255"`
}

type ShopSearchParams struct {
	utils.PaginationParams
	City       string `json:"city,omitempty"`
	IsVerified *bool  `json:"is_verified,omitempty"`
}

func NewShopService(db *gorm.DB, notificationService *NotificationService) *ShopService {
	return &ShopService{
		db:                  db,
		notificationService: notificationService,
	}
}

// resolveSlug turns a display name into a slug that is free among all
// shops. excludeID skips the shop's own row so a rename (or a rename
// to the same name) never collides with itself.
func (s *ShopService) resolveSlug(tx *gorm.DB, name string, excludeID uint) (string, error) {
	base := utils.Slugify(name)
	if base == "" {
		return "", errors.New("shop name must contain at least one letter or digit")
	}

	return utils.ResolveUniqueSlug(base, func(candidate string) (bool, error) {
		query := tx.Model(&models.Shop{}).Where("slug = ?", candidate)
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

func (s *ShopService) CreateShop(ownerID uint, req *CreateShopRequest) (*models.Shop, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Verify owner exists and may hold shops
	var owner models.User
	if err := s.db.First(&owner, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !owner.IsActive {
		return nil, errors.New("owner account is not active")
	}

	if owner.Role != models.UserRoleShopOwner {
		return nil, errors.New("only shop owners can create shops")
	}

	shop := &models.Shop{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		BannerURL:   req.BannerURL,
		Address:     req.Address,
		City:        req.City,
		Country:     req.Country,
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
		IsActive:    true,
	}

	if err := s.createWithUniqueSlug(s.db, shop); err != nil {
		return nil, err
	}

	s.db.Preload("Owner").First(shop, shop.ID)

	return shop, nil
}

// createWithUniqueSlug resolves a free slug and inserts the shop. A
// duplicate-key error means a concurrent writer took the candidate
// between the probe and the insert; re-resolving then sees the new
// row and advances the counter. Each insert attempt runs in its own
// savepoint: on postgres a unique violation aborts the surrounding
// transaction, and without the savepoint the retry's probe query
// would fail instead of advancing the counter.
func (s *ShopService) createWithUniqueSlug(tx *gorm.DB, shop *models.Shop) error {
	for attempt := 0; attempt < maxSlugInsertAttempts; attempt++ {
		slug, err := s.resolveSlug(tx, shop.Name, 0)
		if err != nil {
			return err
		}
		shop.Slug = slug

		err = tx.Transaction(func(tx *gorm.DB) error {
			return tx.Create(shop).Error
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("failed to create shop: %w", err)
		}
	}

	return errors.New("could not allocate a unique shop slug, please retry")
}

func (s *ShopService) GetShop(id uint) (*models.Shop, error) {
	var shop models.Shop
	if err := s.db.Preload("Owner").First(&shop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("shop not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !shop.IsActive {
		return nil, errors.New("shop not found")
	}

	// Refresh the derived counters on the read path. Concurrent
	// readers may race here; last write wins.
	stats, err := s.RecomputeStats(id)
	if err != nil {
		return nil, err
	}
	shop.TotalProducts = stats.TotalProducts
	shop.TotalReviews = stats.TotalReviews
	shop.Rating = stats.Rating

	return &shop, nil
}

func (s *ShopService) GetShopBySlug(slug string) (*models.Shop, error) {
	var shop models.Shop
	if err := s.db.Preload("Owner").Where("slug = ?", slug).First(&shop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("shop not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !shop.IsActive {
		return nil, errors.New("shop not found")
	}

	stats, err := s.RecomputeStats(shop.ID)
	if err != nil {
		return nil, err
	}
	shop.TotalProducts = stats.TotalProducts
	shop.TotalReviews = stats.TotalReviews
	shop.Rating = stats.Rating

	return &shop, nil
}

// RecomputeStats recounts a shop's derived fields from its current
// child records and writes all three back wholesale.
func (s *ShopService) RecomputeStats(shopID uint) (*models.ShopStats, error) {
	var productCount int64
	if err := s.db.Model(&models.Product{}).
		Where("shop_id = ? AND is_active = ?", shopID, true).
		Count(&productCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	// Reviews have no active flag; every row counts.
	var reviewCount int64
	if err := s.db.Model(&models.ShopReview{}).
		Where("shop_id = ?", shopID).
		Count(&reviewCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	rating := 0.0
	if reviewCount > 0 {
		if err := s.db.Model(&models.ShopReview{}).
			Where("shop_id = ?", shopID).
			Select("AVG(rating)").Scan(&rating).Error; err != nil {
			return nil, fmt.Errorf("failed to average ratings: %w", err)
		}
		rating = math.Round(rating*100) / 100
	}

	stats := &models.ShopStats{
		TotalProducts: int(productCount),
		TotalReviews:  int(reviewCount),
		Rating:        rating,
	}

	if err := s.db.Model(&models.Shop{}).Where("id = ?", shopID).
		Updates(map[string]interface{}{
			"total_products": stats.TotalProducts,
			"total_reviews":  stats.TotalReviews,
			"rating":         stats.Rating,
		}).Error; err != nil {
		return nil, fmt.Errorf("failed to update shop stats: %w", err)
	}

	return stats, nil
}

func (s *ShopService) SearchShops(params ShopSearchParams) ([]models.Shop, int64, error) {
	query := s.db.Model(&models.Shop{}).Where("is_active = ?", true)

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	if params.City != "" {
		query = query.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(params.City)+"%")
	}

	if params.IsVerified != nil {
		query = query.Where("is_verified = ?", *params.IsVerified)
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count shops: %w", err)
	}

	allowedSortFields := []string{"created_at", "name", "rating", "total_reviews"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var shops []models.Shop
	if err := query.Preload("Owner").Find(&shops).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch shops: %w", err)
	}

	return shops, total, nil
}

func (s *ShopService) UpdateShop(id uint, ownerID uint, req *UpdateShopRequest) (*models.Shop, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	shop, err := s.getOwnedShop(id, ownerID)
	if err != nil {
		return nil, err
	}

	renamed := req.Name != nil && *req.Name != shop.Name

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.LogoURL != nil {
		updates["logo_url"] = *req.LogoURL
	}
	if req.BannerURL != nil {
		updates["banner_url"] = *req.BannerURL
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.Country != nil {
		updates["country"] = *req.Country
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Website != nil {
		updates["website"] = *req.Website
	}

	if !renamed {
		// Slug is untouched unless the name actually changes.
		if len(updates) > 0 {
			if err := s.db.Model(shop).Updates(updates).Error; err != nil {
				return nil, fmt.Errorf("failed to update shop: %w", err)
			}
		}
		s.db.Preload("Owner").First(shop, id)
		return shop, nil
	}

	// A rename always re-resolves the slug; the old one is never
	// preserved across it.
	for attempt := 0; attempt < maxSlugInsertAttempts; attempt++ {
		slug, err := s.resolveSlug(s.db, *req.Name, id)
		if err != nil {
			return nil, err
		}
		updates["slug"] = slug

		err = s.db.Model(shop).Updates(updates).Error
		if err == nil {
			s.db.Preload("Owner").First(shop, id)
			return shop, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("failed to update shop: %w", err)
		}
	}

	return nil, errors.New("could not allocate a unique shop slug, please retry")
}

func (s *ShopService) DeleteShop(id uint, ownerID uint) error {
	shop, err := s.getOwnedShop(id, ownerID)
	if err != nil {
		return err
	}

	// Soft delete; products keep their rows, stats queries filter on
	// the shop's flag.
	if err := s.db.Model(shop).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to delete shop: %w", err)
	}

	return nil
}

func (s *ShopService) GetOwnerShops(ownerID uint) ([]models.Shop, error) {
	var shops []models.Shop
	if err := s.db.Where("owner_id = ? AND is_active = ?", ownerID, true).
		Order("created_at DESC").
		Find(&shops).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch shops: %w", err)
	}

	return shops, nil
}

// ToggleFollow follows the shop when no follow exists and unfollows
// otherwise. Returns whether the user follows the shop afterwards.
func (s *ShopService) ToggleFollow(shopID uint, userID uint) (bool, error) {
	var shop models.Shop
	if err := s.db.First(&shop, shopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, errors.New("shop not found")
		}
		return false, fmt.Errorf("database error: %w", err)
	}
	if !shop.IsActive {
		return false, errors.New("shop not found")
	}

	var existing models.ShopFollower
	err := s.db.Where("shop_id = ? AND user_id = ?", shopID, userID).First(&existing).Error
	if err == nil {
		if err := s.db.Delete(&existing).Error; err != nil {
			return true, fmt.Errorf("failed to unfollow shop: %w", err)
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("database error: %w", err)
	}

	follow := &models.ShopFollower{ShopID: shopID, UserID: userID}
	if err := s.db.Create(follow).Error; err != nil {
		// A concurrent request already created the follow.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, fmt.Errorf("failed to follow shop: %w", err)
	}

	if s.notificationService != nil {
		go s.notificationService.SendNewFollowerNotification(&shop, userID)
	}

	return true, nil
}

func (s *ShopService) GetFollowedShops(userID uint) ([]models.Shop, error) {
	var shops []models.Shop
	if err := s.db.
		Joins("JOIN shop_followers ON shop_followers.shop_id = shops.id").
		Where("shop_followers.user_id = ? AND shops.is_active = ?", userID, true).
		Order("shop_followers.created_at DESC").
		Find(&shops).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch followed shops: %w", err)
	}

	return shops, nil
}

func (s *ShopService) getOwnedShop(id uint, ownerID uint) (*models.Shop, error) {
	var shop models.Shop
	if err := s.db.First(&shop, id).Error; err != nil {
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
