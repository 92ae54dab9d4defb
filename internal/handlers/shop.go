// internal/handlers/shop.go
package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sokoline/soko-backend/internal/i18n"
	"github.com/sokoline/soko-backend/internal/services"
	"github.com/sokoline/soko-backend/internal/utils"
)

type ShopHandler struct {
	shopService    *services.ShopService
	reviewService  *services.ReviewService
	storageService *services.StorageService
}

func NewShopHandler(shopService *services.ShopService, reviewService *services.ReviewService, storageService *services.StorageService) *ShopHandler {
	return &ShopHandler{
		shopService:    shopService,
		reviewService:  reviewService,
		storageService: storageService,
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// GET /shops
func (h *ShopHandler) GetShops(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	searchParams := services.ShopSearchParams{
		PaginationParams: params,
	}

	if city := c.Query("city"); city != "" {
		searchParams.City = city
	}

	if verifiedStr := c.Query("is_verified"); verifiedStr != "" {
		if verified, err := strconv.ParseBool(verifiedStr); err == nil {
			searchParams.IsVerified = &verified
		}
	}

	shops, total, err := h.shopService.SearchShops(searchParams)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(shops, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /shops
func (h *ShopHandler) CreateShop(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	shop, err := h.shopService.CreateShop(userID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "only shop owners") {
			utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAccessShopOwner))
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyShopCreated),
		"shop":    shop,
	})
}

// GET /shops/:id
func (h *ShopHandler) GetShop(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid shop ID", nil)
		return
	}

	shop, err := h.shopService.GetShop(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "shop")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"shop": shop,
	})
}

// GET /shops/slug/:slug
func (h *ShopHandler) GetShopBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		utils.BadRequestResponse(c, "Invalid shop slug", nil)
		return
	}

	shop, err := h.shopService.GetShopBySlug(slug)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "shop")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"shop": shop,
	})
}

// PUT /shops/:id
func (h *ShopHandler) UpdateShop(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid shop ID", nil)
		return
	}

	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	shop, err := h.shopService.UpdateShop(id, userID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "unauthorized") {
			utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAccessNotShopOwner))
			return
		}
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "shop")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyShopUpdated),
		"shop":    shop,
	})
}

// DELETE /shops/:id
func (h *ShopHandler) DeleteShop(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid shop ID", nil)
		return
	}

	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	if err := h.shopService.DeleteShop(id, userID); err != nil {
		if strings.Contains(err.Error(), "unauthorized") {
			utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAccessNotShopOwner))
			return
		}
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "shop")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyShopDeleted),
	})
}

// GET /shops/mine
func (h *ShopHandler) GetMyShops(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	shops, err := h.shopService.GetOwnerShops(userID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"shops": shops,
	})
}

// POST /shops/:id/follow
func (h *ShopHandler) ToggleFollow(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid shop ID", nil)
		return
	}

	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	following, err := h.shopService.ToggleFollow(id, userID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "shop")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	message := i18n.T(lang, i18n.KeyShopUnfollowed)
	if following {
		message = i18n.T(lang, i18n.KeyShopFollowed)
	}

	utils.SuccessResponse(c, gin.H{
		"message":   message,
		"following": following,
	})
}

// GET /shops/:id/reviews
func (h *ShopHandler) GetShopReviews(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid shop ID", nil)
		return
	}

	params := utils.GetPaginationParams(c)

	searchParams := services.ReviewSearchParams{
		PaginationParams: params,
	}

	if ratingStr := c.Query("rating"); ratingStr != "" {
		if rating, err := strconv.Atoi(ratingStr); err == nil {
			searchParams.Rating = &rating
		}
	}

	reviews, total, err := h.reviewService.GetShopReviews(id, searchParams)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "shop")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(reviews, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /shops/:id/reviews
func (h *ShopHandler) CreateReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid shop ID", nil)
		return
	}

	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	review, err := h.reviewService.CreateReview(id, userID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate review") {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyReviewDuplicate))
			return
		}
		if strings.Contains(err.Error(), "unauthorized") {
			utils.ForbiddenResponse(c, err.Error())
			return
		}
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "shop")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyReviewCreated),
		"review":  review,
	})
}

// POST /shops/:id/logo
func (h *ShopHandler) UploadLogo(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		utils.BadRequestResponse(c, "Invalid shop ID", nil)
		return
	}

	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "No file provided", nil)
		return
	}
	defer file.Close()

	options := h.storageService.GetDefaultUploadOptions("shops")
	result, err := h.storageService.UploadFile(file, header, options)
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}

	shop, err := h.shopService.UpdateShop(id, userID, &services.UpdateShopRequest{
		LogoURL: &result.URL,
	})
	if err != nil {
		if strings.Contains(err.Error(), "unauthorized") {
			utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAccessNotShopOwner))
			return
		}
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "shop")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
		"upload":  result,
		"shop":    shop,
	})
}
