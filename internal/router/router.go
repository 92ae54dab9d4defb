// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sokoline/soko-backend/internal/config"
	"github.com/sokoline/soko-backend/internal/handlers"
	"github.com/sokoline/soko-backend/internal/middleware"
	"github.com/sokoline/soko-backend/internal/services"
	"github.com/sokoline/soko-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(db, cfg)
	storageService, _ := services.NewStorageService(cfg)

	shopService := services.NewShopService(db, notificationService)
	authService := services.NewAuthService(db, cfg, shopService, notificationService)
	userService := services.NewUserService(db)
	productService := services.NewProductService(db)
	reviewService := services.NewReviewService(db, notificationService)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, userService)
	userHandler := handlers.NewUserHandler(userService, shopService, storageService)
	shopHandler := handlers.NewShopHandler(shopService, reviewService, storageService)
	productHandler := handlers.NewProductHandler(productService, storageService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS([]string{cfg.Frontend.BaseURL}))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetCurrentUser)
		}

		// User routes
		users := v1.Group("/users")
		users.Use(middleware.AuthRequired())
		{
			users.PUT("/me", userHandler.UpdateProfile)
			users.DELETE("/me", userHandler.DeactivateAccount)
			users.POST("/me/avatar", middleware.UploadRateLimit(), userHandler.UploadAvatar)
			users.GET("/me/followed-shops", userHandler.GetFollowedShops)
		}

		// Shop routes
		shops := v1.Group("/shops")
		{
			shops.GET("", shopHandler.GetShops)
			shops.POST("", middleware.AuthRequired(), middleware.ShopOwnerRequired(), shopHandler.CreateShop)
			shops.GET("/mine", middleware.AuthRequired(), middleware.ShopOwnerRequired(), shopHandler.GetMyShops)
			shops.GET("/slug/:slug", shopHandler.GetShopBySlug)
			shops.GET("/:id", shopHandler.GetShop)
			shops.PUT("/:id", middleware.AuthRequired(), middleware.ShopOwnerRequired(), shopHandler.UpdateShop)
			shops.DELETE("/:id", middleware.AuthRequired(), middleware.ShopOwnerRequired(), shopHandler.DeleteShop)
			shops.POST("/:id/logo", middleware.AuthRequired(), middleware.ShopOwnerRequired(), middleware.UploadRateLimit(), shopHandler.UploadLogo)
			shops.POST("/:id/follow", middleware.AuthRequired(), shopHandler.ToggleFollow)

			shops.GET("/:id/reviews", shopHandler.GetShopReviews)
			shops.POST("/:id/reviews", middleware.AuthRequired(), middleware.ReviewRateLimit(), shopHandler.CreateReview)

			shops.GET("/:id/products", productHandler.GetShopProducts)
			shops.POST("/:id/products", middleware.AuthRequired(), middleware.ShopOwnerRequired(), productHandler.CreateProduct)
		}

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("/featured", productHandler.GetFeaturedProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.PUT("/:id", middleware.AuthRequired(), middleware.ShopOwnerRequired(), productHandler.UpdateProduct)
			products.DELETE("/:id", middleware.AuthRequired(), middleware.ShopOwnerRequired(), productHandler.DeleteProduct)
			products.POST("/:id/images", middleware.AuthRequired(), middleware.ShopOwnerRequired(), middleware.UploadRateLimit(), productHandler.AddProductImage)
			products.DELETE("/:id/images/:imageId", middleware.AuthRequired(), middleware.ShopOwnerRequired(), productHandler.RemoveProductImage)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/users", adminHandler.GetUsers)
			admin.PUT("/users/:id/status", adminHandler.UpdateUserStatus)
			admin.PUT("/shops/:id/verify", adminHandler.VerifyShop)
			admin.GET("/audit-logs", adminHandler.GetAuditLogs)
		}
	}

	return r
}
