// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/sokoline/soko-backend/internal/config"
	"github.com/sokoline/soko-backend/internal/models"
	"github.com/sokoline/soko-backend/internal/utils"
)

type AuthService struct {
	db                  *gorm.DB
	config              *config.Config
	shopService         *ShopService
	notificationService *NotificationService
}

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,strong_password"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Role      string `json:"role,omitempty" validate:"omitempty,oneof=customer shop_owner"`

	// A shop owner may open their first shop during registration. The
	// user and the shop are created together or not at all.
	Shop *CreateShopRequest `json:"shop,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type AuthResponse struct {
	User         *models.User `json:"user"`
	Shop         *models.Shop `json:"shop,omitempty"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"`
}

func NewAuthService(db *gorm.DB, cfg *config.Config, shopService *ShopService, notificationService *NotificationService) *AuthService {
	return &AuthService{
		db:                  db,
		config:              cfg,
		shopService:         shopService,
		notificationService: notificationService,
	}
}

func (s *AuthService) Register(req *RegisterRequest) (*AuthResponse, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	role := models.UserRoleCustomer
	if req.Role != "" {
		role = models.UserRole(req.Role)
	}

	if req.Shop != nil {
		if role != models.UserRoleShopOwner {
			return nil, errors.New("only shop owners can register with a shop")
		}
		if err := utils.ValidateStruct(req.Shop); err != nil {
			return nil, fmt.Errorf("validation failed: %w", err)
		}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, errors.New("email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	user := &models.User{
		Email:     email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      role,
		IsActive:  true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var shop *models.Shop
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errors.New("email already registered")
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		if req.Shop != nil {
			shop = &models.Shop{
				OwnerID:     user.ID,
				Name:        req.Shop.Name,
				Description: req.Shop.Description,
				LogoURL:     req.Shop.LogoURL,
				BannerURL:   req.Shop.BannerURL,
				Address:     req.Shop.Address,
				City:        req.Shop.City,
				Country:     req.Shop.Country,
				Phone:       req.Shop.Phone,
				Email:       req.Shop.Email,
				Website:     req.Shop.Website,
				IsActive:    true,
			}
			if err := s.shopService.createWithUniqueSlug(tx, shop); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		go s.notificationService.SendWelcomeEmail(user)
	}

	return s.buildAuthResponse(user, shop)
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid email or password")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, errors.New("invalid email or password")
	}

	if !user.IsActive {
		return nil, errors.New("account is deactivated")
	}

	return s.buildAuthResponse(&user, nil)
}

func (s *AuthService) RefreshToken(req *RefreshTokenRequest) (*AuthResponse, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	userID, err := utils.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, errors.New("unauthorized: invalid refresh token")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !user.IsActive {
		return nil, errors.New("account is deactivated")
	}

	return s.buildAuthResponse(&user, nil)
}

func (s *AuthService) buildAuthResponse(user *models.User, shop *models.Shop) (*AuthResponse, error) {
	accessToken, err := utils.GenerateJWT(user.ID, user.Email, string(user.Role), s.config.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken(user.ID, s.config.JWT.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &AuthResponse{
		User:         user,
		Shop:         shop,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.config.JWT.AccessTokenTTL * 3600,
	}, nil
}
