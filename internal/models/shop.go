// internal/models/shop.go
package models

type Shop struct {
	BaseModel
	OwnerID     uint    `json:"owner_id" gorm:"not null;index"`
	Name        string  `json:"name" gorm:"size:255;not null"`
	Slug        string  `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Description string  `json:"description" gorm:"type:text"`
	LogoURL     string  `json:"logo_url" gorm:"size:500"`
	BannerURL   string  `json:"banner_url" gorm:"size:500"`
	Address     string  `json:"address" gorm:"type:text"`
	City        string  `json:"city" gorm:"size:100;index"`
	Country     string  `json:"country" gorm:"size:100;default:'Cameroon'"`
	Phone       string  `json:"phone" gorm:"size:20"`
	Email       string  `json:"email" gorm:"size:255"`
	Website     string  `json:"website" gorm:"size:255"`
	IsVerified  bool    `json:"is_verified" gorm:"default:false"`
	IsPremium   bool    `json:"is_premium" gorm:"default:false"`
	IsActive    bool    `json:"is_active" gorm:"default:true;index"`
	Rating      float64 `json:"rating" gorm:"type:decimal(3,2);default:0"`

	// Derived counters, overwritten wholesale by RecomputeStats.
	TotalReviews  int `json:"total_reviews" gorm:"default:0"`
	TotalProducts int `json:"total_products" gorm:"default:0"`
	TotalSales    int `json:"total_sales" gorm:"default:0"`

	// Relationships
	Owner     *User          `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Products  []Product      `json:"products,omitempty" gorm:"foreignKey:ShopID"`
	Reviews   []ShopReview   `json:"reviews,omitempty" gorm:"foreignKey:ShopID"`
	Followers []ShopFollower `json:"followers,omitempty" gorm:"foreignKey:ShopID"`
}

// ShopStats holds the derived counters recomputed from child records.
type ShopStats struct {
	TotalProducts int     `json:"total_products"`
	TotalReviews  int     `json:"total_reviews"`
	Rating        float64 `json:"rating"`
}

type ShopFollower struct {
	BaseModel
	ShopID uint `json:"shop_id" gorm:"not null;uniqueIndex:idx_shop_followers_shop_user"`
	UserID uint `json:"user_id" gorm:"not null;uniqueIndex:idx_shop_followers_shop_user"`

	// Relationships
	Shop *Shop `json:"shop,omitempty" gorm:"foreignKey:ShopID"`
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
