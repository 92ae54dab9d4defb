// internal/models/product.go
package models

import (
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	ShopID        uint           `json:"shop_id" gorm:"not null;uniqueIndex:idx_products_shop_slug"`
	Name          string         `json:"name" gorm:"size:255;not null"`
	Slug          string         `json:"slug" gorm:"size:255;not null;uniqueIndex:idx_products_shop_slug"`
	Description   string         `json:"description" gorm:"type:text"`
	Price         float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	OriginalPrice *float64       `json:"original_price,omitempty" gorm:"type:decimal(10,2)"`
	StockQuantity int            `json:"stock_quantity" gorm:"default:0"`
	Category      string         `json:"category" gorm:"size:100;index"`
	Subcategory   string         `json:"subcategory" gorm:"size:100"`
	Brand         string         `json:"brand" gorm:"size:100"`
	SKU           string         `json:"sku" gorm:"size:100"`
	Weight        *float64       `json:"weight,omitempty" gorm:"type:decimal(8,2)"`
	Dimensions    string         `json:"dimensions" gorm:"size:100"`
	Tags          pq.StringArray `json:"tags" gorm:"type:text[]"`
	IsFeatured    bool           `json:"is_featured" gorm:"default:false"`
	IsActive      bool           `json:"is_active" gorm:"default:true;index"`
	Rating        float64        `json:"rating" gorm:"type:decimal(3,2);default:0"`
	TotalReviews  int            `json:"total_reviews" gorm:"default:0"`
	TotalSales    int            `json:"total_sales" gorm:"default:0"`

	// Relationships
	Shop   *Shop          `json:"shop,omitempty" gorm:"foreignKey:ShopID"`
	Images []ProductImage `json:"images,omitempty" gorm:"foreignKey:ProductID"`
}

type ProductImage struct {
	BaseModel
	ProductID uint   `json:"product_id" gorm:"not null;index"`
	ImageURL  string `json:"image_url" gorm:"size:500;not null"`
	AltText   string `json:"alt_text" gorm:"size:255"`
	IsPrimary bool   `json:"is_primary" gorm:"default:false"`
	SortOrder int    `json:"sort_order" gorm:"default:0"`
}
