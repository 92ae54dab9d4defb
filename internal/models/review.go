// internal/models/review.go
package models

// ShopReview is a customer review of a shop, optionally tied to a
// purchased product. A customer may leave at most one review per
// (shop, product) pair; the composite index backs that up at insert
// time. Reviews have no active flag: every row feeds the shop rating.
type ShopReview struct {
	BaseModel
	ShopID       uint   `json:"shop_id" gorm:"not null;uniqueIndex:idx_shop_reviews_customer_shop_product"`
	CustomerID   uint   `json:"customer_id" gorm:"not null;uniqueIndex:idx_shop_reviews_customer_shop_product"`
	ProductID    *uint  `json:"product_id,omitempty" gorm:"uniqueIndex:idx_shop_reviews_customer_shop_product"`
	Rating       int    `json:"rating" gorm:"not null"`
	Title        string `json:"title" gorm:"size:255"`
	Comment      string `json:"comment" gorm:"type:text"`
	IsVerified   bool   `json:"is_verified" gorm:"default:false"`
	HelpfulCount int    `json:"helpful_count" gorm:"default:0"`

	// Relationships
	Shop     *Shop    `json:"shop,omitempty" gorm:"foreignKey:ShopID"`
	Customer *User    `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Product  *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
