// internal/models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Email        string   `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string   `json:"-" gorm:"size:255;not null"`
	FirstName    string   `json:"first_name" gorm:"size:100;not null"`
	LastName     string   `json:"last_name" gorm:"size:100;not null"`
	Phone        string   `json:"phone" gorm:"size:20"`
	Role         UserRole `json:"role" gorm:"type:varchar(20);default:'customer';not null;index"`
	AvatarURL    string   `json:"avatar_url" gorm:"size:500"`
	IsVerified   bool     `json:"is_verified" gorm:"default:false"`
	IsActive     bool     `json:"is_active" gorm:"default:true"`

	// Relationships
	Shops         []Shop         `json:"shops,omitempty" gorm:"foreignKey:OwnerID"`
	Reviews       []ShopReview   `json:"reviews,omitempty" gorm:"foreignKey:CustomerID"`
	FollowedShops []ShopFollower `json:"followed_shops,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
