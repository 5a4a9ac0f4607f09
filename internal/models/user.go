// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Name         string     `json:"name" gorm:"size:100;not null"`
	Phone        string     `json:"phone,omitempty" gorm:"size:30"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	Role         Role       `json:"role" gorm:"type:varchar(20);not null;index"`
	IsVerified   bool       `json:"is_verified" gorm:"default:false"`
	LastLoginAt  *time.Time `json:"last_login_at"`

	// Relationships
	Products []Product `json:"products,omitempty" gorm:"foreignKey:VendorID"`
	Orders   []Order   `json:"orders,omitempty" gorm:"foreignKey:BuyerID"`
	Reviews  []Review  `json:"reviews,omitempty" gorm:"foreignKey:UserID"`
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
