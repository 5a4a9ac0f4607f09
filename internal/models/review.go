// internal/models/review.go
package models

import (
	"github.com/google/uuid"
)

type Review struct {
	BaseModel
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment" gorm:"type:text"`

	// Relationships
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
