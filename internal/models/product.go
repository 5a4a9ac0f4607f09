// internal/models/product.go
package models

import (
	"github.com/google/uuid"
)

type Product struct {
	BaseModel
	VendorID              uuid.UUID `json:"vendor_id" gorm:"type:uuid;not null;index"`
	Title                 string    `json:"title" gorm:"size:255;not null"`
	Description           string    `json:"description" gorm:"type:text"`
	PriceCents            int64     `json:"price_cents" gorm:"not null"`
	Currency              string    `json:"currency" gorm:"size:3;default:'RWF'"`
	Stock                 int       `json:"stock" gorm:"default:0"`
	Category              string    `json:"category" gorm:"size:100;index"`
	ImageURL              string    `json:"image_url,omitempty" gorm:"size:512"`
	DigitalURL            string    `json:"digital_url,omitempty" gorm:"size:512"`
	IsApproved            bool      `json:"is_approved" gorm:"default:false;index"`
	IsAffiliatePromotable bool      `json:"is_affiliate_promotable" gorm:"default:false;index"`
	CommissionPercent     *float64  `json:"commission_percent,omitempty" gorm:"type:decimal(5,2)"`

	// Relationships
	Vendor         User            `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
	AffiliateLinks []AffiliateLink `json:"affiliate_links,omitempty" gorm:"foreignKey:ProductID"`
	Reviews        []Review        `json:"reviews,omitempty" gorm:"foreignKey:ProductID"`
}
