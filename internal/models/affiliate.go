// internal/models/affiliate.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Affiliate struct {
	BaseModel
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`

	// Relationships
	User  User            `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Links []AffiliateLink `json:"links,omitempty" gorm:"foreignKey:AffiliateID"`
}

// AffiliateLink binds a short unique code to a (product, affiliate)
// pair. Links are immutable after creation.
type AffiliateLink struct {
	BaseModel
	Code        string    `json:"code" gorm:"uniqueIndex;size:16;not null"`
	ProductID   uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	AffiliateID uuid.UUID `json:"affiliate_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Product   Product   `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Affiliate Affiliate `json:"affiliate,omitempty" gorm:"foreignKey:AffiliateID"`
	Clicks    []Click   `json:"clicks,omitempty" gorm:"foreignKey:AffiliateLinkID"`
}

// Click is an append-only traversal event for an affiliate link.
type Click struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AffiliateLinkID uuid.UUID `json:"affiliate_link_id" gorm:"type:uuid;not null;index"`
	AffiliateID     uuid.UUID `json:"affiliate_id" gorm:"type:uuid;not null;index"`
	IP              string    `json:"ip" gorm:"size:64"`
	UserAgent       string    `json:"user_agent" gorm:"size:1024"`
	Referer         string    `json:"referer" gorm:"size:1024"`
	CreatedAt       time.Time `json:"created_at" gorm:"index;not null"`

	// Relationships
	AffiliateLink AffiliateLink `json:"affiliate_link,omitempty" gorm:"foreignKey:AffiliateLinkID"`
}
