// internal/models/campaign.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Influencer struct {
	BaseModel
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`

	// Relationships
	User      User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Campaigns []Campaign `json:"campaigns,omitempty" gorm:"foreignKey:InfluencerID"`
}

type Campaign struct {
	BaseModel
	VendorID     uuid.UUID      `json:"vendor_id" gorm:"type:uuid;not null;index"`
	Title        string         `json:"title" gorm:"size:255;not null"`
	Description  string         `json:"description" gorm:"type:text"`
	BudgetCents  int64          `json:"budget_cents" gorm:"not null"`
	Target       string         `json:"target,omitempty" gorm:"size:255"`
	Status       CampaignStatus `json:"status" gorm:"type:varchar(20);default:'created';index"`
	InfluencerID *uuid.UUID     `json:"influencer_id,omitempty" gorm:"type:uuid;index"`

	// Relationships
	Vendor      User         `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
	Influencer  *Influencer  `json:"influencer,omitempty" gorm:"foreignKey:InfluencerID"`
	Engagements []Engagement `json:"engagements,omitempty" gorm:"foreignKey:CampaignID"`
}

// Engagement is an append-only metric/value pair against a campaign.
type Engagement struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CampaignID uuid.UUID `json:"campaign_id" gorm:"type:uuid;not null;index"`
	Metric     string    `json:"metric" gorm:"size:50;not null"`
	Value      float64   `json:"value" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"index;not null"`

	// Relationships
	Campaign Campaign `json:"campaign,omitempty" gorm:"foreignKey:CampaignID"`
}
