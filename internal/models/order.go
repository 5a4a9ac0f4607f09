// internal/models/order.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Order struct {
	BaseModel
	BuyerID     uuid.UUID      `json:"buyer_id" gorm:"type:uuid;not null;index"`
	Status      OrderStatus    `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	TotalCents  int64          `json:"total_cents" gorm:"not null"`
	Currency    string         `json:"currency" gorm:"size:3;default:'RWF'"`
	AffiliateID *uuid.UUID     `json:"affiliate_id,omitempty" gorm:"type:uuid;index"`
	// Commission owed to the attributed affiliate, snapshotted from the
	// product commission rates at order time. Zero when unattributed.
	CommissionCents int64 `json:"commission_cents" gorm:"not null;default:0"`
	ItemIDs     pq.StringArray `json:"item_ids" gorm:"type:text[]"`

	// Relationships
	Buyer     User        `json:"buyer,omitempty" gorm:"foreignKey:BuyerID"`
	Affiliate *Affiliate  `json:"affiliate,omitempty" gorm:"foreignKey:AffiliateID"`
	Items     []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem snapshots the catalog price at order time; it is never
// recomputed afterwards.
type OrderItem struct {
	BaseModel
	OrderID    uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Quantity   int       `json:"quantity" gorm:"not null"`
	PriceCents int64     `json:"price_cents" gorm:"not null"`

	// Relationships
	Order   Order   `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
