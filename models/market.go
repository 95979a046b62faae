package models

import (
	"time"

	"gorm.io/gorm"
)

type ListingStatus string

const (
	ListingActive  ListingStatus = "active"
	ListingSold    ListingStatus = "sold"
	ListingDeleted ListingStatus = "deleted"
)

// MarketListing transitions active → sold exactly once; the flip is
// guarded by a conditional update on status.
type MarketListing struct {
	gorm.Model

	SellerID uint          `gorm:"index" json:"seller_id"`
	Name     string        `gorm:"size:128" json:"name"`
	Price    int64         `json:"price"`
	Image    string        `gorm:"size:255" json:"image"`
	Status   ListingStatus `gorm:"size:16;index" json:"status"`

	BuyerID *uint      `json:"buyer_id,omitempty"`
	Code    string     `gorm:"size:16;index" json:"code,omitempty"`
	SoldAt  *time.Time `json:"sold_at,omitempty"`
}
