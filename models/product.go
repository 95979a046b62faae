package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model

	Name     string `gorm:"size:128" json:"name"`
	Price    int64  `json:"price"`
	Stock    int    `json:"stock"`
	Category string `gorm:"size:64;index" json:"category"`
	Rarity   Rarity `gorm:"size:16" json:"rarity"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderItem is a line snapshot. Price is the unit price captured at
// purchase time and is never recalculated from the live catalog.
type OrderItem struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

type Order struct {
	gorm.Model

	UserID      uint                           `gorm:"index" json:"user_id"`
	Items       datatypes.JSONSlice[OrderItem] `json:"items"`
	TotalAmount int64                          `json:"total_amount"`
	Status      OrderStatus                    `gorm:"size:16;index" json:"status"`
	SecretCode  string                         `gorm:"size:16;uniqueIndex" json:"secret_code"`
}
