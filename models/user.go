package models

import (
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

type User struct {
	gorm.Model

	Username       string `gorm:"uniqueIndex;size:32" json:"username"`
	Balance        int64  `json:"balance"`
	TotalDeposited int64  `json:"total_deposited"`
	Role           Role   `gorm:"size:16;default:user" json:"role"`
	FacebookLink   string `gorm:"size:255" json:"facebook_link"`
	IsActive       bool   `gorm:"default:true" json:"is_active"`

	Transactions []Transaction `gorm:"foreignKey:UserID"`
}

type TrxType string

const (
	TrxDeposit    TrxType = "deposit"
	TrxPurchase   TrxType = "purchase"
	TrxRefund     TrxType = "refund"
	TrxAdjustment TrxType = "adjustment"
)

type TrxStatus string

const (
	TrxPending   TrxStatus = "pending"
	TrxCompleted TrxStatus = "completed"
	TrxCancelled TrxStatus = "cancelled"
)

// Transaction rows are append-only. The one permitted mutation is a
// pending deposit moving to completed (or cancelled by the expiry job).
type Transaction struct {
	gorm.Model

	UserID        uint      `gorm:"index" json:"user_id"`
	TrxType       TrxType   `gorm:"size:16;index" json:"type"`
	Amount        int64     `json:"amount"`
	BalanceBefore int64     `json:"balance_before"`
	BalanceAfter  int64     `json:"balance_after"`
	Method        string    `gorm:"size:32" json:"method"`
	Description   string    `gorm:"size:255" json:"description"`
	OrderCode     string    `gorm:"size:64;index" json:"order_code"`
	Status        TrxStatus `gorm:"size:16;index" json:"status"`

	// RefID is the row's idempotency key: a generated UUID for internal
	// writes, the provider reference for externally driven credits. The
	// unique index is what makes duplicate callback deliveries collide
	// instead of crediting twice.
	RefID string `gorm:"size:64;uniqueIndex" json:"ref_id"`
}
