package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RaritySecret    Rarity = "secret"
)

// ResolvesViaSecretPool reports whether rolling this rarity re-rolls
// against the secret item pool instead of granting the item directly.
func (r Rarity) ResolvesViaSecretPool() bool {
	return r == RaritySecret
}

type GachaCase struct {
	gorm.Model

	Name  string `gorm:"size:128" json:"name"`
	Image string `gorm:"size:255" json:"image"`
	Price int64  `json:"price"`

	Items []GachaItem `gorm:"foreignKey:CaseID" json:"items"`
}

// GachaItem carries a relative probability in percent with at most two
// decimal places. Weights are independent per case and need not sum to 100.
type GachaItem struct {
	gorm.Model

	CaseID      uint            `gorm:"index" json:"case_id"`
	Name        string          `gorm:"size:128" json:"name"`
	Image       string          `gorm:"size:255" json:"image"`
	Rarity      Rarity          `gorm:"size:16" json:"rarity"`
	Probability decimal.Decimal `gorm:"type:decimal(7,2)" json:"probability"`
}

type SecretItem struct {
	gorm.Model

	Name        string          `gorm:"size:128" json:"name"`
	Image       string          `gorm:"size:255" json:"image"`
	Probability decimal.Decimal `gorm:"type:decimal(7,2)" json:"probability"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`
}

type GachaStatus string

const (
	GachaUnclaimed GachaStatus = "unclaimed"
	GachaClaimed   GachaStatus = "claimed"
)

// GachaHistory is the immutable record of one roll. Case and item
// fields are snapshots so the row survives case deletion.
type GachaHistory struct {
	gorm.Model

	UserID     uint        `gorm:"index" json:"user_id"`
	CaseID     uint        `gorm:"index" json:"case_id"`
	CaseName   string      `gorm:"size:128" json:"case_name"`
	ItemName   string      `gorm:"size:128" json:"item_name"`
	ItemImage  string      `gorm:"size:255" json:"item_image"`
	ItemRarity Rarity      `gorm:"size:16" json:"item_rarity"`
	IsSecret   bool        `json:"is_secret"`
	Code       string      `gorm:"size:16;uniqueIndex" json:"code"`
	PricePaid  int64       `json:"price_paid"`
	Status     GachaStatus `gorm:"size:16;index" json:"status"`
}
