package services

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"casemart/database"
	"casemart/logger"
	"casemart/models"
)

const gachaCodeLength = 8

// RolledItem is an item snapshot as granted or displayed.
type RolledItem struct {
	Name   string        `json:"name"`
	Image  string        `json:"image"`
	Rarity models.Rarity `json:"rarity"`
}

type RollResult struct {
	History *models.GachaHistory `json:"history"`

	// WonItem is what the user keeps. VisualItem is the pre-secret
	// primary roll driving the client reveal animation; both come out
	// of one atomic unit so the animation can never disagree with the
	// grant.
	WonItem    RolledItem `json:"won_item"`
	VisualItem RolledItem `json:"visual_item"`
	NewBalance int64      `json:"new_balance"`
}

// RollCase charges the user the case price, resolves a weighted primary
// roll, re-rolls through the secret pool when the primary rarity calls
// for it, and records the history row, all in one atomic unit.
func RollCase(userID, caseID uint) (*RollResult, error) {
	var out RollResult
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var gcase models.GachaCase
		if err := tx.Preload("Items").First(&gcase, caseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCaseNotFound
			}
			return err
		}

		user, _, err := DebitUser(tx, userID, gcase.Price,
			models.TrxPurchase, "balance", "Case roll: "+gcase.Name, "")
		if err != nil {
			return err
		}

		// Aborting here rolls the debit back with the rest of the unit.
		if len(gcase.Items) == 0 {
			return ErrEmptyCase
		}

		weights := make([]int64, len(gcase.Items))
		for i, item := range gcase.Items {
			bp, err := BasisPoints(item.Probability)
			if err != nil {
				return err
			}
			weights[i] = bp
		}
		idx, err := PickIndex(weights)
		if err != nil {
			return err
		}
		primary := gcase.Items[idx]

		visual := RolledItem{Name: primary.Name, Image: primary.Image, Rarity: primary.Rarity}
		won := visual
		isSecret := false

		if primary.Rarity.ResolvesViaSecretPool() {
			var pool []models.SecretItem
			if err := tx.Where("is_active = ?", true).Find(&pool).Error; err != nil {
				return err
			}
			if len(pool) == 0 {
				// Misconfiguration: a secret tier with nothing behind
				// it. Grant the primary roll as-is.
				logger.Log.Warn("secret pool is empty, granting primary roll",
					zap.Uint("case_id", caseID),
					zap.String("item", primary.Name),
				)
			} else {
				sw := make([]int64, len(pool))
				for i, s := range pool {
					bp, err := BasisPoints(s.Probability)
					if err != nil {
						return err
					}
					sw[i] = bp
				}
				si, err := PickIndex(sw)
				if err != nil {
					return err
				}
				won = RolledItem{Name: pool[si].Name, Image: pool[si].Image, Rarity: models.RaritySecret}
				isSecret = true
			}
		}

		code, err := NewUniqueCode(tx, HistoryCodes, gachaCodeLength)
		if err != nil {
			return err
		}

		hist := models.GachaHistory{
			UserID:     userID,
			CaseID:     gcase.ID,
			CaseName:   gcase.Name,
			ItemName:   won.Name,
			ItemImage:  won.Image,
			ItemRarity: won.Rarity,
			IsSecret:   isSecret,
			Code:       code,
			PricePaid:  gcase.Price,
			Status:     models.GachaUnclaimed,
		}
		if err := tx.Create(&hist).Error; err != nil {
			return err
		}

		out = RollResult{
			History:    &hist,
			WonItem:    won,
			VisualItem: visual,
			NewBalance: user.Balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
