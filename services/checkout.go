package services

import (
	"fmt"

	"gorm.io/gorm"

	"casemart/database"
	"casemart/models"
)

const orderCodeLength = 10

type CheckoutItem struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

type CheckoutResult struct {
	Order      *models.Order `json:"order"`
	NewBalance int64         `json:"new_balance"`
}

// Checkout runs a shop order as one atomic unit: price the lines from
// the live catalog, guard-debit the buyer, decrement stock, record the
// transaction and create the completed order. Any step failing aborts
// the whole unit. Notification dispatch happens after commit and is
// best-effort.
func Checkout(userID uint, items []CheckoutItem) (*CheckoutResult, error) {
	if len(items) == 0 {
		return nil, ErrInvalidInput
	}
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, ErrInvalidInput
		}
	}

	var out CheckoutResult
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		ids := make([]uint, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ProductID)
		}

		var products []models.Product
		if err := tx.Where("id IN ?", ids).Find(&products).Error; err != nil {
			return err
		}
		byID := make(map[uint]models.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		var total int64
		lines := make([]models.OrderItem, 0, len(items))
		for _, it := range items {
			p, ok := byID[it.ProductID]
			if !ok {
				return ErrProductNotFound
			}
			if p.Stock < it.Quantity {
				return ErrInsufficientStock
			}
			total += p.Price * int64(it.Quantity)
			lines = append(lines, models.OrderItem{
				ProductID: p.ID,
				Name:      p.Name,
				Quantity:  it.Quantity,
				Price:     p.Price,
			})
		}

		code, err := NewUniqueDigits(tx, OrderCodes, orderCodeLength)
		if err != nil {
			return err
		}

		user, _, err := DebitUser(tx, userID, total,
			models.TrxPurchase, "balance",
			fmt.Sprintf("Shop order (%d items)", len(lines)), code)
		if err != nil {
			return err
		}

		// Re-check stock conditionally: the early read above is only a
		// fast reject, the UPDATE guard is what closes the race.
		for _, it := range items {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", it.ProductID, it.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", it.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrInsufficientStock
			}
		}

		order := models.Order{
			UserID:      userID,
			Items:       lines,
			TotalAmount: total,
			Status:      models.OrderCompleted,
			SecretCode:  code,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		out = CheckoutResult{Order: &order, NewBalance: user.Balance}
		return nil
	})
	if err != nil {
		return nil, err
	}

	NotifyOrder(out.Order)
	return &out, nil
}
