package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"casemart/database"
	"casemart/models"
	"casemart/providers"
)

type DepositRequestResult struct {
	OrderCode  string `json:"order_code"`
	PaymentURL string `json:"payment_url"`
	Amount     int64  `json:"amount"`
}

// RequestDeposit records a pending deposit and asks the external
// gateway for a checkout link tied to its order code. The balance is
// untouched until the gateway confirms.
func RequestDeposit(userID uint, amount int64, method string) (*DepositRequestResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidInput
	}

	orderCode := uuid.New().String()
	trx := models.Transaction{
		UserID:    userID,
		TrxType:   models.TrxDeposit,
		Amount:    amount,
		Method:    method,
		OrderCode: orderCode,
		Status:    models.TrxPending,
		RefID:     uuid.New().String(),
	}
	if err := database.DB.Create(&trx).Error; err != nil {
		return nil, err
	}

	url, err := providers.PaymentURL(orderCode, amount)
	if err != nil {
		return nil, err
	}
	return &DepositRequestResult{OrderCode: orderCode, PaymentURL: url, Amount: amount}, nil
}

// ConfirmDeposit applies one externally verified gateway confirmation:
// credit the user by the recorded amount, flip the pending row to
// completed and stamp its before/after balances. Replaying the same
// confirmation is acknowledged without crediting again. A confirmed
// amount that differs from the requested one is never applied, not
// even partially.
func ConfirmDeposit(orderCode string, amount int64) (*models.Transaction, error) {
	var out models.Transaction
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var trx models.Transaction
		if err := tx.Where("order_code = ? AND trx_type = ?", orderCode, models.TrxDeposit).
			First(&trx).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if trx.Status == models.TrxCompleted {
			out = trx
			return nil
		}
		// Expired or cancelled deposits are not revivable by a late
		// confirmation.
		if trx.Status != models.TrxPending {
			return ErrOrderNotFound
		}
		if trx.Amount != amount {
			return ErrAmountMismatch
		}

		// Guard the flip itself so a duplicate delivered concurrently
		// cannot credit twice.
		res := tx.Model(&models.Transaction{}).
			Where("id = ? AND status = ?", trx.ID, models.TrxPending).
			Update("status", models.TrxCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.First(&trx, trx.ID).Error; err != nil {
				return err
			}
			out = trx
			return nil
		}

		user, err := CreditBalance(tx, trx.UserID, trx.Amount, true)
		if err != nil {
			return err
		}

		if err := tx.Model(&trx).Updates(map[string]any{
			"balance_before": user.Balance - trx.Amount,
			"balance_after":  user.Balance,
		}).Error; err != nil {
			return err
		}

		trx.Status = models.TrxCompleted
		trx.BalanceBefore = user.Balance - trx.Amount
		trx.BalanceAfter = user.Balance
		out = trx
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreditTopup applies a signature-verified card top-up callback. The
// provider reference becomes the transaction's RefID, whose unique
// index enforces credit-exactly-once: the read is only a fast path,
// and two concurrent deliveries of one reference collide on the
// insert, so the loser rolls back credit and all.
func CreditTopup(userID uint, amount int64, method, providerRef string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidInput
	}

	var out models.Transaction
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Transaction
		err := tx.Where("ref_id = ?", providerRef).First(&existing).Error
		if err == nil {
			out = existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		_, trx, err := creditUserRef(tx, userID, amount,
			models.TrxDeposit, method, "Card top-up", providerRef, providerRef, true)
		if err != nil {
			return err
		}
		out = *trx
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the insert race to a concurrent delivery; the winner's
		// credit stands, answer with its row.
		var winner models.Transaction
		if err := database.DB.Where("ref_id = ?", providerRef).First(&winner).Error; err != nil {
			return nil, err
		}
		return &winner, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ExpireStaleDeposits cancels pending deposits that have sat
// unconfirmed longer than the window. Returns how many rows flipped.
func ExpireStaleDeposits(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	res := database.DB.Model(&models.Transaction{}).
		Where("trx_type = ? AND status = ? AND created_at < ?",
			models.TrxDeposit, models.TrxPending, cutoff).
		Update("status", models.TrxCancelled)
	return res.RowsAffected, res.Error
}
