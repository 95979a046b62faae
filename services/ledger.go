package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"casemart/models"
)

// The ledger primitives run inside a gorm transaction owned by an
// orchestrator. Every balance mutation pairs with a Transaction row
// whose BalanceBefore/BalanceAfter match the ledger's own state; the
// two writes commit or abort together.

// DebitUser decrements a user's balance only when it covers amount.
// The guard is a single conditional UPDATE, not a read-then-write, so
// two concurrent spends against one user cannot both pass the check.
func DebitUser(
	tx *gorm.DB,
	userID uint,
	amount int64,
	trxType models.TrxType,
	method, description, orderCode string,
) (*models.User, *models.Transaction, error) {
	if amount <= 0 {
		return nil, nil, ErrInvalidInput
	}

	res := tx.Model(&models.User{}).
		Where("id = ? AND balance >= ?", userID, amount).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return nil, nil, res.Error
	}

	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}
	if res.RowsAffected == 0 {
		return nil, nil, ErrInsufficientBalance
	}

	trx := models.Transaction{
		UserID:        user.ID,
		TrxType:       trxType,
		Amount:        -amount,
		BalanceBefore: user.Balance + amount,
		BalanceAfter:  user.Balance,
		Method:        method,
		Description:   description,
		OrderCode:     orderCode,
		Status:        models.TrxCompleted,
		RefID:         uuid.New().String(),
	}
	if err := tx.Create(&trx).Error; err != nil {
		return nil, nil, err
	}
	return &user, &trx, nil
}

// CreditBalance increases a user's balance unconditionally and returns
// the reloaded user. Callers are responsible for the paired Transaction
// row; use CreditUser unless the row already exists (deposit
// reconciliation completes its own pending row).
func CreditBalance(tx *gorm.DB, userID uint, amount int64, bumpDeposited bool) (*models.User, error) {
	if amount <= 0 {
		return nil, ErrInvalidInput
	}

	updates := map[string]any{
		"balance": gorm.Expr("balance + ?", amount),
	}
	if bumpDeposited {
		updates["total_deposited"] = gorm.Expr("total_deposited + ?", amount)
	}

	res := tx.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}

	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreditUser is CreditBalance plus the paired Transaction row.
func CreditUser(
	tx *gorm.DB,
	userID uint,
	amount int64,
	trxType models.TrxType,
	method, description, orderCode string,
	bumpDeposited bool,
) (*models.User, *models.Transaction, error) {
	return creditUserRef(tx, userID, amount, trxType,
		method, description, orderCode, uuid.New().String(), bumpDeposited)
}

// creditUserRef is CreditUser with a caller-chosen RefID. The ref's
// unique index is the write-side idempotency guard: a second insert
// carrying the same ref fails with gorm.ErrDuplicatedKey and aborts
// its whole unit, credit included.
func creditUserRef(
	tx *gorm.DB,
	userID uint,
	amount int64,
	trxType models.TrxType,
	method, description, orderCode, refID string,
	bumpDeposited bool,
) (*models.User, *models.Transaction, error) {
	user, err := CreditBalance(tx, userID, amount, bumpDeposited)
	if err != nil {
		return nil, nil, err
	}

	trx := models.Transaction{
		UserID:        user.ID,
		TrxType:       trxType,
		Amount:        amount,
		BalanceBefore: user.Balance - amount,
		BalanceAfter:  user.Balance,
		Method:        method,
		Description:   description,
		OrderCode:     orderCode,
		Status:        models.TrxCompleted,
		RefID:         refID,
	}
	if err := tx.Create(&trx).Error; err != nil {
		return nil, nil, err
	}
	return user, &trx, nil
}
