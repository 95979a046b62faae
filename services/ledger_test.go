package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"casemart/models"
)

func TestDebitUserHappyPath(t *testing.T) {
	db := setupTestDB(t)
	u := createUser(t, db, "spender", 100_000, models.RoleUser)

	user, trx, err := DebitUser(db, u.ID, 30_000,
		models.TrxPurchase, "balance", "test debit", "")
	require.NoError(t, err)

	assert.Equal(t, int64(70_000), user.Balance)
	assert.Equal(t, int64(-30_000), trx.Amount)
	assert.Equal(t, int64(100_000), trx.BalanceBefore)
	assert.Equal(t, int64(70_000), trx.BalanceAfter)
	assert.Equal(t, trx.BalanceBefore+trx.Amount, trx.BalanceAfter)
	assert.Equal(t, models.TrxCompleted, trx.Status)
	assert.NotEmpty(t, trx.RefID)

	assert.Equal(t, int64(70_000), reload[models.User](t, db, u.ID).Balance)
}

func TestDebitUserInsufficientBalance(t *testing.T) {
	db := setupTestDB(t)
	u := createUser(t, db, "broke", 10_000, models.RoleUser)

	_, _, err := DebitUser(db, u.ID, 10_001,
		models.TrxPurchase, "balance", "too much", "")
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// Nothing moved, nothing recorded.
	assert.Equal(t, int64(10_000), reload[models.User](t, db, u.ID).Balance)
	var n int64
	require.NoError(t, db.Model(&models.Transaction{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestDebitUserExactBalance(t *testing.T) {
	db := setupTestDB(t)
	u := createUser(t, db, "exact", 5_000, models.RoleUser)

	user, _, err := DebitUser(db, u.ID, 5_000,
		models.TrxPurchase, "balance", "all in", "")
	require.NoError(t, err)
	assert.Zero(t, user.Balance)
}

func TestDebitUserSequentialDoubleSpend(t *testing.T) {
	db := setupTestDB(t)
	u := createUser(t, db, "racer", 30_000, models.RoleUser)

	_, _, err := DebitUser(db, u.ID, 20_000,
		models.TrxPurchase, "balance", "first", "")
	require.NoError(t, err)

	// Only the debit whose guard held applies; balance never negative.
	_, _, err = DebitUser(db, u.ID, 20_000,
		models.TrxPurchase, "balance", "second", "")
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	assert.Equal(t, int64(10_000), reload[models.User](t, db, u.ID).Balance)
}

func TestDebitUserRejectsNonPositiveAmount(t *testing.T) {
	db := setupTestDB(t)
	u := createUser(t, db, "zero", 10_000, models.RoleUser)

	for _, amount := range []int64{0, -1, -10_000} {
		_, _, err := DebitUser(db, u.ID, amount,
			models.TrxPurchase, "balance", "bad", "")
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestDebitUserUnknownUser(t *testing.T) {
	db := setupTestDB(t)

	_, _, err := DebitUser(db, 999, 1_000,
		models.TrxPurchase, "balance", "ghost", "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreditBalanceUnknownUser(t *testing.T) {
	db := setupTestDB(t)

	_, err := CreditBalance(db, 999, 1_000, false)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDebitUserConcurrentSpends(t *testing.T) {
	db := setupFileDB(t)
	u := createUser(t, db, "racer", 50_000, models.RoleUser)

	// Two genuinely overlapping transactions on separate connections,
	// each trying to take the whole balance. The guard admits one.
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = db.Transaction(func(tx *gorm.DB) error {
				_, _, err := DebitUser(tx, u.ID, 50_000,
					models.TrxPurchase, "balance", "race", "")
				return err
			})
		}(i)
	}
	wg.Wait()

	var wins int
	for _, err := range errs {
		if err == nil {
			wins++
		}
	}
	assert.Equal(t, 1, wins)

	assert.Zero(t, reload[models.User](t, db, u.ID).Balance)
	var n int64
	require.NoError(t, db.Model(&models.Transaction{}).
		Where("user_id = ?", u.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestCreditUserWritesPairedTransaction(t *testing.T) {
	db := setupTestDB(t)
	u := createUser(t, db, "receiver", 1_000, models.RoleUser)

	user, trx, err := CreditUser(db, u.ID, 9_000,
		models.TrxDeposit, "market", "sale proceeds", "", false)
	require.NoError(t, err)

	assert.Equal(t, int64(10_000), user.Balance)
	assert.Equal(t, int64(9_000), trx.Amount)
	assert.Equal(t, int64(1_000), trx.BalanceBefore)
	assert.Equal(t, int64(10_000), trx.BalanceAfter)
	assert.Zero(t, user.TotalDeposited)
}

func TestCreditBalanceBumpsTotalDeposited(t *testing.T) {
	db := setupTestDB(t)
	u := createUser(t, db, "depositor", 0, models.RoleUser)

	user, err := CreditBalance(db, u.ID, 50_000, true)
	require.NoError(t, err)
	assert.Equal(t, int64(50_000), user.Balance)
	assert.Equal(t, int64(50_000), user.TotalDeposited)
}
