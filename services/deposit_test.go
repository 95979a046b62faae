package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"casemart/models"
)

func requestDeposit(t *testing.T, userID uint, amount int64) *DepositRequestResult {
	t.Helper()
	result, err := RequestDeposit(userID, amount, "gateway")
	require.NoError(t, err)
	return result
}

func TestRequestDepositCreatesPendingRow(t *testing.T) {
	db := setupTestDB(t)
	u := createUser(t, db, "depositor", 0, models.RoleUser)

	result := requestDeposit(t, u.ID, 75_000)
	assert.NotEmpty(t, result.OrderCode)
	// No gateway configured in tests: the local stub path comes back.
	assert.Equal(t, "/pay/"+result.OrderCode, result.PaymentURL)

	var trx models.Transaction
	require.NoError(t, db.Where("order_code = ?", result.OrderCode).First(&trx).Error)
	assert.Equal(t, models.TrxPending, trx.Status)
	assert.Equal(t, models.TrxDeposit, trx.TrxType)
	assert.Equal(t, int64(75_000), trx.Amount)

	// Balance untouched until the gateway confirms.
	assert.Zero(t, reload[models.User](t, db, u.ID).Balance)
}

func TestRequestDepositRejectsNonPositiveAmount(t *testing.T) {
	setupTestDB(t)
	_, err := RequestDeposit(1, 0, "gateway")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = RequestDeposit(1, -5, "gateway")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestConfirmDepositCreditsOnce(t *testing.T) {
	db := setupTestDB(t)
	u := createUser(t, db, "depositor", 10_000, models.RoleUser)
	req := requestDeposit(t, u.ID, 75_000)

	trx, err := ConfirmDeposit(req.OrderCode, 75_000)
	require.NoError(t, err)
	assert.Equal(t, models.TrxCompleted, trx.Status)
	assert.Equal(t, int64(10_000), trx.BalanceBefore)
	assert.Equal(t, int64(85_000), trx.BalanceAfter)

	user := reload[models.User](t, db, u.ID)
	assert.Equal(t, int64(85_000), user.Balance)
	assert.Equal(t, int64(75_000), user.TotalDeposited)
}

func TestConfirmDepositIdempotentOnReplay(t *testing.T) {
	db := setupTestDB(t)
	u := createUser(t, db, "depositor", 0, models.RoleUser)
	req := requestDeposit(t, u.ID, 75_000)

	_, err := ConfirmDeposit(req.OrderCode, 75_000)
	require.NoError(t, err)

	// Duplicate delivery of the same confirmation.
	trx, err := ConfirmDeposit(req.OrderCode, 75_000)
	require.NoError(t, err)
	assert.Equal(t, models.TrxCompleted, trx.Status)

	assert.Equal(t, int64(75_000), reload[models.User](t, db, u.ID).Balance)
}

func TestConfirmDepositAmountMismatchNeverApplied(t *testing.T) {
	db := setupTestDB(t)
	u := createUser(t, db, "depositor", 0, models.RoleUser)
	req := requestDeposit(t, u.ID, 75_000)

	_, err := ConfirmDeposit(req.OrderCode, 74_000)
	assert.ErrorIs(t, err, ErrAmountMismatch)

	assert.Zero(t, reload[models.User](t, db, u.ID).Balance)
	var trx models.Transaction
	require.NoError(t, db.Where("order_code = ?", req.OrderCode).First(&trx).Error)
	assert.Equal(t, models.TrxPending, trx.Status)
}

func TestConfirmDepositUnknownOrderCode(t *testing.T) {
	setupTestDB(t)
	_, err := ConfirmDeposit("no-such-code", 1_000)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestConfirmDepositExpiredIsNotRevivable(t *testing.T) {
	db := setupTestDB(t)
	u := createUser(t, db, "slow", 0, models.RoleUser)
	req := requestDeposit(t, u.ID, 75_000)

	require.NoError(t, db.Model(&models.Transaction{}).
		Where("order_code = ?", req.OrderCode).
		Update("status", models.TrxCancelled).Error)

	_, err := ConfirmDeposit(req.OrderCode, 75_000)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Zero(t, reload[models.User](t, db, u.ID).Balance)
}

func TestCreditTopupIdempotentByRef(t *testing.T) {
	db := setupTestDB(t)
	u := createUser(t, db, "cardholder", 0, models.RoleUser)

	trx, err := CreditTopup(u.ID, 30_000, "card", "CARD-REF-1")
	require.NoError(t, err)
	assert.Equal(t, models.TrxCompleted, trx.Status)

	// Replayed callback credits nothing.
	_, err = CreditTopup(u.ID, 30_000, "card", "CARD-REF-1")
	require.NoError(t, err)

	user := reload[models.User](t, db, u.ID)
	assert.Equal(t, int64(30_000), user.Balance)
	assert.Equal(t, int64(30_000), user.TotalDeposited)
}

func TestTransactionRefUniquenessEnforced(t *testing.T) {
	db := setupTestDB(t)
	u := createUser(t, db, "cardholder", 0, models.RoleUser)

	first := models.Transaction{
		UserID: u.ID, TrxType: models.TrxDeposit, Amount: 1_000,
		Method: "card", Status: models.TrxCompleted, RefID: "CARD-REF-9",
	}
	require.NoError(t, db.Create(&first).Error)

	// The schema, not application reads, is what rejects a second row
	// carrying the same reference.
	dup := models.Transaction{
		UserID: u.ID, TrxType: models.TrxDeposit, Amount: 1_000,
		Method: "card", Status: models.TrxCompleted, RefID: "CARD-REF-9",
	}
	err := db.Create(&dup).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestCreditTopupConcurrentDeliveries(t *testing.T) {
	db := setupFileDB(t)
	u := createUser(t, db, "cardholder", 0, models.RoleUser)

	// Webhook retries deliver the same signed callback twice at once.
	// Whatever each delivery returns, the user is credited exactly once.
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = CreditTopup(u.ID, 30_000, "card", "CARD-REF-RACE")
		}(i)
	}
	wg.Wait()

	var wins int
	for _, err := range errs {
		if err == nil {
			wins++
		}
	}
	assert.GreaterOrEqual(t, wins, 1)

	user := reload[models.User](t, db, u.ID)
	assert.Equal(t, int64(30_000), user.Balance)
	assert.Equal(t, int64(30_000), user.TotalDeposited)

	var n int64
	require.NoError(t, db.Model(&models.Transaction{}).
		Where("ref_id = ?", "CARD-REF-RACE").Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestExpireStaleDeposits(t *testing.T) {
	db := setupTestDB(t)
	u := createUser(t, db, "sleeper", 0, models.RoleUser)
	stale := requestDeposit(t, u.ID, 10_000)
	fresh := requestDeposit(t, u.ID, 20_000)

	require.NoError(t, db.Model(&models.Transaction{}).
		Where("order_code = ?", stale.OrderCode).
		Update("created_at", time.Now().Add(-2*time.Hour)).Error)

	n, err := ExpireStaleDeposits(30 * time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var staleTrx, freshTrx models.Transaction
	require.NoError(t, db.Where("order_code = ?", stale.OrderCode).First(&staleTrx).Error)
	require.NoError(t, db.Where("order_code = ?", fresh.OrderCode).First(&freshTrx).Error)
	assert.Equal(t, models.TrxCancelled, staleTrx.Status)
	assert.Equal(t, models.TrxPending, freshTrx.Status)
}
