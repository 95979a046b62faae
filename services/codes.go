package services

import (
	"crypto/rand"
	"math/big"

	"gorm.io/gorm"

	"casemart/models"
)

const (
	codeAlphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	digitAlphabet = "0123456789"
	codeAttempts  = 10
)

// CodeSpace reports whether a candidate redemption code is already
// taken in one collection. Each record type that carries codes exposes
// its own space.
type CodeSpace interface {
	Taken(tx *gorm.DB, code string) (bool, error)
}

type CodeSpaceFunc func(tx *gorm.DB, code string) (bool, error)

func (f CodeSpaceFunc) Taken(tx *gorm.DB, code string) (bool, error) {
	return f(tx, code)
}

// HistoryCodes spans gacha history redemption codes.
var HistoryCodes CodeSpace = CodeSpaceFunc(func(tx *gorm.DB, code string) (bool, error) {
	var n int64
	err := tx.Model(&models.GachaHistory{}).Where("code = ?", code).Count(&n).Error
	return n > 0, err
})

// ListingCodes spans marketplace redemption codes.
var ListingCodes CodeSpace = CodeSpaceFunc(func(tx *gorm.DB, code string) (bool, error) {
	var n int64
	err := tx.Model(&models.MarketListing{}).Where("code = ?", code).Count(&n).Error
	return n > 0, err
})

// OrderCodes spans shop order secret codes.
var OrderCodes CodeSpace = CodeSpaceFunc(func(tx *gorm.DB, code string) (bool, error) {
	var n int64
	err := tx.Model(&models.Order{}).Where("secret_code = ?", code).Count(&n).Error
	return n > 0, err
})

func randomCode(alphabet string, length int) (string, error) {
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", err
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf), nil
}

func newUniqueCode(tx *gorm.DB, space CodeSpace, alphabet string, length int) (string, error) {
	for range codeAttempts {
		code, err := randomCode(alphabet, length)
		if err != nil {
			return "", err
		}
		taken, err := space.Taken(tx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeExhausted
}

// NewUniqueCode issues an uppercase alphanumeric code absent from the
// given space, retrying a bounded number of times on collision.
func NewUniqueCode(tx *gorm.DB, space CodeSpace, length int) (string, error) {
	return newUniqueCode(tx, space, codeAlphabet, length)
}

// NewUniqueDigits is NewUniqueCode restricted to digits, used for shop
// order secret codes.
func NewUniqueDigits(tx *gorm.DB, space CodeSpace, length int) (string, error) {
	return newUniqueCode(tx, space, digitAlphabet, length)
}
