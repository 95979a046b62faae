package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"casemart/database"
	"casemart/models"
)

const (
	marketCodeLength = 8

	// MinListingPrice keeps junk listings off the marketplace.
	MinListingPrice int64 = 1000
)

// 5% platform fee, withheld from the seller payout.
var marketFeeRate = decimal.NewFromFloat(0.05)

// SellerPayout is the listing price minus the platform fee, floored to
// the smallest currency unit.
func SellerPayout(price int64) int64 {
	p := decimal.NewFromInt(price)
	return p.Sub(p.Mul(marketFeeRate)).Floor().IntPart()
}

type ListingInput struct {
	Name  string `json:"name" validate:"required,max=128"`
	Price int64  `json:"price" validate:"required,gt=0"`
	Image string `json:"image" validate:"omitempty,max=255"`
}

// CreateListing puts a seller's item up for sale.
func CreateListing(sellerID uint, in ListingInput) (*models.MarketListing, error) {
	if in.Price < MinListingPrice {
		return nil, ErrInvalidInput
	}
	listing := models.MarketListing{
		SellerID: sellerID,
		Name:     in.Name,
		Price:    in.Price,
		Image:    in.Image,
		Status:   models.ListingActive,
	}
	if err := database.DB.Create(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

type PurchaseResult struct {
	Listing       *models.MarketListing `json:"listing"`
	Code          string                `json:"code"`
	SellerContact string                `json:"seller_contact"`
	NewBalance    int64                 `json:"new_balance"`
}

// PurchaseListing moves money from buyer to seller minus the platform
// fee and flips the listing to sold, as one atomic unit. The status
// flip is a conditional update, so out of N concurrent buyers exactly
// one wins and the rest see ErrListingUnavailable.
func PurchaseListing(buyerID, listingID uint) (*PurchaseResult, error) {
	var out PurchaseResult
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var listing models.MarketListing
		if err := tx.Where("id = ? AND status = ?", listingID, models.ListingActive).
			First(&listing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrListingUnavailable
			}
			return err
		}
		if listing.SellerID == buyerID {
			return ErrSelfPurchase
		}

		buyer, _, err := DebitUser(tx, buyerID, listing.Price,
			models.TrxPurchase, "balance", "Market purchase: "+listing.Name, "")
		if err != nil {
			return err
		}

		payout := SellerPayout(listing.Price)
		seller, _, err := CreditUser(tx, listing.SellerID, payout,
			models.TrxDeposit, "market", "Market sale: "+listing.Name, "", false)
		if err != nil {
			return err
		}

		code, err := NewUniqueCode(tx, ListingCodes, marketCodeLength)
		if err != nil {
			return err
		}

		now := time.Now()
		res := tx.Model(&models.MarketListing{}).
			Where("id = ? AND status = ?", listing.ID, models.ListingActive).
			Updates(map[string]any{
				"status":   models.ListingSold,
				"buyer_id": buyerID,
				"code":     code,
				"sold_at":  now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost the race after our initial read.
			return ErrListingUnavailable
		}

		listing.Status = models.ListingSold
		listing.BuyerID = &buyerID
		listing.Code = code
		listing.SoldAt = &now

		out = PurchaseResult{
			Listing:       &listing,
			Code:          code,
			SellerContact: seller.FacebookLink,
			NewBalance:    buyer.Balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DelistListing soft-removes a seller's own active listing.
func DelistListing(sellerID, listingID uint) error {
	res := database.DB.Model(&models.MarketListing{}).
		Where("id = ? AND seller_id = ? AND status = ?",
			listingID, sellerID, models.ListingActive).
		Update("status", models.ListingDeleted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrListingUnavailable
	}
	return nil
}
