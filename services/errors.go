package services

import "errors"

// Sentinel errors shared by the orchestrators. Controllers match these
// with errors.Is and translate them into response envelopes.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrUserNotFound        = errors.New("user not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrCaseNotFound        = errors.New("case not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrListingUnavailable  = errors.New("listing unavailable")
	ErrEmptyCase           = errors.New("case has no items")
	ErrInsufficientBalance = errors.New("balance not sufficient")
	ErrInsufficientStock   = errors.New("stock not sufficient")
	ErrSelfPurchase        = errors.New("cannot purchase own listing")
	ErrAmountMismatch      = errors.New("confirmed amount does not match deposit")

	// ErrCodeExhausted is transient: the whole enclosing operation is
	// safe to retry.
	ErrCodeExhausted = errors.New("could not generate a unique code")
)
