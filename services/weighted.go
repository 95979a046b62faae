package services

import (
	"crypto/rand"
	"math/big"

	"github.com/shopspring/decimal"
)

// PickIndex chooses an index with probability weights[i] / sum(weights).
// The draw comes from crypto/rand: this function gates paid outcomes,
// so a predictable source would be a security defect.
func PickIndex(weights []int64) (int, error) {
	if len(weights) == 0 {
		return 0, ErrInvalidInput
	}

	var total int64
	for _, w := range weights {
		if w < 0 {
			return 0, ErrInvalidInput
		}
		total += w
	}
	if total <= 0 {
		return 0, ErrInvalidInput
	}

	n, err := rand.Int(rand.Reader, big.NewInt(total))
	if err != nil {
		return 0, err
	}
	draw := n.Int64()

	var cum int64
	for i, w := range weights {
		cum += w
		if draw < cum {
			return i, nil
		}
	}
	// draw < total and the cumulative walk covers [0, total), so this
	// is unreachable; close the interval on the last index anyway.
	return len(weights) - 1, nil
}

// BasisPoints converts a percent probability with at most two decimal
// places into integer basis points. Deeper precision is rejected as a
// configuration error rather than truncated silently.
func BasisPoints(p decimal.Decimal) (int64, error) {
	bp := p.Shift(2)
	if bp.IsNegative() || !bp.IsInteger() {
		return 0, ErrInvalidInput
	}
	return bp.IntPart(), nil
}
