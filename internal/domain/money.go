package domain

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrFractionalAmount  = errors.New("amount contains a decimal point")
	ErrAmountNotNumeric  = errors.New("amount is not a whole number")
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
	ErrAmountOverflow    = errors.New("amount exceeds supported range")
)

var maxAmount = decimal.NewFromInt(math.MaxInt64)

// ParseAmount converts a raw instruction amount into integer minor units.
// Only plain ASCII digit strings are accepted; "10.5", "1e3" and "-4" are rejected.
func ParseAmount(raw string) (int64, error) {
	if strings.Contains(raw, ".") {
		return 0, ErrFractionalAmount
	}
	if raw == "" {
		return 0, ErrAmountNotNumeric
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, ErrAmountNotNumeric
		}
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, ErrAmountNotNumeric
	}
	if !d.IsPositive() {
		return 0, ErrAmountNotPositive
	}
	if d.GreaterThan(maxAmount) {
		return 0, ErrAmountOverflow
	}
	return d.IntPart(), nil
}
