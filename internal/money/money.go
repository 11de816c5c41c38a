// Package money converts between the decimal amount strings used on the API
// surface and the integer minor units stored in the ledger. Balances never
// touch floating point.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrMalformedAmount occurs when an amount string cannot be represented as
// whole minor units.
var ErrMalformedAmount = errors.New("malformed amount")

// ParseMinorUnits converts a decimal string like "25.00" into minor units
// (2500). At most two decimal places are accepted.
func ParseMinorUnits(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrMalformedAmount
	}
	shifted := d.Shift(2)
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("%w: more than two decimal places", ErrMalformedAmount)
	}
	big := shifted.BigInt()
	if !big.IsInt64() {
		return 0, fmt.Errorf("%w: out of range", ErrMalformedAmount)
	}
	return big.Int64(), nil
}

// FormatMinorUnits renders minor units as a two-decimal string: 4000 -> "40.00".
func FormatMinorUnits(v int64) string {
	return decimal.New(v, -2).StringFixed(2)
}
