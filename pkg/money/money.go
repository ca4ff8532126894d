// Package money holds the Amount type used for every price and total.
// Amounts are stored as an integer count of cents so sums stay exact.
package money

import (
	"fmt"
	"math"
	"math/bits"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value in cents.
type Amount int64

// Zero is the empty amount.
const Zero Amount = 0

var priceGrammar = regexp.MustCompile(`^[+-]?[0-9]+([.,][0-9]+)?$`)

// InvalidPriceError is returned by Parse for any input outside the price grammar.
type InvalidPriceError struct {
	Input  string
	Reason string
}

func (e *InvalidPriceError) Error() string {
	return fmt.Sprintf("invalid price %q: %s", e.Input, e.Reason)
}

// FromCents builds an Amount from a cent count.
func FromCents(cents int64) Amount {
	return Amount(cents)
}

// Parse reads a non-negative price with at most two decimal places.
// Accepted: digits, one optional decimal separator ("." or ","), optional sign.
func Parse(s string) (Amount, error) {
	in := strings.TrimSpace(s)
	if in == "" {
		return 0, &InvalidPriceError{Input: s, Reason: "empty value"}
	}
	if !priceGrammar.MatchString(in) {
		return 0, &InvalidPriceError{Input: s, Reason: "expected digits with an optional sign and decimal separator"}
	}

	d, err := decimal.NewFromString(strings.Replace(in, ",", ".", 1))
	if err != nil {
		return 0, &InvalidPriceError{Input: s, Reason: err.Error()}
	}
	if d.IsNegative() {
		return 0, &InvalidPriceError{Input: s, Reason: "must not be negative"}
	}
	if !d.Round(2).Equal(d) {
		return 0, &InvalidPriceError{Input: s, Reason: "more than two decimal places"}
	}

	cents := d.Shift(2)
	if !cents.Equal(decimal.NewFromInt(cents.IntPart())) {
		return 0, &InvalidPriceError{Input: s, Reason: "out of range"}
	}
	return Amount(cents.IntPart()), nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Cents returns the raw cent count.
func (a Amount) Cents() int64 {
	return int64(a)
}

// Mul multiplies the amount by a quantity. Callers that take quantities from
// outside use CheckedMul.
func (a Amount) Mul(quantity int) Amount {
	return a * Amount(quantity)
}

// CheckedMul multiplies a non-negative amount by a non-negative quantity and
// reports false when either is negative or the product does not fit.
func (a Amount) CheckedMul(quantity int) (Amount, bool) {
	if a < 0 || quantity < 0 {
		return 0, false
	}
	hi, lo := bits.Mul64(uint64(a), uint64(quantity))
	if hi != 0 || lo > math.MaxInt64 {
		return 0, false
	}
	return Amount(lo), true
}

// CheckedAdd adds two non-negative amounts and reports false on overflow.
func (a Amount) CheckedAdd(b Amount) (Amount, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// Decimal returns the amount in currency units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

// Float64 returns the amount in currency units for display surfaces that need a float.
func (a Amount) Float64() float64 {
	return a.Decimal().InexactFloat64()
}

func (a Amount) String() string {
	return a.Decimal().StringFixed(2)
}

// MarshalJSON writes the amount as a JSON number with two decimals.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
