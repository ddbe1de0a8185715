package item

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hpungsan/shelf/internal/errors"
)

// Price is a non-negative amount of money held as an integer number of cents.
// Two prices are equal exactly when their cent counts are equal, so "0" and
// "0.00" never compare as different values.
type Price int64

// MaxPrice bounds parsed prices so cents always fit in int64.
const MaxPrice Price = 1<<62 - 1

// priceFormat accepts plain decimal literals: "0", "0.", ".0", "12.345".
// Signs and exponents are rejected.
var priceFormat = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)$`)

// ParsePrice converts a decimal string into cents. Up to two fractional
// digits are kept exactly; further digits are rounded half-up.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if !priceFormat.MatchString(s) {
		return 0, errors.NewValidation(fmt.Sprintf("invalid price %q: expected a non-negative decimal", s))
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.NewValidation(fmt.Sprintf("invalid price %q: %v", s, err))
	}

	// Round is half away from zero, which is half-up for non-negative values.
	cents := d.Round(2).Shift(2)
	if cents.GreaterThan(decimal.NewFromInt(int64(MaxPrice))) {
		return 0, errors.NewValidation(fmt.Sprintf("price %q is too large", s))
	}

	return Price(cents.IntPart()), nil
}

// MustParsePrice is ParsePrice for literals known to be valid.
func MustParsePrice(s string) Price {
	p, err := ParsePrice(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Cents returns the raw cent count.
func (p Price) Cents() int64 {
	return int64(p)
}

// Decimal returns the price as a decimal with two fractional digits.
func (p Price) Decimal() decimal.Decimal {
	return decimal.New(int64(p), -2)
}

// String formats the price with exactly two fractional digits.
func (p Price) String() string {
	return p.Decimal().StringFixed(2)
}

// MarshalJSON encodes the price as a fixed-point string ("100.99") so no
// float conversion happens on the way out.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}
