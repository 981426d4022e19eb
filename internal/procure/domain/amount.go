package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Amount is a fixed-point monetary value in minor units (two decimal
// places), e.g. ParseAmount("500.00") == Amount(50000). Bid amounts are
// never represented as floats so comparisons stay exact.
type Amount int64

var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount parses a non-negative decimal string with at most two
// fractional digits.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, ErrInvalidAmount
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" || len(frac) > 2 {
		return 0, ErrInvalidAmount
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	// strconv would accept a sign inside the fraction, so scan digits
	// directly.
	cents := int64(0)
	for i := 0; i < len(frac); i++ {
		if frac[i] < '0' || frac[i] > '9' {
			return 0, ErrInvalidAmount
		}
		cents = cents*10 + int64(frac[i]-'0')
	}
	if len(frac) == 1 {
		cents *= 10
	}

	if units > (1<<62)/100 {
		return 0, ErrInvalidAmount
	}
	return Amount(units*100 + cents), nil
}

// Positive reports whether the amount is strictly greater than zero.
func (a Amount) Positive() bool { return a > 0 }

// String formats the amount with two decimal places, e.g. "500.00".
func (a Amount) String() string {
	return fmt.Sprintf("%d.%02d", int64(a)/100, int64(a)%100)
}
