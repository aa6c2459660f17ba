package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultMinorAmount is charged when a request carries no usable price:
// one major unit, expressed in minor units.
const DefaultMinorAmount int64 = 100

// ParseMajorAmount converts a decimal major-unit price string ("19.99") to
// minor units (1999). The conversion is done on the string itself; going
// through float64 would turn 19.99 into 1998.
//
// A missing or non-numeric price falls back to DefaultMinorAmount. A
// negative price is rejected, except "-0" which is zero. A price whose
// scaled value cannot be held in an int64 is rejected. Fraction digits
// beyond the second are truncated.
func ParseMajorAmount(price string) (int64, error) {
	price = strings.TrimSpace(price)
	if price == "" {
		return DefaultMinorAmount, nil
	}

	if strings.HasPrefix(price, "-") {
		rest := price[1:]
		if !isDecimal(rest) {
			return DefaultMinorAmount, nil
		}
		amount, err := ParseMajorAmount(rest)
		if err != nil {
			return 0, err
		}
		if amount == 0 {
			// "-0" and "-0.00" are still zero.
			return 0, nil
		}
		return 0, fmt.Errorf("%w: negative price %q", ErrInvalidInput, price)
	}

	if !isDecimal(price) {
		return DefaultMinorAmount, nil
	}

	intPart := price
	fracPart := ""
	if i := strings.IndexByte(price, '.'); i >= 0 {
		intPart, fracPart = price[:i], price[i+1:]
	}

	var major int64
	if intPart != "" {
		var err error
		major, err = strconv.ParseInt(intPart, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: price %q out of range", ErrInvalidInput, price)
		}
	}
	// major fits in int64 but major*100 may not.
	if major > (math.MaxInt64-99)/100 {
		return 0, fmt.Errorf("%w: price %q out of range", ErrInvalidInput, price)
	}

	// Keep at most two fraction digits, zero-padded.
	if len(fracPart) > 2 {
		fracPart = fracPart[:2]
	}
	for len(fracPart) < 2 {
		fracPart += "0"
	}
	minorFrac, _ := strconv.ParseInt(fracPart, 10, 64)

	return major*100 + minorFrac, nil
}

// isDecimal reports whether s consists of digits with at most one dot and
// at least one digit.
func isDecimal(s string) bool {
	if s == "" || s == "." {
		return false
	}
	dots := 0
	digits := 0
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '.':
			dots++
			if dots > 1 {
				return false
			}
		case s[i] >= '0' && s[i] <= '9':
			digits++
		default:
			return false
		}
	}
	return digits > 0
}
