// internal/intparse/intparse.go
package intparse

import (
	"errors"
	"math"
)

// Parse failure kinds.
// Callers compare with errors.Is.
var (
	ErrTooSmall = errors.New("intparse: value too small")
	ErrTooLarge = errors.New("intparse: value too large")
	ErrInvalid  = errors.New("intparse: invalid value")
)

// ParseInt32 converts decimal text to a signed 32-bit integer.
func ParseInt32(text string) (int32, error) {
	v, err := Parse(text, math.MinInt32, math.MaxInt32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// Parse converts decimal text to an integer inside [min, max].
//
// Accepted form: an optional '-', then an optional '+', then one or more
// ASCII digits. Anything else, including an empty token or trailing
// characters, is ErrInvalid. Overflow is detected digit by digit.
func Parse(text string, min, max int64) (int64, error) {
	p := 0

	negative := false
	if p < len(text) && text[p] == '-' {
		negative = true
		p++
	}
	if p < len(text) && text[p] == '+' {
		p++
	}

	if p == len(text) {
		return 0, ErrInvalid
	}

	var result int64
	for ; p < len(text); p++ {
		c := text[p]
		if c < '0' || c > '9' {
			return 0, ErrInvalid
		}
		digit := int64(c - '0')

		if negative {
			if result < math.MinInt64/10 {
				return 0, ErrTooSmall
			}
			result *= 10
			if result < math.MinInt64+digit {
				return 0, ErrTooSmall
			}
			result -= digit
		} else {
			if result > math.MaxInt64/10 {
				return 0, ErrTooLarge
			}
			result *= 10
			if result > math.MaxInt64-digit {
				return 0, ErrTooLarge
			}
			result += digit
		}
	}

	if result < min {
		return 0, ErrTooSmall
	}
	if result > max {
		return 0, ErrTooLarge
	}
	return result, nil
}
