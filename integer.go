package bigdecimal

import (
	"math"
	"strconv"
)

// NewFromInt32 converts an integer to a decimal.
// The conversion is exact.
func NewFromInt32(i int32) Decimal {
	return NewFromInt64(int64(i))
}

// NewFromInt64 converts an integer to a decimal.
// The conversion is exact.
func NewFromInt64(i int64) Decimal {
	var (
		buf [20]byte
		pos int
		neg bool
		abs uint64
	)

	abs = uint64(i)
	if i < 0 {
		neg = true
		abs = -abs // also correct for math.MinInt64
	}

	pos = len(buf)
	for abs > 0 {
		pos--
		buf[pos] = byte(abs % 10)
		abs /= 10
	}

	return newDecimal(neg, digits(buf[pos:]), 0)
}

// Int64 returns the integer part of d truncated towards zero.
// If the integer part cannot be represented as an int64,
// the result is undefined and ok is false.
func (d Decimal) Int64() (i int64, ok bool) {
	coef := d.digits().rshDown(d.Scale())

	// Magnitude
	var abs uint64
	for _, b := range coef {
		if abs > (math.MaxUint64-uint64(b))/10 {
			return 0, false
		}
		abs = abs*10 + uint64(b)
	}

	// Sign
	if d.IsNeg() {
		if abs > -math.MinInt64 {
			return 0, false
		}
		return -int64(abs), true
	}
	if abs > math.MaxInt64 {
		return 0, false
	}
	return int64(abs), true
}

// Float64 returns the nearest binary floating-point number rounded
// using "half to even" rule.
// If the decimal is too large for a float64, the result is ±Inf
// and ok is false.
func (d Decimal) Float64() (f float64, ok bool) {
	f, err := strconv.ParseFloat(d.String(), 64)
	return f, err == nil
}
