package bigdecimal

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Decimal type is a representation of an arbitrary-precision decimal number.
// The zero value is the numeric value of 0.
// It is designed to be safe for concurrent use by multiple goroutines.
//
// A decimal type is a struct with three parameters:
//
//   - Sign: a boolean indicating whether the decimal is negative.
//   - Scale: a non-negative integer indicating the position of the decimal point.
//   - Coefficient: the digits of the decimal without the decimal point.
//
// For example, a decimal with a coefficient of 12345 and a scale of 2 represents
// the value 123.45.
//
// Decimals are always kept in canonical form: the coefficient has no leading
// zeros, the fractional part has no trailing zeros, and zero is never negative.
// Consequently, every numeric value has exactly one representation and
// two decimals are equal if and only if d == e.
type Decimal struct {
	neg   bool   // indicates whether the decimal is negative
	scale int    // the position of the decimal point
	coef  string // the ASCII digits of the coefficient, empty for 0
}

// DefaultPrec is the number of digits after the decimal point kept by
// [Decimal.Quo] and by [Decimal.Pow] with a negative exponent.
const DefaultPrec = 20

var (
	// ErrInvalidDecimal is returned when a string is not a valid decimal.
	ErrInvalidDecimal = errors.New("invalid decimal")
	// ErrNonFinite is returned when converting NaN or an infinity.
	ErrNonFinite = errors.New("non-finite float")
	// ErrDivisionByZero is returned when the divisor is 0.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrUndefinedPower is returned when 0 is raised to a negative power.
	ErrUndefinedPower = errors.New("zero raised to a negative power")
	// ErrScaleRange is returned for a negative scale.
	ErrScaleRange = errors.New("scale out of range")
	// ErrPrecisionRange is returned for a negative precision.
	ErrPrecisionRange = errors.New("precision out of range")
)

var (
	Zero = Decimal{}           // 0
	One  = Decimal{coef: "1"}  // 1
	Two  = Decimal{coef: "2"}  // 2
	Ten  = Decimal{coef: "10"} // 10
)

// newDecimal returns the canonical decimal equal to coef / 10^scale.
// Leading zeros are dropped, trailing zeros after the decimal point are
// removed while the scale is positive, and zero always becomes [Zero].
// If scale is negative, the result is unpredictable.
func newDecimal(neg bool, coef digits, scale int) Decimal {
	coef = coef.trim()
	if len(coef) == 0 {
		return Decimal{}
	}
	if z := min(coef.ntz(), scale); z > 0 {
		coef = coef[:len(coef)-z]
		scale -= z
	}
	return Decimal{neg: neg, scale: scale, coef: coef.string()}
}

// digits returns the coefficient of d as a digit sequence.
func (d Decimal) digits() digits {
	return newDigits(d.coef)
}

// New returns a decimal equal to coef / 10^scale.
// New returns an error if scale is negative.
func New(coef int64, scale int) (Decimal, error) {
	if scale < 0 {
		return Decimal{}, fmt.Errorf("New(%v, %v) failed: %w", coef, scale, ErrScaleRange)
	}
	d := NewFromInt64(coef)
	return newDecimal(d.neg, d.digits(), scale), nil
}

// NewFromFloat64 converts a float to a decimal.
// The conversion uses the shortest decimal string that converts back to f,
// as produced by [strconv.FormatFloat] with precision -1.
// Consequently, 0.1 converts to exactly 0.1 rather than to the binary
// value nearest to 0.1; the fidelity of the result is bounded by that
// decimal rendering of f.
//
// NewFromFloat64 returns an error if f is NaN or an infinity.
func NewFromFloat64(f float64) (Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Decimal{}, fmt.Errorf("converting %v: %w", f, ErrNonFinite)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	d, err := parse(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("converting %v: %w", f, err) // unexpected by design
	}
	return d, nil
}

// Parse converts a string to a decimal.
// The input string must be in one of the following formats:
//
//	1.234
//	-1234
//	+0.000001234
//
// The formal EBNF grammar for the supported format is as follows:
//
//	sign           ::= '+' | '-'
//	digits         ::= digit { digit }
//	digit          ::= '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9'
//	numeric-string ::= [sign] digits ['.' digits]
//
// Leading and trailing whitespace, exponents, and digit separators are not
// accepted. Leading zeros and trailing fractional zeros are removed,
// so "-0.00" and "0" parse to the same value.
//
// Parse returns an error wrapping [ErrInvalidDecimal] if the string does not
// follow the grammar.
func Parse(s string) (Decimal, error) {
	d, err := parse(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	return d, nil
}

func parse(s string) (Decimal, error) {
	var (
		pos     int
		width   int
		neg     bool
		coef    digits
		scale   int
		hasint  bool
		hasdot  bool
		hasfrac bool
	)

	width = len(s)
	if width == 0 {
		return Decimal{}, fmt.Errorf("empty string: %w", ErrInvalidDecimal)
	}
	coef = make(digits, 0, width)

	// Sign
	switch {
	case s[pos] == '-':
		neg = true
		pos++
	case s[pos] == '+':
		pos++
	}

	// Integer
	for pos < width && s[pos] >= '0' && s[pos] <= '9' {
		hasint = true
		coef = append(coef, s[pos]-'0')
		pos++
	}

	// Fraction
	if pos < width && s[pos] == '.' {
		hasdot = true
		pos++
		for pos < width && s[pos] >= '0' && s[pos] <= '9' {
			hasfrac = true
			coef = append(coef, s[pos]-'0')
			scale++
			pos++
		}
	}

	switch {
	case pos != width && s[pos] == '.':
		return Decimal{}, fmt.Errorf("more than one decimal point: %w", ErrInvalidDecimal)
	case pos != width:
		return Decimal{}, fmt.Errorf("invalid character %q: %w", s[pos], ErrInvalidDecimal)
	case !hasint && !hasfrac:
		return Decimal{}, fmt.Errorf("no digits: %w", ErrInvalidDecimal)
	case !hasint:
		return Decimal{}, fmt.Errorf("no integer part: %w", ErrInvalidDecimal)
	case hasdot && !hasfrac:
		return Decimal{}, fmt.Errorf("no fractional part: %w", ErrInvalidDecimal)
	}

	return newDecimal(neg, coef, scale), nil
}

// MustParse is like [Parse] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding decimals.
func MustParse(s string) Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q) failed: %v", s, err))
	}
	return d
}

// String method implements the [fmt.Stringer] interface and returns
// a string representation of a decimal value.
// The returned string does not use scientific or engineering notation and is
// formatted according to the following formal EBNF grammar:
//
//	sign           ::= '-'
//	digits         ::= { '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9' }
//	significand    ::= digits '.' digits | digits
//	numeric-string ::= [sign] significand
//
// The integer part never has leading zeros except for a lone 0 and the
// fractional part never has trailing zeros.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (d Decimal) String() string {
	if d.IsZero() {
		return "0"
	}

	intdigs := len(d.coef) - d.scale
	width := len(d.coef)
	if d.neg {
		width++
	}
	if d.scale > 0 {
		width++ // decimal point
	}
	if intdigs <= 0 {
		width += 1 - intdigs // leading zeros
	}

	buf := make([]byte, 0, width)

	// Sign
	if d.neg {
		buf = append(buf, '-')
	}

	// Coefficient
	switch {
	case d.scale == 0:
		buf = append(buf, d.coef...)
	case intdigs > 0:
		buf = append(buf, d.coef[:intdigs]...)
		buf = append(buf, '.')
		buf = append(buf, d.coef[intdigs:]...)
	default:
		buf = append(buf, '0', '.')
		for i := intdigs; i < 0; i++ {
			buf = append(buf, '0')
		}
		buf = append(buf, d.coef...)
	}

	return string(buf)
}

// UnmarshalText implements [encoding.TextUnmarshaler] interface.
// Also see method [Parse].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (d *Decimal) UnmarshalText(text []byte) error {
	var err error
	*d, err = Parse(string(text))
	return err
}

// MarshalText implements [encoding.TextMarshaler] interface.
// Also see method [Decimal.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Scan implements the [sql.Scanner] interface.
// It accepts string, []byte, int64, and float64 values.
// Floats are converted with [NewFromFloat64].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (d *Decimal) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*d, err = Parse(value)
	case []byte:
		*d, err = Parse(string(value))
	case int64:
		*d = NewFromInt64(value)
	case float64:
		*d, err = NewFromFloat64(value)
	default:
		err = fmt.Errorf("failed to convert from %T to %T: %w", value, Decimal{}, ErrInvalidDecimal)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
// The decimal is stored as its canonical string.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (d Decimal) Value() (driver.Value, error) {
	return d.String(), nil
}

// NullDecimal represents a decimal that can be null.
// Its zero value is null.
// NullDecimal is not thread-safe.
type NullDecimal struct {
	Decimal Decimal
	Valid   bool
}

// Scan implements the [sql.Scanner] interface.
// See also method [Decimal.Scan].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (n *NullDecimal) Scan(value any) error {
	if value == nil {
		n.Decimal = Decimal{}
		n.Valid = false
		return nil
	}
	err := n.Decimal.Scan(value)
	if err != nil {
		n.Decimal = Decimal{}
		n.Valid = false
		return err
	}
	n.Valid = true
	return nil
}

// Value implements the [driver.Valuer] interface.
// See also method [Decimal.Value].
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (n NullDecimal) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Decimal.Value()
}

// Format implements [fmt.Formatter] interface.
// The following [verbs] are available:
//
//	%f, %s, %v: -123.456
//	%q:        "-123.456"
//	%k:         -12345.6%
//
// The following format flags can be used with all verbs: '+', ' ', '0', '-'.
//
// Precision is only supported for %f and %k verbs.
// The value is rounded half up or padded with zeros to the requested number
// of digits after the decimal point.
// For %f verb, the default precision is equal to the scale of the decimal,
// whereas, for verb %k the default precision is the scale of the decimal minus 2.
//
// [verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (d Decimal) Format(state fmt.State, verb rune) {

	// Percentage
	dscale := d.Scale()
	if verb == 'k' || verb == 'K' {
		d = d.Mul(Decimal{coef: "100"})
	}

	// Rescaling
	tzeroes := 0
	if verb == 'f' || verb == 'F' || verb == 'k' || verb == 'K' {
		scale := 0
		switch p, ok := state.Precision(); {
		case ok:
			scale = p
		case verb == 'k' || verb == 'K':
			scale = dscale - 2
		case verb == 'f' || verb == 'F':
			scale = dscale
		}
		if scale < 0 {
			scale = 0
		}
		d = d.Round(scale)
		tzeroes = scale - d.Scale()
	}

	// Integer and fractional digits
	intpart, fracpart := "0", ""
	if n := len(d.coef) - d.scale; n > 0 {
		intpart, fracpart = d.coef[:n], d.coef[n:]
	} else if d.scale > 0 {
		fracpart = strings.Repeat("0", -n) + d.coef
	}

	// Decimal point
	dpoint := 0
	if len(fracpart) > 0 || tzeroes > 0 {
		dpoint = 1
	}

	// Arithmetic sign
	rsign := 0
	if d.IsNeg() || state.Flag('+') || state.Flag(' ') {
		rsign = 1
	}

	// Percentage sign
	psign := 0
	if verb == 'k' || verb == 'K' {
		psign = 1
	}

	// Quotes
	lquote, tquote := 0, 0
	if verb == 'q' || verb == 'Q' {
		lquote, tquote = 1, 1
	}

	// Padding
	width := lquote + rsign + len(intpart) + dpoint + len(fracpart) + tzeroes + psign + tquote
	lspaces, tspaces, lzeroes := 0, 0, 0
	if w, ok := state.Width(); ok && w > width {
		switch {
		case state.Flag('-'):
			tspaces = w - width
		case state.Flag('0'):
			lzeroes = w - width
		default:
			lspaces = w - width
		}
		width = w
	}

	// Writing buffer
	buf := make([]byte, 0, width)
	for i := 0; i < lspaces; i++ {
		buf = append(buf, ' ')
	}
	if lquote > 0 {
		buf = append(buf, '"')
	}
	if rsign > 0 {
		switch {
		case d.IsNeg():
			buf = append(buf, '-')
		case state.Flag(' '):
			buf = append(buf, ' ')
		default:
			buf = append(buf, '+')
		}
	}
	for i := 0; i < lzeroes; i++ {
		buf = append(buf, '0')
	}
	buf = append(buf, intpart...)
	if dpoint > 0 {
		buf = append(buf, '.')
	}
	buf = append(buf, fracpart...)
	for i := 0; i < tzeroes; i++ {
		buf = append(buf, '0')
	}
	if psign > 0 {
		buf = append(buf, '%')
	}
	if tquote > 0 {
		buf = append(buf, '"')
	}
	for i := 0; i < tspaces; i++ {
		buf = append(buf, ' ')
	}

	// Writing result
	switch verb {
	case 'q', 'Q', 's', 'S', 'v', 'V', 'f', 'F', 'k', 'K':
		state.Write(buf)
	default:
		state.Write([]byte("%!"))
		state.Write([]byte{byte(verb)})
		state.Write([]byte("(bigdecimal.Decimal="))
		state.Write(buf)
		state.Write([]byte(")"))
	}
}

// Prec returns number of digits in the coefficient.
// Prec returns 0 for zero.
func (d Decimal) Prec() int {
	return len(d.coef)
}

// Coef returns the digits of the coefficient of the decimal.
// Also see method [Decimal.Prec].
func (d Decimal) Coef() string {
	if d.IsZero() {
		return "0"
	}
	return d.coef
}

// Scale returns number of digits after the decimal point.
func (d Decimal) Scale() int {
	return d.scale
}

// IsInt returns true if fractional part of d is zero.
func (d Decimal) IsInt() bool {
	return d.scale == 0
}

// Round returns d that is rounded to the specified number of digits after
// the decimal point using "half up" rule, which rounds ties away from zero.
// If d already has fewer digits after the decimal point, it is returned
// unchanged.
//
// Round panics if the scale is negative.
func (d Decimal) Round(scale int) Decimal {
	if scale < 0 {
		panic(fmt.Sprintf("%q.Round(%v) failed: %v", d, scale, ErrScaleRange))
	}
	if d.Scale() <= scale {
		return d
	}
	return newDecimal(d.IsNeg(), d.digits().rshHalfUp(d.Scale()-scale), scale)
}

// Trunc returns d that is truncated to the specified number of digits after
// the decimal point.
//
// Trunc panics if the scale is negative.
func (d Decimal) Trunc(scale int) Decimal {
	if scale < 0 {
		panic(fmt.Sprintf("%q.Trunc(%v) failed: %v", d, scale, ErrScaleRange))
	}
	if d.Scale() <= scale {
		return d
	}
	return newDecimal(d.IsNeg(), d.digits().rshDown(d.Scale()-scale), scale)
}

// Neg returns d with opposite sign.
func (d Decimal) Neg() Decimal {
	if d.IsZero() {
		return d
	}
	d.neg = !d.neg
	return d
}

// Abs returns absolute value of d.
func (d Decimal) Abs() Decimal {
	d.neg = false
	return d
}

// Sign returns:
//
//	-1 if d < 0
//	 0 if d == 0
//	+1 if d > 0
func (d Decimal) Sign() int {
	switch {
	case d.neg:
		return -1
	case d.IsZero():
		return 0
	}
	return 1
}

// IsPos returns true if d > 0.
func (d Decimal) IsPos() bool {
	return !d.IsZero() && !d.neg
}

// IsNeg returns true if d < 0.
func (d Decimal) IsNeg() bool {
	return d.neg
}

// IsZero returns true if d == 0.
func (d Decimal) IsZero() bool {
	return len(d.coef) == 0
}

// Add returns the exact sum of d and e.
func (d Decimal) Add(e Decimal) Decimal {

	var (
		dcoef digits
		ecoef digits
		neg   bool
		scale int
	)

	dcoef = d.digits()
	ecoef = e.digits()

	// Alignment and scale
	switch {
	case d.Scale() == e.Scale():
		scale = d.Scale()
	case e.Scale() < d.Scale():
		scale = d.Scale()
		ecoef = ecoef.lsh(d.Scale() - e.Scale())
	case d.Scale() < e.Scale():
		scale = e.Scale()
		dcoef = dcoef.lsh(e.Scale() - d.Scale())
	}

	// Sign
	if dcoef.cmp(ecoef) > 0 {
		neg = d.IsNeg()
	} else {
		neg = e.IsNeg()
	}

	// Coefficient
	if d.IsNeg() != e.IsNeg() {
		dcoef = dcoef.dist(ecoef)
	} else {
		dcoef = dcoef.add(ecoef)
	}

	return newDecimal(neg, dcoef, scale)
}

// Sub returns the exact difference of d and e.
func (d Decimal) Sub(e Decimal) Decimal {
	return d.Add(e.Neg())
}

// Mul returns the exact product of d and e.
// The scale of the product before trailing zeros are removed is the sum
// of the scales of d and e.
func (d Decimal) Mul(e Decimal) Decimal {

	var (
		dcoef digits
		ecoef digits
		neg   bool
		scale int
	)

	dcoef = d.digits()
	ecoef = e.digits()

	// Coefficient
	dcoef = dcoef.mul(ecoef)

	// Sign
	neg = d.IsNeg() != e.IsNeg()

	// Scale
	scale = d.Scale() + e.Scale()

	return newDecimal(neg, dcoef, scale)
}

// Quo returns the quotient of d and e rounded to [DefaultPrec] digits
// after the decimal point.
// See method [Decimal.QuoPrec] for details.
func (d Decimal) Quo(e Decimal) (Decimal, error) {
	return d.QuoPrec(e, DefaultPrec)
}

// QuoPrec returns the quotient of d and e rounded to prec digits after
// the decimal point.
// The quotient is computed by long division to prec+1 digits after the
// decimal point, and the last digit is then rounded using "half up" rule,
// which rounds ties away from zero.
// Quotients that terminate within prec digits are exact.
//
// QuoPrec returns an error if:
//   - e is 0;
//   - prec is negative.
func (d Decimal) QuoPrec(e Decimal, prec int) (Decimal, error) {
	if prec < 0 {
		return Decimal{}, fmt.Errorf("computing [%v / %v]: %w", d, e, ErrPrecisionRange)
	}

	// Special case: zero divisor
	if e.IsZero() {
		return Decimal{}, fmt.Errorf("computing [%v / %v]: %w", d, e, ErrDivisionByZero)
	}

	// Special case: zero dividend
	if d.IsZero() {
		return Decimal{}, nil
	}

	var (
		dcoef digits
		ecoef digits
		neg   bool
	)

	dcoef = d.digits()
	ecoef = e.digits()

	// Alignment, so that the quotient has prec+1 digits after the decimal point
	switch shift := e.Scale() - d.Scale() + prec + 1; {
	case shift > 0:
		dcoef = dcoef.lsh(shift)
	case shift < 0:
		ecoef = ecoef.lsh(-shift)
	}

	// Coefficient
	dcoef, _ = dcoef.quoRem(ecoef)
	dcoef = dcoef.rshHalfUp(1)

	// Sign
	neg = d.IsNeg() != e.IsNeg()

	return newDecimal(neg, dcoef, prec), nil
}

// Pow returns d raised to the power of exp.
// See method [Decimal.PowPrec] for details.
func (d Decimal) Pow(exp int) (Decimal, error) {
	return d.PowPrec(exp, DefaultPrec)
}

// PowPrec returns d raised to the power of exp.
//
// If exp is positive, the result is exact and is computed by
// exponentiation by squaring.
// If exp is negative, the result is 1 / d^(-exp) computed with
// [Decimal.QuoPrec] and rounded to prec digits after the decimal point.
// By convention, any decimal raised to the power of 0, including 0, is 1.
//
// PowPrec returns an error if:
//   - d is 0 and exp is negative;
//   - prec is negative.
func (d Decimal) PowPrec(exp, prec int) (Decimal, error) {
	if prec < 0 {
		return Decimal{}, fmt.Errorf("computing [%v^%v]: %w", d, exp, ErrPrecisionRange)
	}

	switch {
	case exp == 0:
		return One, nil
	case exp > 0:
		return d.pow(uint(exp)), nil
	case d.IsZero():
		return Decimal{}, fmt.Errorf("computing [%v^%v]: %w", d, exp, ErrUndefinedPower)
	}

	// Negative exponent, uint(-exp) is also the magnitude of math.MinInt
	f := d.pow(uint(-exp))
	q, err := One.QuoPrec(f, prec)
	if err != nil {
		return Decimal{}, fmt.Errorf("computing [%v^%v]: %w", d, exp, err)
	}
	return q, nil
}

// pow calculates d^exp using exponentiation by squaring.
func (d Decimal) pow(exp uint) Decimal {
	f := One
	for {
		if exp&1 != 0 {
			f = f.Mul(d)
		}
		exp >>= 1
		if exp == 0 {
			return f
		}
		d = d.Mul(d)
	}
}

// Cmp compares d and e numerically and returns:
//
//	-1 if d < e
//	 0 if d == e
//	+1 if d > e
func (d Decimal) Cmp(e Decimal) int {

	// Special case: different signs
	switch {
	case e.Sign() < d.Sign():
		return 1
	case d.Sign() < e.Sign():
		return -1
	}

	var (
		dcoef digits
		ecoef digits
	)

	dcoef = d.digits()
	ecoef = e.digits()

	// Alignment
	switch {
	case e.Scale() < d.Scale():
		ecoef = ecoef.lsh(d.Scale() - e.Scale())
	case d.Scale() < e.Scale():
		dcoef = dcoef.lsh(e.Scale() - d.Scale())
	}

	// Comparison
	switch dcoef.cmp(ecoef) {
	case 1:
		return d.Sign()
	case -1:
		return -e.Sign()
	default:
		return 0
	}
}

// Compare is like [Decimal.Cmp] but in the form expected by [slices.SortFunc].
//
// [slices.SortFunc]: https://pkg.go.dev/slices#SortFunc
func Compare(d, e Decimal) int {
	return d.Cmp(e)
}

// Equal returns true if d and e are numerically equal.
func (d Decimal) Equal(e Decimal) bool {
	return d.Cmp(e) == 0
}

// Max returns maximum of d and e.
func (d Decimal) Max(e Decimal) Decimal {
	if d.Cmp(e) >= 0 {
		return d
	}
	return e
}

// Min returns minimum of d and e.
func (d Decimal) Min(e Decimal) Decimal {
	if d.Cmp(e) <= 0 {
		return d
	}
	return e
}
