package bigdecimal

import "fmt"

// MustNew is like [New] but panics if the decimal cannot be constructed.
// It simplifies safe initialization of global variables holding decimals.
func MustNew(coef int64, scale int) Decimal {
	d, err := New(coef, scale)
	if err != nil {
		panic(fmt.Sprintf("MustNew(%v, %v) failed: %v", coef, scale, err))
	}
	return d
}

// MustQuo is like [Decimal.Quo] but panics if computing error.
func (d Decimal) MustQuo(e Decimal) Decimal {
	f, err := d.Quo(e)
	if err != nil {
		panic(fmt.Sprintf("MustQuo(%v) failed: %v", d, err))
	}
	return f
}

// MustQuoPrec is like [Decimal.QuoPrec] but panics if computing error.
func (d Decimal) MustQuoPrec(e Decimal, prec int) Decimal {
	f, err := d.QuoPrec(e, prec)
	if err != nil {
		panic(fmt.Sprintf("MustQuoPrec(%v, %v) failed: %v", d, prec, err))
	}
	return f
}

// MustPow is like [Decimal.Pow] but panics if computing error.
func (d Decimal) MustPow(exp int) Decimal {
	f, err := d.Pow(exp)
	if err != nil {
		panic(fmt.Sprintf("MustPow(%v) failed: %v", d, err))
	}
	return f
}
