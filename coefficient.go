package bigdecimal

// digits is an unsigned integer stored as a sequence of decimal digits
// with values 0 to 9, most significant digit first.
//
// Methods never modify their receiver or arguments, so a digits value
// may be shared once it has been built. Results may alias the inputs.
// The normalized representation of 0 is the empty slice.
type digits []byte

// newDigits converts a string of ASCII decimal digits to digits.
func newDigits(s string) digits {
	z := make(digits, len(s))
	for i := 0; i < len(s); i++ {
		z[i] = s[i] - '0'
	}
	return z
}

// string converts x to a string of ASCII decimal digits.
func (x digits) string() string {
	buf := make([]byte, len(x))
	for i, d := range x {
		buf[i] = d + '0'
	}
	return string(buf)
}

// trim removes leading zeros.
func (x digits) trim() digits {
	i := 0
	for i < len(x) && x[i] == 0 {
		i++
	}
	return x[i:]
}

// prec returns length of x in decimal digits.
// prec assumes that 0 has no digits.
func (x digits) prec() int {
	return len(x.trim())
}

// ntz returns number of trailing zeros in x.
// ntz assumes that 0 has no trailing zeros.
func (x digits) ntz() int {
	x = x.trim()
	n := 0
	for i := len(x) - 1; i >= 0 && x[i] == 0; i-- {
		n++
	}
	return n
}

// cmp compares x and y and returns:
//
//	-1 if x < y
//	 0 if x == y
//	+1 if x > y
func (x digits) cmp(y digits) int {
	x, y = x.trim(), y.trim()
	switch {
	case len(x) < len(y):
		return -1
	case len(y) < len(x):
		return 1
	}
	for i := range x {
		switch {
		case x[i] < y[i]:
			return -1
		case y[i] < x[i]:
			return 1
		}
	}
	return 0
}

// lsh (Left Shift) calculates x * 10^shift.
func (x digits) lsh(shift int) digits {
	if shift <= 0 {
		return x
	}
	z := make(digits, len(x)+shift)
	copy(z, x)
	return z
}

// rshDown (Right Shift) calculates x / 10^shift and rounds result towards zero.
func (x digits) rshDown(shift int) digits {
	switch {
	case shift <= 0:
		return x
	case shift >= len(x):
		return nil
	}
	return x[:len(x)-shift]
}

// rshHalfUp (Right Shift) calculates x / 10^shift and rounds result
// using "half up" rule, which rounds ties away from zero.
func (x digits) rshHalfUp(shift int) digits {
	switch {
	case shift <= 0:
		return x
	case shift > len(x):
		return nil
	}
	z := x[:len(x)-shift]
	if x[len(x)-shift] >= 5 {
		return z.add(digits{1})
	}
	return z
}

// add calculates x + y.
func (x digits) add(y digits) digits {
	if len(x) < len(y) {
		x, y = y, x
	}
	z := make(digits, len(x)+1)
	var carry byte
	for i, j := len(x)-1, len(y)-1; i >= 0; i, j = i-1, j-1 {
		t := x[i] + carry
		if j >= 0 {
			t += y[j]
		}
		z[i+1] = t % 10
		carry = t / 10
	}
	z[0] = carry
	return z.trim()
}

// sub calculates x - y.
// If x < y, the result is unpredictable.
func (x digits) sub(y digits) digits {
	z := make(digits, len(x))
	var borrow int
	for i, j := len(x)-1, len(y)-1; i >= 0; i, j = i-1, j-1 {
		t := int(x[i]) - borrow
		if j >= 0 {
			t -= int(y[j])
		}
		borrow = 0
		if t < 0 {
			t += 10
			borrow = 1
		}
		z[i] = byte(t)
	}
	return z.trim()
}

// dist calculates abs(x - y).
func (x digits) dist(y digits) digits {
	if x.cmp(y) < 0 {
		return y.sub(x)
	}
	return x.sub(y)
}

// mul calculates x * y.
// It is the classical multiplication algorithm from Knuth's TAOCP,
// section 4.3.1 (Algorithm M), applied to base 10.
func (x digits) mul(y digits) digits {
	x, y = x.trim(), y.trim()
	if len(x) == 0 || len(y) == 0 {
		return nil
	}
	m, n := len(x), len(y)
	w := make(digits, m+n)
	for j := n - 1; j >= 0; j-- {
		if y[j] == 0 {
			continue
		}
		var k byte
		for i := m - 1; i >= 0; i-- {
			t := x[i]*y[j] + w[i+j+1] + k // at most 9*9 + 9 + 8
			w[i+j+1] = t % 10
			k = t / 10
		}
		w[j] = k
	}
	return w.trim()
}

// quoRem calculates q and r such that x = q * y + r using long division.
// If y is 0, the result is unpredictable.
func (x digits) quoRem(y digits) (q, r digits) {
	y = y.trim()
	q = make(digits, len(x))
	r = make(digits, 0, len(y)+1)
	for i, d := range x {
		r = append(r, d).trim()
		var c byte
		for r.cmp(y) >= 0 {
			r = r.sub(y)
			c++
		}
		q[i] = c
	}
	return q.trim(), r
}
