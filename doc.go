/*
Package bigdecimal implements immutable arbitrary-precision decimal numbers.
It is designed for exact decimal arithmetic where binary floating point
is unacceptable, such as financial or scientific computations.

# Representation

[Decimal] is a struct with three fields:

  - Sign: a boolean indicating whether the decimal is negative.
  - Coefficient: a sequence of decimal digits representing the numeric value
    of the decimal without the decimal point.
    The number of digits is limited only by available memory.
  - Scale: a non-negative integer indicating the position of the decimal point
    within the coefficient.
    For example, a decimal with a coefficient of 12345 and a scale of 2 represents
    the value 123.45.

The numerical value of a decimal is calculated as:

  - -Coefficient / 10^Scale, if Sign is true.
  - Coefficient / 10^Scale, if Sign is false.

Every decimal is kept in canonical form:

  - the coefficient has no leading zeros;
  - the coefficient has no trailing zeros after the decimal point,
    so 1.50 is stored as 1.5 and 2.000 as 2;
  - zero is never negative and always has a scale of 0.

As a result, each numeric value has exactly one representation,
and decimals can be compared with the == operator.
The zero value of [Decimal] is 0.

Special values such as [NaN], [Infinity], or [negative zeros] are not supported.

# Conversions

The package provides methods for converting decimals:

  - from/to string:
    [Parse], [Decimal.String], [Decimal.Format].
  - from/to float64:
    [NewFromFloat64], [Decimal.Float64].
  - from/to integers:
    [New], [NewFromInt32], [NewFromInt64], [Decimal.Int64].

[NewFromFloat64] converts the shortest decimal string that represents
the float, not the exact binary value.
For example, 0.1 becomes exactly 0.1.
See the documentation for each method for more details.

# Operations

[Decimal.Add], [Decimal.Sub], [Decimal.Mul] and [Decimal.Pow] with
a non-negative exponent are exact and never fail.
Multiplication uses the schoolbook algorithm, so its cost is proportional
to the product of the lengths of the operands.
Exponentiation uses repeated squaring.

[Decimal.Quo] and [Decimal.Pow] with a negative exponent keep [DefaultPrec]
digits after the decimal point.
[Decimal.QuoPrec] and [Decimal.PowPrec] accept an explicit precision.

# Rounding

Division is carried out by long division to one digit beyond the requested
precision, and that digit is then rounded using "half up" rule,
which rounds ties away from zero.

In addition to implicit rounding, the package provides methods for
explicit rounding:

  - half up rounding:
    [Decimal.Round].
  - rounding towards zero:
    [Decimal.Trunc].

# Errors

All arithmetic methods are pure and panic-free.
Errors are returned in the following cases:

  - Invalid Decimal.
    [Parse] returns an error wrapping [ErrInvalidDecimal] if the string is
    not a valid decimal.

  - Non-finite Float.
    [NewFromFloat64] returns an error wrapping [ErrNonFinite] for NaN and
    infinities.

  - Division by Zero.
    Unlike the standard library, [Decimal.Quo] does not panic when dividing
    by 0. Instead, it returns an error wrapping [ErrDivisionByZero].

  - Undefined Power.
    [Decimal.Pow] returns an error wrapping [ErrUndefinedPower] if 0 is
    raised to a negative power.

Use [errors.Is] to check for a specific kind of error.

[Infinity]: https://en.wikipedia.org/wiki/Infinity#Computing
[NaN]: https://en.wikipedia.org/wiki/NaN
[negative zeros]: https://en.wikipedia.org/wiki/Signed_zero
*/
package bigdecimal
