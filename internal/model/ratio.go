package model

import (
	"bytes"
	"math"

	"github.com/shopspring/decimal"
)

var (
	infJSON    = []byte(`"Infinity"`)
	negInfJSON = []byte(`"-Infinity"`)
)

// Ratio is a dimensionless regulatory ratio. Unlike decimal.Decimal it can
// hold ±Inf, which is what a ratio over a zero denominator evaluates to.
// The zero value is a finite zero.
type Ratio struct {
	value decimal.Decimal
	inf   int8 // 0 finite, +1 / -1 infinite
}

// RatioOf divides num by den. A non-positive denominator yields +Inf.
func RatioOf(num, den decimal.Decimal) Ratio {
	if den.Sign() <= 0 {
		return Inf()
	}
	return Ratio{value: num.Div(den)}
}

// NewRatio wraps a finite value.
func NewRatio(v decimal.Decimal) Ratio {
	return Ratio{value: v}
}

// Inf returns +Inf.
func Inf() Ratio {
	return Ratio{inf: 1}
}

// IsInf reports whether r is ±Inf.
func (r Ratio) IsInf() bool {
	return r.inf != 0
}

// Sign returns -1, 0 or +1.
func (r Ratio) Sign() int {
	if r.inf != 0 {
		return int(r.inf)
	}
	return r.value.Sign()
}

// Decimal returns the finite value. Infinite ratios return zero; check
// IsInf first.
func (r Ratio) Decimal() decimal.Decimal {
	if r.inf != 0 {
		return decimal.Zero
	}
	return r.value
}

// Float64 converts to float64, mapping infinities to math.Inf.
func (r Ratio) Float64() float64 {
	if r.inf != 0 {
		return math.Inf(int(r.inf))
	}
	return r.value.InexactFloat64()
}

// Mul scales r by f. An infinite ratio keeps its magnitude and takes the
// sign of f; scaling infinity by zero gives zero.
func (r Ratio) Mul(f decimal.Decimal) Ratio {
	if r.inf != 0 {
		switch f.Sign() {
		case 0:
			return Ratio{}
		case -1:
			return Ratio{inf: -r.inf}
		}
		return r
	}
	return Ratio{value: r.value.Mul(f)}
}

// Quo divides r by f under the same zero-denominator rule as RatioOf.
func (r Ratio) Quo(f decimal.Decimal) Ratio {
	if f.Sign() <= 0 {
		return Inf()
	}
	if r.inf != 0 {
		return r
	}
	return Ratio{value: r.value.Div(f)}
}

// Equal compares two ratios; infinities of the same sign are equal.
func (r Ratio) Equal(o Ratio) bool {
	if r.inf != 0 || o.inf != 0 {
		return r.inf == o.inf
	}
	return r.value.Equal(o.value)
}

// LessThan compares r with a finite bound.
func (r Ratio) LessThan(bound decimal.Decimal) bool {
	if r.inf != 0 {
		return r.inf < 0
	}
	return r.value.LessThan(bound)
}

// GreaterThan compares r with a finite bound.
func (r Ratio) GreaterThan(bound decimal.Decimal) bool {
	if r.inf != 0 {
		return r.inf > 0
	}
	return r.value.GreaterThan(bound)
}

func (r Ratio) String() string {
	switch r.inf {
	case 1:
		return "+Inf"
	case -1:
		return "-Inf"
	}
	return r.value.String()
}

// MarshalJSON renders finite ratios like decimal.Decimal and infinities as
// the strings "Infinity" / "-Infinity".
func (r Ratio) MarshalJSON() ([]byte, error) {
	switch r.inf {
	case 1:
		return infJSON, nil
	case -1:
		return negInfJSON, nil
	}
	return r.value.MarshalJSON()
}

func (r *Ratio) UnmarshalJSON(data []byte) error {
	switch {
	case bytes.Equal(data, infJSON):
		*r = Inf()
		return nil
	case bytes.Equal(data, negInfJSON):
		*r = Ratio{inf: -1}
		return nil
	}
	var v decimal.Decimal
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	*r = Ratio{value: v}
	return nil
}
