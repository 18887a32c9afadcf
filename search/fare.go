package search

import (
	"math"
	"math/big"
	"strconv"
)

// FareRate is the price per unit of distance.
const FareRate = 1.25

var hundred = big.NewRat(100, 1)

// Fare returns the price for distance formatted with exactly two decimals.
func Fare(distance float64) string {
	return FormatFixed2(distance * FareRate)
}

// FormatFixed2 renders x with two fraction digits, rounding the exact binary
// value of x half away from zero. This matches toFixed(2) in browsers and
// Node, which differs from strconv's round-half-even on exact ties (0.125).
func FormatFixed2(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', 2, 64)
	}

	neg := x < 0
	r := new(big.Rat).SetFloat64(math.Abs(x))
	r.Mul(r, hundred)

	// n = floor(r + 1/2)
	q, m := new(big.Int).QuoRem(r.Num(), r.Denom(), new(big.Int))
	m.Mul(m, big.NewInt(2))
	if m.Cmp(r.Denom()) >= 0 {
		q.Add(q, big.NewInt(1))
	}

	digits := q.String()
	for len(digits) < 3 {
		digits = "0" + digits
	}
	out := digits[:len(digits)-2] + "." + digits[len(digits)-2:]
	if neg {
		out = "-" + out
	}
	return out
}
