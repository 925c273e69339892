package core

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a raw amount to a number.
// Empty input and anything that does not parse to a finite value yield 0.
// Negative values are kept as-is.
//
// Examples:
//   - "12.50" -> 12.5
//   - "-5"    -> -5
//   - ""      -> 0
//   - "abc"   -> 0
//   - "NaN"   -> 0
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Sum accumulates amounts in decimal so totals do not depend on the order
// records are visited in.
type Sum struct {
	d decimal.Decimal
}

// Add adds one amount to the running total.
func (s *Sum) Add(amount float64) {
	s.d = s.d.Add(decimal.NewFromFloat(amount))
}

// Merge adds another running total.
func (s *Sum) Merge(o Sum) {
	s.d = s.d.Add(o.d)
}

// Float64 returns the total as a float.
func (s Sum) Float64() float64 {
	return s.d.InexactFloat64()
}

// Decimal exposes the exact total.
func (s Sum) Decimal() decimal.Decimal {
	return s.d
}

// Total sums amounts selected from items.
func Total[T any](items []T, amount func(T) float64) float64 {
	var s Sum
	for _, it := range items {
		s.Add(amount(it))
	}
	return s.Float64()
}
