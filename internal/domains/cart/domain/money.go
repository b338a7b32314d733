package domain

import (
	"fmt"
	"math"
)

// Money is an amount in cents.
type Money int64

// FromFloat converts a decimal price such as 2.99 into cents.
func FromFloat(v float64) Money {
	return Money(math.Round(v * 100))
}

// Float returns the amount in currency units.
func (m Money) Float() float64 {
	return float64(m) / 100
}

// Times multiplies the amount by a quantity.
func (m Money) Times(qty int) Money {
	return m * Money(qty)
}

func (m Money) String() string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s%d.%02d", sign, m/100, m%100)
}
