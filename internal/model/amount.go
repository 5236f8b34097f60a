package model

import "github.com/shopspring/decimal"

// DateLayout is the canonical date format for ledger rows.
const DateLayout = "2006-01-02"

var hundred = decimal.NewFromInt(100)

// ValidScale reports whether d has at most two decimal places.
func ValidScale(d decimal.Decimal) bool {
	scaled := d.Mul(hundred)
	return scaled.Equal(scaled.Floor())
}
