// Package core provides money parsing and handling utilities.
//
// This file contains functions for parsing monetary amounts from user input
// and table cells into decimal values rounded to cents.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a decimal string to a positive amount with two
// decimal places.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and rounds
// half-up on the third decimal place. Positivity is checked on the rounded
// cents, so an input below half a cent is zero and rejected. Signs, exponents
// and zero are rejected with ErrInvalidAmount.
//
// Examples:
//   ParseAmount("12.34")  -> 12.34
//   ParseAmount("12,34")  -> 12.34
//   ParseAmount("12.345") -> 12.35
//   ParseAmount("0.005")  -> 0.01
//   ParseAmount("0.004")  -> ErrInvalidAmount
//   ParseAmount("0")      -> ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.ContainsAny(s, "eE") {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	d = d.Round(2)
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// FormatAmount renders an amount with exactly two decimals, dot separated.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
