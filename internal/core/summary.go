package core

import "github.com/shopspring/decimal"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// FinanceSummary is the monthly money picture for one reference day.
type FinanceSummary struct {
	Year            int              `json:"year"`
	Month           int              `json:"month"` // 1-12
	StartingBalance decimal.Decimal  `json:"starting_balance"`
	Income          decimal.Decimal  `json:"income"`
	Expenses        decimal.Decimal  `json:"expenses"`
	Balance         decimal.Decimal  `json:"balance"`
	ByCategory      []CategoryAmount `json:"by_category"`
}
