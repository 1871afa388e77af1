package progress

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"planner/internal/catalog"
	"planner/internal/core"
)

// Summarize computes balance = starting balance + income - expenses over the
// month's transactions, plus expenses grouped by category, largest first.
// startingBalance comes from today's record.
func Summarize(today core.Date, startingBalance float64, txs []core.Transaction) core.FinanceSummary {
	s := core.FinanceSummary{
		Year:            today.Year(),
		Month:           int(today.Month()),
		StartingBalance: decimal.NewFromFloat(startingBalance).Round(2),
		Income:          decimal.Zero,
		Expenses:        decimal.Zero,
		ByCategory:      []core.CategoryAmount{},
	}

	byCat := map[string]decimal.Decimal{}
	var order []string
	for _, tx := range txs {
		switch tx.Type {
		case core.Income:
			s.Income = s.Income.Add(tx.Amount)
		case core.Expense:
			s.Expenses = s.Expenses.Add(tx.Amount)
			if _, seen := byCat[tx.Category]; !seen {
				order = append(order, tx.Category)
				byCat[tx.Category] = decimal.Zero
			}
			byCat[tx.Category] = byCat[tx.Category].Add(tx.Amount)
		}
	}
	s.Balance = s.StartingBalance.Add(s.Income).Sub(s.Expenses)

	for _, name := range order {
		s.ByCategory = append(s.ByCategory, core.CategoryAmount{Name: name, Amount: byCat[name]})
	}
	sort.SliceStable(s.ByCategory, func(i, j int) bool {
		return s.ByCategory[i].Amount.GreaterThan(s.ByCategory[j].Amount)
	})
	return s
}

// StartingBalanceOf reads the starting balance field of a record.
func StartingBalanceOf(r core.DailyRecord) float64 {
	v := r.Number(catalog.StartingBalance)
	if math.IsNaN(v) {
		return 0
	}
	return v
}
