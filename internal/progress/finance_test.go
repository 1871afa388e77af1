package progress

import (
	"testing"

	"github.com/shopspring/decimal"

	"planner/internal/catalog"
	"planner/internal/core"
)

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSummarizeBalance(t *testing.T) {
	today := core.NewDate(2024, 6, 15)
	txs := []core.Transaction{
		{Date: core.NewDate(2024, 6, 1), Type: core.Income, Category: "Salary", Amount: money("500")},
		{Date: core.NewDate(2024, 6, 2), Type: core.Expense, Category: "Housing", Amount: money("150")},
		{Date: core.NewDate(2024, 6, 3), Type: core.Expense, Category: "Food", Amount: money("30")},
		{Date: core.NewDate(2024, 6, 4), Type: core.Expense, Category: "Food", Amount: money("20")},
	}
	s := Summarize(today, 1000, txs)

	if !s.Balance.Equal(money("1300")) {
		t.Fatalf("balance=%s, want 1300", s.Balance)
	}
	if !s.Income.Equal(money("500")) || !s.Expenses.Equal(money("200")) {
		t.Fatalf("income=%s expenses=%s", s.Income, s.Expenses)
	}
	if len(s.ByCategory) != 2 {
		t.Fatalf("categories=%v", s.ByCategory)
	}
	if s.ByCategory[0].Name != "Housing" || !s.ByCategory[0].Amount.Equal(money("150")) {
		t.Fatalf("largest category first, got %+v", s.ByCategory[0])
	}
	if s.ByCategory[1].Name != "Food" || !s.ByCategory[1].Amount.Equal(money("50")) {
		t.Fatalf("food total, got %+v", s.ByCategory[1])
	}
	if s.Year != 2024 || s.Month != 6 {
		t.Fatalf("period %d-%d", s.Year, s.Month)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(core.NewDate(2024, 6, 1), 42.5, nil)
	if !s.Balance.Equal(money("42.5")) || !s.Income.IsZero() || !s.Expenses.IsZero() {
		t.Fatalf("unexpected summary %+v", s)
	}
	if s.ByCategory == nil {
		t.Fatalf("breakdown must be non-nil")
	}
}

func TestSummarizeExactCents(t *testing.T) {
	txs := make([]core.Transaction, 0, 10)
	for i := 0; i < 10; i++ {
		txs = append(txs, core.Transaction{Date: core.NewDate(2024, 6, 1), Type: core.Expense, Category: "Food", Amount: money("0.10")})
	}
	s := Summarize(core.NewDate(2024, 6, 1), 0, txs)
	if !s.Expenses.Equal(money("1")) {
		t.Fatalf("expenses=%s, want exactly 1", s.Expenses)
	}
}

func TestStartingBalanceOf(t *testing.T) {
	r := catalog.Default().NewRecord(core.NewDate(2024, 6, 1))
	r.Values[catalog.StartingBalance] = core.NumberValue(250)
	if got := StartingBalanceOf(r); got != 250 {
		t.Fatalf("starting balance=%v", got)
	}
}
