package tabular

import (
	"testing"

	"github.com/shopspring/decimal"

	"planner/internal/core"
)

func TestTransactionCodecRoundTrip(t *testing.T) {
	var c TransactionCodec
	in := []core.Transaction{
		{Date: core.NewDate(2024, 6, 1), Type: core.Income, Category: "Salary", Amount: decimal.RequireFromString("1500"), Description: "June"},
		{Date: core.NewDate(2024, 6, 2), Type: core.Expense, Category: "Food", Amount: decimal.RequireFromString("12.5"), Description: "lunch, with \"friends\""},
	}
	rows := c.Encode(in)
	if rows[1][3] != "1500.00" || rows[2][3] != "12.50" {
		t.Fatalf("amounts not fixed to 2 decimals: %v", rows)
	}
	got, dropped := c.Decode(rows)
	if dropped != 0 || len(got) != 2 {
		t.Fatalf("got=%d dropped=%d", len(got), dropped)
	}
	for i := range in {
		if !got[i].Amount.Equal(in[i].Amount) || got[i].Type != in[i].Type ||
			got[i].Description != in[i].Description || !got[i].Date.Equal(in[i].Date) {
			t.Fatalf("tx %d mismatch: %+v vs %+v", i, got[i], in[i])
		}
	}
}

func TestTransactionCodecDropsBadRows(t *testing.T) {
	rows := [][]string{
		{"Date", "Type", "Category", "Amount", "Description"},
		{"2024-06-01", "expense", "Food", "10,5", "ok"},
		{"2024-06-01", "transfer", "Food", "10", "bad type"},
		{"2024-06-01", "Expense", "Food", "0", "zero"},
		{"2024-06-01", "Expense", "Food", "-3", "negative"},
		{"junk", "Expense", "Food", "3", "bad date"},
		{"", "", "", "", ""},
	}
	got, dropped := TransactionCodec{}.Decode(rows)
	if len(got) != 1 || dropped != 4 {
		t.Fatalf("got=%d dropped=%d", len(got), dropped)
	}
	if got[0].Type != core.Expense || !got[0].Amount.Equal(decimal.RequireFromString("10.5")) {
		t.Fatalf("unexpected tx %+v", got[0])
	}
}
