package tabular

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"planner/internal/catalog"
	"planner/internal/core"
	"planner/internal/journal"
	"planner/internal/progress"
	"planner/internal/sheets/memory"
)

func TestRepositoryWithJournalStores(t *testing.T) {
	ctx := context.Background()
	cat := catalog.Default()
	recTable := memory.New("records")
	txTable := memory.New("transactions")
	repo := NewRepository(recTable, txTable, cat)

	store := journal.NewRecordStore(repo, cat)
	if err := store.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	today := core.NewDate(2024, 6, 1)
	if _, err := store.EnsureToday(ctx, today); err != nil {
		t.Fatalf("ensure today: %v", err)
	}
	if _, err := store.UpdateField(ctx, today, catalog.WaterLiters, core.NumberValue(1.5)); err != nil {
		t.Fatalf("update: %v", err)
	}

	ledger := journal.NewLedger(repo)
	if err := ledger.Load(ctx); err != nil {
		t.Fatalf("ledger load: %v", err)
	}
	tx := core.Transaction{Date: today, Type: core.Expense, Category: "Food", Amount: decimal.RequireFromString("9.99")}
	if err := ledger.Append(ctx, tx); err != nil {
		t.Fatalf("append: %v", err)
	}

	// a fresh store over the same tables sees the writes
	again := journal.NewRecordStore(NewRepository(recTable, txTable, cat), cat)
	if err := again.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	r, err := again.Get(today)
	if err != nil || r.Number(catalog.WaterLiters) != 1.5 {
		t.Fatalf("reloaded record %+v err=%v", r, err)
	}
	txs, err := repo.LoadTransactions(ctx)
	if err != nil || len(txs) != 1 || !txs[0].Amount.Equal(tx.Amount) {
		t.Fatalf("reloaded txs %+v err=%v", txs, err)
	}
}

func TestRepositoryWriteError(t *testing.T) {
	recTable := memory.New("records")
	recTable.ReplaceErr = errors.New("quota")
	repo := NewRepository(recTable, memory.New("tx"), catalog.Default())
	if err := repo.SaveRecords(context.Background(), nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestReportWriter(t *testing.T) {
	cat := catalog.Default()
	today := core.NewDate(2024, 6, 1)
	rep := progress.Compute([]core.DailyRecord{cat.NewRecord(today)}, cat, catalog.DefaultWeights(), today)

	tbl := memory.New("progress")
	if err := NewReportWriter(tbl).WriteReport(context.Background(), rep); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows, _ := tbl.ReadAll(context.Background())
	want := 1 + len(cat.Objectives()) + 2 + 1
	if len(rows) != want {
		t.Fatalf("rows=%d, want %d", len(rows), want)
	}
	last := rows[len(rows)-1]
	if last[0] != "overall" || last[7] != "0.0%" {
		t.Fatalf("overall row %v", last)
	}
}
