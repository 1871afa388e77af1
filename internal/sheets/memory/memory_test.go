package memory

import (
	"context"
	"errors"
	"testing"
)

func TestTableReplaceAndRead(t *testing.T) {
	ctx := context.Background()
	tbl := New("records", []string{"date", "x"})

	rows, err := tbl.ReadAll(ctx)
	if err != nil || len(rows) != 1 || rows[0][0] != "date" {
		t.Fatalf("unexpected seed rows: %v err=%v", rows, err)
	}

	rows[0][0] = "mutated"
	again, _ := tbl.ReadAll(ctx)
	if again[0][0] != "date" {
		t.Fatalf("ReadAll must return a copy")
	}

	in := [][]string{{"date", "x"}, {"2024-06-01", "1"}}
	if err := tbl.ReplaceAll(ctx, in); err != nil {
		t.Fatalf("replace: %v", err)
	}
	in[1][1] = "changed"
	got, _ := tbl.ReadAll(ctx)
	if len(got) != 2 || got[1][1] != "1" {
		t.Fatalf("ReplaceAll must copy its input, got %v", got)
	}
	if tbl.Writes() != 1 {
		t.Fatalf("writes=%d", tbl.Writes())
	}
	if tbl.Name() != "mem:records" {
		t.Fatalf("name=%s", tbl.Name())
	}
}

func TestTableReplaceErr(t *testing.T) {
	ctx := context.Background()
	tbl := New("tx", []string{"a"})
	tbl.ReplaceErr = errors.New("boom")
	if err := tbl.ReplaceAll(ctx, nil); err == nil {
		t.Fatalf("expected error")
	}
	rows, _ := tbl.ReadAll(ctx)
	if len(rows) != 1 || tbl.Writes() != 0 {
		t.Fatalf("failed write must not change rows")
	}
}
