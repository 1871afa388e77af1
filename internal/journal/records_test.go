package journal

import (
	"context"
	"errors"
	"testing"

	"planner/internal/catalog"
	"planner/internal/core"
)

func newStore(t *testing.T, repo *fakeRepository) *RecordStore {
	t.Helper()
	s := NewRecordStore(repo, catalog.Default())
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}

func TestEnsureTodayCreatesOnceAndPersists(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepository{}
	s := newStore(t, repo)
	today := core.NewDate(2024, 6, 10)

	r, err := s.EnsureToday(ctx, today)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if !r.Date.Equal(today) || len(r.Values) != len(catalog.Default().Keys()) {
		t.Fatalf("unexpected record %+v", r)
	}
	if _, err := s.EnsureToday(ctx, today); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if s.Len() != 1 || len(repo.records) != 1 {
		t.Fatalf("expected exactly one record, store=%d repo=%d", s.Len(), len(repo.records))
	}

	// A fresh load sees the persisted row.
	reloaded := newStore(t, repo)
	if _, err := reloaded.Get(today); err != nil {
		t.Fatalf("persisted record missing: %v", err)
	}
}

func TestEnsureTodayKeepsAscendingOrder(t *testing.T) {
	ctx := context.Background()
	cat := catalog.Default()
	repo := &fakeRepository{records: []core.DailyRecord{
		cat.NewRecord(core.NewDate(2024, 6, 1)),
		cat.NewRecord(core.NewDate(2024, 6, 20)),
	}}
	s := newStore(t, repo)
	if _, err := s.EnsureToday(ctx, core.NewDate(2024, 6, 10)); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	all := s.All()
	want := []string{"2024-06-01", "2024-06-10", "2024-06-20"}
	for i, r := range all {
		if r.Date.String() != want[i] {
			t.Fatalf("position %d = %s, want %s", i, r.Date, want[i])
		}
	}
}

func TestLoadSortsNormalizesAndDeduplicates(t *testing.T) {
	d := core.NewDate(2024, 6, 5)
	first := core.NewDailyRecord(d)
	first.Values[catalog.WaterLiters] = core.NumberValue(1)
	second := core.NewDailyRecord(d)
	second.Values[catalog.WaterLiters] = core.NumberValue(2)
	older := core.NewDailyRecord(core.NewDate(2024, 5, 30))

	s := newStore(t, &fakeRepository{records: []core.DailyRecord{first, older, second}})
	if s.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", s.Len())
	}
	all := s.All()
	if !all[0].Date.Equal(older.Date) {
		t.Fatalf("records not sorted: %v", all[0].Date)
	}
	if all[1].Number(catalog.WaterLiters) != 2 {
		t.Fatalf("later duplicate should win, got %v", all[1].Number(catalog.WaterLiters))
	}
	if all[1].Choice(catalog.FinanceApp) != catalog.StatusPending {
		t.Fatalf("missing fields should be backfilled")
	}
}

func TestGetMissingIsNotFound(t *testing.T) {
	s := newStore(t, &fakeRepository{})
	if _, err := s.Get(core.NewDate(2024, 1, 1)); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateField(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepository{}
	s := newStore(t, repo)
	today := core.NewDate(2024, 6, 10)
	if _, err := s.EnsureToday(ctx, today); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	r, err := s.UpdateField(ctx, today, catalog.ExerciseMinutes, core.NumberValue(-20))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if r.Number(catalog.ExerciseMinutes) != 0 {
		t.Fatalf("negative should clamp to 0, got %v", r.Number(catalog.ExerciseMinutes))
	}
	if _, err := s.UpdateField(ctx, today, catalog.ExerciseMinutes, core.NumberValue(60)); err != nil {
		t.Fatalf("update: %v", err)
	}
	if repo.records[0].Number(catalog.ExerciseMinutes) != 60 {
		t.Fatalf("update not persisted")
	}

	errCases := []struct {
		name string
		date core.Date
		key  string
		v    core.Value
		want error
	}{
		{"unknown key", today, "sleep_hours", core.NumberValue(1), core.ErrUnknownObjective},
		{"kind mismatch", today, catalog.HealthyMeal, core.NumberValue(1), core.ErrKindMismatch},
		{"bad option", today, catalog.FinanceApp, core.ChoiceValue("Done"), core.ErrInvalidOption},
		{"missing date", core.NewDate(2024, 6, 11), catalog.HealthyMeal, core.BoolValue(true), core.ErrNotFound},
	}
	for _, tc := range errCases {
		if _, err := s.UpdateField(ctx, tc.date, tc.key, tc.v); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestFailedSaveLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepository{}
	s := newStore(t, repo)
	today := core.NewDate(2024, 6, 10)
	if _, err := s.EnsureToday(ctx, today); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	repo.SaveErr = errors.New("disk full")
	if _, err := s.UpdateField(ctx, today, catalog.HealthyMeal, core.BoolValue(true)); err == nil {
		t.Fatalf("expected save error")
	}
	r, _ := s.Get(today)
	if r.Bool(catalog.HealthyMeal) {
		t.Fatalf("failed write must not change the store")
	}
	if _, err := s.EnsureToday(ctx, today.AddDays(1)); err == nil {
		t.Fatalf("expected save error on ensure")
	}
	if s.Len() != 1 {
		t.Fatalf("failed ensure must not insert, len=%d", s.Len())
	}
}

func TestTrailing(t *testing.T) {
	cat := catalog.Default()
	var records []core.DailyRecord
	for day := 1; day <= 10; day++ {
		records = append(records, cat.NewRecord(core.NewDate(2024, 6, day)))
	}
	s := newStore(t, &fakeRepository{records: records})

	got := s.Trailing(7)
	if len(got) != 7 || got[0].Date.Day() != 4 || got[6].Date.Day() != 10 {
		t.Fatalf("unexpected trailing window %v..%v (%d)", got[0].Date, got[len(got)-1].Date, len(got))
	}
	if len(s.Trailing(50)) != 10 {
		t.Fatalf("short history should return everything")
	}
	if len(s.Trailing(0)) != 0 {
		t.Fatalf("n=0 should be empty")
	}
	empty := newStore(t, &fakeRepository{})
	if len(empty.Trailing(7)) != 0 {
		t.Fatalf("empty store should be empty")
	}
}

func TestMonthSlice(t *testing.T) {
	cat := catalog.Default()
	s := newStore(t, &fakeRepository{records: []core.DailyRecord{
		cat.NewRecord(core.NewDate(2024, 5, 31)),
		cat.NewRecord(core.NewDate(2024, 6, 1)),
		cat.NewRecord(core.NewDate(2024, 6, 9)),
	}})
	got := s.MonthSlice(core.NewDate(2024, 6, 10))
	if len(got) != 2 || got[0].Date.String() != "2024-06-01" {
		t.Fatalf("unexpected month slice %+v", got)
	}
	if len(s.MonthSlice(core.NewDate(2024, 7, 1))) != 0 {
		t.Fatalf("next month should be empty")
	}
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, &fakeRepository{})
	today := core.NewDate(2024, 6, 10)
	r, _ := s.EnsureToday(ctx, today)
	r.Values[catalog.HealthyMeal] = core.BoolValue(true)
	got, _ := s.Get(today)
	if got.Bool(catalog.HealthyMeal) {
		t.Fatalf("caller mutation leaked into the store")
	}
}
