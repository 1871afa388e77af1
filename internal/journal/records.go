// Package journal holds the two tables of the planner: the daily record
// store and the transaction ledger.
package journal

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"planner/internal/catalog"
	"planner/internal/core"
	"planner/internal/log"
)

// RecordStore keeps one DailyRecord per date in ascending date order. Every
// mutation is followed by a full rewrite through the repository.
type RecordStore struct {
	repo    RecordRepository
	catalog *catalog.Catalog
	records []core.DailyRecord
}

func NewRecordStore(repo RecordRepository, cat *catalog.Catalog) *RecordStore {
	return &RecordStore{repo: repo, catalog: cat}
}

// Load replaces the in-memory table with the repository contents. Records are
// normalized against the catalog, sorted and deduplicated by date with the
// later row winning.
func (s *RecordStore) Load(ctx context.Context) error {
	raw, err := s.repo.LoadRecords(ctx)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	byDate := make(map[string]int, len(raw))
	records := make([]core.DailyRecord, 0, len(raw))
	duplicates := 0
	for _, r := range raw {
		if r.Date.IsZero() {
			continue
		}
		n := s.catalog.Normalize(r)
		key := n.Date.String()
		if i, ok := byDate[key]; ok {
			records[i] = n
			duplicates++
			continue
		}
		byDate[key] = len(records)
		records = append(records, n)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	if duplicates > 0 {
		slog.WarnContext(ctx, "Collapsed duplicate record dates", "duplicates", duplicates)
	}

	s.records = records
	return nil
}

// EnsureToday returns the record for today, creating and persisting a record
// with catalog defaults first when none exists.
func (s *RecordStore) EnsureToday(ctx context.Context, today core.Date) (core.DailyRecord, error) {
	if i, ok := s.find(today); ok {
		return s.records[i].Clone(), nil
	}

	r := s.catalog.NewRecord(today)
	next := s.insert(r)
	if err := s.persist(ctx, next); err != nil {
		return core.DailyRecord{}, err
	}
	slog.InfoContext(ctx, "Created daily record", log.FieldDate, today.String())
	return r.Clone(), nil
}

// Get returns the record for date or core.ErrNotFound.
func (s *RecordStore) Get(date core.Date) (core.DailyRecord, error) {
	i, ok := s.find(date)
	if !ok {
		return core.DailyRecord{}, fmt.Errorf("record %s: %w", date, core.ErrNotFound)
	}
	return s.records[i].Clone(), nil
}

// UpdateField sets one catalog field on an existing record and persists the
// table. Values are coerced by the objective: negatives clamp to the minimum,
// kind mismatches and unknown options are rejected.
func (s *RecordStore) UpdateField(ctx context.Context, date core.Date, key string, v core.Value) (core.DailyRecord, error) {
	o, ok := s.catalog.Lookup(key)
	if !ok {
		return core.DailyRecord{}, fmt.Errorf("%w: %q", core.ErrUnknownObjective, key)
	}
	coerced, err := o.Coerce(v)
	if err != nil {
		return core.DailyRecord{}, err
	}
	i, ok := s.find(date)
	if !ok {
		return core.DailyRecord{}, fmt.Errorf("record %s: %w", date, core.ErrNotFound)
	}

	next := s.snapshot()
	updated := next[i].Clone()
	updated.Values[key] = coerced
	next[i] = updated
	if err := s.persist(ctx, next); err != nil {
		return core.DailyRecord{}, err
	}
	return updated.Clone(), nil
}

// Trailing returns up to n most recent records, oldest first.
func (s *RecordStore) Trailing(n int) []core.DailyRecord {
	if n <= 0 {
		return nil
	}
	start := len(s.records) - n
	if start < 0 {
		start = 0
	}
	return cloneAll(s.records[start:])
}

// MonthSlice returns the records dated on or after the first day of today's
// month, ascending.
func (s *RecordStore) MonthSlice(today core.Date) []core.DailyRecord {
	start := today.MonthStart()
	i := sort.Search(len(s.records), func(i int) bool {
		return !s.records[i].Date.Before(start)
	})
	return cloneAll(s.records[i:])
}

// All returns every record ascending.
func (s *RecordStore) All() []core.DailyRecord {
	return cloneAll(s.records)
}

func (s *RecordStore) Len() int {
	return len(s.records)
}

func (s *RecordStore) find(date core.Date) (int, bool) {
	i := sort.Search(len(s.records), func(i int) bool {
		return !s.records[i].Date.Before(date)
	})
	if i < len(s.records) && s.records[i].Date.Equal(date) {
		return i, true
	}
	return i, false
}

// insert returns a copy of the table with r placed in date order.
func (s *RecordStore) insert(r core.DailyRecord) []core.DailyRecord {
	i, _ := s.find(r.Date)
	next := make([]core.DailyRecord, 0, len(s.records)+1)
	next = append(next, s.records[:i]...)
	next = append(next, r)
	next = append(next, s.records[i:]...)
	return next
}

func (s *RecordStore) snapshot() []core.DailyRecord {
	return append([]core.DailyRecord(nil), s.records...)
}

// persist writes next and only then adopts it, so a failed write leaves the
// store unchanged.
func (s *RecordStore) persist(ctx context.Context, next []core.DailyRecord) error {
	if err := s.repo.SaveRecords(ctx, cloneAll(next)); err != nil {
		return fmt.Errorf("save records: %w", err)
	}
	s.records = next
	return nil
}

func cloneAll(in []core.DailyRecord) []core.DailyRecord {
	if len(in) == 0 {
		return []core.DailyRecord{}
	}
	out := make([]core.DailyRecord, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}
