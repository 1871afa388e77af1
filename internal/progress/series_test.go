package progress

import (
	"errors"
	"testing"

	"planner/internal/catalog"
	"planner/internal/core"
)

func TestDailySeries(t *testing.T) {
	cat := catalog.Default()
	records := monthOf(cat, 2024, 6, 3, func(day int, r *core.DailyRecord) {
		r.Values[catalog.WaterLiters] = core.NumberValue(float64(day))
		r.Values[catalog.ExerciseDone] = core.BoolValue(day == 2)
		if day == 3 {
			r.Values[catalog.FinanceApp] = core.ChoiceValue(catalog.StatusCompleted)
		}
	})

	tests := []struct {
		key  string
		want []float64
	}{
		{catalog.WaterLiters, []float64{1, 2, 3}},
		{catalog.ExerciseDone, []float64{0, 1, 0}},
		{catalog.FinanceApp, []float64{0, 0, 1}},
	}
	for _, tt := range tests {
		pts, err := DailySeries(records, cat, tt.key)
		if err != nil {
			t.Fatalf("%s: %v", tt.key, err)
		}
		if len(pts) != len(tt.want) {
			t.Fatalf("%s: len=%d", tt.key, len(pts))
		}
		for i, w := range tt.want {
			if pts[i].Value != w || !pts[i].Date.Equal(records[i].Date) {
				t.Fatalf("%s[%d]=%+v, want %v", tt.key, i, pts[i], w)
			}
		}
	}

	if _, err := DailySeries(records, cat, "nope"); !errors.Is(err, core.ErrUnknownObjective) {
		t.Fatalf("expected ErrUnknownObjective, got %v", err)
	}
}
