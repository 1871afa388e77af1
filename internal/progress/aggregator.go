// Package progress turns a month of daily records into per-objective
// completion ratios, a weighted overall score and a bonus verdict.
package progress

import (
	"fmt"
	"math"

	"planner/internal/catalog"
	"planner/internal/core"
)

type (
	// ObjectiveProgress is the scored state of one objective. Value is the
	// aggregate the ratio was computed from: a sum, a mean, or 0/1 for
	// snapshot objectives.
	ObjectiveProgress struct {
		Key    string        `json:"key"`
		Label  string        `json:"label"`
		Group  catalog.Group `json:"group"`
		Rule   string        `json:"rule"`
		Value  float64       `json:"value"`
		Target float64       `json:"target,omitempty"`
		Ratio  float64       `json:"ratio"`
		Weight float64       `json:"weight"`
	}

	// Aggregate counts completed snapshot objectives of one group.
	Aggregate struct {
		Key       string  `json:"key"`
		Completed int     `json:"completed"`
		Total     int     `json:"total"`
		Ratio     float64 `json:"ratio"`
		Weight    float64 `json:"weight"`
	}

	Report struct {
		Year       int                 `json:"year"`
		Month      int                 `json:"month"`
		Today      core.Date           `json:"today"`
		DaysLogged int                 `json:"days_logged"`
		Snapshot   *core.Date          `json:"snapshot_date,omitempty"`
		Objectives []ObjectiveProgress `json:"objectives"`
		Health     Aggregate           `json:"health"`
		Projects   Aggregate           `json:"projects"`
		Overall    float64             `json:"overall"`
		Bonus      Bonus               `json:"bonus"`
	}
)

// Scoring rule names reported per objective.
const (
	RuleMonthlyTotal = "monthly_total"
	RuleDailyAverage = "daily_average"
	RuleDailyHabit   = "daily_habit"
	RuleSnapshot     = "snapshot"
	RuleUnscored     = "unscored"
)

// Compute scores the month of records against the catalog. records is the
// month slice in ascending date order; today picks the snapshot record for
// health and project objectives (today's row when present, otherwise the
// latest row).
func Compute(records []core.DailyRecord, cat *catalog.Catalog, weights catalog.Weights, today core.Date) Report {
	rep := Report{
		Year:       today.Year(),
		Month:      int(today.Month()),
		Today:      today,
		DaysLogged: len(records),
		Objectives: []ObjectiveProgress{},
		Health:     Aggregate{Key: catalog.HealthOverall, Weight: weightOf(weights, catalog.HealthOverall)},
		Projects:   Aggregate{Key: catalog.ProjectsOverall, Weight: weightOf(weights, catalog.ProjectsOverall)},
	}

	snap, hasSnap := snapshotRecord(records, today)
	if hasSnap {
		d := snap.Date
		rep.Snapshot = &d
	}

	ratios := make(map[string]float64)
	for _, o := range cat.Objectives() {
		p := score(o, records, snap, hasSnap)
		p.Weight = weightOf(weights, o.Key)
		ratios[o.Key] = p.Ratio
		rep.Objectives = append(rep.Objectives, p)

		if !o.Snapshot() {
			continue
		}
		switch o.Group {
		case catalog.GroupHealth:
			rep.Health.Total++
			if p.Ratio == 1 {
				rep.Health.Completed++
			}
		case catalog.GroupProject:
			rep.Projects.Total++
			if p.Ratio == 1 {
				rep.Projects.Completed++
			}
		}
	}
	rep.Health.Ratio = fraction(rep.Health.Completed, rep.Health.Total)
	rep.Projects.Ratio = fraction(rep.Projects.Completed, rep.Projects.Total)
	ratios[catalog.HealthOverall] = rep.Health.Ratio
	ratios[catalog.ProjectsOverall] = rep.Projects.Ratio

	rep.Overall = Overall(ratios, weights)
	rep.Bonus = Evaluate(rep.Overall)
	return rep
}

// Overall is the weighted mean of ratios over the weight table. Weighted keys
// with no ratio count as 0, negative weights are ignored and an empty or
// all-zero table scores 0.
func Overall(ratios map[string]float64, weights catalog.Weights) float64 {
	total := weights.Total()
	if total <= 0 {
		return 0
	}
	var sum float64
	for key, w := range weights {
		if w <= 0 {
			continue
		}
		sum += clamp01(ratios[key]) * w
	}
	return clamp01(sum / total)
}

func score(o catalog.Objective, records []core.DailyRecord, snap core.DailyRecord, hasSnap bool) ObjectiveProgress {
	p := ObjectiveProgress{Key: o.Key, Label: o.Label, Group: o.Group}

	switch k := o.Kind.(type) {
	case catalog.Quantity:
		switch k.Goal.Shape {
		case catalog.MonthlyTotal:
			p.Rule = RuleMonthlyTotal
			p.Target = k.Goal.Target
			p.Value = sum(records, o.Key)
			p.Ratio = goalRatio(p.Value, k.Goal.Target)
		case catalog.DailyAverage:
			p.Rule = RuleDailyAverage
			p.Target = k.Goal.Target
			p.Value = mean(records, o.Key)
			p.Ratio = goalRatio(p.Value, k.Goal.Target)
		case catalog.NoGoal:
			p.Rule = RuleUnscored
			p.Value = sum(records, o.Key)
		default:
			panic(fmt.Sprintf("progress: unhandled goal shape %v", k.Goal.Shape))
		}
	case catalog.Flag:
		if k.Snapshot {
			p.Rule = RuleSnapshot
			if hasSnap && snap.Bool(o.Key) {
				p.Value, p.Ratio = 1, 1
			}
			break
		}
		p.Rule = RuleDailyHabit
		p.Value = flagMean(records, o.Key)
		p.Ratio = p.Value
	case catalog.Choice:
		p.Rule = RuleSnapshot
		if hasSnap && snap.Choice(o.Key) == k.Terminal {
			p.Value, p.Ratio = 1, 1
		}
	default:
		panic(fmt.Sprintf("progress: unhandled kind %T", o.Kind))
	}
	return p
}

// snapshotRecord picks today's record when the slice has one, otherwise the
// chronologically last record.
func snapshotRecord(records []core.DailyRecord, today core.Date) (core.DailyRecord, bool) {
	if len(records) == 0 {
		return core.DailyRecord{}, false
	}
	last := records[0]
	for _, r := range records {
		if r.Date.Equal(today) {
			return r, true
		}
		if r.Date.After(last.Date) {
			last = r
		}
	}
	return last, true
}

func sum(records []core.DailyRecord, key string) float64 {
	var s float64
	for _, r := range records {
		s += r.Number(key)
	}
	return s
}

func mean(records []core.DailyRecord, key string) float64 {
	if len(records) == 0 {
		return 0
	}
	return sum(records, key) / float64(len(records))
}

func flagMean(records []core.DailyRecord, key string) float64 {
	if len(records) == 0 {
		return 0
	}
	n := 0
	for _, r := range records {
		if r.Bool(key) {
			n++
		}
	}
	return float64(n) / float64(len(records))
}

func goalRatio(value, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return math.Min(clamp01(value/target), 1.0)
}

func fraction(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(n) / float64(total)
}

func weightOf(w catalog.Weights, key string) float64 {
	if v := w[key]; v > 0 {
		return v
	}
	return 0
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
