package progress

import (
	"fmt"

	"planner/internal/catalog"
	"planner/internal/core"
)

// Point is one day of a chart series.
type Point struct {
	Date  core.Date `json:"date"`
	Value float64   `json:"value"`
}

// DailySeries returns one point per record for key. Flags chart as 0/1 and
// choices as 1 when the terminal option is set.
func DailySeries(records []core.DailyRecord, cat *catalog.Catalog, key string) ([]Point, error) {
	o, ok := cat.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownObjective, key)
	}
	points := make([]Point, 0, len(records))
	for _, r := range records {
		var v float64
		switch k := o.Kind.(type) {
		case catalog.Quantity:
			v = r.Number(key)
		case catalog.Flag:
			if r.Bool(key) {
				v = 1
			}
		case catalog.Choice:
			if r.Choice(key) == k.Terminal {
				v = 1
			}
		default:
			panic(fmt.Sprintf("progress: unhandled kind %T", o.Kind))
		}
		points = append(points, Point{Date: r.Date, Value: v})
	}
	return points, nil
}
