// Package tabular maps daily records and transactions to and from string
// tables, and implements the journal repositories on top of sheets.Table.
package tabular

import (
	"planner/internal/catalog"
	"planner/internal/core"
)

// RecordCodec encodes daily records as one row per day: a date column
// followed by one column per catalog objective, in catalog order.
type RecordCodec struct {
	cat *catalog.Catalog
}

func NewRecordCodec(cat *catalog.Catalog) RecordCodec {
	return RecordCodec{cat: cat}
}

func (c RecordCodec) Header() []string {
	return append([]string{DateColumn}, c.cat.Keys()...)
}

// Decode reads rows whose first row is the header. Columns are matched by
// name, missing objective columns take the objective default and unknown
// columns are ignored. Rows with an unparseable date are dropped and counted.
func (c RecordCodec) Decode(rows [][]string) (records []core.DailyRecord, dropped int) {
	records = []core.DailyRecord{}
	if len(rows) == 0 {
		return records, 0
	}
	idx := columnIndex(rows[0])
	if _, ok := idx[DateColumn]; !ok {
		for _, r := range rows[1:] {
			if !blank(r) {
				dropped++
			}
		}
		return records, dropped
	}

	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		raw, _ := cell(row, idx, DateColumn)
		date, err := parseDate(raw)
		if err != nil {
			dropped++
			continue
		}
		r := core.NewDailyRecord(date)
		for _, o := range c.cat.Objectives() {
			s, ok := cell(row, idx, o.Key)
			if !ok || s == "" {
				r.Values[o.Key] = o.Default()
				continue
			}
			r.Values[o.Key] = o.Parse(s)
		}
		records = append(records, r)
	}
	return records, dropped
}

func (c RecordCodec) Encode(records []core.DailyRecord) [][]string {
	objectives := c.cat.Objectives()
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, c.Header())
	for _, r := range records {
		row := make([]string, 0, len(objectives)+1)
		row = append(row, r.Date.String())
		for _, o := range objectives {
			v, ok := r.Values[o.Key]
			if !ok {
				v = o.Default()
			}
			row = append(row, o.Format(v))
		}
		rows = append(rows, row)
	}
	return rows
}
