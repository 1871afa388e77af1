package tabular

import (
	"context"
	"fmt"
	"strconv"

	"planner/internal/progress"
	"planner/internal/sheets"
)

// ReportHeader is the header row of the progress report table.
var ReportHeader = []string{"key", "label", "group", "rule", "value", "target", "ratio", "percent", "weight"}

// EncodeReport renders a report as one row per objective, then one row per
// snapshot aggregate and a final overall row.
func EncodeReport(rep progress.Report) [][]string {
	rows := make([][]string, 0, len(rep.Objectives)+5)
	rows = append(rows, ReportHeader)
	for _, p := range rep.Objectives {
		rows = append(rows, []string{
			p.Key,
			p.Label,
			string(p.Group),
			p.Rule,
			num(p.Value),
			num(p.Target),
			num(p.Ratio),
			progress.FormatPercent(p.Ratio),
			num(p.Weight),
		})
	}
	for _, a := range []progress.Aggregate{rep.Health, rep.Projects} {
		rows = append(rows, []string{
			a.Key,
			fmt.Sprintf("%d/%d completed", a.Completed, a.Total),
			"aggregate",
			progress.RuleSnapshot,
			strconv.Itoa(a.Completed),
			strconv.Itoa(a.Total),
			num(a.Ratio),
			progress.FormatPercent(a.Ratio),
			num(a.Weight),
		})
	}
	rows = append(rows, []string{
		"overall",
		fmt.Sprintf("%04d-%02d bonus %s", rep.Year, rep.Month, rep.Bonus.State()),
		"summary",
		"weighted_mean",
		strconv.Itoa(rep.DaysLogged),
		num(rep.Bonus.Threshold),
		num(rep.Overall),
		progress.FormatPercent(rep.Overall),
		"",
	})
	return rows
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ReportWriter publishes progress reports to a table, replacing its contents.
type ReportWriter struct {
	table sheets.Table
}

func NewReportWriter(t sheets.Table) *ReportWriter {
	return &ReportWriter{table: t}
}

func (w *ReportWriter) WriteReport(ctx context.Context, rep progress.Report) error {
	if err := w.table.ReplaceAll(ctx, EncodeReport(rep)); err != nil {
		return fmt.Errorf("write report to %s: %w", sheets.NameOf(w.table), err)
	}
	return nil
}
