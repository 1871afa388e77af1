// Command planner-report prints the monthly progress report of the
// configured backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"planner/internal/cli"
	"planner/internal/core"
	"planner/internal/log"
	"planner/internal/progress"
	"planner/internal/quotes"
)

func main() {
	dateFlag := flag.String("date", "", "report the month containing this date (YYYY-MM-DD), default today")
	withQuote := flag.Bool("quote", true, "print the quote of the day")
	flag.Parse()

	var date core.Date
	if *dateFlag != "" {
		d, err := core.ParseDate(*dateFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -date: %v\n", err)
			os.Exit(2)
		}
		date = d
	}

	// Logs go to stderr so stdout carries only the report.
	cfg, logger, closeLog := cli.BootstrapTo("planner-report", os.Stderr)
	defer closeLog()
	logger = logger.WithComponent(log.ComponentReport)

	ctx := context.Background()
	res := cli.InitBackend(ctx, logger, cfg)
	defer res.Cleanup()

	rep, err := res.Service.Report(ctx, date)
	if err != nil {
		_ = res.Cleanup()
		cli.Fatal(logger.Logger, "Failed to compute report", err)
	}

	if err := render(os.Stdout, rep); err != nil {
		_ = res.Cleanup()
		cli.Fatal(logger.Logger, "Failed to print report", err)
	}
	if *withQuote {
		q := quotes.ForDate(rep.Today)
		fmt.Fprintf(os.Stdout, "\n%s: %s\n", q.Title, q.Text)
	}
}

// render writes one line per objective, the snapshot aggregates, the overall
// score and the bonus verdict.
func render(out io.Writer, rep progress.Report) error {
	fmt.Fprintf(out, "Progress %04d-%02d (as of %s, %d days logged)\n\n",
		rep.Year, rep.Month, rep.Today, rep.DaysLogged)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OBJECTIVE\tGROUP\tRULE\tVALUE\tTARGET\tPROGRESS")
	for _, p := range rep.Objectives {
		target := "-"
		if p.Target > 0 {
			target = fmt.Sprintf("%g", p.Target)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%s\t%s\n",
			p.Label, p.Group, p.Rule, p.Value, target, progress.FormatPercent(p.Ratio))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nHealth:   %d/%d completed (%s)\n",
		rep.Health.Completed, rep.Health.Total, progress.FormatPercent(rep.Health.Ratio))
	fmt.Fprintf(out, "Projects: %d/%d completed (%s)\n",
		rep.Projects.Completed, rep.Projects.Total, progress.FormatPercent(rep.Projects.Ratio))
	fmt.Fprintf(out, "Overall:  %s\n", progress.FormatPercent(rep.Overall))

	if rep.Bonus.Unlocked {
		_, err := fmt.Fprintln(out, "Bonus:    unlocked")
		return err
	}
	_, err := fmt.Fprintf(out, "Bonus:    locked, %s to go (threshold %s)\n",
		progress.FormatPercent(rep.Bonus.Gap), progress.FormatPercent(rep.Bonus.Threshold))
	return err
}
