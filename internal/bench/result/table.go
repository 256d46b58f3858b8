package result

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

// WriteTable prints a summary of results, one row per benchmark, candidate and rate.
func WriteTable(w io.Writer, results []RunResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	header := []string{"Benchmark", "Candidate", "Rate", "Requests", "p50", "p95", "p99", "Max", "Success", "Throughput"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	for _, rr := range results {
		if rr.Results == nil {
			continue
		}
		for _, name := range rr.Results.Names() {
			rates, _ := rr.Results.Get(name)
			for _, rps := range rates.Rates() {
				report, _ := rates.Get(rps)
				row := []string{rr.Benchmark, name, fmt.Sprintf("%d", rps)}
				if report == nil {
					row = append(row, "-", "-", "-", "-", "-", "not measured", "-")
				} else {
					row = append(row,
						fmt.Sprintf("%d", report.Requests),
						fmtDuration(report.Latencies.P50),
						fmtDuration(report.Latencies.P95),
						fmtDuration(report.Latencies.P99),
						fmtDuration(report.Latencies.Max),
						fmt.Sprintf("%.2f%%", report.Success*100),
						fmt.Sprintf("%.2f/s", report.Throughput),
					)
				}
				fmt.Fprintln(tw, strings.Join(row, "\t"))
			}
		}
	}

	tw.Flush()
}

func fmtDuration(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	if d < time.Millisecond {
		return fmt.Sprintf("%.1fµs", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
