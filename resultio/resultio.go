// Package resultio writes a benchmark run's per-stream and summary results
// as CSV, the format the CLI's -o flag produces.
package resultio

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/coregx/streammatch/harness"
	"github.com/coregx/streammatch/matcher"
)

// WriteStreamReports writes one CSV row per StreamReport to w.
func WriteStreamReports(w io.Writer, reports []harness.StreamReport) error {
	cw := csv.NewWriter(w)
	header := []string{"stream", "algorithm", "bytes_fed", "success", "partial", "false_neg", "false_pos",
		"collisions", "static_mem_bytes", "user_time_ns", "system_time_ns", "max_rss_bytes"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("resultio: writing header: %w", err)
	}
	for _, r := range reports {
		row := []string{
			r.StreamName,
			r.Algorithm.String(),
			fmt.Sprint(r.BytesFed),
			fmt.Sprint(r.Counts[harness.Success]),
			fmt.Sprint(r.Counts[harness.Partial]),
			fmt.Sprint(r.Counts[harness.FalseNeg]),
			fmt.Sprint(r.Counts[harness.FalsePos]),
			fmt.Sprint(r.Collisions),
			fmt.Sprint(r.StaticMemory),
			fmt.Sprint(r.UsageDelta.UserTimeNanos),
			fmt.Sprint(r.UsageDelta.SystemTimeNanos),
			fmt.Sprint(r.UsageDelta.MaxRSSBytes),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("resultio: writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummaries writes one CSV row per algorithm's accumulated Summary to
// w, sorted by algorithm name for stable output.
func WriteSummaries(w io.Writer, summaries map[matcher.Algorithm]*harness.Summary) error {
	cw := csv.NewWriter(w)
	header := []string{"algorithm", "bytes_fed", "success", "partial", "false_neg", "false_pos",
		"collisions", "static_mem_bytes", "peak_rss_bytes"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("resultio: writing header: %w", err)
	}

	algos := make([]matcher.Algorithm, 0, len(summaries))
	for a := range summaries {
		algos = append(algos, a)
	}
	sort.Slice(algos, func(i, j int) bool { return algos[i].String() < algos[j].String() })

	for _, a := range algos {
		s := summaries[a]
		row := []string{
			s.Algorithm.String(),
			fmt.Sprint(s.BytesFed),
			fmt.Sprint(s.Counts[harness.Success]),
			fmt.Sprint(s.Counts[harness.Partial]),
			fmt.Sprint(s.Counts[harness.FalseNeg]),
			fmt.Sprint(s.Counts[harness.FalsePos]),
			fmt.Sprint(s.Collisions),
			fmt.Sprint(s.StaticMemory),
			fmt.Sprint(s.PeakRSSBytes),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("resultio: writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
