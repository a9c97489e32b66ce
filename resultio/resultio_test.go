package resultio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/coregx/streammatch/harness"
	"github.com/coregx/streammatch/matcher"
)

func TestWriteStreamReportsProducesHeaderAndRow(t *testing.T) {
	reports := []harness.StreamReport{
		{
			Algorithm:  matcher.AlgorithmMPBG,
			StreamName: "s1",
			BytesFed:   10,
			Counts:     map[harness.Verdict]int64{harness.Success: 2},
			Collisions: 0,
		},
	}
	var buf bytes.Buffer
	if err := WriteStreamReports(&buf, reports); err != nil {
		t.Fatalf("WriteStreamReports: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2 (header+row): %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "stream,algorithm") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "s1") || !strings.Contains(lines[1], "10") {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}

func TestWriteSummariesSortsByAlgorithmName(t *testing.T) {
	summaries := map[matcher.Algorithm]*harness.Summary{
		matcher.AlgorithmMPBG: {Algorithm: matcher.AlgorithmMPBG, Counts: map[harness.Verdict]int64{}},
		matcher.AlgorithmKMPRT: {Algorithm: matcher.AlgorithmKMPRT, Counts: map[harness.Verdict]int64{}},
	}
	var buf bytes.Buffer
	if err := WriteSummaries(&buf, summaries); err != nil {
		t.Fatalf("WriteSummaries: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !strings.HasPrefix(lines[1], "mp-bg,") || !strings.HasPrefix(lines[2], "mp-kmp-rt,") {
		t.Fatalf("rows not sorted by algorithm name: %q", lines[1:])
	}
}
