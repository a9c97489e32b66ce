// Command streambench runs a dictionary of patterns against one or more
// byte streams through every registered matching algorithm, compares each
// against the Aho-Corasick reference oracle, and writes the results as CSV.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/coregx/streammatch/dictfile"
	"github.com/coregx/streammatch/harness"
	"github.com/coregx/streammatch/matcher"
	"github.com/coregx/streammatch/patterns"
	"github.com/coregx/streammatch/perfcounter"
	"github.com/coregx/streammatch/resultio"
	"github.com/coregx/streammatch/streamsrc"
)

// repeatedFlag collects every -d/-s value given on the command line, in
// order, implementing flag.Value so flag.Parse repeats it for us.
type repeatedFlag []string

func (r *repeatedFlag) String() string { return strings.Join(*r, ",") }

func (r *repeatedFlag) Set(v string) error {
	*r = append(*r, v)
	return nil
}

// singleFlag holds a flag that may be set at most once, implementing
// flag.Value so a repeated -o is a parse error instead of a silent
// last-value-wins overwrite.
type singleFlag struct {
	val string
	set bool
}

func (s *singleFlag) String() string { return s.val }

func (s *singleFlag) Set(v string) error {
	if s.set {
		return fmt.Errorf("flag set more than once (already %q)", s.val)
	}
	s.val = v
	s.set = true
	return nil
}

const (
	exitOK        = 0
	exitUsage     = 1
	exitFatalWork = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("streambench", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var dictPaths, streamPaths repeatedFlag
	var outFlag singleFlag
	var verbose bool
	fs.Var(&dictPaths, "d", "dictionary `file` to load (repeatable)")
	fs.Var(&streamPaths, "s", "stream `file` to benchmark against (repeatable)")
	fs.Var(&outFlag, "o", "output `file` for CSV results (required, may not repeat)")
	fs.BoolVar(&verbose, "v", false, "print progress and diagnostics to stderr")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if len(dictPaths) == 0 {
		fmt.Fprintln(stderr, "streambench: at least one -d dictionary file is required")
		return exitUsage
	}
	if len(streamPaths) == 0 {
		fmt.Fprintln(stderr, "streambench: at least one -s stream file is required")
		return exitUsage
	}
	if outFlag.val == "" {
		fmt.Fprintln(stderr, "streambench: -o output file is required")
		return exitUsage
	}
	outPath := outFlag.val

	vlog := func(format string, a ...any) {}
	if verbose {
		vlog = func(format string, a ...any) { fmt.Fprintf(stderr, format+"\n", a...) }
		feats := perfcounter.CPUFeatures()
		vlog("cpu features: avx2=%v ssse3=%v sse42=%v popcnt=%v",
			feats.AVX2, feats.SSSE3, feats.SSE42, feats.POPCNT)
	}

	var entries []patterns.Entry
	for i, path := range dictPaths {
		es, err := dictfile.Load(path, i, func(lineIndex int, reason string) {
			vlog("dictfile %s:%d dropped: %s", path, lineIndex, reason)
		})
		if err != nil {
			fmt.Fprintf(stderr, "streambench: loading dictionary %s: %v\n", path, err)
			return exitFatalWork
		}
		entries = append(entries, es...)
		vlog("loaded %d patterns from %s", len(es), path)
	}

	r, err := harness.New(entries, matcher.All(), vlog)
	if err != nil {
		fmt.Fprintf(stderr, "streambench: constructing harness: %v\n", err)
		return exitFatalWork
	}
	defer r.Free()

	var allReports []harness.StreamReport
	for _, path := range streamPaths {
		src, err := streamsrc.Open(path)
		if err != nil {
			fmt.Fprintf(stderr, "streambench: opening stream %s: %v\n", path, err)
			return exitFatalWork
		}
		reports, err := r.RunStream(path, src)
		src.Close()
		if err != nil {
			fmt.Fprintf(stderr, "streambench: running stream %s: %v\n", path, err)
			return exitFatalWork
		}
		allReports = append(allReports, reports...)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(stderr, "streambench: creating output file %s: %v\n", outPath, err)
		return exitFatalWork
	}
	defer out.Close()

	if err := resultio.WriteStreamReports(out, allReports); err != nil {
		fmt.Fprintf(stderr, "streambench: writing results: %v\n", err)
		return exitFatalWork
	}
	fmt.Fprintf(stdout, "wrote %d rows to %s\n", len(allReports), outPath)
	return exitOK
}
