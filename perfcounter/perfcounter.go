// Package perfcounter samples per-run resource usage and reports the CPU
// features in effect, so a benchmark report can be read alongside the
// hardware and process conditions it was measured under.
package perfcounter

import "golang.org/x/sys/cpu"

// Features summarizes the CPU instruction-set extensions detected on the
// running machine. They are diagnostics only: no matching engine in this
// module reads them.
type Features struct {
	AVX2   bool
	SSE42  bool
	SSSE3  bool
	POPCNT bool
}

// CPUFeatures reports the CPU features of the machine running the
// benchmark, as detected at process start by golang.org/x/sys/cpu.
func CPUFeatures() Features {
	return Features{
		AVX2:   cpu.X86.HasAVX2,
		SSE42:  cpu.X86.HasSSE42,
		SSSE3:  cpu.X86.HasSSSE3,
		POPCNT: cpu.X86.HasPOPCNT,
	}
}

// Sample is a point-in-time resource usage reading for the current process.
type Sample struct {
	UserTimeNanos   int64
	SystemTimeNanos int64
	MaxRSSBytes     int64
	MinorPageFaults int64
	MajorPageFaults int64
}

// Delta returns the usage accrued between a baseline Sample and s.
func (s Sample) Delta(baseline Sample) Sample {
	return Sample{
		UserTimeNanos:   s.UserTimeNanos - baseline.UserTimeNanos,
		SystemTimeNanos: s.SystemTimeNanos - baseline.SystemTimeNanos,
		MaxRSSBytes:     s.MaxRSSBytes,
		MinorPageFaults: s.MinorPageFaults - baseline.MinorPageFaults,
		MajorPageFaults: s.MajorPageFaults - baseline.MajorPageFaults,
	}
}
