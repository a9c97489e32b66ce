//go:build !unix

package perfcounter

import "runtime"

// Now samples the calling process's memory usage on platforms without
// getrusage; user/system CPU time split and page faults are unavailable
// there, so only MaxRSSBytes is populated.
func Now() (Sample, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return Sample{MaxRSSBytes: int64(m.Sys)}, nil
}
