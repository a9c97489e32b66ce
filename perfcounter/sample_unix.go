//go:build unix

package perfcounter

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// Now samples the calling process's resource usage via getrusage(2).
func Now() (Sample, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return Sample{}, err
	}
	return Sample{
		UserTimeNanos:   ru.Utime.Nano(),
		SystemTimeNanos: ru.Stime.Nano(),
		MaxRSSBytes:     maxRSSBytes(ru.Maxrss),
		MinorPageFaults: int64(ru.Minflt),
		MajorPageFaults: int64(ru.Majflt),
	}, nil
}

// maxRSSBytes normalizes ru_maxrss, which getrusage reports in KB on Linux
// but in bytes on Darwin.
func maxRSSBytes(maxrss int64) int64 {
	if runtime.GOOS == "darwin" {
		return maxrss
	}
	return maxrss * 1024
}
