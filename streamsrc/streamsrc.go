// Package streamsrc reads byte streams in fixed-size chunks so the harness
// never has to hold a whole stream file in memory, regardless of its size.
package streamsrc

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// ChunkSize is the fixed read size the harness feeds matchers with: 100
// KiB, per the external interface contract.
const ChunkSize = 100 * 1024

// Source reads one byte stream in ChunkSize chunks, buffering only the
// current chunk rather than the whole stream.
type Source struct {
	r     *bufio.Reader
	closer io.Closer
	buf   [ChunkSize]byte
}

// Open returns a Source reading path. Call Close when done.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("streamsrc: open %s: %w", path, err)
	}
	return &Source{r: bufio.NewReaderSize(f, ChunkSize), closer: f}, nil
}

// NewFrom wraps an already-open reader (e.g. a test fixture); Close on the
// returned Source is then a no-op for the underlying reader.
func NewFrom(r io.Reader) *Source {
	return &Source{r: bufio.NewReaderSize(r, ChunkSize)}
}

// Close releases the underlying file, if Source owns one.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Each reads the whole stream in ChunkSize chunks, calling feed once per
// byte, in order. It never holds more than one chunk in memory.
func (s *Source) Each(feed func(c byte)) error {
	for {
		n, err := s.r.Read(s.buf[:])
		for i := 0; i < n; i++ {
			feed(s.buf[i])
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("streamsrc: read: %w", err)
		}
		if n == 0 {
			return nil
		}
	}
}
