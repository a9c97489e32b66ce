// Package dictfile decodes dictionary files into pattern entries. A
// dictionary file is one pattern per line: bytes outside |...| blocks are
// literal, and a |...| block holds whitespace-separated pairs of hex
// nibbles, each decoding to one byte — so a pattern can embed arbitrary
// bytes, including zero, without the file itself needing to be binary.
package dictfile

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/coregx/streammatch/patterns"
)

const maxLineSize = 1 << 20 // 1 MiB; dictionary lines are patterns, not whole files

// Load reads path as a dictionary file tagged with fileIndex, returning one
// Entry per accepted line. A malformed escape sequence drops that line
// (reported via onDropped, which may be nil) rather than failing the
// whole load — only I/O failure on the file itself is fatal.
func Load(path string, fileIndex int, onDropped func(lineIndex int, reason string)) ([]patterns.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dictfile: open %s: %w", path, err)
	}
	defer f.Close()
	return LoadFrom(f, fileIndex, onDropped)
}

// LoadFrom decodes dictionary lines from r, for callers that already have
// an open reader (e.g. a test fixture).
func LoadFrom(r io.Reader, fileIndex int, onDropped func(lineIndex int, reason string)) ([]patterns.Entry, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var entries []patterns.Entry
	lineIndex := 0
	for sc.Scan() {
		lineIndex++
		decoded, ok := decodeLine(sc.Bytes())
		if !ok {
			if onDropped != nil {
				onDropped(lineIndex, "malformed escape sequence")
			}
			continue
		}
		if len(decoded) == 0 {
			if onDropped != nil {
				onDropped(lineIndex, "empty pattern")
			}
			continue
		}
		entries = append(entries, patterns.Entry{
			FileIndex: fileIndex,
			LineIndex: lineIndex,
			Pattern:   decoded,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("dictfile: reading: %w", err)
	}
	return entries, nil
}

// decodeLine applies the |..| hex-escape decoding described in the package
// doc. It reports ok=false for an unterminated escape block or a malformed
// hex pair, per the "dropped with length zero" rule.
func decodeLine(line []byte) (out []byte, ok bool) {
	inEscape := false
	for i := 0; i < len(line); {
		c := line[i]
		if c == '|' {
			inEscape = !inEscape
			i++
			continue
		}
		if !inEscape {
			out = append(out, c)
			i++
			continue
		}
		if c == ' ' || c == '\t' {
			i++
			continue
		}
		if i+1 >= len(line) {
			return nil, false
		}
		hi, okHi := hexNibble(line[i])
		lo, okLo := hexNibble(line[i+1])
		if !okHi || !okLo {
			return nil, false
		}
		out = append(out, hi<<4|lo)
		i += 2
	}
	if inEscape {
		return nil, false
	}
	return out, true
}

func hexNibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
