package source

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"

	"golang.org/x/text/transform"
)

// Stdin is the input path that selects standard input.
const Stdin = "-"

// Source yields the decoded lines of a listing.
type Source struct {
	name    string
	closer  io.Closer
	scanner *bufio.Scanner
	lineNo  int
	err     error
}

// Open opens path ("-" for stdin) and decodes it with the named encoding.
// A missing or unreadable input is reported here, before any line is read.
func Open(path, encodingName string) (*Source, error) {
	enc, err := LookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}

	var r io.Reader
	var closer io.Closer
	if path == Stdin {
		r = os.Stdin
	} else {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("input file %q: %w", path, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("input file %q is a directory", path)
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file %q: %w", path, err)
		}
		r = f
		closer = f
	}
	return NewSource(path, transform.NewReader(r, enc.NewDecoder()), closer), nil
}

// NewSource wraps an already decoded reader. closer may be nil.
func NewSource(name string, r io.Reader, closer io.Closer) *Source {
	scanner := bufio.NewScanner(r)
	// Large buffer for listings with very long names
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)
	return &Source{name: name, closer: closer, scanner: scanner}
}

// Name is the path the source was opened from.
func (s *Source) Name() string {
	return s.name
}

// Lines yields each line without its terminator. It can be ranged over once;
// check Err afterwards.
func (s *Source) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		for s.scanner.Scan() {
			s.lineNo++
			if !yield(s.scanner.Text()) {
				return
			}
		}
		if err := s.scanner.Err(); err != nil {
			s.err = fmt.Errorf("read %s after line %d: %w", s.name, s.lineNo, err)
		}
	}
}

// Err returns the first read error, if any.
func (s *Source) Err() error {
	return s.err
}

// Close releases the underlying file. Closing stdin is a no-op.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// ReadAll opens path and returns all of its lines.
func ReadAll(path, encodingName string) ([]string, error) {
	src, err := Open(path, encodingName)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var lines []string
	for line := range src.Lines() {
		lines = append(lines, line)
	}
	return lines, src.Err()
}
