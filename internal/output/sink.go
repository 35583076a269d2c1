package output

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"treepaths/internal/source"
)

// Sink receives the converted paths, one per line.
type Sink struct {
	name    string
	w       *bufio.Writer
	enc     *transform.Writer
	closer  io.Closer
	console bool
	count   int
}

// NewSink opens path for writing in the named encoding. An empty path
// writes to stdout.
func NewSink(path, encodingName string) (*Sink, error) {
	enc, err := source.LookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return newSink("stdout", os.Stdout, nil, enc, true), nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open output file %q: %w", path, err)
	}
	return newSink(path, f, f, enc, false), nil
}

// NewWriterSink writes UTF-8 to w, in console style (trailing newline).
func NewWriterSink(name string, w io.Writer) *Sink {
	return newSink(name, w, nil, encoding.Nop, true)
}

func newSink(name string, w io.Writer, closer io.Closer, enc encoding.Encoding, console bool) *Sink {
	tw := transform.NewWriter(w, enc.NewEncoder())
	return &Sink{
		name:    name,
		w:       bufio.NewWriter(tw),
		enc:     tw,
		closer:  closer,
		console: console,
	}
}

// Name is the file name, or "stdout".
func (s *Sink) Name() string {
	return s.name
}

// Count is the number of paths written so far.
func (s *Sink) Count() int {
	return s.count
}

// WritePath appends one path. Paths are newline separated; files get no
// trailing newline, the console does.
func (s *Sink) WritePath(path string) error {
	if s.count > 0 {
		if err := s.w.WriteByte('\n'); err != nil {
			return fmt.Errorf("write %s: %w", s.name, err)
		}
	}
	if _, err := s.w.WriteString(path); err != nil {
		return fmt.Errorf("write %s: %w", s.name, err)
	}
	s.count++
	return nil
}

// Write appends all paths.
func (s *Sink) Write(paths []string) error {
	for _, p := range paths {
		if err := s.WritePath(p); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes buffered output and closes the file. It must be called on
// every exit path; the first error wins.
func (s *Sink) Close() error {
	var err error
	if s.console && s.count > 0 {
		err = s.w.WriteByte('\n')
	}
	if ferr := s.w.Flush(); err == nil && ferr != nil {
		err = ferr
	}
	// Flushes the encoder; does not close the underlying writer.
	if eerr := s.enc.Close(); err == nil && eerr != nil {
		err = eerr
	}
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", s.name, err)
	}
	return nil
}
