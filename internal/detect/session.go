// Package detect implements character detection: stepping through a
// listing line by line to find which leading characters should be ignored.
//
// A Session is a plain state machine over a cursor and a blocklist. The
// console drives it with discrete commands; conversion with the final
// blocklist goes through the regular listing converter.
package detect

import (
	"errors"
	"slices"
	"strings"

	"treepaths/internal/listing"
	"treepaths/internal/model"
)

var (
	ErrAtStart    = errors.New("already at the first line")
	ErrAtEnd      = errors.New("no more lines")
	ErrNoStop     = errors.New("no non-ignored character on this line")
	ErrNotBlocked = errors.New("character is not in the blocklist")
)

// Probe is what the session currently sees on the line under the cursor.
type Probe struct {
	LineNumber int    // 1-based, in the full listing
	Text       string // The raw line
	Ignore     string // Base ignore characters followed by the blocklist
	Boundary   int
	Stop       rune
	HasStop    bool
}

// Session holds the cursor and blocklist of one detection run.
type Session struct {
	base      model.Config
	lines     []string // Full listing, for context
	index     []int    // Positions of non-blank lines in lines
	pos       int
	blocklist []rune
}

// NewSession starts at the first non-blank line with an empty blocklist.
func NewSession(base model.Config, lines []string) *Session {
	s := &Session{base: base, lines: lines}
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			s.index = append(s.index, i)
		}
	}
	return s
}

// Len is the number of non-blank lines.
func (s *Session) Len() int {
	return len(s.index)
}

// Position is the cursor over non-blank lines, 0-based.
func (s *Session) Position() int {
	return s.pos
}

// Done reports whether the cursor has moved past the last line.
func (s *Session) Done() bool {
	return s.pos >= len(s.index)
}

// Lines returns the full listing.
func (s *Session) Lines() []string {
	return s.lines
}

// Current inspects the line under the cursor with the current blocklist.
func (s *Session) Current() (Probe, bool) {
	if s.Done() {
		return Probe{}, false
	}
	i := s.index[s.pos]
	line := s.lines[i]
	ignore := listing.NewCharSet(s.base.IgnoreChars, s.blocklist...)
	p := Probe{
		LineNumber: i + 1,
		Text:       line,
		Ignore:     s.base.IgnoreChars + string(s.blocklist),
		Boundary:   listing.Scan(line, ignore),
	}
	p.Stop, p.HasStop = listing.StopRune(line, ignore)
	return p, true
}

// Step moves to the next line.
func (s *Session) Step() error {
	if s.Done() {
		return ErrAtEnd
	}
	s.pos++
	return nil
}

// Back moves to the previous line.
func (s *Session) Back() error {
	if s.pos == 0 {
		return ErrAtStart
	}
	s.pos--
	return nil
}

// Block adds the current stop character to the blocklist and returns it.
// A blocked character is ignored from then on, so it can never be the stop
// character again.
func (s *Session) Block() (rune, error) {
	p, ok := s.Current()
	if !ok {
		return 0, ErrAtEnd
	}
	if !p.HasStop {
		return 0, ErrNoStop
	}
	s.blocklist = append(s.blocklist, p.Stop)
	return p.Stop, nil
}

// Unblock removes r from the blocklist.
func (s *Session) Unblock(r rune) error {
	i := slices.Index(s.blocklist, r)
	if i < 0 {
		return ErrNotBlocked
	}
	s.blocklist = slices.Delete(s.blocklist, i, i+1)
	return nil
}

// Blocklist returns a copy of the blocked characters in blocking order.
func (s *Session) Blocklist() []rune {
	return slices.Clone(s.blocklist)
}

// Config is the base configuration with the current blocklist applied.
func (s *Session) Config() model.Config {
	return s.base.WithBlocklist(s.blocklist)
}

// Preview converts the whole listing with the current blocklist.
func (s *Session) Preview() ([]model.Entry, error) {
	c, err := listing.New(s.Config())
	if err != nil {
		return nil, err
	}
	var entries []model.Entry
	for e, err := range c.Entries(slices.Values(s.lines)) {
		if err != nil {
			return entries, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
