package listing

import (
	"strings"

	"treepaths/internal/model"
)

// PathStack holds the ancestor segments of the entry being processed.
// segments[0] is the prefix and segments[i] is the name at depth i-1.
type PathStack struct {
	prefix    string
	separator model.Separator
	segments  []string
}

// NewPathStack returns a stack holding only the prefix.
func NewPathStack(prefix string, separator model.Separator) *PathStack {
	return &PathStack{
		prefix:    prefix,
		separator: separator,
		segments:  []string{prefix},
	}
}

// Depth is the depth of the most recently pushed entry, -1 if there is none.
func (s *PathStack) Depth() int {
	return len(s.segments) - 2
}

// Advance places name at depth and returns the resulting full path.
func (s *PathStack) Advance(depth int, name string) string {
	// Unwind back to the target level. This may span several levels at once.
	for depth < s.Depth() {
		s.pop()
	}
	// Same level: replace the previous sibling. At the root this never
	// touches the prefix since Depth() is -1 there.
	if depth == s.Depth() && len(s.segments) > 1 {
		s.pop()
	}
	// Forward jumps are not validated. Missing levels become empty segments.
	for depth > s.Depth()+1 {
		s.segments = append(s.segments, "")
	}
	s.segments = append(s.segments, name)
	return s.String()
}

func (s *PathStack) pop() {
	if len(s.segments) > 1 {
		s.segments = s.segments[:len(s.segments)-1]
	}
}

// Segments returns a copy of the current stack.
func (s *PathStack) Segments() []string {
	return append([]string(nil), s.segments...)
}

// Reset drops everything but the prefix.
func (s *PathStack) Reset() {
	s.segments = s.segments[:1]
}

func (s *PathStack) String() string {
	return strings.Join(s.segments, string(s.separator))
}
