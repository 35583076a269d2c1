package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"treepaths/internal/model"
)

func TestPathStackRootLevelKeepsPrefix(t *testing.T) {
	s := NewPathStack("C:", model.SeparatorWindows)
	assert.Equal(t, -1, s.Depth())

	assert.Equal(t, `C:\a`, s.Advance(0, "a"))
	assert.Equal(t, []string{"C:", "a"}, s.Segments())

	// A root-level sibling replaces "a", never the prefix.
	assert.Equal(t, `C:\b`, s.Advance(0, "b"))
	assert.Equal(t, []string{"C:", "b"}, s.Segments())
}

func TestPathStackMultiLevelUnwind(t *testing.T) {
	s := NewPathStack("", model.SeparatorUnix)
	for depth, name := range []string{"a", "b", "c", "d", "e", "f"} {
		s.Advance(depth, name)
	}
	assert.Equal(t, 5, s.Depth())

	assert.Equal(t, "/a/x", s.Advance(1, "x"))
	assert.Equal(t, 1, s.Depth())
}

func TestPathStackForwardJumpPadsMissingLevels(t *testing.T) {
	s := NewPathStack("C:", model.SeparatorWindows)
	s.Advance(0, "a")
	assert.Equal(t, `C:\a\\deep`, s.Advance(2, "deep"))
	assert.Equal(t, []string{"C:", "a", "", "deep"}, s.Segments())
	assert.Equal(t, 2, s.Depth())
}

func TestPathStackNeverRetainsDeeperSegments(t *testing.T) {
	depths := []int{0, 1, 2, 5, 1, 3, 0, 0, 4, 2}
	s := NewPathStack("p", model.SeparatorUnix)
	for k, d := range depths {
		s.Advance(d, "n")
		assert.Equal(t, d, s.Depth(), "step %d", k)
		assert.Len(t, s.Segments(), d+2, "step %d", k)
		assert.Equal(t, "p", s.Segments()[0], "step %d", k)
	}
}

func TestPathStackReset(t *testing.T) {
	s := NewPathStack("C:", model.SeparatorWindows)
	s.Advance(0, "a")
	s.Advance(1, "b")
	s.Reset()
	assert.Equal(t, []string{"C:"}, s.Segments())
	assert.Equal(t, "C:", s.String())
}
