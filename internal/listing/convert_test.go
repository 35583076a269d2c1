package listing

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treepaths/internal/model"
)

func scenarioConfig() model.Config {
	return model.Config{
		IgnoreChars: " ",
		IndentWidth: 2,
		Prefix:      "C:",
		Separator:   model.SeparatorWindows,
	}
}

func TestConvertNestedSiblings(t *testing.T) {
	got, err := Convert(scenarioConfig(), []string{"root", "  child", "    grandchild", "  sibling"})
	require.NoError(t, err)
	assert.Equal(t, []string{`C:\root`, `C:\root\child`, `C:\root\child\grandchild`, `C:\root\sibling`}, got)
}

func TestConvertForwardJumpIsPermissive(t *testing.T) {
	got, err := Convert(scenarioConfig(), []string{"a", "    deep"})
	require.NoError(t, err)
	assert.Equal(t, []string{`C:\a`, `C:\a\\deep`}, got)
}

func TestConvertStripsBlocklistFromNames(t *testing.T) {
	cfg := scenarioConfig().WithBlocklist([]rune{':'})
	got, err := Convert(cfg, []string{"dir", "  file:v2"})
	require.NoError(t, err)
	assert.Equal(t, []string{`C:\dir`, `C:\dir\filev2`}, got)
}

func TestConvertBlocklistExtendsIgnoreSet(t *testing.T) {
	cfg := model.Config{IgnoreChars: " ", IndentWidth: 4, Prefix: "", Separator: model.SeparatorUnix}
	lines := []string{"src", "│   main.go", "│   lib", "│   │   util.go", "docs"}

	// Without the blocklist the box-drawing glyph stops the scan at column 0.
	got, err := Convert(cfg, lines)
	require.NoError(t, err)
	assert.Equal(t, "/│   main.go", got[1])

	got, err = Convert(cfg.WithBlocklist([]rune{'│'}), lines)
	require.NoError(t, err)
	assert.Equal(t, []string{"/src", "/src/main.go", "/src/lib", "/src/lib/util.go", "/docs"}, got)
}

func TestConvertBlankInput(t *testing.T) {
	got, err := Convert(scenarioConfig(), []string{"", "   ", "\t", ""})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Convert(scenarioConfig(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestConvertRejectsInvalidIndent(t *testing.T) {
	cfg := scenarioConfig()
	cfg.IndentWidth = 0
	_, err := New(cfg)
	assert.ErrorIs(t, err, ErrInvalidIndent)

	cfg.IndentWidth = -4
	got, err := Convert(cfg, []string{"a"})
	assert.ErrorIs(t, err, ErrInvalidIndent)
	assert.Nil(t, got)
}

func TestConvertRejectsUnknownSeparator(t *testing.T) {
	cfg := scenarioConfig()
	cfg.Separator = ":"
	_, err := New(cfg)
	assert.ErrorIs(t, err, ErrInvalidSeparator)
}

func TestConvertBlankLinesDoNotTouchStack(t *testing.T) {
	got, err := Convert(scenarioConfig(), []string{"a", "", "  b", "    ", "  c"})
	require.NoError(t, err)
	assert.Equal(t, []string{`C:\a`, `C:\a\b`, `C:\a\c`}, got)
}

func TestConvertAllIgnoredLinePassesThrough(t *testing.T) {
	cfg := model.Config{IgnoreChars: " │", IndentWidth: 2, Prefix: "C:", Separator: model.SeparatorWindows}
	got, err := Convert(cfg, []string{"a", "  b", "│ │"})
	require.NoError(t, err)
	// Three ignored runes give depth 1 and an empty name.
	assert.Equal(t, []string{`C:\a`, `C:\a\b`, `C:\a\`}, got)
}

func TestConvertSkipEmptyNames(t *testing.T) {
	cfg := model.Config{IgnoreChars: " │", IndentWidth: 2, Prefix: "C:", Separator: model.SeparatorWindows, SkipEmptyNames: true}
	got, err := Convert(cfg, []string{"a", "  b", "│ │", "    c"})
	require.NoError(t, err)
	assert.Equal(t, []string{`C:\a`, `C:\a\b`, `C:\a\b\c`}, got)
}

func TestConvertTruncatesMisalignedIndent(t *testing.T) {
	got, err := Convert(scenarioConfig(), []string{"a", "   b"})
	require.NoError(t, err)
	assert.Equal(t, []string{`C:\a`, `C:\a\b`}, got)
}

func TestConvertStrict(t *testing.T) {
	cfg := scenarioConfig()
	cfg.Strict = true

	got, err := Convert(cfg, []string{"a", "  b", "    c", "d"})
	require.NoError(t, err)
	assert.Equal(t, []string{`C:\a`, `C:\a\b`, `C:\a\b\c`, `C:\d`}, got)

	got, err = Convert(cfg, []string{"a", "    deep"})
	assert.ErrorIs(t, err, ErrDepthJump)
	var lineErr *LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 2, lineErr.Line)
	assert.Equal(t, []string{`C:\a`}, got)

	_, err = Convert(cfg, []string{"a", "   b"})
	assert.ErrorIs(t, err, ErrMisaligned)

	_, err = Convert(cfg, []string{"  a"})
	assert.ErrorIs(t, err, ErrDepthJump)
}

func TestConvertIsIdempotent(t *testing.T) {
	c, err := New(scenarioConfig())
	require.NoError(t, err)
	lines := []string{"root", "  child", "    grandchild", "  sibling", "other"}

	first, err := c.Paths(slices.Values(lines))
	require.NoError(t, err)
	second, err := c.Paths(slices.Values(lines))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEntriesDescribeEachLine(t *testing.T) {
	cfg := model.Config{IgnoreChars: " ", IndentWidth: 4, Prefix: "", Separator: model.SeparatorUnix}
	c, err := New(cfg)
	require.NoError(t, err)

	var entries []model.Entry
	for e, err := range c.Entries(slices.Values([]string{"top", "", "    leaf.txt"})) {
		require.NoError(t, err)
		entries = append(entries, e)
	}
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].LineNumber)
	assert.Equal(t, 0, entries[0].Depth)
	assert.Equal(t, 't', entries[0].Stop)

	leaf := entries[1]
	assert.Equal(t, 3, leaf.LineNumber)
	assert.Equal(t, 4, leaf.Boundary)
	assert.Equal(t, 1, leaf.Depth)
	assert.True(t, leaf.HasStop)
	assert.Equal(t, 'l', leaf.Stop)
	assert.Equal(t, "leaf.txt", leaf.Name)
	assert.Equal(t, "/top/leaf.txt", leaf.Path)
}

func TestEntriesStopsWhenConsumerStops(t *testing.T) {
	c, err := New(scenarioConfig())
	require.NoError(t, err)
	count := 0
	for range c.Entries(slices.Values([]string{"a", "b", "c"})) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestConverterName(t *testing.T) {
	c, err := New(scenarioConfig().WithBlocklist([]rune{'*', ':'}))
	require.NoError(t, err)
	assert.Equal(t, "abc", c.Name("  *a:b*c  ", 2))
	assert.Equal(t, "", c.Name("  ", 2))
	assert.Equal(t, "", c.Name("  ", 7))
}
