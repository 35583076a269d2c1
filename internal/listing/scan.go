package listing

// CharSet is an unordered set of runes treated as indentation filler.
type CharSet map[rune]struct{}

// NewCharSet builds a set from the runes of chars plus any extra runes.
func NewCharSet(chars string, extra ...rune) CharSet {
	set := make(CharSet, len(chars)+len(extra))
	for _, r := range chars {
		set[r] = struct{}{}
	}
	for _, r := range extra {
		set[r] = struct{}{}
	}
	return set
}

// Has reports whether r is in the set.
func (s CharSet) Has(r rune) bool {
	_, ok := s[r]
	return ok
}

// Scan returns the rune index of the first rune in line that is not in
// ignore. If every rune is ignored it returns the rune count of the line,
// meaning there is no stop character.
//
// Indices count runes, not bytes: a box-drawing glyph occupies one column.
func Scan(line string, ignore CharSet) int {
	i := 0
	for _, r := range line {
		if !ignore.Has(r) {
			return i
		}
		i++
	}
	return i
}

// StopRune returns the first rune in line that is not in ignore.
func StopRune(line string, ignore CharSet) (rune, bool) {
	for _, r := range line {
		if !ignore.Has(r) {
			return r, true
		}
	}
	return 0, false
}
