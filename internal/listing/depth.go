package listing

// Depth converts a boundary index into a hierarchy level.
//
// The division truncates: a boundary that is not an exact multiple of
// indentWidth lands on the lower level. Irregular real-world listings depend
// on this, so it is left as is; strict mode reports misalignment instead
// (see Aligned).
func Depth(boundary, indentWidth int) (int, error) {
	if indentWidth <= 0 {
		return 0, ErrInvalidIndent
	}
	return boundary / indentWidth, nil
}

// Aligned reports whether boundary is an exact multiple of indentWidth.
func Aligned(boundary, indentWidth int) bool {
	return indentWidth > 0 && boundary%indentWidth == 0
}
