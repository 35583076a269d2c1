package listing

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Unescape decodes backslash escapes such as \u00A0, \x09, \t or \\ in s so
// that non-printable characters can be given on the command line.
// A malformed sequence yields an error; callers fall back to s verbatim.
func Unescape(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	var b strings.Builder
	rest := s
	for len(rest) > 0 {
		if rest[0] != '\\' {
			r, size := utf8.DecodeRuneInString(rest)
			b.WriteRune(r)
			rest = rest[size:]
			continue
		}
		// Quote characters never need escaping here, but UnquoteChar
		// rejects \' and \" unless told which quote is in use.
		if len(rest) > 1 && (rest[1] == '\'' || rest[1] == '"') {
			b.WriteByte(rest[1])
			rest = rest[2:]
			continue
		}
		value, _, tail, err := strconv.UnquoteChar(rest, 0)
		if err != nil {
			return s, fmt.Errorf("decode escape at offset %d of %q: %w", len(s)-len(rest), s, err)
		}
		b.WriteRune(value)
		rest = tail
	}
	return b.String(), nil
}

