package model

import "fmt"

// ContextLine is one numbered line shown around the line under inspection.
type ContextLine struct {
	Number int // 1-based
	Text   string
}

// LineContext is a line of a listing together with its neighbours.
type LineContext struct {
	Before []ContextLine
	Target ContextLine
	After  []ContextLine
}

// GetLineContext returns line lineNumber (1-based) with up to radius lines on
// either side.
func GetLineContext(lines []string, lineNumber, radius int) (LineContext, error) {
	if lineNumber < 1 || lineNumber > len(lines) {
		return LineContext{}, fmt.Errorf("line %d out of range (listing has %d lines)", lineNumber, len(lines))
	}

	window := func(from, to int) []ContextLine {
		from = max(from, 1)
		to = min(to, len(lines))
		var out []ContextLine
		for n := from; n <= to; n++ {
			out = append(out, ContextLine{Number: n, Text: lines[n-1]})
		}
		return out
	}

	return LineContext{
		Before: window(lineNumber-radius, lineNumber-1),
		Target: ContextLine{Number: lineNumber, Text: lines[lineNumber-1]},
		After:  window(lineNumber+1, lineNumber+radius),
	}, nil
}
