package listing

import (
	"iter"
	"slices"
	"strings"

	"treepaths/internal/model"
)

// Converter turns listing lines into full paths.
type Converter struct {
	cfg    model.Config
	ignore CharSet
	block  CharSet
}

// New validates cfg and returns a Converter for it. Invalid configuration is
// rejected here, before any line is read.
func New(cfg model.Config) (*Converter, error) {
	if cfg.IndentWidth <= 0 {
		return nil, ErrInvalidIndent
	}
	if !cfg.Separator.Valid() {
		return nil, ErrInvalidSeparator
	}
	return &Converter{
		cfg:    cfg,
		ignore: NewCharSet(cfg.IgnoreChars, cfg.Blocklist...),
		block:  NewCharSet("", cfg.Blocklist...),
	}, nil
}

// Config returns the configuration the converter was built with.
func (c *Converter) Config() model.Config {
	return c.cfg
}

// Entries converts lines lazily, one entry per non-blank line, in input order.
// Every call starts from a fresh path stack, so the same lines always produce
// the same entries. Iteration stops after the first error.
func (c *Converter) Entries(lines iter.Seq[string]) iter.Seq2[model.Entry, error] {
	return func(yield func(model.Entry, error) bool) {
		stack := NewPathStack(c.cfg.Prefix, c.cfg.Separator)
		n := 0
		for line := range lines {
			n++
			if strings.TrimSpace(line) == "" {
				continue
			}
			e, skip, err := c.advance(stack, n, line)
			if err != nil {
				yield(model.Entry{LineNumber: n, Raw: line}, err)
				return
			}
			if skip {
				continue
			}
			if !yield(e, nil) {
				return
			}
		}
	}
}

func (c *Converter) advance(stack *PathStack, n int, line string) (model.Entry, bool, error) {
	boundary := Scan(line, c.ignore)
	depth, err := Depth(boundary, c.cfg.IndentWidth)
	if err != nil {
		return model.Entry{}, false, err
	}

	e := model.Entry{
		LineNumber: n,
		Raw:        line,
		Boundary:   boundary,
		Depth:      depth,
		Name:       c.Name(line, boundary),
	}
	e.Stop, e.HasStop = StopRune(line, c.ignore)

	if c.cfg.SkipEmptyNames && e.Name == "" {
		return e, true, nil
	}
	if c.cfg.Strict {
		if !Aligned(boundary, c.cfg.IndentWidth) {
			return e, false, &LineError{Line: n, Text: line, Err: ErrMisaligned}
		}
		if depth > stack.Depth()+1 {
			return e, false, &LineError{Line: n, Text: line, Err: ErrDepthJump}
		}
	}

	e.Path = stack.Advance(depth, e.Name)
	return e, false, nil
}

// Name extracts the entry name of line given its boundary index: the rest of
// the line, trimmed, with blocklisted runes removed wherever they occur.
func (c *Converter) Name(line string, boundary int) string {
	runes := []rune(line)
	if boundary >= len(runes) {
		return ""
	}
	name := strings.TrimSpace(string(runes[boundary:]))
	if len(c.block) == 0 {
		return name
	}
	return strings.Map(func(r rune) rune {
		if c.block.Has(r) {
			return -1
		}
		return r
	}, name)
}

// Paths converts all lines and returns only the resulting paths.
func (c *Converter) Paths(lines iter.Seq[string]) ([]string, error) {
	var paths []string
	for e, err := range c.Entries(lines) {
		if err != nil {
			return paths, err
		}
		paths = append(paths, e.Path)
	}
	return paths, nil
}

// Convert is the one-call form of New followed by Paths.
func Convert(cfg model.Config, lines []string) ([]string, error) {
	c, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return c.Paths(slices.Values(lines))
}
