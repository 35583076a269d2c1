package model

// Separator joins path segments in the output.
type Separator string

const (
	SeparatorWindows Separator = `\`
	SeparatorUnix    Separator = "/"
)

// Valid reports whether s is one of the two supported separators.
func (s Separator) Valid() bool {
	return s == SeparatorWindows || s == SeparatorUnix
}

// Config is the immutable configuration of one conversion run.
type Config struct {
	IgnoreChars    string    // Characters treated as indentation filler (already unescaped)
	IndentWidth    int       // Characters per hierarchy level, must be positive
	Prefix         string    // First path segment, e.g. "C:"
	Separator      Separator // Joins the path segments
	Blocklist      []rune    // Extra ignorable runes, also stripped from names
	Strict         bool      // Reject forward jumps > 1 level and misaligned indents
	SkipEmptyNames bool      // Drop lines that consist only of ignored characters
}

// DefaultConfig returns the configuration used when nothing else is given.
func DefaultConfig() Config {
	return Config{
		IgnoreChars: " ",
		IndentWidth: 4,
		Prefix:      "C:",
		Separator:   SeparatorWindows,
	}
}

// WithBlocklist returns a copy of c with the blocklist replaced.
func (c Config) WithBlocklist(blocklist []rune) Config {
	c.Blocklist = append([]rune(nil), blocklist...)
	return c
}

// Entry describes how one listing line was turned into a path.
type Entry struct {
	LineNumber int    `json:"line"`     // 1-based line number in the input
	Raw        string `json:"raw"`      // The line as read
	Boundary   int    `json:"boundary"` // Rune index where the name starts
	Stop       rune   `json:"-"`        // First non-ignored rune, valid if HasStop
	HasStop    bool   `json:"-"`
	Depth      int    `json:"depth"`
	Name       string `json:"name"`
	Path       string `json:"path"`
}
