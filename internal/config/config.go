// Package config turns command-line flags and environment defaults into the
// run options and the immutable conversion config.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"treepaths/internal/listing"
	"treepaths/internal/model"
	"treepaths/internal/source"
)

// Environment variables that provide defaults for the matching flags.
const (
	EnvIgnore   = "TREEPATHS_IGNORE"
	EnvIndent   = "TREEPATHS_INDENT"
	EnvPrefix   = "TREEPATHS_PREFIX"
	EnvUnix     = "TREEPATHS_UNIX"
	EnvEncoding = "TREEPATHS_ENCODING"
)

// DefaultEnvFile is loaded when present; a missing file is not an error.
const DefaultEnvFile = ".env"

var (
	ErrNoInput  = errors.New("the following argument is required: -i/--input-file")
	ErrNoIgnore = errors.New("the following argument is required: -c/--character-ignore-list")
)

// Options holds everything one run needs.
type Options struct {
	Input       string
	Output      string
	IgnoreChars string // As given, possibly with escapes
	IndentWidth int
	Prefix      string
	Unix        bool
	Encoding    string
	DryRun      bool
	Debug       bool
	DebugDelay  time.Duration
	CharDetect  bool
	Tree        bool
	Strict      bool
	SkipEmpty   bool
	Web         bool
	Addr        string

	delay *float64
}

// Defaults returns the built-in defaults.
func Defaults() Options {
	return Options{
		Prefix:   model.DefaultConfig().Prefix,
		Encoding: source.DefaultEncoding,
		Addr:     "localhost:8080",
	}
}

// ApplyEnv fills options from the environment where the matching flag was
// not given on the command line. Flags always win.
func (o *Options) ApplyEnv(fs *pflag.FlagSet) error {
	lookup := func(env, flag string) (string, bool) {
		if fs != nil && fs.Changed(flag) {
			return "", false
		}
		return os.LookupEnv(env)
	}
	if v, ok := lookup(EnvIgnore, "character-ignore-list"); ok {
		o.IgnoreChars = v
	}
	if v, ok := lookup(EnvIndent, "indent-level"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvIndent, err)
		}
		o.IndentWidth = n
	}
	if v, ok := lookup(EnvPrefix, "path-prefix"); ok {
		o.Prefix = v
	}
	if v, ok := lookup(EnvUnix, "unix-separators"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvUnix, err)
		}
		o.Unix = b
	}
	if v, ok := lookup(EnvEncoding, "encoding"); ok && v != "" {
		o.Encoding = v
	}
	return nil
}

// LoadEnvFile loads variables from path without overriding ones already set.
// A missing default file is fine; a missing explicit file is not.
func LoadEnvFile(path string, explicit bool) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !explicit {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %q: %w", path, err)
	}
	return nil
}

// Register binds the conversion flags to o, using the current values of o
// as defaults.
func (o *Options) Register(fs *pflag.FlagSet) {
	var delay float64
	if o.DebugDelay > 0 {
		delay = o.DebugDelay.Seconds()
	}
	fs.StringVarP(&o.Input, "input-file", "i", o.Input, "Path to the listing to convert ('-' for stdin)")
	fs.StringVarP(&o.Output, "output-file", "o", o.Output, "Write the paths to this file instead of the console")
	fs.StringVarP(&o.IgnoreChars, "character-ignore-list", "c", o.IgnoreChars, `Leading characters to ignore (supports escapes like '\u00A0') [$`+EnvIgnore+`]`)
	fs.IntVarP(&o.IndentWidth, "indent-level", "l", o.IndentWidth, "Number of characters per indent level [$"+EnvIndent+"]")
	fs.StringVarP(&o.Prefix, "path-prefix", "p", o.Prefix, "Prefix prepended to every path [$"+EnvPrefix+"]")
	fs.BoolVarP(&o.Unix, "unix-separators", "u", o.Unix, `Use '/' instead of '\' [$`+EnvUnix+`]`)
	fs.StringVar(&o.Encoding, "encoding", o.Encoding, "Encoding of the input and output files [$"+EnvEncoding+"]")
	fs.BoolVar(&o.DryRun, "dry-run", o.DryRun, "Print the paths to the console even if an output file is given")
	fs.BoolVarP(&o.Debug, "debug", "d", o.Debug, "Trace every line")
	fs.Float64Var(&delay, "debug-delay", delay, "Seconds to pause after each line in debug mode")
	fs.BoolVar(&o.CharDetect, "char-detect", o.CharDetect, "Step through the listing to find characters to block")
	fs.BoolVarP(&o.Tree, "tree", "t", o.Tree, "Print the reconstructed paths as a tree")
	fs.BoolVar(&o.Strict, "strict", o.Strict, "Fail on depth jumps of more than one level and misaligned indents")
	fs.BoolVar(&o.SkipEmpty, "skip-empty", o.SkipEmpty, "Drop lines that contain only ignored characters")
	fs.BoolVarP(&o.Web, "web", "w", o.Web, "Serve the converter over HTTP")
	fs.StringVar(&o.Addr, "addr", o.Addr, "Listen address for --web")

	// The delay flag is float seconds; convert once parsing is done.
	o.delay = &delay
}

// Finish applies values that need conversion after the flags were parsed.
func (o *Options) Finish() {
	if o.delay != nil {
		o.DebugDelay = time.Duration(*o.delay * float64(time.Second))
	}
}

// Validate rejects configurations that cannot run, before anything is read.
func (o Options) Validate() error {
	if o.Web {
		return nil
	}
	if o.Input == "" {
		return ErrNoInput
	}
	if o.IgnoreChars == "" {
		return ErrNoIgnore
	}
	if o.IndentWidth <= 0 {
		return fmt.Errorf("-l/--indent-level %d: %w", o.IndentWidth, listing.ErrInvalidIndent)
	}
	if o.DebugDelay < 0 {
		return fmt.Errorf("--debug-delay must not be negative")
	}
	if _, err := source.LookupEncoding(o.Encoding); err != nil {
		return err
	}
	return nil
}

// Separator returns the configured path separator.
func (o Options) Separator() model.Separator {
	if o.Unix {
		return model.SeparatorUnix
	}
	return model.SeparatorWindows
}

// Core builds the conversion config. A malformed escape in the ignore list is
// not fatal: the list is used verbatim and a warning is logged.
func (o Options) Core(logger *log.Logger) (model.Config, error) {
	if o.IndentWidth <= 0 {
		return model.Config{}, fmt.Errorf("-l/--indent-level %d: %w", o.IndentWidth, listing.ErrInvalidIndent)
	}
	ignore, err := listing.Unescape(o.IgnoreChars)
	if err != nil {
		logger.Warn("Using ignore list verbatim", "err", err)
		ignore = o.IgnoreChars
	}
	return model.Config{
		IgnoreChars:    ignore,
		IndentWidth:    o.IndentWidth,
		Prefix:         o.Prefix,
		Separator:      o.Separator(),
		Strict:         o.Strict,
		SkipEmptyNames: o.SkipEmpty,
	}, nil
}
