// Package app wires a line source, the listing converter and an output sink
// into one conversion run.
package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/log"

	"treepaths/internal/config"
	"treepaths/internal/listing"
	"treepaths/internal/model"
	"treepaths/internal/output"
	"treepaths/internal/source"
)

// Runner carries the collaborators of a run.
type Runner struct {
	Logger   *log.Logger
	Stdout   io.Writer // Console output
	Progress bool      // Show a spinner on stderr while writing a file
}

// NewRunner returns a Runner writing to the process stdout.
func NewRunner(logger *log.Logger, progress bool) *Runner {
	return &Runner{Logger: logger, Stdout: os.Stdout, Progress: progress}
}

// Run reads the listing named by o, converts it with cfg and writes the
// paths to the console or to o.Output. Invalid configuration is rejected
// before the input is opened; the source and sink are closed on every path.
func (r *Runner) Run(o config.Options, cfg model.Config) (err error) {
	// 1) Reject bad configuration before touching any file.
	conv, err := listing.New(cfg)
	if err != nil {
		return err
	}

	// 2) Open the source.
	src, err := source.Open(o.Input, o.Encoding)
	if err != nil {
		return err
	}
	defer src.Close()

	// 3) Pick the sink. Dry-run always goes to the console; a tree on the
	// console replaces the flat list.
	console := o.DryRun || o.Output == ""
	var sink *output.Sink
	switch {
	case console && o.Tree:
	case console:
		sink = output.NewWriterSink("stdout", r.Stdout)
	default:
		sink, err = output.NewSink(o.Output, o.Encoding)
		if err != nil {
			return err
		}
	}
	defer func() {
		if sink == nil {
			return
		}
		if cerr := sink.Close(); err == nil {
			err = cerr
		}
	}()

	var progress *spinner.Spinner
	if r.Progress && !console && !o.Debug {
		progress = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		progress.Suffix = " Processing lines"
		progress.Start()
		defer progress.Stop()
	}

	// 4) Convert line by line.
	var paths []string
	for e, cerr := range conv.Entries(src.Lines()) {
		if cerr != nil {
			return fmt.Errorf("convert %s: %w", src.Name(), cerr)
		}
		r.trace(e)
		if sink != nil {
			if err := sink.WritePath(e.Path); err != nil {
				return err
			}
		}
		if o.Tree {
			paths = append(paths, e.Path)
		}
		if o.Debug && o.DebugDelay > 0 {
			time.Sleep(o.DebugDelay)
		}
	}
	if err := src.Err(); err != nil {
		return err
	}
	if progress != nil {
		progress.Stop()
	}
	if sink != nil {
		cerr := sink.Close()
		sink = nil
		if cerr != nil {
			return cerr
		}
	}

	// 5) Report.
	if o.Tree {
		fmt.Fprint(r.Stdout, output.RenderTree(paths, cfg))
	}
	if !console {
		r.Logger.Info("Output written", "file", o.Output)
	}
	return nil
}

func (r *Runner) trace(e model.Entry) {
	stop := model.IconNone
	if e.HasStop {
		stop = fmt.Sprintf("%q", e.Stop)
	}
	r.Logger.Debug("Line",
		"n", e.LineNumber,
		"text", e.Raw,
		"start", e.Boundary,
		"stop", stop,
		"name", e.Name,
		"level", e.Depth,
		"path", e.Path,
	)
}
