package main

import (
	"fmt"
	"os"
	"strings"

	"treepaths/internal/app"
	"treepaths/internal/config"
	"treepaths/internal/detect"
	"treepaths/internal/model"
	"treepaths/internal/source"
	"treepaths/internal/tui"
	"treepaths/internal/web"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
	"golang.org/x/term"
)

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "abulka",
		Repository: "treepaths",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Println("👉 Download it from https://github.com/abulka/treepaths/releases")
	} else {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
	})

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: treepaths -i FILE -c CHARS -l N [options]\n\n")
		fmt.Fprintf(os.Stderr, "treepaths turns an indented directory listing into one full path per entry.\n")
		fmt.Fprintf(os.Stderr, "Depth is the number of leading ignored characters divided by the indent level.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  treepaths                                   # Interactive setup\n")
		fmt.Fprintf(os.Stderr, "  treepaths -i tree.txt -c ' ' -l 4           # Print paths to the console\n")
		fmt.Fprintf(os.Stderr, "  treepaths -i tree.txt -c '\\u2502 ' -l 4 -u -o paths.txt\n")
		fmt.Fprintf(os.Stderr, "  treepaths -i tree.txt -c ' ' -l 4 --char-detect  # Find characters to block\n")
		fmt.Fprintf(os.Stderr, "  treepaths --web                             # Convert in the browser\n")
	}

	opts := config.Defaults()
	opts.Register(pflag.CommandLine)
	envFile := pflag.String("env-file", config.DefaultEnvFile, "Load default settings from this file")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.Bool("update", false, "Check for the latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")

	// No arguments on a terminal: ask for everything.
	if len(os.Args) == 1 {
		if !isInteractive() {
			pflag.Usage()
			os.Exit(2)
		}
		if err := config.LoadEnvFile(config.DefaultEnvFile, false); err != nil {
			fatal(logger, err)
		}
		if err := opts.ApplyEnv(nil); err != nil {
			fatal(logger, err)
		}
		runSetupWizard(opts, logger)
		return
	}

	pflag.Parse()
	opts.Finish()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("treepaths version %s\n", model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	if err := config.LoadEnvFile(*envFile, pflag.Lookup("env-file").Changed); err != nil {
		fatal(logger, err)
	}
	if err := opts.ApplyEnv(pflag.CommandLine); err != nil {
		fatal(logger, err)
	}

	run(opts, logger)
}

func run(opts config.Options, logger *log.Logger) {
	if opts.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	if err := opts.Validate(); err != nil {
		fatal(logger, err)
	}

	if opts.Web {
		if err := web.StartServer(opts.Addr, logger); err != nil {
			fatal(logger, err)
		}
		return
	}

	cfg, err := opts.Core(logger)
	if err != nil {
		fatal(logger, err)
	}

	if opts.CharDetect {
		runDetectMode(opts, cfg, logger)
		return
	}

	runConvertMode(opts, cfg, logger)
}

func runConvertMode(opts config.Options, cfg model.Config, logger *log.Logger) {
	runner := app.NewRunner(logger, term.IsTerminal(int(os.Stderr.Fd())))
	if err := runner.Run(opts, cfg); err != nil {
		fatal(logger, err)
	}
}

func runDetectMode(opts config.Options, cfg model.Config, logger *log.Logger) {
	if opts.Input == source.Stdin || !isInteractive() {
		fatal(logger, fmt.Errorf("character detection mode needs a terminal and an input file"))
	}

	lines, err := source.ReadAll(opts.Input, opts.Encoding)
	if err != nil {
		fatal(logger, err)
	}

	m := tui.InitialModel(detect.NewSession(cfg, lines))
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}

	res := final.(tui.AppModel).Result
	if !res.Run {
		fmt.Printf("Final blocklist: %s\n", quoteRunes(res.Blocklist))
		return
	}
	logger.Info("Running file listing conversion", "blocklist", quoteRunes(res.Blocklist))
	runConvertMode(opts, res.Config, logger)
}

func runSetupWizard(opts config.Options, logger *log.Logger) {
	p := tea.NewProgram(tui.InitialSetup())
	final, err := p.Run()
	if err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}

	setup := final.(tui.SetupModel)
	if setup.Cancelled {
		return
	}
	run(setup.Options(opts), logger)
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func quoteRunes(runes []rune) string {
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = fmt.Sprintf("%q", r)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func fatal(logger *log.Logger, err error) {
	logger.Error(err)
	os.Exit(1)
}
