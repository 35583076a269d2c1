package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treepaths/internal/config"
	"treepaths/internal/listing"
	"treepaths/internal/model"
)

const listingText = "project\n│   README.md\n│   src\n│   │   main.go\n\ndocs\n"

func setup(t *testing.T) (string, *Runner, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	input := filepath.Join(t.TempDir(), "listing.txt")
	require.NoError(t, os.WriteFile(input, []byte(listingText), 0o644))
	var stdout, logs bytes.Buffer
	logger := log.New(&logs)
	logger.SetLevel(log.DebugLevel)
	return input, &Runner{Logger: logger, Stdout: &stdout}, &stdout, &logs
}

func testConfig() model.Config {
	return model.Config{IgnoreChars: " │", IndentWidth: 4, Prefix: "", Separator: model.SeparatorUnix}
}

func TestRunToConsole(t *testing.T) {
	input, r, stdout, logs := setup(t)
	err := r.Run(config.Options{Input: input, Encoding: "utf-8"}, testConfig())
	require.NoError(t, err)
	assert.Equal(t, "/project\n/project/README.md\n/project/src\n/project/src/main.go\n/docs\n", stdout.String())
	assert.Contains(t, logs.String(), "main.go")
}

func TestRunToFile(t *testing.T) {
	input, r, stdout, logs := setup(t)
	out := filepath.Join(t.TempDir(), "paths.txt")
	err := r.Run(config.Options{Input: input, Output: out, Encoding: "utf-8"}, testConfig())
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "/project\n/project/README.md\n/project/src\n/project/src/main.go\n/docs", string(data))
	assert.Empty(t, stdout.String())
	assert.Contains(t, logs.String(), "Output written")
}

func TestRunDryRunIgnoresOutputFile(t *testing.T) {
	input, r, stdout, _ := setup(t)
	out := filepath.Join(t.TempDir(), "paths.txt")
	err := r.Run(config.Options{Input: input, Output: out, DryRun: true, Encoding: "utf-8"}, testConfig())
	require.NoError(t, err)
	assert.NoFileExists(t, out)
	assert.Contains(t, stdout.String(), "/project/src/main.go")
}

func TestRunTreeOnConsole(t *testing.T) {
	input, r, stdout, _ := setup(t)
	err := r.Run(config.Options{Input: input, Tree: true, Encoding: "utf-8"}, testConfig())
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "main.go")
	assert.NotContains(t, stdout.String(), "/project/src/main.go")
}

func TestRunMissingInput(t *testing.T) {
	_, r, stdout, _ := setup(t)
	err := r.Run(config.Options{Input: filepath.Join(t.TempDir(), "missing.txt"), Encoding: "utf-8"}, testConfig())
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, stdout.String())
}

func TestRunRejectsIndentBeforeReading(t *testing.T) {
	_, r, _, _ := setup(t)
	cfg := testConfig()
	cfg.IndentWidth = 0
	// The input does not exist; the indent error must win.
	err := r.Run(config.Options{Input: "does-not-exist", Encoding: "utf-8"}, cfg)
	assert.ErrorIs(t, err, listing.ErrInvalidIndent)
}

func TestRunStrictFailure(t *testing.T) {
	input := filepath.Join(t.TempDir(), "listing.txt")
	require.NoError(t, os.WriteFile(input, []byte("a\n        deep\n"), 0o644))
	var stdout bytes.Buffer
	r := &Runner{Logger: log.New(&bytes.Buffer{}), Stdout: &stdout}

	cfg := testConfig()
	cfg.Strict = true
	err := r.Run(config.Options{Input: input, Encoding: "utf-8"}, cfg)
	assert.ErrorIs(t, err, listing.ErrDepthJump)
	// What was converted before the failure is still flushed.
	assert.Equal(t, "/a\n", stdout.String())
}

func TestRunUnwritableOutput(t *testing.T) {
	input, r, _, _ := setup(t)
	err := r.Run(config.Options{Input: input, Output: filepath.Join(t.TempDir(), "no", "such", "dir.txt"), Encoding: "utf-8"}, testConfig())
	assert.Error(t, err)
}
