package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"treepaths/internal/config"
)

// question is one step of the setup wizard.
type question struct {
	key    string
	prompt string
	def    string
	skip   func(answers map[string]string) bool
}

var setupQuestions = []question{
	{key: "input", prompt: "Input file path"},
	{key: "detect", prompt: "Do you want to use character detection mode? (yes/no)", def: "no"},
	{key: "ignore", prompt: `Characters to ignore (e.g. '\u00A0')`},
	{key: "indent", prompt: "Indent level (number of characters per level)", def: "4"},
	{key: "prefix", prompt: "Path prefix", def: "C:"},
	{key: "unix", prompt: "Use UNIX separators? (yes/no)", def: "no"},
	{key: "encoding", prompt: "File encoding", def: "utf-8"},
	{key: "dry", prompt: "Dry run mode? (yes/no)", def: "no"},
	{key: "debug", prompt: "Enable debug mode? (yes/no)", def: "no"},
	{key: "delay", prompt: "Debug delay in seconds", def: "0",
		skip: func(a map[string]string) bool { return !yes(a["debug"]) }},
}

// SetupModel asks for the run options one question at a time.
type SetupModel struct {
	Step      int
	Answers   map[string]string
	Input     textinput.Model
	Cancelled bool
}

// InitialSetup returns a wizard positioned on the first question.
func InitialSetup() SetupModel {
	ti := textinput.New()
	ti.CharLimit = 512
	ti.Width = 60
	ti.Focus()
	m := SetupModel{Answers: make(map[string]string), Input: ti}
	m.prepare()
	return m
}

// Done reports whether every question has been answered.
func (m SetupModel) Done() bool {
	return m.Step >= len(setupQuestions)
}

func (m *SetupModel) prepare() {
	for !m.Done() && setupQuestions[m.Step].skip != nil && setupQuestions[m.Step].skip(m.Answers) {
		m.Step++
	}
	if m.Done() {
		return
	}
	m.Input.SetValue("")
	m.Input.Placeholder = setupQuestions[m.Step].def
}

func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.Cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			q := setupQuestions[m.Step]
			answer := strings.TrimSpace(m.Input.Value())
			if answer == "" {
				answer = q.def
			}
			m.Answers[q.key] = answer
			m.Step++
			m.prepare()
			if m.Done() {
				return m, tea.Quit
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m SetupModel) View() string {
	if m.Done() {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("treepaths setup"))
	sb.WriteString("\n\n")
	for i := 0; i < m.Step; i++ {
		q := setupQuestions[i]
		if a, ok := m.Answers[q.key]; ok {
			sb.WriteString(dimStyle.Render(fmt.Sprintf("%s: %s", q.prompt, a)))
			sb.WriteString("\n")
		}
	}
	sb.WriteString(labelStyle.Render(setupQuestions[m.Step].prompt + ": "))
	sb.WriteString(m.Input.View())
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render("Enter: accept (empty takes the default) • Esc: cancel"))
	return sb.String()
}

// Options converts the answers into run options. Output always goes to the
// console in this mode.
func (m SetupModel) Options(base config.Options) config.Options {
	o := base
	a := m.Answers
	o.Input = a["input"]
	o.CharDetect = yes(a["detect"])
	o.IgnoreChars = a["ignore"]
	o.IndentWidth = 4
	if n, err := strconv.Atoi(a["indent"]); err == nil && n > 0 {
		o.IndentWidth = n
	}
	o.Prefix = a["prefix"]
	o.Unix = yes(a["unix"])
	o.Encoding = a["encoding"]
	o.Output = ""
	o.DryRun = yes(a["dry"])
	o.Debug = yes(a["debug"])
	o.DebugDelay = 0
	if o.Debug {
		if secs, err := strconv.ParseFloat(a["delay"], 64); err == nil && secs > 0 {
			o.DebugDelay = time.Duration(secs * float64(time.Second))
		}
	}
	return o
}

func yes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	}
	return false
}
