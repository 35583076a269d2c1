package tui

import (
	"treepaths/internal/detect"
	"treepaths/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Result is what the detection console hands back when it exits.
type Result struct {
	Run       bool         // The user asked to run the conversion
	Config    model.Config // Base config with the final blocklist
	Blocklist []rune
}

// AppModel holds the detection console state.
type AppModel struct {
	// Data
	Session    *detect.Session
	Preview    []model.Entry
	PreviewErr error

	// UI State
	Status     string
	WindowSize tea.WindowSizeMsg

	// Unblock prompt
	InputMode   bool
	InputBuffer textinput.Model

	// Components
	PreviewViewport viewport.Model

	Result Result
}

// InitialModel returns the console state for a fresh session.
func InitialModel(s *detect.Session) AppModel {
	ti := textinput.New()
	ti.Placeholder = `e.g. │ or \u2502`
	ti.CharLimit = 16
	ti.Width = 20

	m := AppModel{
		Session:         s,
		InputBuffer:     ti,
		PreviewViewport: viewport.New(40, 10),
	}
	m.refreshPreview()
	return m
}

// refreshPreview reruns the conversion with the current blocklist.
func (m *AppModel) refreshPreview() {
	m.Preview, m.PreviewErr = m.Session.Preview()
	m.PreviewViewport.SetContent(m.renderPreview())
	m.scrollPreview()
}

// scrollPreview keeps the entry of the current line in view.
func (m *AppModel) scrollPreview() {
	probe, ok := m.Session.Current()
	if !ok {
		return
	}
	for i, e := range m.Preview {
		if e.LineNumber == probe.LineNumber {
			m.PreviewViewport.SetYOffset(i - m.PreviewViewport.Height/2)
			m.PreviewViewport.SetContent(m.renderPreview())
			return
		}
	}
}
