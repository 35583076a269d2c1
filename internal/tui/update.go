package tui

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"treepaths/internal/detect"
	"treepaths/internal/listing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.PreviewViewport.Width = msg.Width/2 - 4
		m.PreviewViewport.Height = msg.Height - 8 // minus title, footer, borders
		if m.PreviewViewport.Height < 3 {
			m.PreviewViewport.Height = 3
		}
		m.scrollPreview()
		return m, nil

	case tea.KeyMsg:
		if m.InputMode {
			switch msg.Type {
			case tea.KeyEnter:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.unblock(m.InputBuffer.Value())
				return m, nil
			case tea.KeyEsc:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.Status = "Unblock cancelled."
				return m, nil
			}
			m.InputBuffer, cmd = m.InputBuffer.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.Result = Result{Config: m.Session.Config(), Blocklist: m.Session.Blocklist()}
			return m, tea.Quit
		case "s", "right", "l":
			if err := m.Session.Step(); err != nil {
				m.Status = "End of listing. Press r to run or q to quit."
			} else {
				m.Status = ""
			}
			m.scrollPreview()
		case "p", "left", "h":
			if err := m.Session.Back(); err != nil {
				m.Status = "Already at the first line; cannot step backwards."
			} else {
				m.Status = ""
			}
			m.scrollPreview()
		case "b":
			m.block()
		case "u":
			if len(m.Session.Blocklist()) == 0 {
				m.Status = "Blocklist is empty. Nothing to unblock."
				return m, nil
			}
			m.InputMode = true
			m.InputBuffer.SetValue("")
			return m, m.InputBuffer.Focus()
		case "r":
			m.Result = Result{Run: true, Config: m.Session.Config(), Blocklist: m.Session.Blocklist()}
			return m, tea.Quit
		case "up", "k":
			m.PreviewViewport.LineUp(1)
		case "down", "j":
			m.PreviewViewport.LineDown(1)
		}
	}

	return m, cmd
}

func (m *AppModel) block() {
	r, err := m.Session.Block()
	switch {
	case errors.Is(err, detect.ErrNoStop):
		m.Status = "Nothing to block on this line; stepping forward."
		_ = m.Session.Step()
		m.scrollPreview()
		return
	case err != nil:
		m.Status = err.Error()
		return
	}
	m.Status = fmt.Sprintf("Added %q to blocklist.", r)
	m.refreshPreview()
}

func (m *AppModel) unblock(input string) {
	text, err := listing.Unescape(input)
	if err != nil {
		text = input
	}
	if utf8.RuneCountInString(text) != 1 {
		m.Status = fmt.Sprintf("Enter exactly one character, got %q.", input)
		return
	}
	r, _ := utf8.DecodeRuneInString(text)
	if err := m.Session.Unblock(r); err != nil {
		m.Status = fmt.Sprintf("Character %q is not in the blocklist.", r)
		return
	}
	m.Status = fmt.Sprintf("Removed %q from blocklist.", r)
	m.refreshPreview()
}

func (m AppModel) Init() tea.Cmd {
	return textinput.Blink
}
