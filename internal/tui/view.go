package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"treepaths/internal/detect"
	"treepaths/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	ignoredStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	stopStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Sky Blue/Cyan
			Bold(true).
			Underline(true)

	adviceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	borderColor = lipgloss.Color("63")
)

func (m AppModel) View() string {
	width := m.WindowSize.Width
	height := m.WindowSize.Height
	if width == 0 {
		width, height = 100, 24
	}

	netWidth := width - 6
	if netWidth < 40 {
		netWidth = 40
	}
	leftWidth := netWidth / 2
	rightWidth := netWidth - leftWidth

	boxHeight := height - 6
	if boxHeight < 8 {
		boxHeight = 8
	}

	// LEFT PANEL: current line
	var leftView strings.Builder
	leftView.WriteString(titleStyle.Render("Character Detection"))
	leftView.WriteString("\n\n")

	probe, ok := m.Session.Current()
	if !ok {
		leftView.WriteString(adviceStyle.Render("End of listing reached."))
		leftView.WriteString("\n\n")
	} else {
		leftView.WriteString(m.renderContext(probe))
		leftView.WriteString("\n\n")
		leftView.WriteString(labelStyle.Render("Starting position: "))
		leftView.WriteString(fmt.Sprintf("%d\n", probe.Boundary))
		leftView.WriteString(labelStyle.Render("Stop character:    "))
		if probe.HasStop {
			leftView.WriteString(fmt.Sprintf("%s %q (U+%04X)\n", model.IconStop, probe.Stop, probe.Stop))
		} else {
			leftView.WriteString(model.IconNone + " no non-ignored character on this line\n")
		}
	}
	leftView.WriteString(labelStyle.Render("Ignore list:       "))
	leftView.WriteString(fmt.Sprintf("%q\n", m.Session.Config().IgnoreChars))
	leftView.WriteString(labelStyle.Render("Blocklist:         "))
	leftView.WriteString(renderBlocklist(m.Session.Blocklist()))
	leftView.WriteString("\n")
	if ok {
		leftView.WriteString(dimStyle.Render(fmt.Sprintf("\nEntry %d of %d", m.Session.Position()+1, m.Session.Len())))
	}

	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(boxHeight - 2).
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Render(leftView.String())

	// RIGHT PANEL: preview with the current blocklist
	var rightView strings.Builder
	rightView.WriteString(titleStyle.Render("Preview"))
	rightView.WriteString("\n\n")
	if m.PreviewErr != nil {
		rightView.WriteString(adviceStyle.Render(m.PreviewErr.Error()))
		rightView.WriteString("\n")
	}
	rightView.WriteString(m.PreviewViewport.View())

	right := lipgloss.NewStyle().
		Width(rightWidth).
		Height(boxHeight - 2).
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Render(rightView.String())

	// Footer
	help := "s/→: Step • p/←: Back • b: Block char • u: Unblock • ↑/↓: Scroll preview • r: Run conversion • q: Quit"
	footer := "\n" + dimStyle.Render(help)
	if m.Status != "" {
		footer = "\n" + adviceStyle.Render(m.Status) + footer
	}
	if m.InputMode {
		footer = fmt.Sprintf("\nCharacter to unblock: %s", m.InputBuffer.View())
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right) + footer
}

// renderContext shows the current line between its neighbours, with the
// ignored run dimmed and the stop character highlighted.
func (m AppModel) renderContext(p detect.Probe) string {
	ctx, err := model.GetLineContext(m.Session.Lines(), p.LineNumber, 2)
	if err != nil {
		return adviceStyle.Render(err.Error())
	}

	var sb strings.Builder
	others := func(lines []model.ContextLine) {
		for _, l := range lines {
			sb.WriteString(dimStyle.Render(fmt.Sprintf("  %4d  %s", l.Number, l.Text)))
			sb.WriteString("\n")
		}
	}
	others(ctx.Before)

	runes := []rune(ctx.Target.Text)
	sb.WriteString(fmt.Sprintf("%s %4d  ", model.IconCursor, p.LineNumber))
	sb.WriteString(ignoredStyle.Render(visible(string(runes[:p.Boundary]))))
	if p.HasStop {
		sb.WriteString(stopStyle.Render(string(runes[p.Boundary])))
		sb.WriteString(string(runes[p.Boundary+1:]))
	}
	sb.WriteString("\n")

	others(ctx.After)
	return strings.TrimSuffix(sb.String(), "\n")
}

func (m AppModel) renderPreview() string {
	current := -1
	if probe, ok := m.Session.Current(); ok {
		current = probe.LineNumber
	}
	var sb strings.Builder
	for _, e := range m.Preview {
		line := e.Path
		if e.LineNumber == current {
			line = selectedItemStyle.Render(model.IconCursor + " " + line)
		} else {
			line = "  " + line
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func renderBlocklist(blocklist []rune) string {
	if len(blocklist) == 0 {
		return dimStyle.Render("(empty)")
	}
	parts := make([]string, len(blocklist))
	for i, r := range blocklist {
		parts[i] = fmt.Sprintf("%s %q", model.IconBlocked, r)
	}
	return strings.Join(parts, "  ")
}

// visible makes whitespace in the ignored run visible.
func visible(s string) string {
	return strings.NewReplacer(" ", "·", "\t", "→", "\u00a0", "°").Replace(s)
}
