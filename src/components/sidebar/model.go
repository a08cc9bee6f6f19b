// model.go - History sidebar: messages grouped by calendar date.

package sidebar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"urdugpt/src/services/chat"
)

const previewLen = 28

var (
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	dateStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	entryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Model is the toggleable history sidebar.
type Model struct {
	Open   bool
	Width  int
	Height int
}

// New builds a closed sidebar.
func New() Model {
	return Model{Width: 36, Height: 24}
}

// Toggle flips the sidebar open state.
func (m *Model) Toggle() {
	m.Open = !m.Open
}

// View renders the sidebar over the given date groups.
func (m *Model) View(groups []chat.DateGroup) string {
	if !m.Open {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Chat History"))
	b.WriteString("\n\n")

	if len(groups) == 0 {
		b.WriteString(entryStyle.Render("No messages yet"))
		b.WriteString("\n")
	}
	for _, g := range groups {
		b.WriteString(dateStyle.Render(g.Date))
		b.WriteString("\n")
		for _, msg := range g.Messages {
			b.WriteString(entryStyle.Render("  " + preview(msg.Text)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("ctrl+x clear · ctrl+s settings · esc close"))

	content := b.String()
	lines := strings.Split(content, "\n")
	avail := m.Height - 2
	if avail >= 3 && len(lines) > avail {
		lines = lines[:avail]
	}
	return panelStyle.Width(m.Width - 2).Render(strings.Join(lines, "\n"))
}

func preview(text string) string {
	runes := []rune(strings.ReplaceAll(text, "\n", " "))
	if len(runes) > previewLen {
		return string(runes[:previewLen]) + "…"
	}
	return string(runes)
}
