// view.go - Lipgloss rendering for the chat pane.

package chatview

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"urdugpt/src/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("17")).Padding(0, 1)
	userBubble  = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("17")).Padding(0, 1)
	botBubble   = lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Background(lipgloss.Color("252")).Padding(0, 1)
	metaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	readStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("124")).Padding(0, 1)
	inputStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// statusGlyph maps a message status to its indicator.
func statusGlyph(status models.Status) string {
	switch status {
	case models.StatusSending:
		return metaStyle.Render("…")
	case models.StatusSent:
		return metaStyle.Render("✓")
	case models.StatusDelivered:
		return metaStyle.Render("✓✓")
	case models.StatusRead:
		return readStyle.Render("✓✓")
	case models.StatusFailed:
		return failStyle.Render("✗ failed")
	default:
		return ""
	}
}

// View renders the chat pane at the model's current size.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Width(m.Width).Render("UrduGPT"))
	b.WriteString("\n")

	body := m.renderMessages()
	b.WriteString(body)
	b.WriteString("\n")

	if m.Conv.ErrorBanner != "" {
		b.WriteString(bannerStyle.Width(m.Width).Render(m.Conv.ErrorBanner + "  (esc to dismiss)"))
		b.WriteString("\n")
	}
	if m.Conv.IsLoading {
		b.WriteString(metaStyle.Render("UrduGPT is composing…"))
		b.WriteString("\n")
	}

	prompt := "Type your message…"
	line := m.input
	if line == "" {
		line = hintStyle.Render(prompt)
	}
	b.WriteString(inputStyle.Width(m.Width - 2).Render(line))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("enter send · ctrl+b history · ctrl+s settings · ctrl+c quit"))

	return b.String()
}

func (m *Model) renderMessages() string {
	if len(m.Conv.Messages) == 0 {
		return m.renderStarters()
	}

	var lines []string
	for _, msg := range m.Conv.Messages {
		lines = append(lines, m.renderBubble(msg))
		if !m.Compact {
			lines = append(lines, "")
		}
	}

	// Keep only what fits above the input area.
	avail := m.Height - 7
	if avail < 3 {
		avail = 3
	}
	joined := strings.Join(lines, "\n")
	split := strings.Split(joined, "\n")
	if len(split) > avail {
		split = split[len(split)-avail:]
	}
	return strings.Join(split, "\n")
}

func (m *Model) renderBubble(msg models.Message) string {
	maxWidth := m.Width * 4 / 5
	if maxWidth < 20 {
		maxWidth = 20
	}

	meta := time.UnixMilli(msg.Timestamp).Local().Format("15:04")
	if msg.Sender == models.SenderUser && msg.Status != "" {
		meta = fmt.Sprintf("%s %s", meta, statusGlyph(msg.Status))
	}

	style := botBubble
	align := lipgloss.Left
	if msg.Sender == models.SenderUser {
		style = userBubble
		align = lipgloss.Right
	}

	content := msg.Text
	if !m.Compact {
		content += "\n" + metaStyle.Render(meta)
	}
	bubble := style.MaxWidth(maxWidth).Render(content)
	return lipgloss.PlaceHorizontal(m.Width, align, bubble)
}

func (m *Model) renderStarters() string {
	var b strings.Builder
	b.WriteString(metaStyle.Render("No messages yet. Try one of these:"))
	b.WriteString("\n\n")
	for i, s := range m.Starters {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, s))
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("press 1-3 to send a starter"))
	return b.String()
}
