// model.go - The center chat pane: message bubbles, input line, and banner.

package chatview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"urdugpt/src/services/chat"
)

// Model renders the conversation and owns the input line.
type Model struct {
	Conv     *chat.Conversation
	Starters []string
	Compact  bool
	Width    int
	Height   int

	input string
}

// New builds a chat view over the shared conversation projection.
func New(conv *chat.Conversation, starters []string) Model {
	return Model{Conv: conv, Starters: starters, Width: 80, Height: 24}
}

// Input returns the current input line.
func (m *Model) Input() string {
	return m.input
}

// SetInput replaces the input line (used when a starter is picked).
func (m *Model) SetInput(text string) {
	m.input = text
}

// HandleKey applies a key to the input line. On enter it returns the
// trimmed text to submit and clears the line; otherwise submitted is empty.
func (m *Model) HandleKey(msg tea.KeyMsg) (submitted string) {
	switch msg.Type {
	case tea.KeyEnter:
		text := strings.TrimSpace(m.input)
		m.input = ""
		return text
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return ""
}
