// model.go - Settings panel: sound, notification, and display preferences.

package settingspanel

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"urdugpt/src/models"
)

const (
	rowSounds = iota
	rowVolume
	rowNotifications
	rowCompact
	rowDarkMode
	rowPhoto
	rowCount
)

var (
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("245")).Padding(1, 2)
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")).Background(lipgloss.Color("236"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Model is the settings panel. It edits a copy of the settings; the app
// persists and redistributes them whenever Update reports a change.
type Model struct {
	Open     bool
	Settings models.Settings
	Cursor   int

	editingPhoto bool
	photoInput   string
}

// New builds a closed panel over the given settings.
func New(settings models.Settings) Model {
	return Model{Settings: settings}
}

// Update handles a key press. changed reports that a preference was
// modified and should be persisted.
func (m *Model) Update(msg tea.KeyMsg) (changed bool) {
	if m.editingPhoto {
		return m.updatePhotoInput(msg)
	}

	switch msg.String() {
	case "up":
		m.Cursor = (m.Cursor + rowCount - 1) % rowCount
	case "down":
		m.Cursor = (m.Cursor + 1) % rowCount
	case "left", "right":
		if m.Cursor == rowVolume {
			return m.adjustVolume(msg.String() == "right")
		}
	case "enter", " ":
		return m.toggleCurrent()
	case "esc":
		m.Open = false
	}
	return false
}

func (m *Model) updatePhotoInput(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyEnter:
		m.Settings.ProfilePhoto = strings.TrimSpace(m.photoInput)
		m.editingPhoto = false
		return true
	case tea.KeyEsc:
		m.editingPhoto = false
	case tea.KeyBackspace:
		if len(m.photoInput) > 0 {
			runes := []rune(m.photoInput)
			m.photoInput = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		m.photoInput += " "
	case tea.KeyRunes:
		m.photoInput += string(msg.Runes)
	}
	return false
}

func (m *Model) adjustVolume(up bool) bool {
	step := 0.1
	if !up {
		step = -0.1
	}
	v := m.Settings.Sounds.Volume + step
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	if v == m.Settings.Sounds.Volume {
		return false
	}
	m.Settings.Sounds.Volume = v
	return true
}

func (m *Model) toggleCurrent() bool {
	switch m.Cursor {
	case rowSounds:
		m.Settings.Sounds.Enabled = !m.Settings.Sounds.Enabled
	case rowNotifications:
		m.Settings.Notifications = !m.Settings.Notifications
	case rowCompact:
		m.Settings.CompactMessages = !m.Settings.CompactMessages
	case rowDarkMode:
		m.Settings.DarkMode = !m.Settings.DarkMode
	case rowPhoto:
		if m.Settings.ProfilePhoto != "" {
			m.Settings.ProfilePhoto = ""
			return true
		}
		m.editingPhoto = true
		m.photoInput = ""
		return false
	default:
		return false
	}
	return true
}

// View renders the panel.
func (m *Model) View() string {
	if !m.Open {
		return ""
	}

	onOff := func(v bool) string {
		if v {
			return "on"
		}
		return "off"
	}

	photo := m.Settings.ProfilePhoto
	photoLabel := "set…"
	if photo != "" {
		photoLabel = photo + "  (enter to remove)"
	}
	if m.editingPhoto {
		photoLabel = m.photoInput + "▏"
	}

	rows := []string{
		fmt.Sprintf("Sounds          %s", onOff(m.Settings.Sounds.Enabled)),
		fmt.Sprintf("Volume          %.1f", m.Settings.Sounds.Volume),
		fmt.Sprintf("Notifications   %s", onOff(m.Settings.Notifications)),
		fmt.Sprintf("Compact view    %s", onOff(m.Settings.CompactMessages)),
		fmt.Sprintf("Dark mode       %s", onOff(m.Settings.DarkMode)),
		fmt.Sprintf("Profile photo   %s", photoLabel),
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n\n")
	for i, row := range rows {
		if i == m.Cursor {
			b.WriteString(selectedStyle.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("↑↓ navigate · enter toggle · ←→ volume · esc close"))
	return panelStyle.Render(b.String())
}
