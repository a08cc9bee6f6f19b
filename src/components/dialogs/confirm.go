// confirm.go - A small yes/no confirmation dialog rendered over the chat.
// Left/right moves the selection, enter confirms, esc cancels.

package dialogs

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("245")).
			Padding(1, 4).
			Align(lipgloss.Center)
	optionStyle   = lipgloss.NewStyle().Padding(0, 2)
	selectedStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(lipgloss.Color("33")).Background(lipgloss.Color("236"))
)

// ConfirmDialog asks a yes/no question.
type ConfirmDialog struct {
	Message  string
	Selected int // 0 = yes, 1 = no
}

// NewConfirmDialog builds a dialog with "No" preselected.
func NewConfirmDialog(message string) *ConfirmDialog {
	return &ConfirmDialog{Message: message, Selected: 1}
}

// Update handles a key press. done reports the dialog should close;
// confirmed is meaningful only when done is true.
func (d *ConfirmDialog) Update(msg tea.KeyMsg) (confirmed, done bool) {
	switch msg.String() {
	case "left", "right":
		d.Selected = 1 - d.Selected
	case "enter":
		return d.Selected == 0, true
	case "esc":
		return false, true
	}
	return false, false
}

// View renders the dialog centered in the given region.
func (d *ConfirmDialog) View(regionWidth, regionHeight int) string {
	msg := lipgloss.NewStyle().Bold(true).Render(d.Message)
	var opts string
	for i, label := range []string{"Yes", "No"} {
		style := optionStyle
		if i == d.Selected {
			style = selectedStyle
		}
		opts += style.Render(label)
	}
	box := boxStyle.Render(msg + "\n\n" + opts)
	return lipgloss.Place(regionWidth, regionHeight, lipgloss.Center, lipgloss.Center, box)
}
