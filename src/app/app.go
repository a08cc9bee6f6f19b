// app.go - Top-level bubbletea model wiring the chat view, sidebar,
// settings panel, and the lifecycle controller.

package app

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"urdugpt/src/components/chatview"
	"urdugpt/src/components/dialogs"
	"urdugpt/src/components/settingspanel"
	"urdugpt/src/components/sidebar"
	"urdugpt/src/config"
	"urdugpt/src/models"
	"urdugpt/src/services/chat"
	"urdugpt/src/services/storage"
)

// EventMsg wraps a controller event for the bubbletea loop. The controller
// emits on its own goroutine; program.Send funnels events back here.
type EventMsg struct {
	Event chat.Event
}

type historyLoadedMsg struct {
	messages []models.Message
}

type clearedMsg struct {
	err error
}

// Model is the application root.
type Model struct {
	conv          *chat.Conversation
	ctrl          *chat.Controller
	history       *storage.HistoryStore
	settingsStore *storage.SettingsStore
	settings      models.Settings
	retentionDays int
	logger        *slog.Logger

	chatView      chatview.Model
	sidebar       sidebar.Model
	settingsPanel settingspanel.Model
	confirm       *dialogs.ConfirmDialog

	width  int
	height int
}

// New wires the root model. The conversation projection it creates is
// shared with the chat view.
func New(cfg config.Config, ctrl *chat.Controller, history *storage.HistoryStore, settingsStore *storage.SettingsStore, settings models.Settings, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	conv := &chat.Conversation{}
	m := &Model{
		conv:          conv,
		ctrl:          ctrl,
		history:       history,
		settingsStore: settingsStore,
		settings:      settings,
		retentionDays: cfg.RetentionDays,
		logger:        logger,
		chatView:      chatview.New(conv, chat.RandomStarters(3)),
		sidebar:       sidebar.New(),
		settingsPanel: settingspanel.New(settings),
		width:         80,
		height:        24,
	}
	m.chatView.Compact = settings.CompactMessages
	return m
}

// Init performs the startup retention pass and the single history load.
func (m *Model) Init() tea.Cmd {
	return func() tea.Msg {
		if err := m.history.EvictExpired(m.retentionDays); err != nil {
			m.logger.Error("evict expired messages", "error", err)
		}
		return historyLoadedMsg{messages: m.history.Load().Messages}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case historyLoadedMsg:
		m.conv.Replace(msg.messages)
		return m, nil
	case clearedMsg:
		if msg.err != nil {
			m.conv.ErrorBanner = "Could not clear the history."
			m.logger.Error("clear history", "error", msg.err)
		} else {
			m.conv.Clear()
		}
		return m, nil
	case EventMsg:
		m.applyEvent(msg.Event)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) applyEvent(e chat.Event) {
	switch ev := e.(type) {
	case chat.MessageAppended:
		m.conv.Append(ev.Message)
	case chat.StatusChanged:
		m.conv.SetStatus(ev.ID, ev.Status)
	case chat.LoadingChanged:
		m.conv.IsLoading = ev.Loading
	case chat.ErrorOccurred:
		m.conv.ErrorBanner = bannerText(ev.Err)
	}
}

func bannerText(err error) string {
	var writeErr *models.StorageWriteError
	if errors.As(err, &writeErr) {
		return "Could not save your message. Storage may be full."
	}
	return "Could not reach UrduGPT. Please try again."
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.confirm != nil {
		confirmed, done := m.confirm.Update(msg)
		if done {
			m.confirm = nil
			if confirmed {
				return m, m.clearHistoryCmd()
			}
		}
		return m, nil
	}

	if m.settingsPanel.Open {
		if m.settingsPanel.Update(msg) {
			m.applySettings(m.settingsPanel.Settings)
		}
		return m, nil
	}

	if m.sidebar.Open {
		switch msg.String() {
		case "ctrl+x":
			m.confirm = dialogs.NewConfirmDialog("Clear all chat history?")
		case "ctrl+s":
			m.settingsPanel.Open = true
		case "esc", "ctrl+b":
			m.sidebar.Open = false
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+b":
		m.sidebar.Toggle()
		return m, nil
	case "ctrl+s":
		m.settingsPanel.Open = true
		return m, nil
	case "esc":
		m.conv.ErrorBanner = ""
		return m, nil
	}

	// Starter shortcuts only apply on the empty-history screen.
	if len(m.conv.Messages) == 0 && m.chatView.Input() == "" {
		if i := starterIndex(msg); i >= 0 && i < len(m.chatView.Starters) {
			return m, m.submit(m.chatView.Starters[i])
		}
	}

	if submitted := m.chatView.HandleKey(msg); submitted != "" {
		return m, m.submit(submitted)
	}
	return m, nil
}

func starterIndex(msg tea.KeyMsg) int {
	switch msg.String() {
	case "1":
		return 0
	case "2":
		return 1
	case "3":
		return 2
	}
	return -1
}

// submit hands text to the controller. The duplicate-submit guard lives in
// the controller; the loading check here just keeps the input line from
// silently swallowing text while a send is in flight.
func (m *Model) submit(text string) tea.Cmd {
	if m.conv.IsLoading {
		m.chatView.SetInput(text)
		return nil
	}
	return func() tea.Msg {
		if err := m.ctrl.Send(context.Background(), text); err != nil {
			m.logger.Error("send failed", "error", err)
		}
		return nil
	}
}

func (m *Model) clearHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		return clearedMsg{err: m.history.Clear()}
	}
}

func (m *Model) applySettings(settings models.Settings) {
	m.settings = settings
	m.chatView.Compact = settings.CompactMessages
	m.ctrl.UpdateSettings(settings)
	if err := m.settingsStore.Save(settings); err != nil {
		m.conv.ErrorBanner = "Could not save settings."
		m.logger.Error("save settings", "error", err)
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.sidebar.Height = height
	m.chatView.Height = height
	m.chatView.Width = m.chatWidth()
}

func (m *Model) chatWidth() int {
	w := m.width
	if m.sidebar.Open {
		w -= m.sidebar.Width
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) View() string {
	if m.confirm != nil {
		return m.confirm.View(m.width, m.height)
	}
	if m.settingsPanel.Open {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.settingsPanel.View())
	}

	m.chatView.Width = m.chatWidth()
	chatPane := m.chatView.View()
	if !m.sidebar.Open {
		return chatPane
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(chat.GroupByDate(m.conv.Messages)), chatPane)
}
