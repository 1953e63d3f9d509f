// Package ui renders the client state as a Bubble Tea program: a navigation
// bar, and one panel at a time (chat list, conversation, settings, or a
// placeholder for sections that are not built).
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/saravenpi/murmur/internal/app"
	"github.com/saravenpi/murmur/internal/config"
	"github.com/saravenpi/murmur/internal/logger"
)

type Option func(*Model)

// WithSelfName sets the sender label shown on own messages.
func WithSelfName(name string) Option {
	return func(m *Model) {
		m.selfName = name
	}
}

// WithClock replaces time.Now as the source of sent message times.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

type Model struct {
	state        *app.State
	nav          navBar
	chatList     ChatListModel
	conversation ConversationModel
	settings     SettingsModel
	selfName     string
	now          func() time.Time
	panel        app.Panel
	windowWidth  int
	windowHeight int
}

func New(state *app.State, opts ...Option) Model {
	m := Model{
		state:        state,
		selfName:     config.DefaultSelfName,
		now:          time.Now,
		windowWidth:  80,
		windowHeight: 30,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.nav = newNavBar(state)
	m.chatList = NewChatListModel(state)
	m.conversation = NewConversationModel(state, m.selfName, m.now)
	m.settings = NewSettingsModel(state, m.selfName)
	m.panel = state.ActivePanel()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// State exposes the shared state container.
func (m Model) State() *app.State {
	return m.state
}

func (m Model) typing() bool {
	switch m.state.ActivePanel() {
	case app.PanelConversation:
		return true
	case app.PanelChatList:
		return m.chatList.Typing()
	case app.PanelSettings:
		return m.settings.Typing()
	}
	return false
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case selfNameChangedMsg:
		m.selfName = msg.name
		m.conversation.SetSelfName(msg.name)
		logger.Info("display name changed")
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.ForceQuit) {
			return m, tea.Quit
		}
		if key.Matches(msg, keys.ToggleTheme) {
			m.state.ToggleTheme()
			return m.settle(nil)
		}

		typing := m.typing()
		if !typing && key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		if m.nav.Update(msg, !typing) {
			return m.settle(nil)
		}

		switch m.state.ActivePanel() {
		case app.PanelChatList:
			m.chatList, cmd = m.chatList.Update(msg)
		case app.PanelConversation:
			m.conversation, cmd = m.conversation.Update(msg)
		case app.PanelSettings:
			m.settings, cmd = m.settings.Update(msg)
		}
		return m.settle(cmd)
	}

	switch m.state.ActivePanel() {
	case app.PanelChatList:
		m.chatList, cmd = m.chatList.Update(msg)
	case app.PanelConversation:
		m.conversation, cmd = m.conversation.Update(msg)
	}
	return m, cmd
}

// settle brings the panels in line with the state after a transition: a
// panel that is left stops taking input, a newly opened chat is loaded, and
// the chat list picks up new previews.
func (m Model) settle(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	next := m.state.ActivePanel()
	if next != m.panel {
		logger.Debug("panel changed", "from", m.panel.String(), "to", next.String())
		m.chatList.Blur()
		m.settings.Cancel()
		if next == app.PanelConversation {
			cmd = tea.Batch(cmd, m.conversation.Open())
		}
		m.panel = next
	}

	switch next {
	case app.PanelChatList:
		m.chatList.Refresh()
	case app.PanelConversation:
		m.conversation.updateViewportContent()
	}
	return m, cmd
}

func (m *Model) resize(width, height int) {
	m.windowWidth = width
	m.windowHeight = height
	m.nav.SetWidth(width)
	m.chatList.SetSize(width, m.bodyHeight())
	m.conversation.SetSize(width, m.bodyHeight())
}

func (m Model) bodyHeight() int {
	// header, nav bar, help line and spacing
	h := m.windowHeight - 6
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) header(st styles) string {
	mode := "☀ light"
	if m.state.Dark() {
		mode = "☾ dark"
	}
	title := st.selected.Render("murmur")
	right := st.status.Render(mode)
	gap := m.windowWidth - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return title + lipgloss.NewStyle().Width(gap).Render("") + right
}

func (m Model) View() string {
	st := stylesFor(m.state.Dark())

	var body, help string
	switch m.state.ActivePanel() {
	case app.PanelConversation:
		body = m.conversation.View()
		help = m.conversation.HelpText()
	case app.PanelChatList:
		body = m.chatList.View()
		help = m.chatList.HelpText()
	case app.PanelSettings:
		body = m.settings.View()
		help = m.settings.HelpText()
	default:
		body = placeholderView(m.state.Section(), st, m.windowWidth, m.bodyHeight())
		help = "tab/1-6: sections • ctrl+t: theme • q: quit"
	}

	body = lipgloss.NewStyle().Height(m.bodyHeight()).MaxHeight(m.bodyHeight()).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header(st),
		"",
		body,
		m.nav.View(st),
		st.help.Render(help),
	)
}
