package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/saravenpi/murmur/internal/app"
	"github.com/saravenpi/murmur/internal/logger"
	"github.com/saravenpi/murmur/internal/models"
)

// ConversationModel shows the open chat's history and the draft field.
type ConversationModel struct {
	state        *app.State
	chat         models.Chat
	messages     []models.Message
	viewport     viewport.Model
	input        textinput.Model
	selfName     string
	now          func() time.Time
	err          error
	windowWidth  int
	windowHeight int
}

func NewConversationModel(state *app.State, selfName string, now func() time.Time) ConversationModel {
	vp := viewport.New(80, 20)
	vp.KeyMap.Up = keys.ScrollUp
	vp.KeyMap.Down = keys.ScrollDown

	input := textinput.New()
	input.Prompt = "✎ "
	input.Placeholder = "Write a message..."
	input.CharLimit = 1000
	input.Width = 60

	return ConversationModel{
		state:        state,
		viewport:     vp,
		input:        input,
		selfName:     selfName,
		now:          now,
		windowWidth:  80,
		windowHeight: 30,
	}
}

// Open loads the selected chat and focuses the draft field.
func (m *ConversationModel) Open() tea.Cmd {
	m.err = nil
	m.input.SetValue(m.state.Draft())
	m.reload()
	m.viewport.GotoBottom()
	return m.input.Focus()
}

func (m *ConversationModel) reload() {
	chat, messages, ok, err := m.state.Conversation()
	if err != nil {
		m.err = err
		return
	}
	if !ok {
		return
	}
	m.chat = chat
	m.messages = messages
	m.updateViewportContent()
}

func (m *ConversationModel) SetSize(width, height int) {
	m.windowWidth = width
	m.windowHeight = height

	headerHeight := 3
	inputHeight := 2
	m.viewport.Width = width - 4
	m.viewport.Height = height - headerHeight - inputHeight
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	m.input.Width = width - 8
	m.updateViewportContent()
}

func (m *ConversationModel) SetSelfName(name string) {
	m.selfName = name
	m.updateViewportContent()
}

func (m ConversationModel) ChatID() int64 {
	return m.chat.ID
}

func (m ConversationModel) Messages() []models.Message {
	return m.messages
}

func (m ConversationModel) Update(msg tea.Msg) (ConversationModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Back):
			m.state.Back()
			m.input.Reset()
			m.input.Blur()
			return m, nil

		case key.Matches(msg, keys.Send):
			m.send()
			return m, nil

		case key.Matches(msg, keys.ScrollUp), key.Matches(msg, keys.ScrollDown):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.state.SetDraft(m.input.Value())
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *ConversationModel) send() {
	m.state.SetDraft(m.input.Value())
	message, sent, err := m.state.SendMessage(m.now())
	if err != nil {
		m.err = err
		logger.Error("send failed", "chat", m.chat.ID, "error", err)
		return
	}
	if !sent {
		return
	}

	logger.Debug("message sent", "chat", m.chat.ID, "message", message.ID)
	m.err = nil
	m.input.Reset()
	m.reload()
	m.viewport.GotoBottom()
}

func (m *ConversationModel) updateViewportContent() {
	st := stylesFor(m.state.Dark())

	if len(m.messages) == 0 {
		m.viewport.SetContent(st.muted.Render("  No messages yet."))
		return
	}

	var content strings.Builder
	wrapWidth := m.viewport.Width
	if wrapWidth <= 0 {
		wrapWidth = 80
	}
	bodyWidth := wrapWidth - 10
	if bodyWidth < 10 {
		bodyWidth = wrapWidth
	}
	right := lipgloss.NewStyle().Align(lipgloss.Right).Width(wrapWidth)

	for i, message := range m.messages {
		if i > 0 {
			content.WriteString("\n")
		}

		if message.FromMe {
			header := st.messageHeader.Render(fmt.Sprintf("%s • %s", m.selfName, message.Time))
			content.WriteString(right.Render(header) + "\n")

			wrapped := wordwrap.String(message.Text, bodyWidth)
			content.WriteString(right.Render(st.messageFromMe.Render(wrapped)) + "\n")
		} else {
			header := st.messageHeader.Render(fmt.Sprintf("%s • %s", m.chat.Name, message.Time))
			content.WriteString(header + "\n")

			wrapped := wordwrap.String(message.Text, bodyWidth)
			content.WriteString(st.messageOther.Render(wrapped) + "\n")
		}
	}

	m.viewport.SetContent(content.String())
}

func presence(chat models.Chat) string {
	if chat.IsOnline() {
		return "online"
	}
	return "last seen recently"
}

func (m ConversationModel) View() string {
	st := stylesFor(m.state.Dark())

	status := st.muted.Render(presence(m.chat))
	if m.chat.IsOnline() {
		status = st.online.Render(presence(m.chat))
	}
	s := st.selected.Render(fmt.Sprintf("%s %s", m.chat.Avatar, m.chat.Name)) + "  " + status + "\n\n"

	if m.err != nil {
		s += st.error.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	}

	s += m.viewport.View() + "\n"
	s += st.input.Render(m.input.View())
	return s
}

func (m ConversationModel) HelpText() string {
	scrollPercent := int(m.viewport.ScrollPercent() * 100)
	return fmt.Sprintf("enter: send • ↑↓/pgup/pgdown: scroll • esc: back • tab: sections • ctrl+t: theme • %d%%", scrollPercent)
}
