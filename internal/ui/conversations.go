package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/saravenpi/murmur/internal/app"
	"github.com/saravenpi/murmur/internal/models"
)

const (
	previewWidth   = 48
	storyNameWidth = 10
)

type chatItem struct {
	chat  models.Chat
	badge lipgloss.Style
}

func (i chatItem) Title() string {
	title := fmt.Sprintf("%s %s", i.chat.Avatar, i.chat.Name)
	if i.chat.IsOnline() {
		title += " ●"
	}
	return title
}

func (i chatItem) Description() string {
	preview := runewidth.Truncate(i.chat.LastMessage, previewWidth, "…")
	desc := fmt.Sprintf("%s • %s", i.chat.Time, preview)
	if n, ok := i.chat.Unread.Get(); ok {
		desc += "  " + i.badge.Render(fmt.Sprintf("%d", n))
	}
	return desc
}

func (i chatItem) FilterValue() string {
	return i.chat.Name
}

// ChatListModel is the chats section: search field, story strip and the
// filtered chat rows.
type ChatListModel struct {
	state        *app.State
	list         list.Model
	search       textinput.Model
	stories      []models.Story
	err          error
	dark         bool
	windowWidth  int
	windowHeight int
}

func newChatDelegate(st styles) list.DefaultDelegate {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(st.palette.primary).
		BorderForeground(st.palette.primary).
		Bold(true)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(st.palette.muted).
		BorderForeground(st.palette.primary)
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.
		Foreground(st.palette.text)
	delegate.Styles.NormalDesc = delegate.Styles.NormalDesc.
		Foreground(st.palette.muted)
	return delegate
}

func NewChatListModel(state *app.State) ChatListModel {
	search := textinput.New()
	search.Prompt = "🔍 "
	search.Placeholder = "Search"
	search.CharLimit = 100
	search.Width = 40

	l := list.New([]list.Item{}, newChatDelegate(stylesFor(state.Dark())), 80, 20)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	m := ChatListModel{
		state:        state,
		list:         l,
		search:       search,
		dark:         state.Dark(),
		windowWidth:  80,
		windowHeight: 30,
	}
	m.Refresh()
	return m
}

// Refresh reloads stories and the filtered rows from the state, keeping the
// cursor in range.
func (m *ChatListModel) Refresh() {
	if m.dark != m.state.Dark() {
		m.dark = m.state.Dark()
		m.list.SetDelegate(newChatDelegate(stylesFor(m.dark)))
	}

	stories, err := m.state.Stories()
	if err != nil {
		m.err = err
		return
	}
	m.stories = stories

	chats, err := m.state.FilteredChats()
	if err != nil {
		m.err = err
		return
	}
	m.err = nil

	badge := stylesFor(m.dark).badge
	items := make([]list.Item, len(chats))
	for i, chat := range chats {
		items[i] = chatItem{chat: chat, badge: badge}
	}
	index := m.list.Index()
	m.list.SetItems(items)
	switch {
	case len(items) == 0:
		m.list.Select(0)
	case index >= len(items):
		m.list.Select(len(items) - 1)
	}
}

func (m *ChatListModel) SetSize(width, height int) {
	m.windowWidth = width
	m.windowHeight = height
	m.search.Width = width - 8
	// search line, story strip and their spacing
	m.list.SetSize(width, height-6)
}

// Typing reports whether keystrokes belong to the search field.
func (m ChatListModel) Typing() bool {
	return m.search.Focused()
}

// Blur ends search input without touching the query.
func (m *ChatListModel) Blur() {
	m.search.Blur()
}

// Visible returns the chats currently shown, in order.
func (m ChatListModel) Visible() []models.Chat {
	items := m.list.Items()
	chats := make([]models.Chat, 0, len(items))
	for _, it := range items {
		if ci, ok := it.(chatItem); ok {
			chats = append(chats, ci.chat)
		}
	}
	return chats
}

func (m ChatListModel) Update(msg tea.Msg) (ChatListModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if m.search.Focused() {
		switch {
		case key.Matches(keyMsg, keys.Back), key.Matches(keyMsg, keys.Open):
			m.search.Blur()
			return m, nil
		}

		var cmd tea.Cmd
		m.search, cmd = m.search.Update(keyMsg)
		m.state.SetSearchQuery(m.search.Value())
		m.Refresh()
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, keys.Search):
		return m, m.search.Focus()

	case key.Matches(keyMsg, keys.Back):
		if m.search.Value() != "" {
			m.search.Reset()
			m.state.SetSearchQuery("")
			m.Refresh()
		}
		return m, nil

	case key.Matches(keyMsg, keys.Open):
		if item, ok := m.list.SelectedItem().(chatItem); ok {
			if err := m.state.SelectChat(item.chat.ID); err != nil {
				m.err = err
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(keyMsg)
	return m, cmd
}

func (m ChatListModel) storiesView(st styles) string {
	cells := make([]string, 0, len(m.stories))
	for _, s := range m.stories {
		name := runewidth.Truncate(s.Name, storyNameWidth, "…")
		style := st.storyNew
		ring := "◉"
		if s.Viewed {
			style = st.storyViewed
			ring = "○"
		}
		cells = append(cells, style.Render(fmt.Sprintf("%s %s %s", ring, s.Avatar, name)))
	}
	return strings.Join(cells, "  ")
}

func (m ChatListModel) View() string {
	st := stylesFor(m.state.Dark())

	var b strings.Builder
	b.WriteString(m.search.View() + "\n\n")

	if len(m.stories) > 0 {
		strip := m.storiesView(st)
		if m.windowWidth > 0 {
			strip = lipgloss.NewStyle().MaxWidth(m.windowWidth).Render(strip)
		}
		b.WriteString(strip + "\n\n")
	}

	if m.err != nil {
		b.WriteString(st.error.Render(fmt.Sprintf("Error: %v", m.err)) + "\n")
	}

	if len(m.list.Items()) > 0 {
		b.WriteString(m.list.View())
	}
	return b.String()
}

func (m ChatListModel) HelpText() string {
	if m.search.Focused() {
		return "type to filter • enter/esc: done"
	}
	return "↑↓/jk: navigate • enter: open • /: search • tab/1-6: sections • ctrl+t: theme • q: quit"
}
