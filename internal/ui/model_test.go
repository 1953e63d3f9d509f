package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/saravenpi/murmur/internal/app"
	"github.com/saravenpi/murmur/internal/models"
	"github.com/saravenpi/murmur/internal/seed"
	"github.com/saravenpi/murmur/internal/store"
)

var fixedNow = time.Date(2024, 3, 14, 9, 5, 0, 0, time.UTC)

func newTestModel(t *testing.T) Model {
	t.Helper()
	d, err := seed.Default()
	if err != nil {
		t.Fatalf("seed.Default() error = %v", err)
	}
	state := app.NewState(store.NewMemory(d), false)
	m := New(state, WithClock(func() time.Time { return fixedNow }))
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want ui.Model", next)
	}
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		m = update(t, m, msg)
	}
	return m
}

var (
	enter    = tea.KeyMsg{Type: tea.KeyEnter}
	esc      = tea.KeyMsg{Type: tea.KeyEsc}
	tab      = tea.KeyMsg{Type: tea.KeyTab}
	shiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	ctrlT    = tea.KeyMsg{Type: tea.KeyCtrlT}
	ctrlU    = tea.KeyMsg{Type: tea.KeyCtrlU}
	down     = tea.KeyMsg{Type: tea.KeyDown}
	space    = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestStartsOnChatList(t *testing.T) {
	m := newTestModel(t)

	if got := m.State().ActivePanel(); got != app.PanelChatList {
		t.Fatalf("ActivePanel() = %v, want chat list", got)
	}
	if got := len(m.chatList.Visible()); got != 7 {
		t.Errorf("visible chats = %d, want 7", got)
	}
	view := m.View()
	if !strings.Contains(view, "Анна Смирнова") {
		t.Errorf("View() missing first chat:\n%s", view)
	}
}

func TestPlaceholderSections(t *testing.T) {
	tests := []struct {
		key     string
		section models.Section
	}{
		{"2", models.SectionContacts},
		{"3", models.SectionCalls},
		{"4", models.SectionChannels},
		{"5", models.SectionGroups},
	}

	for _, tt := range tests {
		t.Run(tt.section.String(), func(t *testing.T) {
			m := press(t, newTestModel(t), runes(tt.key))

			if got := m.State().Section(); got != tt.section {
				t.Fatalf("Section() = %v, want %v", got, tt.section)
			}
			if got := m.State().ActivePanel(); got != app.PanelPlaceholder {
				t.Fatalf("ActivePanel() = %v, want placeholder", got)
			}
			view := m.View()
			if !strings.Contains(view, tt.section.Label()) {
				t.Errorf("View() missing label %q", tt.section.Label())
			}
			if !strings.Contains(view, underConstruction) {
				t.Errorf("View() missing %q", underConstruction)
			}
		})
	}
}

func TestSettingsSection(t *testing.T) {
	m := press(t, newTestModel(t), runes("6"))

	if got := m.State().ActivePanel(); got != app.PanelSettings {
		t.Fatalf("ActivePanel() = %v, want settings", got)
	}
	if strings.Contains(m.View(), underConstruction) {
		t.Error("settings rendered the placeholder")
	}
}

func TestTabCyclesSections(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, tab)
	if got := m.State().Section(); got != models.SectionContacts {
		t.Errorf("after tab Section() = %v, want contacts", got)
	}

	m = press(t, m, shiftTab, shiftTab)
	if got := m.State().Section(); got != models.SectionSettings {
		t.Errorf("after shift+tab twice Section() = %v, want settings", got)
	}

	m = press(t, m, tab)
	if got := m.State().Section(); got != models.SectionChats {
		t.Errorf("tab from settings Section() = %v, want chats", got)
	}
}

func TestOpenChatAndSend(t *testing.T) {
	m := press(t, newTestModel(t), down, enter)

	id, ok := m.State().SelectedChat()
	if !ok || id != 2 {
		t.Fatalf("SelectedChat() = %d, %v; want 2, true", id, ok)
	}
	if got := m.State().ActivePanel(); got != app.PanelConversation {
		t.Fatalf("ActivePanel() = %v, want conversation", got)
	}
	before := len(m.conversation.Messages())

	m = press(t, m, runes("Привет всем"), enter)

	msgs := m.conversation.Messages()
	if len(msgs) != before+1 {
		t.Fatalf("messages = %d, want %d", len(msgs), before+1)
	}
	last := msgs[len(msgs)-1]
	if last.Text != "Привет всем" || !last.FromMe || last.Time != "09:05" {
		t.Errorf("last message = %+v", last)
	}
	if m.State().Draft() != "" {
		t.Errorf("Draft() = %q, want empty", m.State().Draft())
	}
	if !strings.Contains(m.View(), "Привет всем") {
		t.Error("View() does not show the sent message")
	}

	chat, err := m.State().Chats()
	if err != nil {
		t.Fatalf("Chats() error = %v", err)
	}
	if chat[1].LastMessage != "Привет всем" {
		t.Errorf("preview = %q, want the sent text", chat[1].LastMessage)
	}
}

func TestBlankSendIsIgnored(t *testing.T) {
	m := press(t, newTestModel(t), enter)
	before := len(m.conversation.Messages())

	m = press(t, m, enter, runes("   "), enter)

	if got := len(m.conversation.Messages()); got != before {
		t.Errorf("messages = %d, want %d", got, before)
	}
}

func TestBackKeepsSection(t *testing.T) {
	m := press(t, newTestModel(t), enter, runes("черновик"), esc)

	if _, ok := m.State().SelectedChat(); ok {
		t.Error("chat still selected after esc")
	}
	if got := m.State().Section(); got != models.SectionChats {
		t.Errorf("Section() = %v, want chats", got)
	}
	if got := m.State().ActivePanel(); got != app.PanelChatList {
		t.Errorf("ActivePanel() = %v, want chat list", got)
	}
	if m.State().Draft() != "" {
		t.Errorf("Draft() = %q, want empty", m.State().Draft())
	}
}

func TestSectionChangeClosesChat(t *testing.T) {
	m := press(t, newTestModel(t), enter, tab)

	if _, ok := m.State().SelectedChat(); ok {
		t.Error("chat still selected after switching section")
	}
	if got := m.State().Section(); got != models.SectionContacts {
		t.Errorf("Section() = %v, want contacts", got)
	}
}

func TestDigitsTypeIntoConversation(t *testing.T) {
	m := press(t, newTestModel(t), enter, runes("3"))

	if got := m.State().Section(); got != models.SectionChats {
		t.Errorf("Section() = %v, want chats", got)
	}
	if got := m.State().Draft(); got != "3" {
		t.Errorf("Draft() = %q, want %q", got, "3")
	}
}

func TestToggleThemeTwice(t *testing.T) {
	m := newTestModel(t)
	start := m.State().Dark()

	m = press(t, m, ctrlT)
	if m.State().Dark() == start {
		t.Fatal("ctrl+t did not change the theme")
	}
	m = press(t, m, ctrlT)
	if m.State().Dark() != start {
		t.Error("ctrl+t twice did not restore the theme")
	}
}

func TestSearchFiltersChats(t *testing.T) {
	m := press(t, newTestModel(t), runes("/"), runes("ЕЛЕ"))

	visible := m.chatList.Visible()
	if len(visible) != 1 || visible[0].Name != "Елена" {
		t.Fatalf("visible = %+v, want only Елена", visible)
	}

	// q is part of the query while the field is focused
	m = press(t, m, runes("q"))
	if got := m.State().SearchQuery(); got != "ЕЛЕq" {
		t.Fatalf("SearchQuery() = %q, want %q", got, "ЕЛЕq")
	}
	if got := len(m.chatList.Visible()); got != 0 {
		t.Errorf("visible = %d, want 0 for %q", got, m.State().SearchQuery())
	}

	m = press(t, m, esc, esc)
	if got := len(m.chatList.Visible()); got != 7 {
		t.Errorf("after clearing visible = %d, want 7", got)
	}
}

func TestSettingsToggleTheme(t *testing.T) {
	m := press(t, newTestModel(t), runes("6"), enter)
	if !m.State().Dark() {
		t.Fatal("enter on dark mode did not switch to dark")
	}
	m = press(t, m, space)
	if m.State().Dark() {
		t.Error("space on dark mode did not switch back to light")
	}
}

func TestSettingsEditSelfName(t *testing.T) {
	m := press(t, newTestModel(t), runes("6"), runes("j"), enter, ctrlU, runes("Олег"))
	if !m.typing() {
		t.Fatal("settings not in edit mode")
	}

	next, cmd := m.Update(enter)
	m = next.(Model)
	if cmd == nil {
		t.Fatal("save returned no command")
	}
	m = update(t, m, cmd())

	if m.selfName != "Олег" || m.conversation.selfName != "Олег" {
		t.Errorf("self name = %q / %q, want Олег", m.selfName, m.conversation.selfName)
	}
	if m.typing() {
		t.Error("still editing after save")
	}
}

func TestSettingsRejectsEmptyName(t *testing.T) {
	m := press(t, newTestModel(t), runes("6"), runes("j"), enter, ctrlU, enter)

	if !errors.Is(m.settings.err, errNameRequired) {
		t.Errorf("settings error = %v, want errNameRequired", m.settings.err)
	}
	if !m.typing() {
		t.Error("edit mode closed on an empty name")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)

	if _, cmd := m.Update(runes("q")); !isQuit(cmd) {
		t.Error("q on the chat list did not quit")
	}

	m = press(t, m, enter, runes("q"))
	if got := m.State().Draft(); got != "q" {
		t.Errorf("Draft() = %q, want q typed into the input", got)
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC}); !isQuit(cmd) {
		t.Error("ctrl+c did not quit")
	}
}

func TestSectionSwitchEndsSearchInput(t *testing.T) {
	m := press(t, newTestModel(t), runes("/"), runes("ан"), tab, shiftTab)

	if m.chatList.Typing() || m.typing() {
		t.Fatal("search field still focused after leaving and returning to chats")
	}
	if got := m.State().SearchQuery(); got != "ан" {
		t.Errorf("SearchQuery() = %q, want the query kept", got)
	}
	if _, cmd := m.Update(runes("q")); !isQuit(cmd) {
		t.Error("q did not quit after returning to chats")
	}
}

func TestSectionSwitchCancelsNameEdit(t *testing.T) {
	m := press(t, newTestModel(t), runes("6"), runes("j"), enter, ctrlU, runes("Олег"), tab)
	if got := m.State().Section(); got != models.SectionChats {
		t.Fatalf("Section() = %v, want chats", got)
	}

	m = press(t, m, shiftTab)
	if m.settings.Typing() || m.typing() {
		t.Fatal("name edit still active after switching sections")
	}
	if m.selfName == "Олег" {
		t.Error("unsaved name was applied")
	}
}

func TestUnreadBadge(t *testing.T) {
	m := newTestModel(t)

	// Рабочая группа has five unread messages
	badge := stylesFor(false).badge
	item := chatItem{chat: m.chatList.Visible()[1], badge: badge}
	if !strings.Contains(item.Description(), badge.Render("5")) {
		t.Errorf("Description() = %q, want the unread count", item.Description())
	}
	if strings.Contains(item.Description(), "(5)") {
		t.Errorf("Description() = %q, want a badge instead of parentheses", item.Description())
	}
}
