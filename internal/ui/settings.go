package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/saravenpi/murmur/internal/app"
)

var errNameRequired = errors.New("name is required")

type selfNameChangedMsg struct {
	name string
}

const (
	settingDarkMode = iota
	settingSelfName
	settingCount
)

// SettingsModel is the settings section: the dark mode switch and the
// display name used for own messages.
type SettingsModel struct {
	state     *app.State
	cursor    int
	nameInput textinput.Model
	selfName  string
	editing   bool
	err       error
}

func NewSettingsModel(state *app.State, selfName string) SettingsModel {
	nameInput := textinput.New()
	nameInput.Placeholder = "Display name"
	nameInput.CharLimit = 64
	nameInput.Width = 40

	return SettingsModel{
		state:     state,
		nameInput: nameInput,
		selfName:  selfName,
	}
}

func (m SettingsModel) Typing() bool {
	return m.editing
}

// Cancel drops an unsaved name edit.
func (m *SettingsModel) Cancel() {
	m.editing = false
	m.err = nil
	m.nameInput.Blur()
}

func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.editing {
		switch {
		case key.Matches(keyMsg, keys.Back):
			m.Cancel()
			return m, nil

		case key.Matches(keyMsg, keys.Open):
			name := strings.TrimSpace(m.nameInput.Value())
			if name == "" {
				m.err = errNameRequired
				return m, nil
			}
			m.editing = false
			m.err = nil
			m.selfName = name
			m.nameInput.Blur()
			return m, func() tea.Msg {
				return selfNameChangedMsg{name: name}
			}
		}

		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(keyMsg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < settingCount-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.Toggle):
		switch m.cursor {
		case settingDarkMode:
			m.state.ToggleTheme()
		case settingSelfName:
			m.editing = true
			m.nameInput.SetValue(m.selfName)
			m.nameInput.CursorEnd()
			return m, m.nameInput.Focus()
		}
	}
	return m, nil
}

func (m SettingsModel) View() string {
	st := stylesFor(m.state.Dark())

	var rows strings.Builder
	row := func(i int, label, value string) {
		cursor := "  "
		style := st.normal
		if m.cursor == i {
			cursor = "> "
			style = st.selected
		}
		rows.WriteString(style.Render(fmt.Sprintf("%s%-14s %s", cursor, label, value)) + "\n")
	}

	darkValue := "[ ] off"
	if m.state.Dark() {
		darkValue = "[x] on"
	}
	row(settingDarkMode, "Dark mode", darkValue)

	if m.editing {
		row(settingSelfName, "Display name", "")
		rows.WriteString("    " + m.nameInput.View() + "\n")
	} else {
		row(settingSelfName, "Display name", m.selfName)
	}

	var b strings.Builder
	b.WriteString(st.title.Render("⚙️ Settings") + "\n")
	b.WriteString(st.panel.Render(strings.TrimSuffix(rows.String(), "\n")) + "\n")

	if m.err != nil {
		b.WriteString("\n" + st.error.Render(fmt.Sprintf("Error: %v", m.err)) + "\n")
	}
	return b.String()
}

func (m SettingsModel) HelpText() string {
	if m.editing {
		return "enter: save • esc: cancel"
	}
	return "↑↓/jk: navigate • enter/space: toggle • tab/1-6: sections • ctrl+t: theme • q: quit"
}
