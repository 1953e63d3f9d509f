package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/saravenpi/murmur/internal/app"
	"github.com/saravenpi/murmur/internal/models"
)

// navBar is the section switcher pinned under the active panel.
type navBar struct {
	state *app.State
	width int
}

func newNavBar(state *app.State) navBar {
	return navBar{state: state, width: 80}
}

func (n *navBar) SetWidth(w int) {
	n.width = w
}

func sectionIndex(s models.Section) int {
	for i, sec := range models.Sections {
		if sec == s {
			return i
		}
	}
	return 0
}

// Update handles section switching keys. allowJump is false while the
// user is typing, so digits reach the text field instead.
func (n navBar) Update(msg tea.KeyMsg, allowJump bool) (handled bool) {
	count := len(models.Sections)
	current := sectionIndex(n.state.Section())

	switch {
	case key.Matches(msg, keys.NextSection):
		n.state.SelectSection(models.Sections[(current+1)%count])
		return true

	case key.Matches(msg, keys.PrevSection):
		n.state.SelectSection(models.Sections[(current-1+count)%count])
		return true

	case allowJump && key.Matches(msg, keys.JumpSection):
		i := int(msg.String()[0] - '1')
		if i >= 0 && i < count {
			n.state.SelectSection(models.Sections[i])
			return true
		}
	}
	return false
}

func (n navBar) View(st styles) string {
	tabs := make([]string, 0, len(models.Sections))
	for i, s := range models.Sections {
		label := fmt.Sprintf("%d %s %s", i+1, s.Icon(), s.Label())
		if s == n.state.Section() {
			tabs = append(tabs, st.navActive.Render(label))
		} else {
			tabs = append(tabs, st.navInactive.Render(label))
		}
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center, tabs...)
	if lipgloss.Width(bar) > n.width && n.width > 0 {
		// too narrow for labels, fall back to icons only
		var b strings.Builder
		for _, s := range models.Sections {
			style := st.navInactive
			if s == n.state.Section() {
				style = st.navActive
			}
			b.WriteString(style.Render(s.Icon()))
		}
		bar = b.String()
	}
	return lipgloss.PlaceHorizontal(n.width, lipgloss.Center, bar)
}
