package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/saravenpi/murmur/internal/models"
)

const underConstruction = "Section under construction"

func placeholderView(section models.Section, st styles, width, height int) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		st.muted.Render(section.Icon()),
		"",
		st.title.Render(section.Label()),
		st.muted.Render(underConstruction),
	)
	if width <= 0 || height <= 0 {
		return body
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
