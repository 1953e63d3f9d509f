package ui

import "github.com/charmbracelet/lipgloss"

type palette struct {
	primary lipgloss.Color
	accent  lipgloss.Color
	text    lipgloss.Color
	muted   lipgloss.Color
	border  lipgloss.Color
	fromMe  lipgloss.Color
	other   lipgloss.Color
	online  lipgloss.Color
	badgeFg lipgloss.Color
	error   lipgloss.Color
}

var (
	lightPalette = palette{
		primary: lipgloss.Color("25"),
		accent:  lipgloss.Color("33"),
		text:    lipgloss.Color("236"),
		muted:   lipgloss.Color("245"),
		border:  lipgloss.Color("153"),
		fromMe:  lipgloss.Color("26"),
		other:   lipgloss.Color("238"),
		online:  lipgloss.Color("34"),
		badgeFg: lipgloss.Color("231"),
		error:   lipgloss.Color("160"),
	}

	darkPalette = palette{
		primary: lipgloss.Color("213"),
		accent:  lipgloss.Color("117"),
		text:    lipgloss.Color("255"),
		muted:   lipgloss.Color("243"),
		border:  lipgloss.Color("60"),
		fromMe:  lipgloss.Color("111"),
		other:   lipgloss.Color("120"),
		online:  lipgloss.Color("46"),
		badgeFg: lipgloss.Color("16"),
		error:   lipgloss.Color("196"),
	}
)

type styles struct {
	palette palette

	title         lipgloss.Style
	selected      lipgloss.Style
	normal        lipgloss.Style
	muted         lipgloss.Style
	help          lipgloss.Style
	error         lipgloss.Style
	status        lipgloss.Style
	messageFromMe lipgloss.Style
	messageOther  lipgloss.Style
	messageHeader lipgloss.Style
	input         lipgloss.Style
	online        lipgloss.Style
	badge         lipgloss.Style
	navActive     lipgloss.Style
	navInactive   lipgloss.Style
	storyNew      lipgloss.Style
	storyViewed   lipgloss.Style
	panel         lipgloss.Style
}

func newStyles(p palette) styles {
	return styles{
		palette: p,

		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary).
			MarginBottom(1),

		selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary),

		normal: lipgloss.NewStyle().
			Foreground(p.text),

		muted: lipgloss.NewStyle().
			Foreground(p.muted),

		help: lipgloss.NewStyle().
			Foreground(p.muted).
			Italic(true),

		error: lipgloss.NewStyle().
			Foreground(p.error).
			Bold(true),

		status: lipgloss.NewStyle().
			Foreground(p.accent),

		messageFromMe: lipgloss.NewStyle().
			Foreground(p.fromMe).
			Align(lipgloss.Right),

		messageOther: lipgloss.NewStyle().
			Foreground(p.other),

		messageHeader: lipgloss.NewStyle().
			Foreground(p.muted).
			Italic(true),

		input: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),

		online: lipgloss.NewStyle().
			Foreground(p.online),

		badge: lipgloss.NewStyle().
			Foreground(p.badgeFg).
			Background(p.primary).
			Bold(true).
			Padding(0, 1),

		navActive: lipgloss.NewStyle().
			Foreground(p.badgeFg).
			Background(p.primary).
			Bold(true).
			Padding(0, 1),

		navInactive: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 1),

		storyNew: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),

		storyViewed: lipgloss.NewStyle().
			Foreground(p.muted),

		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),
	}
}

var (
	lightStyles = newStyles(lightPalette)
	darkStyles  = newStyles(darkPalette)
)

func stylesFor(dark bool) styles {
	if dark {
		return darkStyles
	}
	return lightStyles
}
