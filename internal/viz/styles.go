package viz

import "github.com/charmbracelet/lipgloss"

// Styles are the lipgloss styles the sandbox view renders with, derived
// from one Theme.
type Styles struct {
	MenuBar      lipgloss.Style
	MenuTitle    lipgloss.Style
	MenuActive   lipgloss.Style
	MenuItem     lipgloss.Style
	MenuSelected lipgloss.Style
	MenuDisabled lipgloss.Style
	MenuDropdown lipgloss.Style
	KeyHint      lipgloss.Style

	Panel       lipgloss.Style
	Header      lipgloss.Style
	Subtle      lipgloss.Style
	ListCursor  lipgloss.Style
	MetricLabel lipgloss.Style
	MetricValue lipgloss.Style
	Running     lipgloss.Style
	Stopped     lipgloss.Style

	Modal      lipgloss.Style
	ModalTitle lipgloss.Style
	ErrorModal lipgloss.Style
	ErrorTitle lipgloss.Style
	FormError  lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		MenuBar:      lipgloss.NewStyle().Foreground(t.Text).Background(lipgloss.Color("#1a1a2e")),
		MenuTitle:    lipgloss.NewStyle().Padding(0, 1),
		MenuActive:   lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#000000")).Background(t.Secondary),
		MenuItem:     lipgloss.NewStyle().Foreground(t.Text),
		MenuSelected: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		MenuDisabled: lipgloss.NewStyle().Foreground(t.Muted),
		MenuDropdown: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Secondary).Padding(0, 1),
		KeyHint:      lipgloss.NewStyle().Foreground(t.Muted).Italic(true),

		Panel:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444466")),
		Header:      lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Subtle:      lipgloss.NewStyle().Foreground(t.Muted),
		ListCursor:  lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		MetricLabel: lipgloss.NewStyle().Foreground(t.Muted),
		MetricValue: lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		Running:     lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		Stopped:     lipgloss.NewStyle().Bold(true).Foreground(t.Warning),

		Modal:      lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(t.Secondary).Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().Bold(true).Foreground(t.Primary).MarginBottom(1),
		ErrorModal: lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(t.Error).Padding(1, 2),
		ErrorTitle: lipgloss.NewStyle().Bold(true).Foreground(t.Error).MarginBottom(1),
		FormError:  lipgloss.NewStyle().Foreground(t.Error),
	}
}
