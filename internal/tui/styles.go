package tui

import "github.com/charmbracelet/lipgloss"

// palette defines the semantic colors a theme provides.
type palette struct {
	Primary    lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

var palettes = map[string]palette{
	"dark": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"light": {
		Primary:    lipgloss.Color("#2e7de9"),
		Foreground: lipgloss.Color("#3760bf"),
		Muted:      lipgloss.Color("#848cb5"),
		Surface:    lipgloss.Color("#c4c8da"),
		Success:    lipgloss.Color("#587539"),
		Warning:    lipgloss.Color("#8c6c3e"),
		Error:      lipgloss.Color("#f52a65"),
	},
}

// styles holds the rendered lipgloss styles for one theme.
type styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Cursor   lipgloss.Style
	Done     lipgloss.Style
	Muted    lipgloss.Style
	Help     lipgloss.Style
	Warning  lipgloss.Style
	Critical lipgloss.Style
	Success  lipgloss.Style
	Badge    lipgloss.Style
	Panel    lipgloss.Style
	Toast    lipgloss.Style

	ToastCritical lipgloss.Style
}

func newStyles(theme string) styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes["dark"]
	}

	return styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Header:   lipgloss.NewStyle().Foreground(p.Foreground),
		Cursor:   lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Done:     lipgloss.NewStyle().Strikethrough(true).Foreground(p.Muted),
		Muted:    lipgloss.NewStyle().Foreground(p.Muted),
		Help:     lipgloss.NewStyle().Foreground(p.Muted),
		Warning:  lipgloss.NewStyle().Foreground(p.Warning),
		Critical: lipgloss.NewStyle().Bold(true).Foreground(p.Error),
		Success:  lipgloss.NewStyle().Foreground(p.Success),
		Badge:    lipgloss.NewStyle().Bold(true).Foreground(p.Error),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Surface).
			Padding(0, 1),
		Toast: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Warning).
			Padding(0, 1),
		ToastCritical: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Error).
			Padding(0, 1),
	}
}
