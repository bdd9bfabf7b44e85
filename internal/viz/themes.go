package viz

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/algoviz/internal/trace"
)

// Theme defines the color scheme for the TUI.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	// Status colors element, node and edge states. Missing entries fall
	// back to Text.
	Status map[trace.Status]lipgloss.Color
}

func (t Theme) StatusColor(s trace.Status) lipgloss.Color {
	if c, ok := t.Status[s]; ok {
		return c
	}
	return t.Text
}

var (
	ThemeDefault = Theme{
		Name:    "default",
		Primary: lipgloss.Color("#00cccc"),
		Text:    lipgloss.Color("#dddddd"),
		Muted:   lipgloss.Color("#666688"),
		Border:  lipgloss.Color("#444466"),
		Success: lipgloss.Color("#00ff88"),
		Warning: lipgloss.Color("#ffaa00"),
		Error:   lipgloss.Color("#ff4444"),
		Status: map[trace.Status]lipgloss.Color{
			trace.Comparing: lipgloss.Color("#ffcc00"),
			trace.Swapping:  lipgloss.Color("#ff4444"),
			trace.Sorted:    lipgloss.Color("#00ff88"),
			trace.Pivot:     lipgloss.Color("#ff00ff"),
			trace.Found:     lipgloss.Color("#00ff00"),
			trace.Visiting:  lipgloss.Color("#ffaa00"),
			trace.Visited:   lipgloss.Color("#5577aa"),
			trace.Current:   lipgloss.Color("#00ffff"),
			trace.Path:      lipgloss.Color("#00ff88"),
			trace.Added:     lipgloss.Color("#88ff88"),
			trace.Removing:  lipgloss.Color("#ff4444"),
			trace.Outside:   lipgloss.Color("#444455"),
			trace.Window:    lipgloss.Color("#ffcc00"),
			trace.Optimal:   lipgloss.Color("#ff88ff"),
			trace.Final:     lipgloss.Color("#00ff88"),
		},
	}

	ThemeRetro = Theme{
		Name:    "retro",
		Primary: lipgloss.Color("#00ff00"),
		Text:    lipgloss.Color("#00cc00"),
		Muted:   lipgloss.Color("#005500"),
		Border:  lipgloss.Color("#007700"),
		Success: lipgloss.Color("#88ff88"),
		Warning: lipgloss.Color("#ffff00"),
		Error:   lipgloss.Color("#ff0000"),
		Status: map[trace.Status]lipgloss.Color{
			trace.Comparing: lipgloss.Color("#ffff00"),
			trace.Swapping:  lipgloss.Color("#ff8800"),
			trace.Pivot:     lipgloss.Color("#ffffff"),
			trace.Visiting:  lipgloss.Color("#ffff00"),
			trace.Current:   lipgloss.Color("#ffffff"),
			trace.Removing:  lipgloss.Color("#ff8800"),
			trace.Window:    lipgloss.Color("#ffff00"),
			trace.Sorted:    lipgloss.Color("#88ff88"),
			trace.Path:      lipgloss.Color("#88ff88"),
			trace.Found:     lipgloss.Color("#88ff88"),
			trace.Outside:   lipgloss.Color("#003300"),
		},
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Text:    lipgloss.Color("#cccccc"),
		Muted:   lipgloss.Color("#888888"),
		Border:  lipgloss.Color("#555555"),
		Success: lipgloss.Color("#ffffff"),
		Warning: lipgloss.Color("#0088ff"),
		Error:   lipgloss.Color("#ff0000"),
		Status: map[trace.Status]lipgloss.Color{
			trace.Comparing: lipgloss.Color("#0088ff"),
			trace.Swapping:  lipgloss.Color("#0088ff"),
			trace.Current:   lipgloss.Color("#0088ff"),
			trace.Found:     lipgloss.Color("#ffffff"),
			trace.Path:      lipgloss.Color("#ffffff"),
			trace.Outside:   lipgloss.Color("#444444"),
		},
	}

	Themes = []Theme{ThemeDefault, ThemeRetro, ThemeMinimal}
)

// GetTheme returns a theme by name, falling back to the default theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDefault
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func nextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeDefault
}
