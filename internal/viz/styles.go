package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/algoviz/internal/notify"
	"github.com/san-kum/algoviz/internal/player"
	"github.com/san-kum/algoviz/internal/trace"
)

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Title    lipgloss.Style
	Subtle   lipgloss.Style
	Panel    lipgloss.Style
	KeyHint  lipgloss.Style
	Key      lipgloss.Style
	Selected lipgloss.Style
	Code     lipgloss.Style
	CodeLine lipgloss.Style
	theme    Theme
}

func NewStyles(t Theme) Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Subtle:   lipgloss.NewStyle().Foreground(t.Muted),
		Panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1),
		KeyHint:  lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Key:      lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Selected: lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		Code:     lipgloss.NewStyle().Foreground(t.Muted),
		CodeLine: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		theme:    t,
	}
}

func (s Styles) Theme() Theme { return s.theme }

// Status renders text in the color of status st.
func (s Styles) Status(st trace.Status, text string) string {
	style := lipgloss.NewStyle().Foreground(s.theme.StatusColor(st))
	if st.Transient() {
		style = style.Bold(true)
	}
	return style.Render(text)
}

// State renders the playback state label.
func (s Styles) State(st player.State) string {
	c := s.theme.Muted
	switch st {
	case player.Playing:
		c = s.theme.Success
	case player.Paused:
		c = s.theme.Warning
	case player.Completed:
		c = s.theme.Primary
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c).Render(strings.ToUpper(st.String()))
}

// Notice renders a notification line.
func (s Styles) Notice(n notify.Notification) string {
	c := s.theme.Text
	switch n.Variant {
	case notify.VariantSuccess:
		c = s.theme.Success
	case notify.VariantDestructive:
		c = s.theme.Error
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(c).Render(n.Title)
	if n.Description == "" {
		return title
	}
	return title + " " + s.Subtle.Render(n.Description)
}

// Hints renders key/description pairs as a single help line.
func (s Styles) Hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(s.Key.Render(pairs[i]) + s.KeyHint.Render(" "+pairs[i+1]))
	}
	return b.String()
}

// ProgressBar renders playback progress for step index i of n.
func (s Styles) ProgressBar(i, n, width int) string {
	if n <= 1 || width <= 0 {
		return s.Subtle.Render(strings.Repeat("░", max(width, 0)))
	}
	filled := min(max(i*width/(n-1), 0), width)
	bar := lipgloss.NewStyle().Foreground(s.theme.Primary).Render(strings.Repeat("█", filled))
	return bar + s.Subtle.Render(strings.Repeat("░", width-filled))
}

func (s Styles) Separator(width int) string {
	mid := width / 2
	if mid < 3 {
		return ""
	}
	return s.Subtle.Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3))
}

func speedLabel(f float64) string {
	return fmt.Sprintf("%gx", f)
}
