package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/san-kum/algoviz/internal/algo"
)

// Explain describes an operation as markdown: parameters, complexity and
// numbered pseudocode matching the highlighted line indices.
func Explain(info algo.Info) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", info.Title)
	fmt.Fprintf(&b, "`%s` on **%s** (%s)\n\n", info.Name, info.Kind, info.Family)
	if info.Complexity != "" {
		fmt.Fprintf(&b, "Complexity: `%s`\n\n", info.Complexity)
	}
	if info.Mutates {
		b.WriteString("Changes the structure when applied.\n\n")
	}
	if len(info.Params) > 0 {
		b.WriteString("## Parameters\n\n")
		for _, p := range info.Params {
			name, optional := strings.CutSuffix(p, "?")
			if optional {
				fmt.Fprintf(&b, "- `%s` (optional)\n", name)
			} else {
				fmt.Fprintf(&b, "- `%s`\n", name)
			}
		}
		b.WriteString("\n")
	}
	b.WriteString("## Pseudocode\n\n```\n")
	for i, line := range info.Pseudocode {
		fmt.Fprintf(&b, "%2d  %s\n", i, line)
	}
	b.WriteString("```\n")
	return b.String()
}

// NewMarkdownRenderer returns a function that renders markdown for the
// terminal, detecting a light or dark background.
func NewMarkdownRenderer(width int) (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return r.Render, nil
}
