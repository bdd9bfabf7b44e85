package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/structure"
	"github.com/san-kum/algoviz/internal/trace"
)

var kindInfo = map[structure.Kind]string{
	structure.KindArray:      "sorting and searching",
	structure.KindLinkedList: "insert, delete, reverse",
	structure.KindStack:      "last in, first out",
	structure.KindQueue:      "first in, first out",
	structure.KindBinaryTree: "traversals and BST",
	structure.KindHashTable:  "buckets by value mod n",
	structure.KindGraph:      "BFS, DFS, shortest paths",
}

const (
	stateKinds = iota
	stateOps
	stateParams
	statePlay
)

// App is the interactive menu: structure, then operation, then parameters,
// then playback.
type App struct {
	state, cursor int
	base          PlayerConfig
	reg           *algo.Registry
	kinds         []structure.Kind
	ops           []algo.Info
	kind          structure.Kind
	op            algo.Info
	params        map[string]int
	paramNames    []string
	paramCursor   int
	editing       bool
	editBuf       string
	err           string
	player        *Player
	styles        Styles
	width, height int
}

// NewApp creates the menu. base supplies seed, timing, theme and logger for
// every player the menu starts.
func NewApp(base PlayerConfig) *App {
	return &App{
		state:  stateKinds,
		base:   base,
		reg:    algo.NewRegistry(),
		kinds:  structure.Kinds(),
		params: make(map[string]int),
		styles: NewStyles(GetTheme(base.Theme)),
		width:  80, height: 24,
	}
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		if a.player != nil {
			a.player.Update(msg)
		}
		return a, nil
	case tea.KeyMsg:
		return a, a.handleKey(msg)
	default:
		if a.state == statePlay {
			_, cmd := a.player.Update(msg)
			return a, cmd
		}
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch a.state {
	case stateKinds:
		return a.kindKey(msg)
	case stateOps:
		return a.opKey(msg)
	case stateParams:
		return a.paramKey(msg)
	case statePlay:
		_, cmd := a.player.Update(msg)
		if a.player.Done() {
			a.player, a.state = nil, stateOps
			return nil
		}
		return cmd
	}
	return nil
}

func (a *App) kindKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.kinds)-1 {
			a.cursor++
		}
	case "enter", " ":
		a.kind = a.kinds[a.cursor]
		a.ops = a.reg.ForKind(a.kind)
		a.state, a.cursor = stateOps, 0
	}
	return nil
}

func (a *App) opKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "q", "esc":
		a.state, a.cursor = stateKinds, 0
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.ops)-1 {
			a.cursor++
		}
	case "enter", " ":
		a.op = a.ops[a.cursor]
		a.paramNames = a.paramNames[:0]
		for _, name := range a.op.Params {
			a.paramNames = append(a.paramNames, strings.TrimSuffix(name, "?"))
		}
		a.err = ""
		if len(a.paramNames) == 0 {
			return a.start()
		}
		a.state, a.paramCursor = stateParams, 0
	}
	return nil
}

func (a *App) paramKey(msg tea.KeyMsg) tea.Cmd {
	name := a.paramNames[a.paramCursor]
	if a.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.Atoi(a.editBuf); err == nil {
				a.params[name] = v
			}
			a.editing, a.editBuf = false, ""
		case "esc":
			a.editing, a.editBuf = false, ""
		case "backspace":
			if len(a.editBuf) > 0 {
				a.editBuf = a.editBuf[:len(a.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 && (s[0] >= '0' && s[0] <= '9' || s[0] == '-') {
				a.editBuf += s
			}
		}
		return nil
	}
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "q", "esc":
		a.state = stateOps
	case "up", "k":
		if a.paramCursor > 0 {
			a.paramCursor--
		}
	case "down", "j":
		if a.paramCursor < len(a.paramNames)-1 {
			a.paramCursor++
		}
	case "enter", " ":
		a.editing, a.editBuf = true, strconv.Itoa(a.params[name])
	case "left", "h":
		a.params[name]--
	case "right", "l":
		a.params[name]++
	case "s":
		return a.start()
	}
	return nil
}

func (a *App) start() tea.Cmd {
	cfg := a.base
	cfg.Kind = a.kind
	cfg.Operation = a.op.Name
	cfg.Input = ""
	cfg.Params = make(map[string]any, len(a.paramNames))
	for _, name := range a.paramNames {
		cfg.Params[name] = a.params[name]
	}
	p, err := NewPlayer(cfg)
	if err != nil {
		a.err = err.Error()
		return nil
	}
	p.embedded, p.width = true, a.width
	p.styles = a.styles
	a.player, a.state = p, statePlay
	return p.Init()
}

func (a *App) View() string {
	switch a.state {
	case stateKinds:
		return a.viewKinds()
	case stateOps:
		return a.viewOps()
	case stateParams:
		return a.viewParams()
	case statePlay:
		return a.player.View()
	}
	return ""
}

func (a *App) header(title, sub string) string {
	s := a.styles
	return "\n\n    " + s.Title.Render(title) + "\n    " + s.Subtle.Render(sub) + "\n    " + s.Subtle.Render("─────────────────────────") + "\n\n"
}

func (a *App) line(selected bool, name, desc string) string {
	s := a.styles
	if selected {
		return fmt.Sprintf("    %s %s  %s\n", s.Key.Render("▸"), s.Selected.Render(fmt.Sprintf("%-16s", name)), s.Title.Render(desc))
	}
	return fmt.Sprintf("    %s  %s\n", s.Subtle.Render(fmt.Sprintf("  %-16s", name)), s.Subtle.Render(desc))
}

func (a *App) viewKinds() string {
	var b strings.Builder
	b.WriteString(a.header("ALGOVIZ", "algorithm step player"))
	for i, k := range a.kinds {
		b.WriteString(a.line(i == a.cursor, string(k), kindInfo[k]))
	}
	b.WriteString("\n    " + a.styles.Hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (a *App) viewOps() string {
	var b strings.Builder
	b.WriteString(a.header(strings.ToUpper(string(a.kind)), kindInfo[a.kind]))
	for i, info := range a.ops {
		b.WriteString(a.line(i == a.cursor, info.Name, info.Title+" "+info.Complexity))
	}
	if a.err != "" {
		b.WriteString("\n    " + a.styles.Status(trace.Removing, a.err) + "\n")
	}
	b.WriteString("\n    " + a.styles.Hints("j/k", "navigate", "enter", "run", "esc", "back") + "\n")
	return b.String()
}

func (a *App) viewParams() string {
	var b strings.Builder
	b.WriteString(a.header(strings.ToUpper(a.op.Title), a.op.Complexity))
	for i, name := range a.paramNames {
		val := fmt.Sprintf("%6d", a.params[name])
		if a.editing && i == a.paramCursor {
			val = fmt.Sprintf("%6s", a.editBuf+"_")
		}
		b.WriteString(a.line(i == a.paramCursor, name, val))
	}
	if a.err != "" {
		b.WriteString("\n    " + a.styles.Status(trace.Removing, a.err) + "\n")
	}
	b.WriteString("\n    " + a.styles.Hints("j/k", "select", "h/l", "adjust", "enter", "edit", "s", "start", "esc", "back") + "\n")
	return b.String()
}

func RunInteractive(base PlayerConfig) error {
	_, err := tea.NewProgram(NewApp(base), tea.WithAltScreen()).Run()
	return err
}
