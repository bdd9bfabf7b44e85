package viz

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/experiment"
	"github.com/san-kum/algoviz/internal/logging"
	"github.com/san-kum/algoviz/internal/notify"
	"github.com/san-kum/algoviz/internal/player"
	"github.com/san-kum/algoviz/internal/random"
	"github.com/san-kum/algoviz/internal/structure"
)

// TickMsg carries a controller token back into the update loop.
type TickMsg struct {
	Token player.Token
}

// teaScheduler turns token requests into tea.Tick commands. Schedule is
// called from inside Update, so commands are collected and returned by the
// same Update call.
type teaScheduler struct {
	cmds []tea.Cmd
}

func (s *teaScheduler) Schedule(after time.Duration, tok player.Token) {
	s.cmds = append(s.cmds, tea.Tick(after, func(time.Time) tea.Msg { return TickMsg{Token: tok} }))
}

func (s *teaScheduler) flush() tea.Cmd {
	if len(s.cmds) == 0 {
		return nil
	}
	cmds := s.cmds
	s.cmds = nil
	return tea.Batch(cmds...)
}

type PlayerConfig struct {
	Kind      structure.Kind
	Operation string
	Params    map[string]any
	// Input replaces the random example when set.
	Input    string
	Seed     uint64
	Random   random.Options
	Interval time.Duration
	Speed    float64
	Theme    string
	Log      *slog.Logger
}

const (
	minSpeed = 0.25
	maxSpeed = 8
)

// Player plays one operation's trace in the terminal.
type Player struct {
	exp    *experiment.Experiment
	info   algo.Info
	cfg    PlayerConfig
	sched  *teaScheduler
	styles Styles
	log    *slog.Logger

	notice    *notify.Notification
	showChart bool
	width     int
	// embedded players return to the menu instead of quitting.
	embedded bool
	done     bool
}

func NewPlayer(cfg PlayerConfig) (*Player, error) {
	log := cfg.Log
	if log == nil {
		log = logging.NewNop()
	}
	p := &Player{
		cfg:       cfg,
		sched:     &teaScheduler{},
		styles:    NewStyles(GetTheme(cfg.Theme)),
		log:       log,
		showChart: cfg.Kind == structure.KindArray,
		width:     80,
	}
	notifier := notify.Multi{
		notify.Func(func(_ context.Context, n notify.Notification) { p.notice = &n }),
		notify.LogNotifier{Log: log},
	}
	ctrl := player.New(
		player.WithScheduler(p.sched),
		player.WithNotifier(notifier),
		player.WithLogger(log),
		player.WithBaseInterval(cfg.Interval),
	)
	if cfg.Speed > 0 {
		if err := ctrl.SetSpeed(cfg.Speed); err != nil {
			return nil, err
		}
	}

	exp, err := experiment.New(experiment.Config{Kind: cfg.Kind, Seed: cfg.Seed, Random: cfg.Random},
		experiment.WithController(ctrl),
		experiment.WithNotifier(notifier),
		experiment.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}
	info, ok := exp.Dispatcher().Registry().Lookup(cfg.Kind, cfg.Operation)
	if !ok {
		return nil, fmt.Errorf("%w: %s on %s", algo.ErrUnknownAlgorithm, cfg.Operation, cfg.Kind)
	}
	p.exp, p.info = exp, info

	ctx := context.Background()
	if cfg.Input != "" {
		if err := exp.Parse(ctx, cfg.Input); err != nil {
			return nil, err
		}
	} else if err := exp.Randomize(ctx, cfg.Operation); err != nil {
		return nil, err
	}
	if _, err := exp.Run(ctx, cfg.Operation, cfg.Params); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Player) Controller() *player.Controller { return p.exp.Controller() }

// Done reports whether an embedded player asked to return to the menu.
func (p *Player) Done() bool { return p.done }

func (p *Player) Init() tea.Cmd {
	p.Controller().Play()
	return p.sched.flush()
}

func (p *Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		p.Controller().Tick(msg.Token)
	case tea.WindowSizeMsg:
		p.width = msg.Width
	case tea.KeyMsg:
		if cmd := p.handleKey(msg); cmd != nil {
			return p, cmd
		}
	}
	return p, p.sched.flush()
}

func (p *Player) handleKey(msg tea.KeyMsg) tea.Cmd {
	ctrl := p.Controller()
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		ctrl.Pause()
		if p.embedded && msg.String() != "ctrl+c" {
			p.done = true
			return nil
		}
		p.exp.Close()
		return tea.Quit
	case " ":
		ctrl.Toggle()
	case "right", "l":
		ctrl.StepForward()
	case "left", "h":
		ctrl.StepBackward()
	case "home", "g":
		ctrl.JumpToStart()
	case "end", "G":
		ctrl.JumpToEnd()
	case "+", "=":
		_ = ctrl.SetSpeed(min(ctrl.Speed()*2, maxSpeed))
	case "-":
		_ = ctrl.SetSpeed(max(ctrl.Speed()/2, minSpeed))
	case "0":
		ctrl.Reset()
	case "c":
		p.showChart = !p.showChart
	case "t":
		p.styles = NewStyles(nextTheme(p.styles.Theme()))
	case "r":
		p.rerun()
	}
	return nil
}

// rerun draws a new example and runs the operation on it.
func (p *Player) rerun() {
	ctx := context.Background()
	if err := p.exp.Randomize(ctx, p.cfg.Operation); err != nil {
		p.log.Error("randomize failed", "error", err)
		return
	}
	if _, err := p.exp.Run(ctx, p.cfg.Operation, p.cfg.Params); err != nil {
		return
	}
	p.Controller().Play()
}

func (p *Player) View() string {
	s := p.styles
	ctrl := p.Controller()
	sess := ctrl.Session()

	var b strings.Builder
	b.WriteString("\n  " + s.Title.Render(strings.ToUpper(p.info.Title)) + "  " + s.Subtle.Render(p.info.Complexity) + "\n")
	b.WriteString("  " + s.State(ctrl.State()) + "  " + s.Subtle.Render("speed "+speedLabel(ctrl.Speed())))
	if sess != nil {
		b.WriteString("  " + s.ProgressBar(sess.Index, sess.Len(), 30) +
			s.Subtle.Render(fmt.Sprintf(" step %d/%d", sess.Index+1, sess.Len())))
	}
	b.WriteString("\n  " + s.Separator(min(p.width-4, 76)) + "\n\n")

	if st, ok := sess.Current(); ok {
		body := RenderStep(s, p.cfg.Kind, st, p.width/2)
		if p.showChart && len(st.Elements) > 1 && st.Graph == nil && st.Tree == nil {
			body += "\n\n" + RenderChart(st.Values(), 30, "values")
		}
		code := s.Panel.Render(RenderPseudocode(s, p.info.Pseudocode, st.LineIndex))
		b.WriteString(indent(lipgloss.JoinHorizontal(lipgloss.Top, body, "   ", code), "  "))
	} else {
		b.WriteString("  " + s.Subtle.Render("nothing to play"))
	}

	b.WriteString("\n\n")
	if p.notice != nil {
		b.WriteString("  " + s.Notice(*p.notice) + "\n")
	}
	b.WriteString("  " + s.Hints("space", "play/pause", "←/→", "step", "g/G", "start/end", "+/-", "speed", "r", "random", "t", "theme", "q", "back") + "\n")
	return b.String()
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// RunPlayer runs a standalone player until the user quits.
func RunPlayer(cfg PlayerConfig) error {
	p, err := NewPlayer(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(p, tea.WithAltScreen()).Run()
	return err
}
