package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/automation"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/dispatch"
	"github.com/san-kum/algoviz/internal/export"
	"github.com/san-kum/algoviz/internal/logging"
	"github.com/san-kum/algoviz/internal/notify"
	"github.com/san-kum/algoviz/internal/server"
	"github.com/san-kum/algoviz/internal/store"
	"github.com/san-kum/algoviz/internal/structure"
	"github.com/san-kum/algoviz/internal/viz"
)

var (
	configFile string
	preset     string
	logLevel   string
	logFile    string
	seed       uint64
	input      string
	params     map[string]string
	speed      float64
	intervalMS int
	theme      string
	// export
	outFile     string
	currentStep int
	svgFile     string
	// plot
	minSize int
	maxSize int
	trials  int
	// serve
	addr string
	// batch
	outDir   string
	compress bool
	only     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "algoviz",
		Short:         "step-by-step algorithm player",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolve(cmd, nil)
			if err != nil {
				return err
			}
			log, closeLog, err := tuiLogger(cfg)
			if err != nil {
				return err
			}
			defer closeLog()
			return viz.RunInteractive(playerConfig(cfg, log))
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "random seed (0 uses the config seed)")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write TUI logs to this file")

	runFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&preset, "preset", "", "use preset configuration")
		c.Flags().StringVar(&input, "input", "", "comma-separated values instead of a random example")
		c.Flags().StringToStringVarP(&params, "param", "p", nil, "operation parameter, e.g. -p value=7")
	}

	playCmd := &cobra.Command{
		Use:   "play [kind] [operation]",
		Short: "play an operation in the terminal",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runPlay,
	}
	runFlags(playCmd)
	playCmd.Flags().Float64Var(&speed, "speed", 0, "playback speed factor")
	playCmd.Flags().IntVar(&intervalMS, "interval", 0, "milliseconds between steps at speed 1")

	traceCmd := &cobra.Command{
		Use:   "trace [kind] [operation]",
		Short: "print every step of an operation",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runTrace,
	}
	runFlags(traceCmd)

	plotCmd := &cobra.Command{
		Use:   "plot [kind] [operation]",
		Short: "plot step counts against input size",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runPlot,
	}
	runFlags(plotCmd)
	plotCmd.Flags().IntVar(&minSize, "min", 1, "smallest input size")
	plotCmd.Flags().IntVar(&maxSize, "max", structure.MaxArrayLen, "largest input size")
	plotCmd.Flags().IntVar(&trials, "trials", 5, "random inputs per size")

	exportCmd := &cobra.Command{
		Use:   "export [kind] [operation]",
		Short: "write an operation's trace to a file (.zst compresses)",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runExport,
	}
	runFlags(exportCmd)
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "trace.json", "output file")
	exportCmd.Flags().IntVar(&currentStep, "current", 0, "step index stored as the current step")
	exportCmd.Flags().StringVar(&svgFile, "svg", "", "also draw the current step as an SVG image")

	inspectCmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "summarise an exported trace",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the JSON API",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario globs...]",
		Short: "run scenario files and export their traces",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().StringVar(&outDir, "out", ".algoviz", "export directory")
	batchCmd.Flags().BoolVar(&compress, "compress", false, "zstd-compress exports")
	batchCmd.Flags().StringVar(&only, "only", "", "only run steps whose name matches this glob")

	listCmd := &cobra.Command{
		Use:   "list [kind]",
		Short: "list operations",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runList,
	}

	explainCmd := &cobra.Command{
		Use:   "explain [kind] [operation]",
		Short: "show pseudocode and complexity",
		Args:  cobra.ExactArgs(2),
		RunE:  runExplain,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [kind]",
		Short: "list available presets for a structure kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(structure.Kind(args[0]))
			if len(presets) == 0 {
				fmt.Printf("no presets for kind: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				cfg := config.GetPreset(structure.Kind(args[0]), p)
				fmt.Printf("  %-12s %s\n", p, cfg.Operation)
			}
			return nil
		},
	}

	rootCmd.AddCommand(playCmd, traceCmd, plotCmd, exportCmd, inspectCmd, serveCmd, batchCmd, listCmd, explainCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// resolve builds the effective configuration: defaults, then the config
// file, then a preset, then positional arguments and changed flags.
func resolve(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if len(args) > 0 {
		k, err := structure.ParseKind(args[0])
		if err != nil {
			return nil, err
		}
		cfg.Kind = k
	}
	if preset != "" {
		p := config.GetPreset(cfg.Kind, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Kind))
		}
		merged := *p
		merged.Playback, merged.Server, merged.LogLevel, merged.Theme = cfg.Playback, cfg.Server, cfg.LogLevel, cfg.Theme
		cfg = &merged
	}
	if len(args) > 1 {
		cfg.Operation = args[1]
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("input") {
		cfg.Input = input
	}
	if flags.Changed("param") {
		cfg.Params = params
	}
	if flags.Changed("speed") {
		cfg.Playback.Speed = speed
	}
	if flags.Changed("interval") {
		cfg.Playback.IntervalMS = intervalMS
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("addr") {
		cfg.Server.Addr = addr
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

// tuiLogger keeps log output off the terminal the TUI draws on.
func tuiLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	if logFile == "" {
		return logging.NewNop(), func() {}, nil
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	return logging.NewWriter(f, level), func() { f.Close() }, nil
}

func playerConfig(cfg *config.Config, log *slog.Logger) viz.PlayerConfig {
	return viz.PlayerConfig{
		Kind:      cfg.Kind,
		Operation: cfg.Operation,
		Params:    cfg.ParamMap(),
		Input:     cfg.Input,
		Seed:      cfg.Seed,
		Random:    cfg.Random,
		Interval:  cfg.Interval(),
		Speed:     cfg.Playback.Speed,
		Theme:     cfg.Theme,
		Log:       log,
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := resolve(cmd, args)
	if err != nil {
		return err
	}
	log, closeLog, err := tuiLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	return viz.RunPlayer(playerConfig(cfg, log))
}

// generate resolves the configuration and dispatches its operation once.
func generate(cmd *cobra.Command, args []string) (*config.Config, *dispatch.Result, error) {
	cfg, err := resolve(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	s, err := cfg.Structure()
	if err != nil {
		return nil, nil, err
	}
	d := dispatch.New(dispatch.WithLogger(log), dispatch.WithNotifier(notify.LogNotifier{Log: log}))
	res, err := d.Dispatch(cmd.Context(), cfg.Kind, cfg.Operation, s, cfg.ParamMap())
	if err != nil {
		return nil, nil, err
	}
	return cfg, res, nil
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, res, err := generate(cmd, args)
	if err != nil {
		return err
	}
	info, _ := algo.NewRegistry().Lookup(cfg.Kind, cfg.Operation)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tLINE\tVALUES\tDESCRIPTION")
	for i, st := range res.Steps.All() {
		line := "-"
		if st.LineIndex >= 0 && st.LineIndex < len(info.Pseudocode) {
			line = fmt.Sprintf("%d %s", st.LineIndex, info.Pseudocode[st.LineIndex])
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i, line, structure.FormatValues(st.Values()), st.Description)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	for _, l := range res.Log {
		fmt.Println(l)
	}
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := resolve(cmd, args)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	sweep := &automation.SizeSweep{
		Kind:      cfg.Kind,
		Operation: cfg.Operation,
		MinSize:   minSize,
		MaxSize:   maxSize,
		Trials:    trials,
		Seed:      cfg.Seed,
		Params:    cfg.ParamMap(),
	}
	results, err := automation.RunSweep(cmd.Context(), sweep, dispatch.New(dispatch.WithLogger(log)))
	if err != nil {
		return err
	}
	if len(results) < 2 {
		return errors.New("need at least two sizes to plot")
	}

	mean := make([]float64, len(results))
	worst := make([]float64, len(results))
	for i, r := range results {
		mean[i], worst[i] = r.Mean, float64(r.MaxSteps)
	}
	fmt.Println(asciigraph.PlotMany([][]float64{mean, worst},
		asciigraph.Height(12),
		asciigraph.Width(60),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red),
		asciigraph.Caption(fmt.Sprintf("%s steps, n=%d..%d (mean, worst)", cfg.Operation, results[0].Size, results[len(results)-1].Size)),
	))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, res, err := generate(cmd, args)
	if err != nil {
		return err
	}
	e := store.Export{Algorithm: res.Algorithm, Steps: res.Steps, CurrentStep: currentStep}
	if err := store.WriteFile(outFile, e); err != nil {
		return err
	}
	fmt.Printf("wrote %d steps to %s\n", len(res.Steps), outFile)

	if svgFile != "" {
		svg := export.StepSVG(res.Steps[currentStep], viz.GetTheme(cfg.Theme), 640, 400)
		if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote step %d to %s\n", currentStep, svgFile)
	}
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	e, err := store.ReadFile(args[0])
	if err != nil {
		return err
	}
	fp, err := e.Steps.Fingerprint()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "algorithm\t%s\n", e.Algorithm)
	fmt.Fprintf(w, "steps\t%d\n", len(e.Steps))
	fmt.Fprintf(w, "current\t%d\n", e.CurrentStep)
	fmt.Fprintf(w, "fingerprint\t%s\n", fp)
	if err := e.Steps.Validate(); err != nil {
		fmt.Fprintf(w, "valid\tno (%v)\n", err)
	} else {
		fmt.Fprintf(w, "valid\tyes\n")
	}
	if last, ok := e.Steps.Last(); ok {
		fmt.Fprintf(w, "final\t%s\n", last.Description)
	}
	return w.Flush()
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := resolve(cmd, args)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.New(server.WithLogger(log), server.WithRandom(cfg.Random)).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Server.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := resolve(cmd, nil)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	files, err := automation.Expand(args)
	if err != nil {
		return err
	}
	out := store.NewDir(outDir)
	if err := out.Init(); err != nil {
		return err
	}

	r := &automation.Runner{
		Dispatcher: dispatch.New(dispatch.WithLogger(log)),
		Out:        out,
		Compress:   compress,
		Only:       only,
		Log:        log,
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tSTEP\tOPERATION\tSTEPS\tRESULT")
	failed := 0
	for _, f := range files {
		sc, err := automation.LoadScenario(f)
		if err != nil {
			return err
		}
		results, err := r.RunScenario(cmd.Context(), sc)
		if err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
		for _, res := range results {
			status := "ok"
			if res.Err != nil {
				status = res.Err.Error()
			} else if res.Entry != nil {
				status = "saved " + res.Entry.File
			}
			fmt.Fprintf(w, "%s\t%s\t%s/%s\t%d\t%s\n", sc.Name, res.Name, res.Kind, res.Operation, res.Steps, status)
		}
		failed += automation.Failures(results)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d steps failed", failed)
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	reg := algo.NewRegistry()
	infos := reg.List()
	if len(args) == 1 {
		k, err := structure.ParseKind(args[0])
		if err != nil {
			return err
		}
		infos = reg.ForKind(k)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tOPERATION\tTITLE\tPARAMS\tCOMPLEXITY")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", info.Kind, info.Name, info.Title, strings.Join(info.Params, ","), info.Complexity)
	}
	return w.Flush()
}

func runExplain(cmd *cobra.Command, args []string) error {
	info, ok := algo.NewRegistry().Lookup(structure.Kind(args[0]), args[1])
	if !ok {
		return fmt.Errorf("%w: %s on %s", algo.ErrUnknownAlgorithm, args[1], args[0])
	}
	render, err := viz.NewMarkdownRenderer(80)
	if err != nil {
		return err
	}
	out, err := render(viz.Explain(info))
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
