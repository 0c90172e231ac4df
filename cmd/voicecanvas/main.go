package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/voicecanvas/internal/art"
	"github.com/san-kum/voicecanvas/internal/automation"
	"github.com/san-kum/voicecanvas/internal/config"
	"github.com/san-kum/voicecanvas/internal/gui"
	"github.com/san-kum/voicecanvas/internal/session"
	"github.com/san-kum/voicecanvas/internal/storage"
	"github.com/san-kum/voicecanvas/internal/viz"
)

var (
	dataDir     string
	configFile  string
	preset      string
	style       string
	source      string
	analyzerMd  string
	analyzerURL string
	width       int
	height      int
	fps         int
	seed        int64
	runName     string
	noSave      bool
	numRuns     int
	asJSON      bool
	themeName   string
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("voicecanvas: ")

	rootCmd := &cobra.Command{
		Use:   "voicecanvas",
		Short: "audio-reactive generative canvas",
		RunE:  runGUI,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario.yaml]",
		Short: "replay a scenario headless and store the canvas",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().Int64Var(&seed, "seed", 0, "override scenario seed")
	runCmd.Flags().StringVar(&style, "style", "", "override scenario style")
	runCmd.Flags().StringVar(&runName, "name", "", "run name (defaults to scenario name)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the result")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario.yaml]",
		Short: "replay a scenario once per style and compare metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepScenario,
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [scenario.yaml]",
		Short: "replay a scenario under several seeds and summarise metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  ensembleScenario,
	}
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 8, "number of seeds")
	ensembleCmd.Flags().Int64Var(&seed, "seed", 1, "first seed")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "live canvas in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&themeName, "theme", viz.ThemeNames()[0],
		"preview theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "live canvas in a window",
		RunE:  runGUI,
	}
	for _, c := range []*cobra.Command{rootCmd, liveCmd, guiCmd} {
		addSessionFlags(c)
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a run's volume and population",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id] [out.png]",
		Short: "export a run's canvas, or its data with --json",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportRun,
	}
	exportCmd.Flags().BoolVar(&asJSON, "json", false, "write metadata and frames as JSON to stdout")

	stylesCmd := &cobra.Command{
		Use:   "styles",
		Short: "list drawing styles",
		Run: func(cmd *cobra.Command, args []string) {
			for _, s := range art.Styles {
				fmt.Printf("%-14s %s\n", s, s.Description())
			}
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list session presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, s := range art.Styles {
				names := config.ListPresets(string(s))
				if len(names) > 0 {
					fmt.Printf("%-14s %s\n", s, strings.Join(names, ", "))
				}
			}
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [config.yaml]",
		Short: "write a config file with default values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err == nil {
				return fmt.Errorf("%s already exists", args[0])
			}
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, sweepCmd, ensembleCmd, liveCmd, guiCmd, listCmd, plotCmd, exportCmd, stylesCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSessionFlags(c *cobra.Command) {
	f := c.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "preset name, see 'presets' (requires --style)")
	f.StringVar(&style, "style", "", "drawing style")
	f.StringVar(&source, "source", "", "volume source: mic, synth or none")
	f.StringVar(&analyzerMd, "analyzer", "", "analyzer: websocket, cycle or none")
	f.StringVar(&analyzerURL, "url", "", "websocket analyzer url")
	f.IntVar(&width, "width", 0, "canvas width")
	f.IntVar(&height, "height", 0, "canvas height")
	f.IntVar(&fps, "fps", 0, "frame rate")
	f.Int64Var(&seed, "seed", 0, "random seed")
}

// loadConfig layers the config file or preset, then any flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case preset != "":
		p := config.GetPreset(style, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for style %q", preset, style)
		}
		cfg = p
	}

	f := cmd.Flags()
	if f.Changed("style") {
		s, err := art.ParseStyle(style)
		if err != nil {
			return nil, err
		}
		cfg.Style = string(s)
	}
	if f.Changed("source") {
		cfg.VolumeSource = source
	}
	if f.Changed("analyzer") {
		cfg.Analyzer.Mode = analyzerMd
	}
	if f.Changed("url") {
		cfg.Analyzer.URL = analyzerURL
	}
	if f.Changed("width") {
		cfg.Width = width
	}
	if f.Changed("height") {
		cfg.Height = height
	}
	if f.Changed("fps") {
		cfg.FPS = fps
	}
	if f.Changed("seed") {
		cfg.Seed = seed
	}
	if !cmd.Flags().Changed("data") && cfg.DataDir != "" {
		dataDir = cfg.DataDir
	}
	return cfg, cfg.Validate()
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		sc.Seed = seed
	}
	if style != "" {
		sc.Style = style
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	res, err := automation.RunScenario(ctx, sc)
	if err != nil {
		var stepErr *automation.StepError
		if errors.As(err, &stepErr) {
			return fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("scenario: %s\n", sc.Name)
	fmt.Printf("frames: %d in %v (seed %d)\n", res.Frames, elapsed.Round(time.Millisecond), res.Seed)
	printMetrics(res.Metrics)

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	status := res.Renderer.Status()
	meta := storage.RunMetadata{
		Name:    firstNonEmpty(runName, sc.Name),
		Source:  "scenario",
		Seed:    res.Seed,
		Style:   status.Style,
		Width:   status.Width,
		Height:  status.Height,
		FPS:     sc.FPS,
		Metrics: res.Metrics,
	}
	if status.HasAnalysis {
		a := status.Analysis
		meta.Analysis = &a
	}
	var img storage.PNGEncoder
	if status.Width > 0 && status.Height > 0 {
		img = res.Renderer
	}
	runID, err := st.Save(meta, res.Series, img)
	if err != nil {
		return err
	}
	fmt.Printf("saved: %s\n", runID)
	return nil
}

func sweepScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	results, err := automation.RunStyleSweep(cmd.Context(), sc, nil)
	if err != nil {
		return err
	}

	names := metricNames(results[0].Metrics)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "STYLE\t%s\n", strings.ToUpper(strings.Join(names, "\t")))
	for _, r := range results {
		fmt.Fprintf(w, "%s", r.Style)
		for _, n := range names {
			fmt.Fprintf(w, "\t%.2f", r.Metrics[n])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func ensembleScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if numRuns <= 0 {
		return fmt.Errorf("runs must be positive, got %d", numRuns)
	}
	results, err := automation.NewEnsemble(sc, numRuns, seed).Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s, %d runs from seed %d\n\n", sc.Name, len(results), seed)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tMIN\tMAX")
	for _, s := range automation.Summarize(results) {
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.3f\n", s.Name, s.Mean, s.Min, s.Max)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sess, err := session.New(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- sess.Run(ctx) }()

	p := tea.NewProgram(viz.NewModel(sess, storage.New(dataDir), themeName), tea.WithAltScreen())
	_, err = p.Run()
	cancel()
	if loopErr := <-done; err == nil {
		err = loopErr
	}
	return err
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sess, err := session.New(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- sess.Run(ctx) }()

	gui.NewApp(sess, storage.New(dataDir)).Run()
	cancel()
	return <-done
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTYLE\tTIME\tSIZE\tFRAMES\tSOURCE\tEMOTION")
	for _, run := range runs {
		emotion := "-"
		if run.Analysis != nil {
			emotion = string(run.Analysis.Emotion)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%s\t%s\n",
			run.ID,
			run.Style,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width, run.Height,
			run.Frames,
			run.Source,
			emotion,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("style: %s\n", meta.Style)
	fmt.Printf("frames: %d\n\n", len(frames))

	volume := make([]float64, len(frames))
	population := make([]float64, len(frames))
	for i, f := range frames {
		volume[i] = f.Volume
		population[i] = float64(f.Population)
	}

	fmt.Println(asciigraph.Plot(volume,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Caption("volume"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(population,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("particles"),
	))
	fmt.Println()
	printMetrics(meta.Metrics)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if asJSON {
		return st.ExportJSON(args[0], os.Stdout)
	}
	dst := args[0] + ".png"
	if len(args) > 1 {
		dst = args[1]
	}
	if err := st.ExportPNG(args[0], dst); err != nil {
		return err
	}
	fmt.Printf("exported %s\n", dst)
	return nil
}

func printMetrics(m map[string]float64) {
	if len(m) == 0 {
		return
	}
	fmt.Println("metrics:")
	for _, name := range metricNames(m) {
		fmt.Printf("  %-16s %.3f\n", name, m[name])
	}
}

func metricNames(m map[string]float64) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
