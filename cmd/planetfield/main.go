package main

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/planetfield/internal/config"
	"github.com/san-kum/planetfield/internal/export"
	"github.com/san-kum/planetfield/internal/gui"
	"github.com/san-kum/planetfield/internal/host"
	"github.com/san-kum/planetfield/internal/host/ebitenhost"
	"github.com/san-kum/planetfield/internal/layer"
	"github.com/san-kum/planetfield/internal/logging"
	"github.com/san-kum/planetfield/internal/metrics"
	"github.com/san-kum/planetfield/internal/planets"
	"github.com/san-kum/planetfield/internal/sim"
	"github.com/san-kum/planetfield/internal/storage"
	"github.com/san-kum/planetfield/internal/tui"
	"github.com/san-kum/planetfield/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir       string
	configFile    string
	preset        string
	logLevel      string
	reducedMotion string
	coarsePointer string
	seed          int64

	// headless output
	width   int
	height  int
	dpr     float64
	frames  int
	every   int
	delay   int
	samples int
	runs    int
)

// main registers the commands and runs the raylib window when no
// subcommand is given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:               "planetfield",
		Short:             "procedural animated planets background",
		PersistentPreRunE: setupLogging,
		RunE:              runGUI,
		SilenceUsage:      true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&dataDir, "data", ".planetfield", "data directory")
	flags.StringVar(&configFile, "config", "", "config file path (yaml)")
	flags.StringVar(&preset, "preset", "", "use preset configuration")
	flags.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.StringVar(&reducedMotion, "reduced-motion", "", "override reduced motion (auto, on, off)")
	flags.StringVar(&coarsePointer, "coarse-pointer", "", "override pointer detection (auto, on, off)")
	flags.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "show the layer in a raylib window",
		RunE:  runGUI,
	}

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "show the layer in an ebiten window",
		RunE:  runWindow,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "preview the layer in the terminal",
		RunE:  runTUI,
	}

	renderCmd := &cobra.Command{
		Use:   "render [out.png|out.svg]",
		Short: "render one headless frame",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderFrame,
	}
	headlessFlags(renderCmd, 1)

	recordCmd := &cobra.Command{
		Use:   "record [out.gif]",
		Short: "record headless frames to a gif and store a run trace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  recordRun,
	}
	headlessFlags(recordCmd, 120)
	recordCmd.Flags().IntVar(&every, "every", 10, "trace every n-th frame")
	recordCmd.Flags().IntVar(&delay, "delay", 2, "gif frame delay (1/100 s)")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run seeded headless layers in parallel and compare metrics",
		RunE:  runEnsemble,
	}
	headlessFlags(ensembleCmd, 600)
	ensembleCmd.Flags().IntVar(&runs, "runs", 8, "number of runs")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id] [out.svg]",
		Short: "plot the body paths of a run",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  plotRun,
	}

	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "generate bodies and print population statistics",
		RunE:  sampleBodies,
	}
	sampleCmd.Flags().IntVar(&samples, "n", 1000, "bodies to generate")
	sampleCmd.Flags().IntVar(&width, "width", 0, "viewport width (default from config)")
	sampleCmd.Flags().IntVar(&height, "height", 0, "viewport height (default from config)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(guiCmd, windowCmd, tuiCmd, renderCmd, recordCmd, ensembleCmd, listCmd, exportCmd, plotCmd, sampleCmd, presetsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func headlessFlags(cmd *cobra.Command, defFrames int) {
	cmd.Flags().IntVar(&width, "width", 0, "viewport width (default from config)")
	cmd.Flags().IntVar(&height, "height", 0, "viewport height (default from config)")
	cmd.Flags().Float64Var(&dpr, "dpr", 1, "device pixel ratio")
	cmd.Flags().IntVar(&frames, "frames", defFrames, "frames to simulate")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logging.ParseLevel(logLevel)})
	logging.SetLogger(slog.New(h))
	return nil
}

// loadConfig layers defaults, preset, config file and flags, in that order.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	switch reducedMotion {
	case "":
	case config.Auto, config.On, config.Off:
		cfg.ReducedMotion = reducedMotion
	default:
		return nil, fmt.Errorf("--reduced-motion: want auto, on or off, got %q", reducedMotion)
	}
	switch coarsePointer {
	case "":
	case config.Auto:
		cfg.Pointer = config.Auto
	case config.On:
		cfg.Pointer = config.Coarse
	case config.Off:
		cfg.Pointer = config.Fine
	default:
		return nil, fmt.Errorf("--coarse-pointer: want auto, on or off, got %q", coarsePointer)
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if width > 0 {
		cfg.Width = width
	}
	if height > 0 {
		cfg.Height = height
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func layerOptions(cfg *config.Config) []layer.Option {
	opts := []layer.Option{layer.WithLogger(logging.Logger())}
	if cfg.Seed != 0 {
		opts = append(opts, layer.WithRand(rand.New(rand.NewSource(cfg.Seed))))
	}
	return opts
}

// detected reports what this platform can tell about the user.
func detected() host.Preferences {
	return host.Preferences{CoarsePointer: config.TouchPlatform()}
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return gui.Run(cfg, detected(), layerOptions(cfg)...)
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return ebitenhost.Run(cfg, detected(), layerOptions(cfg)...)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return tui.Run(cfg, detected(), layerOptions(cfg)...)
}

func headlessOptions(cfg *config.Config) sim.Options {
	return sim.Options{
		Width:  float64(cfg.Width),
		Height: float64(cfg.Height),
		DPR:    dpr,
		Frames: frames,
		Prefs:  detected(),
	}
}

func renderFrame(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := "planetfield.png"
	if len(args) > 0 {
		out = args[0]
	}

	opts := headlessOptions(cfg)
	opts.Frames = max(frames, 1)
	res, err := sim.Run(cmd.Context(), cfg, opts, layer.WithLogger(logging.Logger()))
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(out), ".svg") {
		doc := export.FrameToSVG(res.Final, res.Surface.Width, res.Surface.Height, cfg.Background)
		if err := os.WriteFile(out, []byte(doc), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", out)
		return nil
	}
	if res.Last == nil {
		return fmt.Errorf("no frame rendered")
	}
	if err := viz.SavePNG(out, res.Last); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%dx%d)\n", out, res.Last.Rect.Dx(), res.Last.Rect.Dy())
	return nil
}

func recordRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := "planetfield.gif"
	if len(args) > 0 {
		out = args[0]
	}

	rec := viz.NewRecorder(delay, 0)
	trace := storage.NewTrace(every)
	opts := headlessOptions(cfg)
	opts.Sink = func(f *image.RGBA) { rec.Add(f) }
	opts.Observers = []metrics.Observer{trace}

	start := time.Now()
	res, err := sim.Run(cmd.Context(), cfg, opts, layer.WithLogger(logging.Logger()))
	if err != nil {
		return err
	}
	logging.Logger().Info("recorded frames", "frames", rec.Len(), "elapsed", time.Since(start))

	if err := rec.SaveGIF(out); err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Preset:  preset,
		Seed:    cfg.Seed,
		Width:   res.Surface.Width,
		Height:  res.Surface.Height,
		Ratio:   res.Surface.Ratio,
		Frames:  res.Frames,
		Config:  *cfg,
		Metrics: res.Metrics,
	}, res.Initial, trace)
	if err != nil {
		return err
	}

	fmt.Printf("wrote %s (%d frames), run %s\n", out, rec.Len(), runID)
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	seedStart := cfg.Seed
	if seedStart == 0 {
		seedStart = time.Now().UnixNano()
	}

	start := time.Now()
	results, err := sim.NewEnsemble(cfg, runs, seedStart).Run(cmd.Context(), headlessOptions(cfg))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tBODIES\tWRAPS/FRAME\tDRIFT\tCOVERAGE")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%.3f\t%.4f\t%.3f\n",
			r.Seed, len(r.Final), r.Metrics["wrap_rate"], r.Metrics["mean_drift"], r.Metrics["coverage"])
	}
	fmt.Fprintf(w, "mean\t\t%.3f\t%.4f\t%.3f\n",
		sim.Mean(results, "wrap_rate"), sim.Mean(results, "mean_drift"), sim.Mean(results, "coverage"))
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("%d runs x %d frames in %s\n", len(results), frames, time.Since(start).Round(time.Millisecond))
	return nil
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tFRAMES\tBODIES\tSIZE\tWRAPS/FRAME")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.0fx%.0f@%.2g\t%.3f\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Bodies,
			run.Width, run.Height, run.Ratio,
			run.Metrics["wrap_rate"],
		)
	}

	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).Export(args[0], os.Stdout)
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	out := runID + ".svg"
	if len(args) > 1 {
		out = args[1]
	}

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	doc := export.TraceToSVG(trace, meta.Width, meta.Height, "#00ccff")
	if doc == "" {
		return fmt.Errorf("run %s has too few trace samples to plot", runID)
	}
	if err := os.WriteFile(out, []byte(doc), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d samples)\n", out, len(trace))
	return nil
}

func sampleBodies(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var rng planets.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}
	gen := planets.NewGenerator(rng, cfg.PaletteSet())
	gen.SetRingProbability(cfg.RingProbability)
	w, h := float64(cfg.Width), float64(cfg.Height)

	bodies := gen.Populate(samples, cfg.MinSize, cfg.MaxSize, cfg.Speed, w, h)
	fmt.Println(viz.Report(viz.Summarize(bodies), cfg.MinSize, cfg.MaxSize))

	n := planets.PopulationSize(cfg.Count, cfg.ResolveReducedMotion(false))
	canvas := viz.NewCanvas(60, 15)
	canvas.Plot(gen.Populate(n, cfg.MinSize, cfg.MaxSize, cfg.Speed, w, h), w, h)
	fmt.Println(viz.Subtle.Render(fmt.Sprintf("one layer of %d bodies in %.0fx%.0f", n, w, h)))
	fmt.Print(canvas.String())
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tCOUNT\tSIZE\tSPEED\tPARALLAX\tRINGS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.0f-%.0f\t%.3f\t%.0f\t%.0f%%\n",
			name, p.Count, p.MinSize, p.MaxSize, p.Speed, p.Parallax, p.RingProbability*100)
	}
	return w.Flush()
}
