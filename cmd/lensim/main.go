package main

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/lensim/internal/analysis"
	"github.com/san-kum/lensim/internal/automation"
	"github.com/san-kum/lensim/internal/config"
	"github.com/san-kum/lensim/internal/export"
	"github.com/san-kum/lensim/internal/gui"
	"github.com/san-kum/lensim/internal/lens"
	"github.com/san-kum/lensim/internal/render"
	"github.com/san-kum/lensim/internal/storage"
	"github.com/san-kum/lensim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool

	// Lens parameters
	mass        float64
	spread      float64
	wallDensity float64
	wallWidth   float64
	hswDeltaC   float64
	hswRs       float64
	hswAlpha    float64
	hswBeta     float64

	// Frame
	width      int
	height     int
	layers     int
	centerX    float64
	centerY    float64
	brightness float64
	seed       int64
	sources    []string
	overlay    bool

	// HSW table
	tableBins  int
	tableSteps int

	// Outputs
	outFile   string
	svgFile   string
	csvFile   string
	jsonFile  string
	gifFile   string
	sceneGIF  string
	saveRun   bool
	rMax      float64
	samples   int
	probes    int
	numSteps  int
	gifDelay  int
	trials    int
	perturb   float64
	theme     string
	threshold float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lensim",
		Short: "real-time gravitational lensing visualizer",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				lens.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the interactive GUI when no command is given
			opts, err := guiOptions(cmd, "")
			if err != nil {
				return err
			}
			opts.Interactive = true
			return gui.Run(opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".lensim", "snapshot directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")
	addLensFlags(rootCmd)
	addFrameFlags(rootCmd)

	renderCmd := &cobra.Command{
		Use:   "render [model]",
		Short: "render one lensed frame to png",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderFrame,
	}
	addLensFlags(renderCmd)
	addFrameFlags(renderCmd)
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "frame.png", "output png")
	renderCmd.Flags().BoolVar(&overlay, "overlay", false, "draw lens markers and caption")
	renderCmd.Flags().BoolVar(&saveRun, "save", false, "also store a snapshot in the data directory")

	profileCmd := &cobra.Command{
		Use:   "profile [model]",
		Short: "radial deflection profile",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotProfile,
	}
	addLensFlags(profileCmd)
	addTableFlags(profileCmd)
	profileCmd.Flags().Float64Var(&rMax, "r-max", 1.0, "largest radius (frame heights)")
	profileCmd.Flags().IntVar(&samples, "samples", 200, "radii sampled")
	profileCmd.Flags().StringVar(&svgFile, "svg", "", "write the profile as svg")
	profileCmd.Flags().StringVar(&csvFile, "csv", "", "write the profile as csv")
	profileCmd.Flags().StringVar(&jsonFile, "json", "", "write profile and parameters as json")

	tableCmd := &cobra.Command{
		Use:   "table",
		Short: "build and inspect an hsw lookup table",
		Args:  cobra.NoArgs,
		RunE:  inspectTable,
	}
	addLensFlags(tableCmd)
	addTableFlags(tableCmd)
	tableCmd.Flags().StringVar(&csvFile, "csv", "", "write the table as csv")

	sweepCmd := &cobra.Command{
		Use:   "sweep [model] [param] [min] [max]",
		Short: "sweep one slider and report the deflection peak",
		Args:  cobra.ExactArgs(4),
		RunE:  runSweep,
	}
	addLensFlags(sweepCmd)
	addFrameFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&numSteps, "steps", 10, "number of sweep steps")
	sweepCmd.Flags().StringVar(&gifFile, "gif", "", "render every step into an animated gif")
	sweepCmd.Flags().IntVar(&gifDelay, "delay", 10, "gif frame delay (1/100 s)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "render a yaml scenario of lens keyframes",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	addFrameFlags(scenarioCmd)
	scenarioCmd.Flags().StringVar(&sceneGIF, "gif", "scenario.gif", "output gif")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [model]",
		Short: "perturb sliders at random and check the deflection bound",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMonteCarlo,
	}
	addLensFlags(monteCarloCmd)
	addTableFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 100, "number of trials")
	monteCarloCmd.Flags().IntVar(&probes, "samples", 1000, "probes per trial")
	monteCarloCmd.Flags().Float64Var(&perturb, "perturb", 0.2, "slider perturbation")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 1, "random seed")

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "live lens view in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addLensFlags(liveCmd)
	addFrameFlags(liveCmd)
	liveCmd.Flags().StringVar(&theme, "theme", "deepfield", fmt.Sprintf("color theme %v", viz.ThemeNames()))
	liveCmd.Flags().Float64Var(&threshold, "threshold", 0.3, "star luminance threshold")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "terminal model picker",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := liveOptions(cmd, "")
			if err != nil {
				return err
			}
			return viz.RunInteractive(opts)
		},
	}

	guiCmd := &cobra.Command{
		Use:   "gui [model]",
		Short: "real-time lens window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := guiOptions(cmd, modelArg(args))
			if err != nil {
				return err
			}
			return gui.Run(opts)
		},
	}
	addLensFlags(guiCmd)
	addFrameFlags(guiCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored snapshots",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored snapshot to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRunJSON,
	}

	rootCmd.AddCommand(renderCmd, profileCmd, tableCmd, sweepCmd, scenarioCmd, monteCarloCmd, liveCmd, tuiCmd, guiCmd, presetsCmd, listCmd, showCmd, exportJSONCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addLensFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&mass, "mass", 1.0, "mass slider (0-2)")
	cmd.Flags().Float64Var(&spread, "spread", 1.0, "spread slider (0-2)")
	cmd.Flags().Float64Var(&wallDensity, "wall-density", 0.3, "void wall density contrast")
	cmd.Flags().Float64Var(&wallWidth, "wall-width", 0.3, "void wall width")
	cmd.Flags().Float64Var(&hswDeltaC, "hsw-delta-c", -0.8, "hsw central density contrast")
	cmd.Flags().Float64Var(&hswRs, "hsw-rs", 0.9, "hsw scale radius")
	cmd.Flags().Float64Var(&hswAlpha, "hsw-alpha", 4.0, "hsw inner slope")
	cmd.Flags().Float64Var(&hswBeta, "hsw-beta", 15.0, "hsw outer slope")
}

func addFrameFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "frame width")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "frame height")
	cmd.Flags().IntVar(&layers, "layers", config.DefaultLayers, "layer count (single source)")
	cmd.Flags().Float64Var(&centerX, "cx", 0.5, "lens center x (0-1)")
	cmd.Flags().Float64Var(&centerY, "cy", 0.5, "lens center y (0-1)")
	cmd.Flags().Float64Var(&brightness, "brightness", 1.0, "layer brightness")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "starfield seed")
	cmd.Flags().StringSliceVar(&sources, "source", nil, "background image, one per layer")
}

func addTableFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&tableBins, "bins", lens.DefaultTableBins, "hsw table bins")
	cmd.Flags().IntVar(&tableSteps, "steps", lens.DefaultTableSteps, "hsw line-of-sight steps")
}

func modelArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// loadConfig resolves defaults, then preset, then config file, then any
// flags the user set explicitly.
func loadConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		name := model
		if name == "" {
			name = cfg.Model
		}
		p, err := config.LookupPreset(name, preset)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets(name))
		}
		cfg = p
	}

	// Config file overrides preset
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if model != "" {
		cfg.Model = model
	}

	// CLI flags override config
	flags := cmd.Flags()
	setFloat := func(name string, dst *float64, v float64) {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			*dst = v
		}
	}
	setInt := func(name string, dst *int, v int) {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			*dst = v
		}
	}

	setFloat("mass", &cfg.Lens.Mass, mass)
	setFloat("spread", &cfg.Lens.Spread, spread)
	setFloat("wall-density", &cfg.Lens.WallDensity, wallDensity)
	setFloat("wall-width", &cfg.Lens.WallWidth, wallWidth)
	setFloat("hsw-delta-c", &cfg.Lens.HSW.DeltaC, hswDeltaC)
	setFloat("hsw-rs", &cfg.Lens.HSW.Rs, hswRs)
	setFloat("hsw-alpha", &cfg.Lens.HSW.Alpha, hswAlpha)
	setFloat("hsw-beta", &cfg.Lens.HSW.Beta, hswBeta)

	setInt("width", &cfg.Render.Width, width)
	setInt("height", &cfg.Render.Height, height)
	setInt("layers", &cfg.Render.Layers, layers)
	setFloat("cx", &cfg.Render.CenterX, centerX)
	setFloat("cy", &cfg.Render.CenterY, centerY)
	setFloat("brightness", &cfg.Render.Brightness, brightness)
	if flags.Lookup("seed") != nil && flags.Changed("seed") {
		cfg.Render.Seed = seed
	}
	if flags.Lookup("source") != nil && flags.Changed("source") {
		cfg.Render.Sources = sources
	}

	setInt("bins", &cfg.Table.Bins, tableBins)
	setInt("steps", &cfg.Table.Steps, tableSteps)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newSession applies the config's lens parameters to a fresh session.
func newSession(cfg *config.Config) (*lens.Session, error) {
	p, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	return lens.NewSession(p, cfg.TableConfig())
}

func renderFrame(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, modelArg(args))
	if err != nil {
		return err
	}
	session, err := newSession(cfg)
	if err != nil {
		return err
	}
	r, err := cfg.Renderer()
	if err != nil {
		return err
	}

	p := session.Params()
	img := r.Render(session.Evaluator(), cfg.Center())
	if overlay || cfg.Render.Overlay {
		o := render.DefaultOverlay()
		o.Caption = fmt.Sprintf("%s  mass=%.2f  spread=%.2f", p.Model, p.Mass, p.Spread)
		render.DrawOverlay(img, r, p, cfg.Center(), o)
	}

	if err := automation.SavePNG(outFile, img); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%dx%d, %s, %d layers)\n", outFile, cfg.Render.Width, cfg.Render.Height, p.Model, r.Compositor().LayerCount())

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(storage.Snapshot{
			Params:  p,
			Frame:   img,
			Profile: analysis.RadialProfile(session.Evaluator(), 1.0, 200),
			Layers:  r.Compositor().LayerCount(),
			Seed:    cfg.Render.Seed,
			Sources: cfg.Render.Sources,
		})
		if err != nil {
			return err
		}
		fmt.Printf("snapshot: %s\n", id)
	}
	return nil
}

func plotProfile(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, modelArg(args))
	if err != nil {
		return err
	}
	session, err := newSession(cfg)
	if err != nil {
		return err
	}

	p := session.Params()
	prof := analysis.RadialProfile(session.Evaluator(), rMax, samples)

	fmt.Printf("model: %s  mass=%.3f  spread=%.3f  scale=%.4f\n\n", p.Model, p.Mass, p.Spread, p.Scale())
	graph := asciigraph.Plot(prof.Magnitudes(),
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("deflection vs radius (0-%.2f)", rMax)),
	)
	fmt.Println(graph)
	fmt.Println()

	fmt.Printf("peak: %+.6f at r=%.4f\n", prof.Peak.Magnitude, prof.Peak.R)
	if r, ok := prof.CompensationRadius(); ok {
		fmt.Printf("compensation radius: %.4f\n", r)
	}
	fmt.Printf("diverging: %v\n", prof.Diverging())
	fmt.Printf("roughness: %.3e\n", analysis.Roughness(prof.Magnitudes(), 0.25))

	if svgFile != "" {
		svg := export.ProfileToSVG(prof, 800, 400, "#3aa0ff")
		if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
	}
	if csvFile != "" {
		if err := writeFile(csvFile, func(f *os.File) error { return export.WriteProfileCSV(f, prof) }); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", csvFile)
	}
	if jsonFile != "" {
		data := export.NewExportData(p, prof, session.Table())
		if err := writeFile(jsonFile, func(f *os.File) error { return export.WriteJSON(f, data) }); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", jsonFile)
	}
	return nil
}

func inspectTable(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, lens.HSWVoid.String())
	if err != nil {
		return err
	}
	session, err := newSession(cfg)
	if err != nil {
		return err
	}
	t := session.Table()
	stats := analysis.SummarizeTable(t)

	fmt.Printf("hsw table: %d bins, r_max=%.4f\n", stats.Bins, stats.RMax)
	fmt.Printf("min: %+.6e at r=%.4f\n", stats.Min, stats.MinR)
	fmt.Printf("max: %+.6e at r=%.4f\n", stats.Max, stats.MaxR)
	fmt.Printf("edge: %+.6e\n", stats.Edge)
	fmt.Printf("sign changes: %d\n", stats.SignChanges)
	if stats.NonFinite > 0 {
		fmt.Printf("non-finite bins: %d\n", stats.NonFinite)
	}

	values := t.Values()
	stride := max(len(values)/200, 1)
	plotData := make([]float64, 0, len(values)/stride+1)
	for i := 0; i < len(values); i += stride {
		plotData = append(plotData, values[i])
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(plotData,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("projected mass / R"),
	))

	if csvFile != "" {
		if err := writeFile(csvFile, func(f *os.File) error { return export.WriteTableCSV(f, t) }); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", csvFile)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	lo, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("min: %w", err)
	}
	hi, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return fmt.Errorf("max: %w", err)
	}
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}
	ctrl, err := cfg.Controls()
	if err != nil {
		return err
	}

	var r *render.Renderer
	if gifFile != "" {
		if r, err = cfg.Renderer(); err != nil {
			return err
		}
	}

	sweep := &automation.ParameterSweep{
		Model:     args[0],
		ParamName: args[1],
		ParamMin:  lo,
		ParamMax:  hi,
		NumSteps:  numSteps,
		Base:      ctrl.GetParams(),
		Center:    cfg.Center(),
	}
	results, err := automation.RunSweep(context.Background(), sweep, r, cfg.TableConfig())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tPEAK\tAT R\tZERO\tTABLE\n", args[1])
	for _, res := range results {
		zero := "-"
		if res.Compensated {
			zero = fmt.Sprintf("%.4f", res.Compensation)
		}
		rebuilt := ""
		if res.Rebuilt {
			rebuilt = "rebuilt"
		}
		fmt.Fprintf(w, "%.4f\t%+.5f\t%.4f\t%s\t%s\n", res.ParamValue, res.Peak.Magnitude, res.Peak.R, zero, rebuilt)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if gifFile != "" {
		if err := automation.SaveAnimatedGIF(gifFile, automation.SweepFrames(results), gifDelay); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", gifFile)
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}
	r, err := cfg.Renderer()
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("  %s\n", sc.Description)
	}
	frames, err := automation.RunScenario(context.Background(), sc, r, cfg.TableConfig())
	if err != nil {
		return err
	}

	images := make([]*image.RGBA, len(frames))
	for i, f := range frames {
		images[i] = f.Image
	}
	delay := sc.Delay
	if delay <= 0 {
		delay = 10
	}
	if err := automation.SaveAnimatedGIF(sceneGIF, images, delay); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d frames)\n", sceneGIF, len(frames))
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, modelArg(args))
	if err != nil {
		return err
	}
	ctrl, err := cfg.Controls()
	if err != nil {
		return err
	}

	mc := &automation.MonteCarloConfig{
		Model:        cfg.Model,
		Base:         ctrl.GetParams(),
		Perturbation: perturb,
		NumTrials:    trials,
		Samples:      probes,
		Seed:         seed,
		Table:        cfg.TableConfig(),
	}
	results, err := automation.RunMonteCarlo(context.Background(), mc)
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	peak := 0.0
	for _, r := range results {
		peak = max(peak, r.MaxMagnitude)
	}
	fmt.Printf("model: %s  trials: %d  probes/trial: %d\n", cfg.Model, len(results), probes)
	fmt.Printf("stable: %d  unstable: %d\n", stable, unstable)
	fmt.Printf("largest deflection: %.6f (bound %.1f)\n", peak, lens.MaxDeflection)
	if unstable > 0 {
		return fmt.Errorf("%d trials exceeded the deflection bound", unstable)
	}
	return nil
}

func liveOptions(cmd *cobra.Command, model string) (viz.Options, error) {
	cfg, err := loadConfig(cmd, model)
	if err != nil {
		return viz.Options{}, err
	}
	ctrl, err := cfg.Controls()
	if err != nil {
		return viz.Options{}, err
	}
	opts := viz.Options{
		Controls:  ctrl,
		Center:    cfg.Center(),
		Layers:    cfg.Render.Layers,
		Table:     cfg.TableConfig(),
		Threshold: threshold,
		Theme:     theme,
	}
	if len(cfg.Render.Sources) > 0 {
		if opts.Sources, err = cfg.LayerSources(); err != nil {
			return viz.Options{}, err
		}
	}
	return opts, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	opts, err := liveOptions(cmd, modelArg(args))
	if err != nil {
		return err
	}
	return viz.Run(opts)
}

func guiOptions(cmd *cobra.Command, model string) (gui.Options, error) {
	cfg, err := loadConfig(cmd, model)
	if err != nil {
		return gui.Options{}, err
	}
	ctrl, err := cfg.Controls()
	if err != nil {
		return gui.Options{}, err
	}
	sources, err := cfg.LayerSources()
	if err != nil {
		return gui.Options{}, err
	}
	return gui.Options{
		Controls:    ctrl,
		Center:      cfg.Center(),
		Sources:     sources,
		Layers:      cfg.Render.Layers,
		Table:       cfg.TableConfig(),
		Width:       cfg.Render.Width,
		Height:      cfg.Render.Height,
		SnapshotDir: dataDir,
	}, nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no snapshots found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tSIZE\tLAYERS\tMASS\tSPREAD")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%.3f\t%.3f\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width,
			run.Height,
			run.Layers,
			run.Params.Mass,
			run.Params.Spread,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("time: %s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("frame: %dx%d, %d layers\n", meta.Width, meta.Height, meta.Layers)
	for k, v := range meta.Metrics {
		fmt.Printf("%s: %.6f\n", k, v)
	}

	prof, err := st.LoadProfile(runID)
	if err != nil {
		return err
	}
	if len(prof.Points) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(prof.Magnitudes(),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("deflection vs radius"),
		))
	}
	fmt.Printf("\nframe: %s\n", st.Path(runID))
	return nil
}

func exportRunJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	prof, err := st.LoadProfile(runID)
	if err != nil {
		return err
	}
	return export.WriteJSON(os.Stdout, export.NewExportData(meta.Params, prof, nil))
}

func writeFile(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
