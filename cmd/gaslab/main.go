package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/sansuarezs055/gaslab/internal/analysis"
	"github.com/sansuarezs055/gaslab/internal/config"
	"github.com/sansuarezs055/gaslab/internal/dynamo"
	"github.com/sansuarezs055/gaslab/internal/experiment"
	"github.com/sansuarezs055/gaslab/internal/gas"
	"github.com/sansuarezs055/gaslab/internal/storage"
	"github.com/sansuarezs055/gaslab/internal/stream"
	"github.com/sansuarezs055/gaslab/internal/viz"
)

var (
	dataDir    string
	dt         float64
	steps      int
	seed       int64
	integrator string
	configFile string
	preset     string
	// Gas parameters
	side      float64
	particles int
	vmax      float64
	radius    float64
	mass      float64
	dbPath    string
	// Phase plot axes
	xAxis int
	yAxis int
	// Histogram buckets
	histBins int
	// Serve address
	serveAddr string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gaslab",
		Short: "hard-disk gas and coupled-oscillator simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gaslab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [gas|duffing]",
		Short: "run a simulation and store the results",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&dbPath, "db", "", "also stream frames into a sqlite file (gas only)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	histCmd := &cobra.Command{
		Use:   "hist [run_id]",
		Short: "final-frame speed distribution with Maxwell-Boltzmann fit",
		Args:  cobra.ExactArgs(1),
		RunE:  histRun,
	}
	histCmd.Flags().IntVar(&histBins, "bins", 12, "histogram buckets")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot of a trajectory run",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 2, "state index for y-axis")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id] [path]",
		Short: "export a run as one JSON document (path - for stdout)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 2 {
				path = args[1]
			}
			return storage.New(dataDir).ExportJSONFile(args[0], path)
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run the gas and broadcast frames over websocket",
		RunE:  serveGas,
	}
	addRunFlags(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":5000", "address to serve (host:port)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the gas in the terminal",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

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

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, histCmd, phaseCmd,
		exportCSVCmd, exportJSONCmd, serveCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator (duffing)")
	cmd.Flags().Float64Var(&side, "side", config.DefaultSide, "box side length (gas)")
	cmd.Flags().IntVar(&particles, "particles", config.DefaultN, "particle count (gas)")
	cmd.Flags().Float64Var(&vmax, "vmax", config.DefaultVMax, "max initial speed (gas)")
	cmd.Flags().Float64Var(&radius, "radius", 0, "disk radius, 0 means suggested (gas)")
	cmd.Flags().Float64Var(&mass, "mass", 1.0, "particle mass (gas)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig merges preset, config file, and CLI flags, flags winning.
func resolveConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Model = model

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *loaded
		cfg.Model = model
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("side") {
		cfg.Gas.Side = side
	}
	if cmd.Flags().Changed("particles") {
		cfg.Gas.N = particles
	}
	if cmd.Flags().Changed("vmax") {
		cfg.Gas.VMax = vmax
	}
	if cmd.Flags().Changed("mass") {
		cfg.Gas.Mass = mass
	}
	if cmd.Flags().Changed("radius") && radius > 0 {
		cfg.Gas.Radius = radius
	} else if cfg.Gas.Radius == 0 && cfg.Gas.N > 0 {
		cfg.Gas.Radius = gas.SuggestedRadius(cfg.Gas.Side, cfg.Gas.N)
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	model := args[0]

	cfg, err := resolveConfig(cmd, model)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	switch model {
	case "gas":
		return runGas(cfg, st)
	case "duffing":
		return runTrajectory(cfg, st)
	default:
		return fmt.Errorf("unknown model: %s", model)
	}
}

func runGas(cfg *config.Config, st *storage.Store) error {
	sim, err := gas.New(cfg.GasConfig())
	if err != nil {
		return err
	}

	var frames storage.FrameRecorder
	var series storage.PressureRecorder
	sim.AddFrameSink(&frames)
	sim.AddSeriesSink(&series)

	if dbPath != "" {
		db, err := storage.OpenFrameDB(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		sim.AddFrameSink(db)
	}

	fmt.Printf("running gas simulation (%d particles, %d steps)...\n", cfg.Gas.N, cfg.Steps)
	start := time.Now()

	if err := sim.Run(context.Background()); err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.SaveGasRun(cfg.GasConfig(), frames.Frames, series.Times, series.Pressures)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", sim.StepCount())
	fmt.Printf("final pressure: %.6f\n", sim.Box().Pressure())
	fmt.Printf("kinetic energy: %.6f\n", sim.KineticEnergy())

	return nil
}

func runTrajectory(cfg *config.Config, st *storage.Store) error {
	registry := experiment.NewRegistry()

	dyn := cfg.DuffingSystem()
	integ, err := registry.GetIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	exp := experiment.New(experiment.Config{
		Model:      cfg.Model,
		Integrator: cfg.Integrator,
		InitState:  cfg.DuffingInitState(),
		Dt:         cfg.Dt,
		Duration:   cfg.Dt * float64(cfg.Steps),
		Seed:       cfg.Seed,
	})
	if err := exp.Setup(dyn, integ, registry.DefaultMetrics(dyn)); err != nil {
		return err
	}

	fmt.Printf("running %s simulation...\n", cfg.Model)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.SaveResult(cfg.Model, cfg.Integrator, cfg.Dt, cfg.Seed, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

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
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tSTEPS\tDT\tPARTICLES\tINTEG")

	for _, run := range runs {
		integ := run.Integrator
		if integ == "" {
			integ = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%d\t%s\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.Particles,
			integ,
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

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n\n", meta.Model)

	if meta.Model == "gas" {
		_, pressures, err := st.LoadPressure(runID)
		if err != nil {
			return err
		}
		if len(pressures) == 0 {
			return fmt.Errorf("no data to plot")
		}
		graph := asciigraph.Plot(pressures,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("pressure vs time"),
		)
		fmt.Println(graph)
		return nil
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	captions := []string{"x1 (position)", "x2 (position)", "y1 (velocity)", "y2 (velocity)"}
	for varIdx := range states[0] {
		data := make([]float64, len(states))
		for i := range states {
			data[i] = states[i][varIdx]
		}

		caption := fmt.Sprintf("x%d vs time", varIdx)
		if varIdx < len(captions) {
			caption = captions[varIdx]
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func histRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	if meta.Model != "gas" {
		return fmt.Errorf("hist needs a gas run, %s is %s", runID, meta.Model)
	}

	last, err := st.LoadLastFrame(runID)
	if err != nil {
		return err
	}

	speeds := make([]float64, len(last))
	for i, p := range last {
		speeds[i] = p.Speed
	}

	hist := analysis.NewSpeedHistogram(speeds, histBins)
	if hist.Total == 0 {
		return fmt.Errorf("no usable speeds in run %s", runID)
	}

	fmt.Printf("speed distribution: %s (%d particles)\n\n", meta.ID, hist.Total)
	graph := asciigraph.Plot(hist.Bins,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("counts over [%.3f, %.3f]", hist.Min, hist.Max)),
	)
	fmt.Println(graph)

	particleMass := meta.Mass
	if particleMass == 0 {
		particleMass = 1.0
	}
	kT := analysis.EstimateKT(speeds, particleMass)
	fmt.Printf("\nestimated kT: %.4f\n", kT)
	fmt.Println("maxwell-boltzmann fit (bucket center, predicted density, observed fraction):")
	for i := range hist.Bins {
		v := hist.BinCenter(i)
		predicted := analysis.MaxwellBoltzmann2D(v, particleMass, kT) * hist.Width
		observed := hist.Bins[i] / float64(hist.Total)
		fmt.Printf("  %7.3f  %7.4f  %7.4f\n", v, predicted, observed)
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}
	if len(states[0]) <= xAxis || len(states[0]) <= yAxis {
		return fmt.Errorf("state dimension too small for selected axes")
	}

	portrait := analysis.PhasePortraitFromStates(toStates(states), xAxis, yAxis)
	if portrait == nil {
		return fmt.Errorf("could not build portrait")
	}

	fmt.Printf("phase space plot: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("x-axis: x%d, y-axis: x%d\n\n", xAxis, yAxis)
	fmt.Println(analysis.PhasePortraitToASCII(portrait, 70, 20))

	return nil
}

func toStates(states [][]float64) []dynamo.State {
	out := make([]dynamo.State, len(states))
	for i, s := range states {
		out[i] = s
	}
	return out
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	if meta.Model == "gas" {
		times, pressures, err := st.LoadPressure(runID)
		if err != nil {
			return err
		}
		fmt.Println("time,pressure")
		for i := range times {
			fmt.Printf("%.6f,%.6f\n", times[i], pressures[i])
		}
		return nil
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	fmt.Print("time")
	for i := range states[0] {
		fmt.Printf(",x%d", i)
	}
	fmt.Println()
	for i := range states {
		fmt.Printf("%.6f", times[i])
		for _, val := range states[i] {
			fmt.Printf(",%.6f", val)
		}
		fmt.Println()
	}

	return nil
}

func serveGas(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "gas")
	if err != nil {
		return err
	}

	sim, err := gas.New(cfg.GasConfig())
	if err != nil {
		return err
	}

	broadcaster := stream.NewBroadcaster()
	defer broadcaster.Close()
	sim.AddFrameSink(broadcaster)

	mux := http.NewServeMux()
	mux.Handle("/ws", broadcaster.Handler())

	server := &http.Server{Addr: serveAddr, Handler: mux}
	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()

	fmt.Printf("broadcasting frames on ws://%s/ws\n", serveAddr)

	// Pace the run so clients see an animation rather than a burst.
	ticker := time.NewTicker(time.Second / 30)
	defer ticker.Stop()

	for sim.StepCount() < cfg.Steps {
		select {
		case err := <-errCh:
			return err
		case <-ticker.C:
			if err := sim.Step(); err != nil {
				server.Close()
				return err
			}
		}
	}

	fmt.Printf("run finished after %d steps, final pressure %.6f\n",
		sim.StepCount(), sim.Box().Pressure())
	return server.Close()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "gas")
	if err != nil {
		return err
	}
	return viz.Run(cfg.GasConfig())
}
