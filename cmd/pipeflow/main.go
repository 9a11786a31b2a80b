package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/pipeflow/internal/config"
	"github.com/san-kum/pipeflow/internal/export"
	"github.com/san-kum/pipeflow/internal/metrics"
	"github.com/san-kum/pipeflow/internal/sim"
	"github.com/san-kum/pipeflow/internal/storage"
	"github.com/san-kum/pipeflow/internal/tui"
	"github.com/san-kum/pipeflow/internal/viz"
)

var (
	dataDir    string
	configFile string
	dt         float64
	steps      int
	spacing    float64
	viscosity  float64
	restDens   float64
	flowRate   float64
	radius     float64
	workers    int
	frameRate  int
	plane      string
	outFile    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pipeflow",
		Short: "SPH fluid simulation through a pipe segment",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pipeflow", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store the result",
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored kinetic-energy series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "render the final particle cloud of a scenario to SVG",
		RunE:  exportSVG,
	}
	addScenarioFlags(exportSVGCmd)
	exportSVGCmd.Flags().StringVar(&plane, "plane", "xy", "projection plane (xy, xz, yz)")
	exportSVGCmd.Flags().StringVar(&outFile, "out", "particles.svg", "output file")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure steps per second at a few particle counts",
		RunE:  benchScenario,
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportSVGCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().Float64Var(&spacing, "spacing", config.DefaultSpacing, "seeding lattice spacing (m)")
	cmd.Flags().Float64Var(&viscosity, "viscosity", config.DefaultViscosity, "viscosity coefficient")
	cmd.Flags().Float64Var(&restDens, "rest-density", config.DefaultRestDensity, "rest density (kg/m³)")
	cmd.Flags().Float64Var(&flowRate, "flow-rate", config.DefaultFlowRate, "flow rate (drives pressure stiffness)")
	cmd.Flags().Float64Var(&radius, "radius", 0, "smoothing radius (0 = engine default)")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = all CPUs)")
}

// scenario assembles the effective config: file values first, then any
// explicitly changed flags on top.
func scenario(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("spacing") {
		cfg.Spacing = spacing
	}
	if cmd.Flags().Changed("viscosity") {
		cfg.Viscosity = viscosity
	}
	if cmd.Flags().Changed("rest-density") {
		cfg.RestDensity = restDens
	}
	if cmd.Flags().Changed("flow-rate") {
		cfg.FlowRate = flowRate
	}
	if cmd.Flags().Changed("radius") {
		cfg.SmoothingRadius = radius
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	return cfg, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := scenario(cmd)
	if err != nil {
		return err
	}
	eng, err := cfg.Engine()
	if err != nil {
		return err
	}

	runner := sim.NewRunner(eng)
	runner.AddMetric(metrics.NewKineticEnergy())
	runner.AddMetric(metrics.NewMaxSpeed())
	runner.AddMetric(metrics.NewContainment(eng.Bounds()))

	start := time.Now()
	result, err := runner.Run(context.Background(), sim.Config{Dt: cfg.Dt, Steps: cfg.Steps})
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(sim.Config{Dt: cfg.Dt, Steps: cfg.Steps}, eng.Len(), result, eng.Positions())
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d particles, %d steps in %s\n", runID, eng.Len(), result.StepsTaken, elapsed.Round(time.Millisecond))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for name, value := range result.Metrics {
		fmt.Fprintf(w, "  %s\t%.6g\n", name, value)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := scenario(cmd)
	if err != nil {
		return err
	}
	eng, err := cfg.Engine()
	if err != nil {
		return err
	}
	return tui.Run(eng, cfg.Dt, frameRate)
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tPARTICLES\tSTEPS\tDT")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%g\n",
			r.ID, r.Timestamp.Format("2006-01-02 15:04:05"), r.Particles, r.Steps, r.Dt)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	_, ke, err := storage.New(dataDir).LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(ke) < 2 {
		return fmt.Errorf("run %s has no series to plot", args[0])
	}

	graph := asciigraph.Plot(ke,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("kinetic energy — %s", args[0])),
	)
	fmt.Println(graph)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := scenario(cmd)
	if err != nil {
		return err
	}
	eng, err := cfg.Engine()
	if err != nil {
		return err
	}
	for i := 0; i < cfg.Steps; i++ {
		if err := eng.Step(cfg.Dt); err != nil {
			return err
		}
	}

	p := viz.PlaneXY
	switch plane {
	case "xz":
		p = viz.PlaneXZ
	case "yz":
		p = viz.PlaneYZ
	}

	canvas := viz.NewCanvas(64, 24)
	canvas.Scatter(eng.Positions(), eng.Bounds(), p)

	if err := os.WriteFile(outFile, []byte(export.CanvasToSVG(canvas, 4)), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d particles after %d steps)\n", outFile, eng.Len(), cfg.Steps)
	return nil
}

func benchScenario(cmd *cobra.Command, args []string) error {
	for _, s := range []float64{0.2, 0.1, 0.05} {
		cfg := config.DefaultConfig()
		cfg.Spacing = s
		eng, err := cfg.Engine()
		if err != nil {
			return err
		}

		const benchSteps = 50
		start := time.Now()
		for i := 0; i < benchSteps; i++ {
			if err := eng.Step(cfg.Dt); err != nil {
				return err
			}
		}
		elapsed := time.Since(start)
		fmt.Printf("%6d particles: %8.1f steps/s\n",
			eng.Len(), benchSteps/elapsed.Seconds())
	}
	return nil
}
