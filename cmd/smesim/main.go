package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/avasek/smesim/internal/config"
	"github.com/avasek/smesim/internal/export"
	"github.com/avasek/smesim/internal/master"
	"github.com/avasek/smesim/internal/report"
	"github.com/avasek/smesim/internal/study"
)

var (
	dataDir      string
	configFile   string
	preset       string
	scheme       string
	dim          int
	coupling     float64
	nTherm       float64
	mSqRe        float64
	mSqIm        float64
	omega        float64
	initState    string
	steps        int
	horizon      float64
	trajectories int
	workers      int
	seed         int64
	bins         int
	component    int
	verbose      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "smesim",
		Short: "stochastic master equation convergence lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".smesim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	convergeCmd := &cobra.Command{
		Use:   "converge",
		Short: "estimate the strong convergence order of a scheme",
		RunE:  runConverge,
	}
	addStudyFlags(convergeCmd)
	convergeCmd.Flags().IntVar(&bins, "bins", 12, "histogram bins")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "integrate a single trajectory and plot one component",
		RunE:  runTrajectory,
	}
	addStudyFlags(runCmd)
	runCmd.Flags().IntVar(&component, "component", 0, "coefficient index to plot")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	schemesCmd := &cobra.Command{
		Use:   "schemes",
		Short: "list available integration schemes",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range master.Schemes() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(convergeCmd, runCmd, listCmd, presetsCmd, schemesCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addStudyFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&scheme, "scheme", "milstein", "integration scheme")
	cmd.Flags().IntVar(&dim, "dim", config.DefaultDim, "hilbert space dimension")
	cmd.Flags().Float64Var(&coupling, "coupling", config.DefaultCoupling, "coupling amplitude")
	cmd.Flags().Float64Var(&nTherm, "n-therm", 0, "thermal occupation N")
	cmd.Flags().Float64Var(&mSqRe, "m-sq-re", 0, "squeezing Re M")
	cmd.Flags().Float64Var(&mSqIm, "m-sq-im", 0, "squeezing Im M")
	cmd.Flags().Float64Var(&omega, "omega", 0, "hamiltonian frequency")
	cmd.Flags().StringVar(&initState, "init", "excited", "initial state")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "grid intervals")
	cmd.Flags().Float64Var(&horizon, "time", config.DefaultHorizon, "integration horizon")
	cmd.Flags().IntVar(&trajectories, "trajectories", config.DefaultTrajectories, "batch size")
	cmd.Flags().IntVar(&workers, "workers", 1, "parallel workers")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
}

// buildConfig resolves precedence: preset, then config file, then flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	set := func(name string, apply func()) {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	set("scheme", func() { cfg.Scheme = scheme })
	set("dim", func() { cfg.Dim = dim })
	set("coupling", func() { cfg.Coupling = coupling })
	set("n-therm", func() { cfg.NTherm = nTherm })
	set("m-sq-re", func() { cfg.MSqRe = mSqRe })
	set("m-sq-im", func() { cfg.MSqIm = mSqIm })
	set("omega", func() { cfg.Omega = omega })
	set("init", func() { cfg.InitState = initState })
	set("steps", func() { cfg.Steps = steps })
	set("time", func() { cfg.Horizon = horizon })
	set("trajectories", func() { cfg.Trajectories = trajectories })
	set("workers", func() { cfg.Workers = workers })
	set("seed", func() { cfg.Seed = seed })

	return cfg, cfg.Validate()
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

func runConverge(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	res, err := study.Run(cfg, newLogger())
	if err != nil {
		return err
	}

	st := export.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(res)
	if err != nil {
		return err
	}

	fmt.Println(report.Render(report.Summarize(res.Scheme, res.Results)))
	if hist := report.RenderHistogram(res.Results, bins); hist != "" {
		fmt.Println()
		fmt.Println(hist)
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func runTrajectory(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Trajectories = 1
	cfg.Workers = 1

	res, err := study.Run(cfg, newLogger())
	if err != nil {
		return err
	}

	// Re-integrate the single trajectory to recover the path itself; the
	// batch only keeps endpoint rates.
	times, rhos, err := study.Trajectory(cfg, newLogger())
	if err != nil {
		return err
	}

	st := export.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(res)
	if err != nil {
		return err
	}
	if err := st.SaveTrajectory(runID, times, rhos); err != nil {
		return err
	}

	if component < 0 || component >= len(rhos[0]) {
		return fmt.Errorf("component %d out of range [0, %d)", component, len(rhos[0]))
	}
	data := make([]float64, len(rhos))
	for i, rho := range rhos {
		data[i] = rho[component]
	}
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("x%d (%s)", component, cfg.Scheme)),
	))
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := export.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCHEME\tDIM\tSTEPS\tMEAN\tFAILED")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.4f\t%d\n",
			r.ID, r.Scheme, r.Dim, r.Steps, r.Summary.Mean, r.Summary.Failed)
	}
	return w.Flush()
}
