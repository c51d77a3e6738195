package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/dualdiff/internal/config"
	"github.com/san-kum/dualdiff/internal/export"
	"github.com/san-kum/dualdiff/internal/jacobian"
	"github.com/san-kum/dualdiff/internal/optim"
	"github.com/san-kum/dualdiff/internal/problems"
	"github.com/san-kum/dualdiff/internal/storage"
	"github.com/san-kum/dualdiff/internal/viz"
)

var (
	dataDir  string
	logLevel string
	verbose  bool
	logger   = logrus.New()

	// Evaluation point for eval and jacobian.
	at        []float64
	transpose bool

	// Minimize
	method     string
	start      []float64
	tolerance  float64
	maxIter    int
	dt         float64
	integrator string
	configFile string
	preset     string
	grid       bool
	noSave     bool

	// Plot
	logScale bool
	showPath bool
	svgPath  string

	outPath string
)

// Default grid used by --grid when the config does not define one.
var defaultGridAxis = config.GridAxis{Min: -5, Max: 5, Steps: 5}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "dualdiff",
		Short:        "forward-mode automatic differentiation and quasi-newton optimization",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := setupLogger(logLevel, verbose)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dualdiff", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every iteration")

	evalCmd := &cobra.Command{
		Use:   "eval [objective]",
		Short: "evaluate an objective and its gradient",
		Args:  cobra.ExactArgs(1),
		RunE:  runEval,
	}
	evalCmd.Flags().Float64SliceVar(&at, "at", nil, "evaluation point (default: the objective's start)")

	jacobianCmd := &cobra.Command{
		Use:   "jacobian [system]",
		Short: "evaluate a system and its jacobian",
		Args:  cobra.ExactArgs(1),
		RunE:  runJacobian,
	}
	jacobianCmd.Flags().Float64SliceVar(&at, "at", nil, "evaluation point (default: the system's start)")
	jacobianCmd.Flags().BoolVar(&transpose, "transpose", false, "print the transposed jacobian")

	minimizeCmd := &cobra.Command{
		Use:   "minimize [objective]",
		Short: "minimize an objective",
		Args:  cobra.ExactArgs(1),
		RunE:  runMinimize,
	}
	minimizeCmd.Flags().StringVar(&method, "method", config.DefaultMethod, "optimizer (dfp, flow)")
	minimizeCmd.Flags().Float64SliceVar(&start, "start", nil, "starting point (default: the objective's start)")
	minimizeCmd.Flags().Float64Var(&tolerance, "tol", optim.DefaultTolerance, "gradient norm tolerance")
	minimizeCmd.Flags().IntVar(&maxIter, "max-iter", optim.DefaultMaxIter, "maximum iterations")
	minimizeCmd.Flags().Float64Var(&dt, "dt", optim.DefaultDt, "gradient flow timestep")
	minimizeCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "gradient flow integrator (euler, rk4, rk45)")
	minimizeCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	minimizeCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	minimizeCmd.Flags().BoolVar(&grid, "grid", false, "multistart from a grid of starting points")
	minimizeCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the objective decay of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().BoolVar(&logScale, "log", true, "plot log10 of the objective")
	plotCmd.Flags().BoolVar(&showPath, "path", false, "draw the path of the first two coordinates")
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the path as svg to this file")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: stdout)")

	problemsCmd := &cobra.Command{
		Use:   "problems",
		Short: "list objectives and systems",
		RunE:  listProblems,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [objective]",
		Short: "list available presets for an objective",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for objective: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(evalCmd, jacobianCmd, minimizeCmd, listCmd, plotCmd, exportCmd, problemsCmd, presetsCmd)
	return rootCmd
}

func setupLogger(level string, verbose bool) (*logrus.Logger, error) {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if verbose {
		l.SetLevel(logrus.DebugLevel)
		return l, nil
	}
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, err
	}
	l.SetLevel(lvl)
	return l, nil
}

func runEval(cmd *cobra.Command, args []string) error {
	obj, err := problems.NewRegistry().GetObjective(args[0])
	if err != nil {
		return err
	}

	x := at
	if len(x) == 0 {
		x = obj.Start
	}
	if err := obj.Check(x); err != nil {
		return err
	}

	value, grad, err := jacobian.Gradient(obj.Func, x)
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render(obj.Name) + " " + viz.Subtle.Render(obj.Description))
	fmt.Println(viz.KeyValue("x", viz.Vector(x)))
	fmt.Println(viz.KeyValue("value", fmt.Sprintf("%.10g", value)))
	fmt.Println(viz.KeyValue("gradient", viz.Vector(grad)))
	fmt.Println(viz.KeyValue("grad norm", fmt.Sprintf("%.6g", norm(grad))))
	return nil
}

func runJacobian(cmd *cobra.Command, args []string) error {
	sys, err := problems.NewRegistry().GetSystem(args[0])
	if err != nil {
		return err
	}

	x := at
	if len(x) == 0 {
		x = sys.Start
	}
	if err := sys.Check(x); err != nil {
		return err
	}

	var opts []jacobian.Option
	if transpose {
		opts = append(opts, jacobian.Transposed())
	}
	res, err := jacobian.Jacobian(sys.Func, x, opts...)
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render(sys.Name) + " " + viz.Subtle.Render(sys.Description))
	fmt.Println(viz.KeyValue("x", viz.Vector(x)))
	fmt.Println(viz.KeyValue("values", viz.Vector(res.Values)))
	fmt.Println(viz.Label.Render(fmt.Sprintf("jacobian (%dx%d)", res.Rows, res.Cols)))
	fmt.Print(viz.Matrix(res.Data, res.Rows, res.Cols))
	return nil
}

// resolveConfig layers the preset, the config file and explicitly set flags,
// in that order, over the defaults.
func resolveConfig(cmd *cobra.Command, problem string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(problem, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(problem))
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if cfg.Problem != "" && cfg.Problem != problem {
			logger.WithFields(logrus.Fields{"config": cfg.Problem, "arg": problem}).
				Warn("config problem differs from argument, using argument")
		}
		if !cmd.Flags().Changed("log-level") && !verbose {
			if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
				logger.SetLevel(lvl)
			}
		}
	}
	cfg.Problem = problem

	flags := cmd.Flags()
	if flags.Changed("method") {
		cfg.Method = method
	}
	if flags.Changed("start") {
		cfg.Start = start
	}
	if flags.Changed("tol") {
		cfg.Tolerance = tolerance
	}
	if flags.Changed("max-iter") {
		cfg.MaxIter = maxIter
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runMinimize(cmd *cobra.Command, args []string) error {
	obj, err := problems.NewRegistry().GetObjective(args[0])
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(cmd, obj.Name)
	if err != nil {
		return err
	}

	opts, err := cfg.SolverOptions()
	if err != nil {
		return err
	}
	opts.Logger = logger.WithFields(logrus.Fields{"problem": obj.Name, "method": cfg.Method})

	solver, err := cfg.NewSolver(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	startPt := cfg.Start
	if len(startPt) == 0 {
		startPt = obj.Start
	}

	began := time.Now()
	var result *optim.Result
	if grid || len(cfg.Grid) > 0 {
		if len(cfg.Grid) == 0 {
			for i := 0; i < obj.Dim; i++ {
				cfg.Grid = append(cfg.Grid, defaultGridAxis)
			}
		}
		if len(cfg.Grid) != obj.Dim {
			return fmt.Errorf("%w: grid has %d axes, %s takes %d inputs",
				problems.ErrDimensionMismatch, len(cfg.Grid), obj.Name, obj.Dim)
		}

		sr, err := optim.NewGridSearch(solver, cfg.GridAxes()).Search(ctx, obj.Func)
		if err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			"runs":     sr.Runs,
			"failures": len(sr.Failures),
		}).Info("grid search finished")
		for _, ferr := range sr.Failures {
			logger.WithError(ferr).Debug("grid start failed")
		}
		startPt = sr.Start
		result = sr.Best
	} else {
		if err := obj.Check(startPt); err != nil {
			return err
		}
		result, err = solver.Minimize(ctx, obj.Func, startPt)
		if err != nil {
			return err
		}
	}
	elapsed := time.Since(began)

	printResult(obj, cfg.Method, startPt, result, elapsed)

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	in := storage.RunInputs{
		Problem:   obj.Name,
		Method:    cfg.Method,
		Start:     startPt,
		Tolerance: cfg.Tolerance,
		MaxIter:   cfg.MaxIter,
	}
	if cfg.Method == "flow" {
		in.Dt = cfg.Dt
		in.Integrator = cfg.Integrator
	}
	runID, err := st.Save(in, result)
	if err != nil {
		return err
	}
	fmt.Println(viz.KeyValue("run id", runID))
	return nil
}

func printResult(obj *problems.Objective, method string, startPt []float64, result *optim.Result, elapsed time.Duration) {
	fmt.Println(viz.Title.Render(fmt.Sprintf("%s / %s", obj.Name, method)))
	fmt.Println(viz.Separator(40))
	fmt.Println(viz.KeyValue("start", viz.Vector(startPt)))
	fmt.Println(viz.KeyValue("x", viz.Vector(result.X)))
	fmt.Println(viz.KeyValue("value", fmt.Sprintf("%.10g", result.Value)))
	fmt.Println(viz.KeyValue("grad norm", fmt.Sprintf("%.3g", norm(result.Gradient))))
	fmt.Println(viz.KeyValue("iterations", result.Iterations))
	fmt.Println(viz.KeyValue("status", viz.Status(result.Converged)))
	if d := obj.Distance(result.X); !math.IsNaN(d) {
		fmt.Println(viz.KeyValue("error", fmt.Sprintf("%.3g", d)))
	}
	fmt.Println(viz.KeyValue("elapsed", elapsed.Round(time.Microsecond)))

	values := make([]float64, len(result.Trace))
	for i, it := range result.Trace {
		values[i] = it.Value
	}
	fmt.Println(viz.KeyValue("decay", viz.Sparkline(values, 40)))
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
	fmt.Fprintln(w, "ID\tPROBLEM\tMETHOD\tTIME\tITERS\tVALUE\tCONVERGED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.6g\t%v\n",
			run.ID,
			run.Problem,
			run.Method,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Iterations,
			run.Value,
			run.Converged,
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

	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if len(trace) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Println(viz.Title.Render("run " + meta.ID))
	fmt.Println(viz.KeyValue("problem", meta.Problem))
	fmt.Println(viz.KeyValue("method", meta.Method))
	fmt.Println(viz.KeyValue("iterations", meta.Iterations))
	fmt.Println()

	values := make([]float64, len(trace))
	grads := make([]float64, len(trace))
	points := make([][]float64, len(trace))
	for i, it := range trace {
		values[i] = it.Value
		grads[i] = it.GradNorm
		points[i] = it.X
	}

	caption := "objective value"
	var opts []viz.PlotOption
	if logScale {
		caption += " (log10)"
		opts = append(opts, viz.Log10())
	}
	fmt.Println(viz.PlotTrace(values, caption, opts...))
	fmt.Println()
	fmt.Println(viz.PlotTrace(grads, "gradient norm (log10)", viz.Log10()))

	if showPath {
		fmt.Println()
		fmt.Println(viz.Label.Render("path (x0, x1)"))
		fmt.Print(viz.PlotPath(points, 40, 12))
	}

	if svgPath != "" {
		if err := export.WritePathSVG(svgPath, points, 600, 400); err != nil {
			return err
		}
		fmt.Printf("path written to %s\n", svgPath)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if outPath == "" {
		return st.Export(os.Stdout, args[0])
	}
	if err := st.ExportFile(outPath, args[0]); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", args[0], outPath)
	return nil
}

func listProblems(cmd *cobra.Command, args []string) error {
	registry := problems.NewRegistry()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tDIM\tDESCRIPTION")
	for _, name := range registry.ListObjectives() {
		obj, err := registry.GetObjective(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\tobjective\t%d\t%s\n", obj.Name, obj.Dim, obj.Description)
	}
	for _, name := range registry.ListSystems() {
		sys, err := registry.GetSystem(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\tsystem\t%d->%d\t%s\n", sys.Name, sys.In, sys.Out, sys.Description)
	}
	return w.Flush()
}

func norm(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
