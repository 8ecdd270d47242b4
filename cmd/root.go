package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/NourIslamAoudia/Simulation-of-queues-MM1-GM1-MG1/sim/experiment"
)

var (
	logLevel   string       // Log verbosity level
	reportPath string       // Text report destination ("" = stdout)
	jsonPath   string       // JSON results destination ("" = none)
	sweepOpts  sweepOptions // Sweep flags, overlaid on --config
)

// sweepOptions mirrors experiment.SweepConfig as CLI flags. Only flags the
// user actually set override the values read from --config.
type sweepOptions struct {
	configPath  string
	serviceRate float64
	lambdaStart float64
	lambdaStop  float64
	lambdaStep  float64
	customers   int
	trials      int
	seed        int64
	workers     int
	generalDist string
}

// bindAxis registers the flags shared by sweep and theory.
func (o *sweepOptions) bindAxis(fs *pflag.FlagSet) {
	d := experiment.DefaultSweepConfig()
	fs.StringVar(&o.configPath, "config", "", "Path to YAML sweep config")
	fs.Float64Var(&o.serviceRate, "mu", d.ServiceRate, "Service rate μ")
	fs.Float64Var(&o.lambdaStart, "lambda-start", d.LambdaStart, "First arrival rate λ of the sweep")
	fs.Float64Var(&o.lambdaStop, "lambda-stop", d.LambdaStop, "Last arrival rate λ of the sweep (inclusive)")
	fs.Float64Var(&o.lambdaStep, "lambda-step", d.LambdaStep, "Arrival rate increment")
}

func (o *sweepOptions) bind(fs *pflag.FlagSet) {
	d := experiment.DefaultSweepConfig()
	o.bindAxis(fs)
	fs.IntVar(&o.customers, "customers", d.Customers, "Customers per trial")
	fs.IntVar(&o.trials, "trials", d.Trials, "Independent trials per load point")
	fs.Int64Var(&o.seed, "seed", d.SeedBase, "Seed base for all random streams")
	fs.IntVar(&o.workers, "workers", d.Workers, "Concurrent trials (0 = number of CPUs)")
	fs.StringVar(&o.generalDist, "general-dist", d.GeneralDistribution, "General distribution for G/M/1 and M/G/1 (uniform, normal)")
}

// resolve builds the sweep config: defaults, then --config, then any flag
// explicitly set on fs.
func (o *sweepOptions) resolve(fs *pflag.FlagSet) (experiment.SweepConfig, error) {
	cfg := experiment.DefaultSweepConfig()
	if o.configPath != "" {
		loaded, err := experiment.LoadSweepConfig(o.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	}
	if fs.Changed("mu") {
		cfg.ServiceRate = o.serviceRate
	}
	if fs.Changed("lambda-start") {
		cfg.LambdaStart = o.lambdaStart
	}
	if fs.Changed("lambda-stop") {
		cfg.LambdaStop = o.lambdaStop
	}
	if fs.Changed("lambda-step") {
		cfg.LambdaStep = o.lambdaStep
	}
	if fs.Changed("customers") {
		cfg.Customers = o.customers
	}
	if fs.Changed("trials") {
		cfg.Trials = o.trials
	}
	if fs.Changed("seed") {
		cfg.SeedBase = o.seed
	}
	if fs.Changed("workers") {
		cfg.Workers = o.workers
	}
	if fs.Changed("general-dist") {
		cfg.GeneralDistribution = o.generalDist
	}
	return cfg, cfg.Validate()
}

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "queuesim",
	Short: "Simulator for M/M/1, G/M/1 and M/G/1 queues",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// sweepCmd runs the full load sweep across the three variants
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sweep the arrival rate and compare all three queue variants",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := sweepOpts.resolve(cmd.Flags())
		if err != nil {
			logrus.Fatalf("Invalid sweep configuration: %v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		res, err := experiment.Run(ctx, cfg)
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
		curve, err := res.Theory()
		if err != nil {
			logrus.Fatalf("Theoretical model failed: %v", err)
		}

		if err := writeTo(reportPath, func(f *os.File) error { return WriteReport(f, res, curve) }); err != nil {
			logrus.Fatalf("Writing report: %v", err)
		}
		if jsonPath != "" {
			if err := writeTo(jsonPath, func(f *os.File) error { return WriteJSON(f, res, curve) }); err != nil {
				logrus.Fatalf("Writing JSON results: %v", err)
			}
			logrus.Infof("Results written to %s", jsonPath)
		}
		logrus.Info("Sweep complete.")
	},
}

// writeTo calls write on path, or on stdout when path is empty.
func writeTo(path string, write func(*os.File) error) error {
	if path == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	sweepOpts.bind(sweepCmd.Flags())
	sweepCmd.Flags().StringVar(&reportPath, "report", "", "Write the text report to this file instead of stdout")
	sweepCmd.Flags().StringVar(&jsonPath, "json", "", "Write sweep results as JSON to this file")

	rootCmd.AddCommand(sweepCmd)
}
