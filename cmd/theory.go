package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/NourIslamAoudia/Simulation-of-queues-MM1-GM1-MG1/sim/theory"
)

var theoryOpts sweepOptions // Only the axis flags are bound

// theoryCmd prints the closed-form M/M/1 metrics over a λ axis
var theoryCmd = &cobra.Command{
	Use:   "theory",
	Short: "Print theoretical M/M/1 metrics over an arrival-rate axis",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := theoryOpts.resolve(cmd.Flags())
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		curve, err := theory.MM1(cfg.LambdaAxis(), cfg.ServiceRate)
		if err != nil {
			logrus.Fatalf("Theoretical model failed: %v", err)
		}
		if err := writeCurve(os.Stdout, curve); err != nil {
			logrus.Fatalf("Writing results: %v", err)
		}
	},
}

func writeCurve(w io.Writer, c *theory.Curve) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "=== M/M/1 Theory (μ = %g) ===\n", c.ServiceRate)
	fmt.Fprintln(tw, "λ\tρ\tE[T]\tE[W]\tL\tLq\t")
	for i, l := range c.Lambda {
		if !c.Defined[i] {
			fmt.Fprintf(tw, "%.2f\t%.3f\t%s\t%s\t%s\t%s\t\n", l, c.Rho[i], markUndefined, markUndefined, markUndefined, markUndefined)
			continue
		}
		fmt.Fprintf(tw, "%.2f\t%.3f\t%.4f\t%.4f\t%.4f\t%.4f\t\n", l, c.Rho[i],
			c.MeanResponseTime[i], c.MeanWaitTime[i], c.MeanInSystem[i], c.MeanInQueue[i])
	}
	return tw.Flush()
}

func init() {
	theoryOpts.bindAxis(theoryCmd.Flags())
	rootCmd.AddCommand(theoryCmd)
}
