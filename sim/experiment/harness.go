// Package experiment sweeps the arrival rate across all three queue variants,
// runs independent seeded trials per load point and averages them.
//
// Every (variant, λ index, trial) cell draws from its own sim.PartitionedRNG,
// so a sweep is bit-identical for a given seed base whatever the worker count.
package experiment

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/NourIslamAoudia/Simulation-of-queues-MM1-GM1-MG1/sim"
)

// Run executes the sweep described by cfg. The first failing trial cancels
// the remaining cells and Run returns that error with no result. Cancelling
// ctx stops scheduling new cells and Run returns ctx.Err().
func Run(ctx context.Context, cfg SweepConfig) (*SweepResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lambda := cfg.LambdaAxis()
	variants := sim.Variants()
	trials := make([]sim.TrialResult, len(variants)*len(lambda)*cfg.Trials)
	slot := func(vi, li, j int) int {
		return (vi*len(lambda)+li)*cfg.Trials + j
	}

	logrus.Infof("Sweeping %d load points (λ %g..%g, μ = %g) with %d trials of %d customers each",
		len(lambda), lambda[0], lambda[len(lambda)-1], cfg.ServiceRate, cfg.Trials, cfg.Customers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers())

schedule:
	for li, l := range lambda {
		for vi, v := range variants {
			for j := 0; j < cfg.Trials; j++ {
				if gctx.Err() != nil {
					break schedule
				}
				idx := slot(vi, li, j)
				g.Go(func() error {
					if err := gctx.Err(); err != nil {
						return err
					}
					simCfg := sim.SimulationConfig{ArrivalRate: l, ServiceRate: cfg.ServiceRate, Customers: cfg.Customers}
					rng := sim.NewPartitionedRNG(cfg.SeedBase, sim.CellKey{Variant: v, LoadIndex: li, Trial: j})
					res, err := sim.RunTrial(simCfg, v, cfg.GeneralDistribution, rng)
					if err != nil {
						return fmt.Errorf("%s at λ=%g, trial %d: %w", v, l, j, err)
					}
					logrus.Debugf("%s λ=%g trial %d: TR=%.4f TA=%.4f ρ=%.4f", v, l, j,
						res.MeanResponseTime, res.MeanWaitTime, res.ServerUtilization)
					trials[idx] = res
					return nil
				})
			}
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// errgroup reports only errors returned by cells; a cancellation that
	// raced the last scheduled cell still has to fail the sweep.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := &SweepResult{Config: cfg, Lambda: lambda, Results: make([]LoadSweepResult, len(variants))}
	for vi, v := range variants {
		out.Results[vi] = newLoadSweepResult(v, lambda)
	}
	response := make([]float64, cfg.Trials)
	wait := make([]float64, cfg.Trials)
	util := make([]float64, cfg.Trials)
	for li, l := range lambda {
		unstable := l >= cfg.ServiceRate
		if unstable {
			logrus.Warnf("λ = %g >= μ = %g: queue is unstable, averages depend on the customer count", l, cfg.ServiceRate)
		}
		for vi := range variants {
			for j := 0; j < cfg.Trials; j++ {
				res := trials[slot(vi, li, j)]
				response[j] = res.MeanResponseTime
				wait[j] = res.MeanWaitTime
				util[j] = res.ServerUtilization
			}
			r := &out.Results[vi]
			r.MeanResponseTime[li] = stat.Mean(response, nil)
			r.MeanWaitTime[li] = stat.Mean(wait, nil)
			r.ServerUtilization[li] = stat.Mean(util, nil)
			if cfg.Trials > 1 {
				r.ResponseTimeStdDev[li] = stat.StdDev(response, nil)
			}
			r.Unstable[li] = unstable
		}
		logrus.Infof("λ = %.2f: TR(M/M/1) = %.4f, TR(G/M/1) = %.4f, TR(M/G/1) = %.4f", l,
			out.Results[0].MeanResponseTime[li], out.Results[1].MeanResponseTime[li], out.Results[2].MeanResponseTime[li])
	}
	return out, nil
}
