package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/NourIslamAoudia/Simulation-of-queues-MM1-GM1-MG1/sim"
	"github.com/NourIslamAoudia/Simulation-of-queues-MM1-GM1-MG1/sim/experiment"
	"github.com/NourIslamAoudia/Simulation-of-queues-MM1-GM1-MG1/sim/theory"
)

const (
	markUnstable  = "UNSTABLE"
	markUndefined = "n/a"
)

// sweepTables gathers everything both report formats need from one sweep.
type sweepTables struct {
	res        *experiment.SweepResult
	series     []experiment.LoadSweepResult // sim.Variants() order
	comparison []experiment.TheoryComparison
	ratios     map[sim.Variant][]float64 // TR relative to M/M/1
	summary    experiment.SweepSummary
}

func buildTables(res *experiment.SweepResult, curve *theory.Curve) (*sweepTables, error) {
	t := &sweepTables{res: res, ratios: make(map[sim.Variant][]float64)}
	for _, v := range sim.Variants() {
		r, err := res.ByVariant(v)
		if err != nil {
			return nil, err
		}
		t.series = append(t.series, r)
	}
	mm1 := t.series[0]
	cmp, err := experiment.CompareWithTheory(mm1, curve)
	if err != nil {
		return nil, err
	}
	t.comparison = cmp
	for _, r := range t.series[1:] {
		ratio, err := experiment.ResponseRatio(r, mm1)
		if err != nil {
			return nil, err
		}
		t.ratios[r.Variant] = ratio
	}
	if t.summary, err = res.Summary(); err != nil {
		return nil, err
	}
	return t, nil
}

// WriteReport renders the sweep as aligned text tables: configuration,
// per-variant metrics, M/M/1 validation, the variance effect and a summary.
func WriteReport(w io.Writer, res *experiment.SweepResult, curve *theory.Curve) error {
	t, err := buildTables(res, curve)
	if err != nil {
		return err
	}
	cfg := res.Config
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "=== Queue Simulation Report ===")
	fmt.Fprintf(tw, "Service rate μ:\t%g\n", cfg.ServiceRate)
	fmt.Fprintf(tw, "Arrival rates λ:\t%g to %g step %g (%d points)\n",
		cfg.LambdaStart, res.Lambda[len(res.Lambda)-1], cfg.LambdaStep, len(res.Lambda))
	fmt.Fprintf(tw, "Customers per trial:\t%d\n", cfg.Customers)
	fmt.Fprintf(tw, "Trials per point:\t%d\n", cfg.Trials)
	fmt.Fprintf(tw, "Seed base:\t%d\n", cfg.SeedBase)
	fmt.Fprintf(tw, "General distribution:\t%s\n", cfg.GeneralDistribution)
	if n := res.UnstableCount(); n > 0 {
		fmt.Fprintf(tw, "Unstable points:\t%d (λ >= μ)\n", n)
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "--- Mean response time (TR), mean wait (TA), utilization (ρ) ---")
	fmt.Fprint(tw, "λ")
	for _, r := range t.series {
		fmt.Fprintf(tw, "\t%s TR\t%s TA\t%s ρ", r.VariantName, r.VariantName, r.VariantName)
	}
	fmt.Fprintln(tw, "\t")
	for i, l := range res.Lambda {
		fmt.Fprintf(tw, "%.2f", l)
		for _, r := range t.series {
			fmt.Fprintf(tw, "\t%.4f\t%.4f\t%.4f", r.MeanResponseTime[i], r.MeanWaitTime[i], r.ServerUtilization[i])
		}
		if t.series[0].Unstable[i] {
			fmt.Fprintf(tw, "\t%s\n", markUnstable)
		} else {
			fmt.Fprintln(tw, "\t")
		}
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "--- M/M/1 validation: E[T] = 1/(μ-λ), E[W] = ρ/(μ-λ), utilization = ρ ---")
	fmt.Fprintln(tw, "λ\tTR sim\tTR theory\tρ sim\tρ theory\tTA sim\tTA theory\tmean error\tquality\t")
	for _, c := range t.comparison {
		if !c.Defined {
			fmt.Fprintf(tw, "%.2f\t%.4f\t%s\t%.4f\t%s\t%.4f\t%s\t%s\t%s\t\n", c.Lambda,
				c.Simulated, markUndefined, c.SimulatedUtilization, markUndefined, c.SimulatedWait, markUndefined,
				markUndefined, markUndefined)
			continue
		}
		fmt.Fprintf(tw, "%.2f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.2f%%\t%s\t\n", c.Lambda,
			c.Simulated, c.Theoretical, c.SimulatedUtilization, c.TheoreticalUtilization,
			c.SimulatedWait, c.TheoreticalWait, 100*c.MeanError, c.Grade)
	}
	fmt.Fprintln(tw, "Quality: mean error < 2% EXCELLENT, < 5% VERY GOOD, < 10% GOOD, otherwise ACCEPTABLE")

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "--- Response time relative to M/M/1 ---")
	fmt.Fprint(tw, "λ")
	for _, r := range t.series[1:] {
		fmt.Fprintf(tw, "\t%s / M/M/1", r.VariantName)
	}
	fmt.Fprintln(tw, "\t")
	for i, l := range res.Lambda {
		fmt.Fprintf(tw, "%.2f", l)
		for _, r := range t.series[1:] {
			fmt.Fprintf(tw, "\t%.3f", t.ratios[r.Variant][i])
		}
		fmt.Fprintln(tw, "\t")
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "--- Summary ---")
	for _, v := range sim.Variants()[1:] {
		fmt.Fprintf(tw, "Mean ratio %s / M/M/1:\t%.4f\n", v, t.summary.MeanRatio[v])
	}
	for _, v := range sim.Variants() {
		fmt.Fprintf(tw, "Max response time %s:\t%.4f\n", v, t.summary.MaxResponseTime[v])
	}
	fmt.Fprintf(tw, "Assessment:\t%s\n", assessment(t.summary))
	return tw.Flush()
}

// assessment phrases the summary's ranking of the general variants.
func assessment(s experiment.SweepSummary) string {
	if s.Similar {
		return "all three variants perform alike (mean ratios below 1.05)"
	}
	milder := sim.GM1
	if s.MostDegraded == sim.GM1 {
		milder = sim.MG1
	}
	return fmt.Sprintf("M/M/1 performs best; %s degrades moderately, %s degrades most", milder, s.MostDegraded)
}

// theoryPointJSON is one M/M/1 point. Pointer fields encode as null where
// the model is undefined.
type theoryPointJSON struct {
	Lambda           float64  `json:"lambda"`
	Rho              float64  `json:"rho"`
	MeanResponseTime *float64 `json:"mean_response_time"`
	MeanWaitTime     *float64 `json:"mean_wait_time"`
	RelativeError    *float64 `json:"simulated_relative_error"`
	WaitError        *float64 `json:"wait_relative_error"`
	UtilizationError *float64 `json:"utilization_relative_error"`
	MeanError        *float64 `json:"mean_relative_error"`
	Grade            string   `json:"quality,omitempty"`
}

type summaryJSON struct {
	MeanRatioToMM1  map[string]float64 `json:"mean_ratio_to_mm1"`
	MaxResponseTime map[string]float64 `json:"max_response_time"`
	Similar         bool               `json:"similar"`
	MostDegraded    string             `json:"most_degraded"`
}

type sweepJSON struct {
	Config              experiment.SweepConfig       `json:"config"`
	Lambda              []float64                    `json:"lambda"`
	Variants            []experiment.LoadSweepResult `json:"variants"`
	Theory              []theoryPointJSON            `json:"mm1_theory"`
	ResponseRatioToMM1  map[string][]float64         `json:"response_ratio_to_mm1"`
	UnstablePointsCount int                          `json:"unstable_points"`
	Summary             summaryJSON                  `json:"summary"`
}

// WriteJSON writes the sweep, the M/M/1 curve and the ratios as indented JSON.
func WriteJSON(w io.Writer, res *experiment.SweepResult, curve *theory.Curve) error {
	t, err := buildTables(res, curve)
	if err != nil {
		return err
	}
	out := sweepJSON{
		Config:              res.Config,
		Lambda:              res.Lambda,
		Variants:            t.series,
		Theory:              make([]theoryPointJSON, len(t.comparison)),
		ResponseRatioToMM1:  make(map[string][]float64, len(t.ratios)),
		UnstablePointsCount: res.UnstableCount(),
		Summary: summaryJSON{
			MeanRatioToMM1:  make(map[string]float64, len(t.summary.MeanRatio)),
			MaxResponseTime: make(map[string]float64, len(t.summary.MaxResponseTime)),
			Similar:         t.summary.Similar,
			MostDegraded:    t.summary.MostDegraded.String(),
		},
	}
	for v, r := range t.summary.MeanRatio {
		out.Summary.MeanRatioToMM1[v.String()] = r
	}
	for v, m := range t.summary.MaxResponseTime {
		out.Summary.MaxResponseTime[v.String()] = m
	}
	for i, c := range t.comparison {
		p := theoryPointJSON{Lambda: c.Lambda, Rho: curve.Rho[i]}
		if c.Defined {
			p.MeanResponseTime = ptr(c.Theoretical)
			p.MeanWaitTime = ptr(curve.MeanWaitTime[i])
			p.RelativeError = ptr(c.RelativeError)
			p.WaitError = ptr(c.WaitError)
			p.UtilizationError = ptr(c.UtilizationError)
			p.MeanError = ptr(c.MeanError)
			p.Grade = string(c.Grade)
		}
		out.Theory[i] = p
	}
	for v, ratio := range t.ratios {
		out.ResponseRatioToMM1[v.String()] = ratio
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func ptr(v float64) *float64 {
	return &v
}
