// Implements the Lindley recurrence for a FIFO, single-server,
// infinite-capacity queue.

package sim

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// CustomerTimeline holds per-customer timings, all of length N and
// index-aligned by arrival order.
type CustomerTimeline struct {
	InterArrival []float64 // input inter-arrival durations
	Service      []float64 // input service durations
	Arrival      []float64 // cumulative sum of InterArrival
	Wait         []float64 // time queued before service begins (>= 0)
	Departure    []float64 // service completion time, non-decreasing
	Response     []float64 // Wait[i] + Service[i]

	busy float64 // total service time
	idle float64 // server idle time from t=0 to the last departure
}

// RunLindley computes arrival, wait, departure and response times for every
// customer. Both sequences must have the same length N >= 1 and contain only
// finite non-negative durations. The inputs are referenced, not copied, and
// are not modified.
//
// The recurrence is strictly sequential: customer i starts service at
// max(Arrival[i], Departure[i-1]).
func RunLindley(interArrival, service []float64) (*CustomerTimeline, error) {
	n := len(interArrival)
	if n == 0 {
		return nil, configErrorf("timeline requires at least one customer")
	}
	if len(service) != n {
		return nil, configErrorf("inter-arrival and service sequences differ in length: %d != %d", n, len(service))
	}
	for i := 0; i < n; i++ {
		if err := validateDuration("inter-arrival", i, interArrival[i]); err != nil {
			return nil, err
		}
		if err := validateDuration("service", i, service[i]); err != nil {
			return nil, err
		}
	}

	t := &CustomerTimeline{
		InterArrival: interArrival,
		Service:      service,
		Arrival:      make([]float64, n),
		Wait:         make([]float64, n),
		Departure:    make([]float64, n),
		Response:     make([]float64, n),
	}

	t.Arrival[0] = interArrival[0]
	t.Departure[0] = t.Arrival[0] + service[0]
	t.idle = interArrival[0]
	for i := 1; i < n; i++ {
		t.Arrival[i] = t.Arrival[i-1] + interArrival[i]
		start := t.Arrival[i]
		if prev := t.Departure[i-1]; prev > start {
			t.Wait[i] = prev - start
			start = prev
		} else {
			t.idle += start - prev
		}
		t.Departure[i] = start + service[i]
	}
	for i := 0; i < n; i++ {
		t.Response[i] = t.Wait[i] + service[i]
	}
	t.busy = floats.Sum(service)
	return t, nil
}

func validateDuration(kind string, i int, d float64) error {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return domainErrorf("%s duration %d must be finite, got %f", kind, i, d)
	}
	if d < 0 {
		return domainErrorf("%s duration %d must be non-negative, got %f", kind, i, d)
	}
	return nil
}

// Len returns the number of customers.
func (t *CustomerTimeline) Len() int {
	return len(t.Arrival)
}

// BusyTime returns the total time the server spent serving.
func (t *CustomerTimeline) BusyTime() float64 {
	return t.busy
}

// IdleTime returns the time the server sat empty between t=0 and the last
// departure, including the wait for the first arrival.
func (t *CustomerTimeline) IdleTime() float64 {
	return t.idle
}

// Horizon is the simulated time span, Departure[N-1], measured from t=0.
func (t *CustomerTimeline) Horizon() float64 {
	return t.Departure[len(t.Departure)-1]
}

// Utilization is total service time over the horizon. It reaches exactly 1
// only when the server never idles, e.g. a single customer arriving at t=0.
// Returns 0 for an empty horizon.
func (t *CustomerTimeline) Utilization() float64 {
	h := t.Horizon()
	if h <= 0 {
		return 0
	}
	// summation order differs from the recurrence; keep rounding from pushing past 1
	return math.Min(t.busy/h, 1)
}
