package sim

import (
	"fmt"
	"strings"
)

// Variant selects the arrival/service distribution pair of a queue.
type Variant int

const (
	// MM1 has exponential inter-arrival and exponential service times.
	MM1 Variant = iota
	// GM1 has general (uniform or folded normal) inter-arrival times and
	// exponential service times.
	GM1
	// MG1 has exponential inter-arrival times and general service times.
	MG1
)

// Variants returns every supported variant in reporting order.
func Variants() []Variant {
	return []Variant{MM1, GM1, MG1}
}

func (v Variant) String() string {
	switch v {
	case MM1:
		return "M/M/1"
	case GM1:
		return "G/M/1"
	case MG1:
		return "M/G/1"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// Valid reports whether v is one of the supported variants.
func (v Variant) Valid() bool {
	return v >= MM1 && v <= MG1
}

// ParseVariant accepts "mm1", "gm1", "mg1" and the slash notation ("M/M/1").
func ParseVariant(s string) (Variant, error) {
	key := strings.ToLower(strings.ReplaceAll(s, "/", ""))
	switch key {
	case "mm1":
		return MM1, nil
	case "gm1":
		return GM1, nil
	case "mg1":
		return MG1, nil
	default:
		return 0, configErrorf("unknown queue variant %q; valid: mm1, gm1, mg1", s)
	}
}

// Specs returns the inter-arrival and service distributions of v for the
// given rates. general names the family used for the "G" side ("uniform" or
// "normal") and is ignored for MM1.
func (v Variant) Specs(general string, lambda, mu float64) (arrival, service DistSpec, err error) {
	if lambda <= 0 || mu <= 0 {
		return DistSpec{}, DistSpec{}, configErrorf("rates must be positive, got λ=%g μ=%g", lambda, mu)
	}
	switch v {
	case MM1:
		return ExponentialSpec(lambda), ExponentialSpec(mu), nil
	case GM1:
		arrival, err = GeneralSpec(general, 1.0/lambda)
		if err != nil {
			return DistSpec{}, DistSpec{}, err
		}
		return arrival, ExponentialSpec(mu), nil
	case MG1:
		service, err = GeneralSpec(general, 1.0/mu)
		if err != nil {
			return DistSpec{}, DistSpec{}, err
		}
		return ExponentialSpec(lambda), service, nil
	default:
		return DistSpec{}, DistSpec{}, configErrorf("unknown queue variant %d", int(v))
	}
}
