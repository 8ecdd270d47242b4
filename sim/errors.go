package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration reports an invalid rate, customer count, sequence
	// length, distribution identifier or sweep setting. Never retried.
	ErrConfiguration = errors.New("configuration error")

	// ErrDomain reports a parameter or sample outside its mathematical domain,
	// e.g. a non-positive scale or a negative duration.
	ErrDomain = errors.New("domain error")
)

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

func domainErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDomain, fmt.Sprintf(format, args...))
}
