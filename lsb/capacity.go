package lsb

import (
	"fmt"
	"strings"
)

// CapacityMode selects how the capacity of a grid is computed
type CapacityMode int

const (
	// CapacityLiteral computes capacity as width * width * 6, which is
	// only correct for square images but is what existing carriers were
	// checked against
	CapacityLiteral CapacityMode = iota

	// CapacityExact computes capacity as width * height * 6
	CapacityExact
)

var capacityModes = [...]string{
	CapacityLiteral: "literal",
	CapacityExact:   "exact",
}

func (m CapacityMode) String() string {
	if m < 0 || int(m) >= len(capacityModes) {
		return fmt.Sprintf("CapacityMode(%d)", int(m))
	}
	return capacityModes[m]
}

// ParseCapacityMode returns the mode with the given name
func ParseCapacityMode(s string) (CapacityMode, error) {
	for i, name := range capacityModes {
		if strings.EqualFold(s, name) {
			return CapacityMode(i), nil
		}
	}
	return 0, fmt.Errorf("lsb: unknown capacity mode %q", s)
}

// Capacity returns the number of payload bits a grid of the given dimensions
// can hold
func Capacity(width, height int, mode CapacityMode) int {
	if mode == CapacityExact {
		return width * height * 3 * BitsPerChannel
	}
	return width * width * 3 * BitsPerChannel
}

// CapacityError reports a stream that does not fit in a grid
type CapacityError struct {
	Bits     int
	Capacity int
}

// Ratio returns how many times larger the image must be for the stream to
// fit
func (e *CapacityError) Ratio() float64 {
	if e.Capacity == 0 {
		return float64(e.Bits)
	}
	return float64(e.Bits) / float64(e.Capacity)
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("lsb: image must be %.2f times larger to fit the provided text", e.Ratio())
}

// Plan checks that a stream of the given number of bits fits in a grid of
// the given dimensions, returning a *CapacityError if not.
func Plan(bits, width, height int, mode CapacityMode) error {
	capacity := Capacity(width, height, mode)
	if bits > capacity {
		return &CapacityError{
			Bits:     bits,
			Capacity: capacity,
		}
	}
	return nil
}
