// Package interval implements the fixed-precision fractional interval that
// the arithmetic coder narrows on every symbol: a [low, high] pair over
// numeric.IntervalBoundary together with the convergence classification
// that drives the encoder/decoder state machines.
package interval

import (
	"fmt"

	"github.com/Yair5675/ppm-cli/numeric"
)

// CFI is the cumulative-frequency interval a probability model assigns to a
// symbol: the sub-range [Start/Total, End/Total) of [0, 1).
type CFI struct {
	Start numeric.Frequency
	End   numeric.Frequency
	Total numeric.Frequency
}

// State classifies the interval for the purposes of the encoder/decoder
// state machines.
type State int

const (
	// NoConvergence means neither Converging nor NearConvergence applies;
	// the state machine should stop narrowing.
	NoConvergence State = iota
	// Converging means low and high share their top bit.
	Converging
	// NearConvergence means low is in [1/4, 1/2) and high is in [1/2, 3/4).
	NearConvergence
)

// Interval holds the arithmetic coder's current [low, high] boundaries. The
// invariant low < high holds at rest, i.e. between calls to Update and the
// state-machine shifts.
type Interval struct {
	low, high numeric.IntervalBoundary
	system    numeric.BitsSystem
}

// Full returns a new Interval representing the mathematical interval
// [0, 1): low is zero and high is the largest representable boundary.
func Full() *Interval {
	return &Interval{
		low:    0,
		high:   numeric.MaxIntervalBoundary(),
		system: numeric.NewBitsSystem(),
	}
}

// Low returns the interval's lower boundary.
func (iv *Interval) Low() numeric.IntervalBoundary { return iv.low }

// High returns the interval's upper boundary.
func (iv *Interval) High() numeric.IntervalBoundary { return iv.high }

// System returns the bits system backing this interval's width.
func (iv *Interval) System() numeric.BitsSystem { return iv.system }

// SetLow validates and applies a new low boundary. It fails if doing so
// would break the invariant low < high.
func (iv *Interval) SetLow(newLow numeric.IntervalBoundary) error {
	if err := validateBoundaries(newLow, iv.high); err != nil {
		return err
	}
	iv.low = newLow
	return nil
}

// SetHigh validates and applies a new high boundary. It fails if doing so
// would break the invariant low < high.
func (iv *Interval) SetHigh(newHigh numeric.IntervalBoundary) error {
	if err := validateBoundaries(iv.low, newHigh); err != nil {
		return err
	}
	iv.high = newHigh
	return nil
}

// SetBoundaries validates and applies both boundaries atomically.
func (iv *Interval) SetBoundaries(newLow, newHigh numeric.IntervalBoundary) error {
	if err := validateBoundaries(newLow, newHigh); err != nil {
		return err
	}
	iv.low = newLow
	iv.high = newHigh
	return nil
}

func validateBoundaries(low, high numeric.IntervalBoundary) error {
	if low < high {
		return nil
	}
	return fmt.Errorf(
		"interval: updating boundaries would break the invariant low < high (new low: %d >= new high: %d)",
		low, high,
	)
}

// Update narrows the interval by a cumulative-frequency interval:
//
//	width    = high - low + 1
//	newLow   = low + floor(width * cfi.Start / cfi.Total)
//	newHigh  = low + floor(width * cfi.End   / cfi.Total) - 1
//
// The invariant low < high is preserved whenever cfi.Start < cfi.End <=
// cfi.Total and width >= cfi.Total, which numeric.IntervalBits >=
// numeric.FrequencyBits+2 guarantees.
func (iv *Interval) Update(cfi CFI) error {
	if !(cfi.Start < cfi.End && cfi.End <= cfi.Total) {
		return fmt.Errorf("interval: invalid CFI {start=%d end=%d total=%d}", cfi.Start, cfi.End, cfi.Total)
	}

	width := uint64(iv.high) - uint64(iv.low) + 1
	newLowVal := uint64(iv.low) + width*uint64(cfi.Start)/uint64(cfi.Total)
	newHighVal := uint64(iv.low) + width*uint64(cfi.End)/uint64(cfi.Total) - 1

	newLow, err := numeric.NewIntervalBoundary(newLowVal)
	if err != nil {
		return fmt.Errorf("interval: update overflowed low boundary: %w", err)
	}
	newHigh, err := numeric.NewIntervalBoundary(newHighVal)
	if err != nil {
		return fmt.Errorf("interval: update overflowed high boundary: %w", err)
	}

	return iv.SetBoundaries(newLow, newHigh)
}

// ClassifyState returns the interval's convergence state. When the state is
// Converging, the second return value is the shared top bit (true for a
// pair in the upper half, false for the lower half); it is meaningless for
// any other state. Converging takes priority over NearConvergence.
func (iv *Interval) ClassifyState() (State, bool) {
	half := iv.system.Half()

	lowHigh := iv.low >= half
	highHigh := iv.high >= half

	if lowHigh == highHigh {
		return Converging, lowHigh
	}

	oneFourth := iv.system.OneFourth()
	threeFourths := iv.system.ThreeFourths()
	if iv.low >= oneFourth && iv.high < threeFourths {
		return NearConvergence, false
	}

	return NoConvergence, false
}
