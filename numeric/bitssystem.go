package numeric

// BitsSystem holds the integer-fraction constants a fixed-precision
// interval needs: the largest representable value and the fractions 1/2,
// 1/4 and 3/4 expressed in the same integer representation, where an
// IntervalBoundary's bits are read as if they followed a binary point.
//
// For example, with IntervalBits == 4, the value 0b0101 (5) is read as
// 0.0101 in binary (0.3125 in decimal).
type BitsSystem struct {
	max          IntervalBoundary
	half         IntervalBoundary
	oneFourth    IntervalBoundary
	threeFourths IntervalBoundary
}

// NewBitsSystem builds the BitsSystem for IntervalBits.
//
// half is computed as 1<<(IntervalBits-1) rather than max>>1: since max is
// all ones (0.11...1), max>>1 is only 0.0111...1, one unit short of true
// 0.5, which in turn collapses threeFourths down onto half and makes the
// near-convergence window permanently empty. Deriving half directly from
// the bit width keeps quarter/half/three-quarters properly distinct.
func NewBitsSystem() BitsSystem {
	max := MaxIntervalBoundary()
	half := IntervalBoundary(1).Shl(IntervalBits - 1)
	oneFourth := half.Shr(1)
	threeFourths := half.Or(uint64(oneFourth))

	return BitsSystem{
		max:          max,
		half:         half,
		oneFourth:    oneFourth,
		threeFourths: threeFourths,
	}
}

// Max returns the largest representable interval boundary, 0.11...1.
func (s BitsSystem) Max() IntervalBoundary { return s.max }

// Half returns 1/2 in the integer-fraction representation, 0.10...0.
func (s BitsSystem) Half() IntervalBoundary { return s.half }

// OneFourth returns 1/4 in the integer-fraction representation, 0.010...0.
func (s BitsSystem) OneFourth() IntervalBoundary { return s.oneFourth }

// ThreeFourths returns 3/4 in the integer-fraction representation, 0.110...0.
func (s BitsSystem) ThreeFourths() IntervalBoundary { return s.threeFourths }
